package browser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeDriver scripts per-interaction outcomes for strategy tests.
type fakeDriver struct {
	keyErrs    map[string]error
	clickErrs  map[string]error
	counts     map[string]int
	texts      map[string]string
	keyPresses []string
	clicks     []string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		keyErrs:   map[string]error{},
		clickErrs: map[string]error{},
		counts:    map[string]int{},
		texts:     map[string]string{},
	}
}

func (f *fakeDriver) PressKey(key string) error {
	f.keyPresses = append(f.keyPresses, key)
	if err, ok := f.keyErrs[key]; ok {
		return err
	}
	return nil
}

func (f *fakeDriver) Click(selector string) error {
	f.clicks = append(f.clicks, selector)
	if err, ok := f.clickErrs[selector]; ok {
		return err
	}
	return nil
}

func (f *fakeDriver) ElementCount(selector string) (int, error) {
	if n, ok := f.counts[selector]; ok {
		return n, nil
	}
	return 0, nil
}

func (f *fakeDriver) ElementText(selector string) (string, error) {
	if text, ok := f.texts[selector]; ok {
		return text, nil
	}
	return "", errors.New("no such element")
}

func (f *fakeDriver) Screenshot(clip Clip, quality int) ([]byte, error) {
	return nil, errors.New("not supported")
}

func (f *fakeDriver) failAllKeys() {
	for _, key := range []string{"ArrowRight", "PageDown", "Space", "Home"} {
		f.keyErrs[key] = errors.New("key rejected")
	}
}

func (f *fakeDriver) failAllClicks() {
	for _, sel := range []string{
		`[data-testid="next-slide"]`,
		`button[aria-label="Next"]`,
		`[data-testid="first-slide"]`,
		`.player-v2-button-first`,
	} {
		f.clickErrs[sel] = errors.New("no such element")
	}
}

func newTestNavigator() (*Navigator, *int) {
	nav := NewNavigator(0)
	sleeps := 0
	nav.sleep = func(time.Duration) { sleeps++ }
	return nav, &sleeps
}

func TestAdvanceFirstStrategyWins(t *testing.T) {
	d := newFakeDriver()
	nav, sleeps := newTestNavigator()

	assert.True(t, nav.Advance(d))
	assert.Equal(t, []string{"ArrowRight"}, d.keyPresses)
	assert.Empty(t, d.clicks)
	assert.Equal(t, 1, *sleeps)
}

func TestAdvanceFallsThroughFailedStrategies(t *testing.T) {
	d := newFakeDriver()
	d.keyErrs["ArrowRight"] = errors.New("rejected")
	d.keyErrs["PageDown"] = errors.New("rejected")
	nav, _ := newTestNavigator()

	assert.True(t, nav.Advance(d))
	assert.Equal(t, []string{"ArrowRight", "PageDown", "Space"}, d.keyPresses)
}

func TestAdvanceAllStrategiesFailIsNoOp(t *testing.T) {
	d := newFakeDriver()
	d.failAllKeys()
	d.failAllClicks()
	nav, sleeps := newTestNavigator()

	assert.False(t, nav.Advance(d))
	assert.Equal(t, 0, *sleeps, "no settle wait after a full-list failure")
}

func TestResetToFirstBestEffort(t *testing.T) {
	d := newFakeDriver()
	d.failAllKeys()
	d.failAllClicks()
	nav, _ := newTestNavigator()

	// Must not panic or error even when nothing works.
	nav.ResetToFirst(d)

	d2 := newFakeDriver()
	nav.ResetToFirst(d2)
	assert.Equal(t, []string{"Home"}, d2.keyPresses)
}
