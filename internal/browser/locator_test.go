package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSlideCountFromCounterText(t *testing.T) {
	d := newFakeDriver()
	d.texts[slideCounterSelector] = "1 / 9"
	nav, _ := newTestNavigator()

	assert.Equal(t, 9, DetectSlideCount(d, nav))
	assert.Empty(t, d.keyPresses, "counter hit should not navigate")
}

func TestDetectSlideCountRejectsBogusCounter(t *testing.T) {
	nav, _ := newTestNavigator()

	for _, text := range []string{"slide deck", "5 / 2", "0 / 4", "3 / 400"} {
		d := newFakeDriver()
		d.texts[slideCounterSelector] = text
		d.counts[`[data-testid="slide"]`] = 7
		assert.Equal(t, 7, DetectSlideCount(d, nav), "counter %q should be ignored", text)
	}
}

func TestDetectSlideCountFromContainerSelectors(t *testing.T) {
	d := newFakeDriver()
	d.counts[`.slide-container`] = 12
	nav, _ := newTestNavigator()

	assert.Equal(t, 12, DetectSlideCount(d, nav))
}

func TestDetectSlideCountSelectorOrderMatters(t *testing.T) {
	d := newFakeDriver()
	d.counts[`[data-testid="slide"]`] = 4
	d.counts[`.slide-container`] = 99
	nav, _ := newTestNavigator()

	assert.Equal(t, 4, DetectSlideCount(d, nav))
}

func TestDetectSlideCountTrialNavigation(t *testing.T) {
	d := newFakeDriver()
	nav, _ := newTestNavigator()

	// ArrowRight works 3 times then the whole strategy list fails.
	advances := 0
	d.keyErrs["PageDown"] = errors.New("rejected")
	d.keyErrs["Space"] = errors.New("rejected")
	d.failAllClicks()
	nav.advance = []Strategy{{
		Name: "key:ArrowRight",
		Apply: func(Driver) error {
			if advances >= 3 {
				return errors.New("end of deck")
			}
			advances++
			return nil
		},
	}}

	assert.Equal(t, 4, DetectSlideCount(d, nav))
	// Reset is attempted after trial navigation.
	assert.Contains(t, d.keyPresses, "Home")
}

func TestDetectSlideCountDegradesToOne(t *testing.T) {
	d := newFakeDriver()
	d.failAllKeys()
	d.failAllClicks()
	nav, _ := newTestNavigator()

	// No counter, no selectors, first trial navigation fails: count is 1.
	assert.Equal(t, 1, DetectSlideCount(d, nav))
}

func TestDetectSlideCountBoundedTrialNavigation(t *testing.T) {
	d := newFakeDriver()
	nav, _ := newTestNavigator()
	// Every advance "succeeds": the bound must stop the loop.
	assert.Equal(t, 1+maxTrialNavigations, DetectSlideCount(d, nav))
}
