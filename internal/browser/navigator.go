package browser

import (
	"fmt"
	"time"
)

// Strategy is one way of producing a navigation effect. Strategies are
// tried in list order; the first one that returns nil wins.
type Strategy struct {
	Name  string
	Apply func(Driver) error
}

func keyStrategy(key string) Strategy {
	return Strategy{
		Name:  fmt.Sprintf("key:%s", key),
		Apply: func(d Driver) error { return d.PressKey(key) },
	}
}

func clickStrategy(selector string) Strategy {
	return Strategy{
		Name:  fmt.Sprintf("click:%s", selector),
		Apply: func(d Driver) error { return d.Click(selector) },
	}
}

// advanceStrategies moves the deck forward one slide. Keyboard first: the
// player binds arrow keys even when its chrome buttons are hidden.
func advanceStrategies() []Strategy {
	return []Strategy{
		keyStrategy("ArrowRight"),
		keyStrategy("PageDown"),
		keyStrategy("Space"),
		clickStrategy(`[data-testid="next-slide"]`),
		clickStrategy(`button[aria-label="Next"]`),
	}
}

// resetStrategies returns the deck to the first slide.
func resetStrategies() []Strategy {
	return []Strategy{
		keyStrategy("Home"),
		clickStrategy(`[data-testid="first-slide"]`),
		clickStrategy(`.player-v2-button-first`),
	}
}

// Navigator steps a presentation page between slides using ordered fallback
// strategies. Success means only that the interaction did not error: the
// player gives no reliable signal that the visible slide actually changed.
type Navigator struct {
	advance []Strategy
	reset   []Strategy
	settle  time.Duration
	sleep   func(time.Duration)
}

// NewNavigator creates a navigator with the given post-navigation settle
// delay.
func NewNavigator(settle time.Duration) *Navigator {
	return &Navigator{
		advance: advanceStrategies(),
		reset:   resetStrategies(),
		settle:  settle,
		sleep:   time.Sleep,
	}
}

// Advance tries to move to the next slide. It reports whether any strategy
// succeeded; a full-list failure is a silent no-op for the caller.
func (n *Navigator) Advance(d Driver) bool {
	return n.try(d, n.advance)
}

// ResetToFirst tries to return to the first slide, best-effort.
func (n *Navigator) ResetToFirst(d Driver) {
	n.try(d, n.reset)
}

func (n *Navigator) try(d Driver, strategies []Strategy) bool {
	for _, s := range strategies {
		if err := s.Apply(d); err != nil {
			continue
		}
		n.sleep(n.settle)
		return true
	}
	return false
}
