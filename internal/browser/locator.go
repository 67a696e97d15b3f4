package browser

import (
	"log"
	"regexp"
	"strconv"
)

// maxTrialNavigations bounds the trial-navigation fallback so a deck that
// always accepts key presses cannot produce an unbounded count.
const maxTrialNavigations = 30

// slideCounterSelector is the player's "n / m" chrome counter, the most
// reliable source when present.
const slideCounterSelector = ".player-v2-chrome-controls-slide-count"

var slideCounterPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

// slideContainerSelectors are tried in order; the first one matching at
// least one element decides the count.
var slideContainerSelectors = []string{
	`[data-testid="slide"]`,
	`.player-v2-slide`,
	`[class*="slide-wrapper"]`,
	`.slide-container`,
	`section.slide`,
	`.reveal .slides > section`,
}

// DetectSlideCount determines how many slides the loaded presentation has.
// It never fails: any unexpected error degrades the result to 1, trading
// accuracy for availability. Zero is never returned.
func DetectSlideCount(d Driver, nav *Navigator) int {
	if n, ok := countFromCounterText(d); ok {
		log.Printf("Slide count from chrome counter: %d", n)
		return n
	}

	for _, selector := range slideContainerSelectors {
		n, err := d.ElementCount(selector)
		if err != nil || n == 0 {
			continue
		}
		log.Printf("Slide count from selector %q: %d", selector, n)
		return n
	}

	return countByTrialNavigation(d, nav)
}

// countFromCounterText parses the "current / total" counter text.
func countFromCounterText(d Driver) (int, bool) {
	text, err := d.ElementText(slideCounterSelector)
	if err != nil {
		return 0, false
	}
	m := slideCounterPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	current, err1 := strconv.Atoi(m[1])
	total, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	if current < 1 || total < current || total > 100 {
		return 0, false
	}
	return total, true
}

// countByTrialNavigation advances until navigation stops working, counting
// slides as it goes, then resets to the first slide best-effort. The count
// starts at 1: the slide already on screen.
func countByTrialNavigation(d Driver, nav *Navigator) int {
	count := 1
	for i := 0; i < maxTrialNavigations; i++ {
		if !nav.Advance(d) {
			break
		}
		count++
	}
	nav.ResetToFirst(d)
	log.Printf("Slide count from trial navigation: %d", count)
	return count
}
