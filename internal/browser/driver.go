// Package browser drives a headless browser through a third-party
// presentation player: opening the deck, counting slides, stepping through
// them, and grabbing per-slide screenshots.
package browser

// Clip is a viewport region for a bounded screenshot.
type Clip struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Driver is the narrow page surface the locator, navigator, and capture
// pipeline need. The production implementation is Session; tests substitute
// fakes.
type Driver interface {
	// PressKey simulates a keyboard key press on the page.
	PressKey(key string) error
	// Click clicks the first element matching selector.
	Click(selector string) error
	// ElementCount returns how many elements match selector.
	ElementCount(selector string) (int, error)
	// ElementText returns the inner text of the first match of selector.
	ElementText(selector string) (string, error)
	// Screenshot captures a JPEG of the given viewport region.
	Screenshot(clip Clip, quality int) ([]byte, error)
}
