package browser

import (
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"
)

// interactionTimeoutMs bounds every single strategy interaction so a dead
// selector fails fast and the next strategy in the list gets its turn.
const interactionTimeoutMs = 1500

// loadingSettledJS resolves once no loading spinner is visible and the page
// carries real content. The player is an opaque third-party UI, so this is a
// heuristic, not a guarantee.
const loadingSettledJS = `() => {
	const loading = document.querySelectorAll('[class*="loading"], [class*="spinner"], [data-testid*="loading"]');
	if (loading.length > 0) return false;
	return document.body.innerText.length > 50;
}`

// Config holds browser launch and page load settings.
type Config struct {
	Headless        bool
	LaunchTimeout   time.Duration
	PageLoadTimeout time.Duration
	UserAgent       string
	ViewportWidth   int
	ViewportHeight  int
}

// Session owns one playwright instance, one browser process, and one page.
// Each capture job gets its own Session; Close must run on every exit path
// so the browser process never leaks.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	cfg     Config
}

// Launch starts a headless chromium and opens a fresh page sized to the
// capture viewport.
func Launch(cfg Config) (*Session, error) {
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	}); err != nil {
		return nil, fmt.Errorf("install browsers: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Timeout:  playwright.Float(float64(cfg.LaunchTimeout.Milliseconds())),
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--disable-gpu",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
		UserAgent: playwright.String(cfg.UserAgent),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &Session{pw: pw, browser: browser, page: page, cfg: cfg}, nil
}

// Open navigates to the presentation and waits for it to settle. The
// network-idle wait is the hard gate; the spinner heuristic and extraWait
// are best-effort on top of it.
func (s *Session) Open(url string, extraWait time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(s.cfg.PageLoadTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("load page: %w", err)
	}

	if _, err := s.page.WaitForFunction(loadingSettledJS, nil, playwright.PageWaitForFunctionOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		log.Printf("Loading settle check timed out, continuing: %v", err)
	}

	if extraWait > 0 {
		time.Sleep(extraWait)
	}
	return nil
}

// Driver exposes the session as the narrow page surface the capture
// components work against.
func (s *Session) Driver() Driver {
	return s
}

func (s *Session) PressKey(key string) error {
	return s.page.Keyboard().Press(key)
}

func (s *Session) Click(selector string) error {
	return s.page.Click(selector, playwright.PageClickOptions{
		Timeout: playwright.Float(interactionTimeoutMs),
	})
}

func (s *Session) ElementCount(selector string) (int, error) {
	return s.page.Locator(selector).Count()
}

func (s *Session) ElementText(selector string) (string, error) {
	return s.page.InnerText(selector, playwright.PageInnerTextOptions{
		Timeout: playwright.Float(interactionTimeoutMs),
	})
}

func (s *Session) Screenshot(clip Clip, quality int) ([]byte, error) {
	return s.page.Screenshot(playwright.PageScreenshotOptions{
		Type:    playwright.ScreenshotTypeJpeg,
		Quality: playwright.Int(quality),
		Clip: &playwright.Rect{
			X:      clip.X,
			Y:      clip.Y,
			Width:  clip.Width,
			Height: clip.Height,
		},
	})
}

// Close tears the whole session down. Errors are logged only; there is
// nothing a caller can do about a failed teardown.
func (s *Session) Close() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			log.Printf("Failed to close page: %v", err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			log.Printf("Failed to stop playwright: %v", err)
		}
	}
}
