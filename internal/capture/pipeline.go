// Package capture runs the per-slide screenshot loop for one job.
package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for non-JPEG screenshot fallbacks
	"log"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/deckfetch/api/internal/browser"
)

// SlideShot is the outcome of capturing one slide. Exactly one of Data or
// SkipReason is set; ordering follows slide order.
type SlideShot struct {
	Index      int
	Data       []byte
	SkipReason string
}

// Skipped reports whether this slide's capture was abandoned.
func (s SlideShot) Skipped() bool {
	return s.SkipReason != ""
}

// Images returns the captured image buffers in slide order, dropping
// skipped slides.
func Images(shots []SlideShot) [][]byte {
	var out [][]byte
	for _, s := range shots {
		if !s.Skipped() {
			out = append(out, s.Data)
		}
	}
	return out
}

// Pipeline captures every detected slide of a loaded presentation in
// sequence. One pipeline serves one job; it is not reused.
type Pipeline struct {
	driver      browser.Driver
	nav         *browser.Navigator
	renderDelay time.Duration
	clip        browser.Clip
	quality     int
	maxWidth    int
	maxHeight   int
	progress    func(percent int)
	sleep       func(time.Duration)
}

// Options configures a capture pipeline.
type Options struct {
	RenderDelay    time.Duration
	ViewportWidth  int
	ViewportHeight int
	JPEGQuality    int
	// Progress receives the interpolated 40–80 percentage before each
	// slide is captured. Nil disables reporting.
	Progress func(percent int)
}

// NewPipeline creates a pipeline over the given page driver and navigator.
func NewPipeline(d browser.Driver, nav *browser.Navigator, opts Options) *Pipeline {
	progress := opts.Progress
	if progress == nil {
		progress = func(int) {}
	}
	return &Pipeline{
		driver:      d,
		nav:         nav,
		renderDelay: opts.RenderDelay,
		clip: browser.Clip{
			Width:  float64(opts.ViewportWidth),
			Height: float64(opts.ViewportHeight),
		},
		quality:   opts.JPEGQuality,
		maxWidth:  opts.ViewportWidth,
		maxHeight: opts.ViewportHeight,
		progress:  progress,
		sleep:     time.Sleep,
	}
}

// CaptureAll walks slides 0..slideCount-1, screenshotting each one and
// advancing in between. A failed slide is recorded as skipped and the loop
// continues; the job never aborts on a single slide.
func (p *Pipeline) CaptureAll(slideCount int) []SlideShot {
	shots := make([]SlideShot, 0, slideCount)

	for i := 0; i < slideCount; i++ {
		p.progress(40 + (40*i)/slideCount)
		p.sleep(p.renderDelay)

		shot := SlideShot{Index: i}
		data, err := p.captureSlide()
		if err != nil {
			log.Printf("Failed to capture slide %d: %v", i+1, err)
			shot.SkipReason = err.Error()
		} else {
			shot.Data = data
		}
		shots = append(shots, shot)

		if i < slideCount-1 {
			p.nav.Advance(p.driver)
		}
	}

	return shots
}

func (p *Pipeline) captureSlide() ([]byte, error) {
	raw, err := p.driver.Screenshot(p.clip, p.quality)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	resized, err := downsample(raw, p.maxWidth, p.maxHeight, p.quality)
	if err != nil {
		return nil, fmt.Errorf("downsample: %w", err)
	}
	return resized, nil
}

// downsample re-encodes data as JPEG, scaling it down to fit within
// maxWidth×maxHeight. Images already inside the bounds are never enlarged.
func downsample(data []byte, maxWidth, maxHeight, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth || h > maxHeight {
		scale := float64(maxWidth) / float64(w)
		if s := float64(maxHeight) / float64(h); s < scale {
			scale = s
		}
		dw := int(float64(w) * scale)
		dh := int(float64(h) * scale)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
