package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slideJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 2 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

func TestCompileWritesOnePagePerImage(t *testing.T) {
	c := NewCompiler(t.TempDir(), "deck-")

	images := [][]byte{
		slideJPEG(t, 1280, 720),
		slideJPEG(t, 640, 360),
		slideJPEG(t, 800, 800),
	}

	path, err := c.Compile(images, "job-1")
	require.NoError(t, err)
	assert.Equal(t, c.OutputPath("job-1"), path)

	pages, err := api.PageCountFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}

func TestCompileRejectsEmptyInput(t *testing.T) {
	c := NewCompiler(t.TempDir(), "deck-")
	_, err := c.Compile(nil, "job-1")
	assert.Error(t, err)
}

func TestCompileRejectsUndecodableImage(t *testing.T) {
	c := NewCompiler(t.TempDir(), "deck-")
	_, err := c.Compile([][]byte{[]byte("junk")}, "job-1")
	assert.Error(t, err)
}

func TestFitRect(t *testing.T) {
	// Exact fit: no scaling, no offset.
	w, h, x, y := FitRect(1280, 720, PageWidth, PageHeight)
	assert.InDelta(t, 1280.0, w, 0.01)
	assert.InDelta(t, 720.0, h, 0.01)
	assert.InDelta(t, 0.0, x, 0.01)
	assert.InDelta(t, 0.0, y, 0.01)

	// Wide image: width-constrained, vertically centered.
	w, h, x, y = FitRect(2560, 720, PageWidth, PageHeight)
	assert.InDelta(t, 1280.0, w, 0.01)
	assert.InDelta(t, 360.0, h, 0.01)
	assert.InDelta(t, 0.0, x, 0.01)
	assert.InDelta(t, 180.0, y, 0.01)

	// Tall image: height-constrained, horizontally centered.
	w, h, x, y = FitRect(720, 1440, PageWidth, PageHeight)
	assert.InDelta(t, 360.0, w, 0.01)
	assert.InDelta(t, 720.0, h, 0.01)
	assert.InDelta(t, 460.0, x, 0.01)
	assert.InDelta(t, 0.0, y, 0.01)

	// Small image is scaled up to fill, aspect ratio preserved.
	w, h, _, _ = FitRect(640, 360, PageWidth, PageHeight)
	assert.InDelta(t, 1280.0, w, 0.01)
	assert.InDelta(t, 720.0, h, 0.01)
}

func TestOutputPathNaming(t *testing.T) {
	c := NewCompiler("/var/tmp/out", "deck-")
	assert.Equal(t, "/var/tmp/out/deck-abc123.pdf", c.OutputPath("abc123"))
}
