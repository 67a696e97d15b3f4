// Package pdf assembles captured slide images into one paginated document.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // captured slides are JPEG-encoded
	"math"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Page dimensions in points, matching the capture viewport so slides map
// onto pages without cropping.
const (
	PageWidth  = 1280.0
	PageHeight = 720.0
)

// Compiler writes slide images to fixed-size PDF pages, one image per page,
// each scaled to fit and centered.
type Compiler struct {
	outputDir  string
	filePrefix string
}

// NewCompiler creates a compiler writing into outputDir with the given
// file name prefix.
func NewCompiler(outputDir, filePrefix string) *Compiler {
	return &Compiler{outputDir: outputDir, filePrefix: filePrefix}
}

// OutputPath returns the deterministic artifact path for a job, so the
// file-serving handler and the retention sweeper can find it without any
// extra indexing.
func (c *Compiler) OutputPath(jobID string) string {
	return filepath.Join(c.outputDir, c.filePrefix+jobID+".pdf")
}

// Compile writes one page per image, in order, and returns the persisted
// document path. Any decode or I/O failure is returned to the caller and is
// fatal for the job.
func (c *Compiler) Compile(images [][]byte, jobID string) (string, error) {
	if len(images) == 0 {
		return "", fmt.Errorf("no images to compile")
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	for i, img := range images {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
		if err != nil {
			return "", fmt.Errorf("decode slide %d: %w", i+1, err)
		}

		name := fmt.Sprintf("slide-%d", i)
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))

		w, h, x, y := FitRect(float64(cfg.Width), float64(cfg.Height), PageWidth, PageHeight)
		doc.AddPage()
		doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	}

	path := c.OutputPath(jobID)
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return "", fmt.Errorf("verify pdf: %w", err)
	}
	if pages != len(images) {
		return "", fmt.Errorf("verify pdf: got %d pages for %d images", pages, len(images))
	}

	return path, nil
}

// FitRect computes the placement of an image on a page: a uniform scale of
// min(pageW/imgW, pageH/imgH) so the image fits entirely without
// distortion, centered with equal margins on the constrained axis.
func FitRect(imgW, imgH, pageW, pageH float64) (w, h, x, y float64) {
	scale := math.Min(pageW/imgW, pageH/imgH)
	w = imgW * scale
	h = imgH * scale
	x = (pageW - w) / 2
	y = (pageH - h) / 2
	return w, h, x, y
}
