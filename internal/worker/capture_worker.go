package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deckfetch/api/internal/browser"
	"github.com/deckfetch/api/internal/capture"
	"github.com/deckfetch/api/internal/config"
	"github.com/deckfetch/api/internal/model"
	"github.com/deckfetch/api/internal/pdf"
	"github.com/deckfetch/api/internal/service"
	"github.com/deckfetch/api/internal/websocket"
)

// captureSession is the browser lifecycle surface the worker drives; the
// production implementation is *browser.Session.
type captureSession interface {
	Open(url string, extraWait time.Duration) error
	Driver() browser.Driver
	Close()
}

// CaptureWorker processes capture jobs: one linear slide-locate →
// capture-loop → compile → publish sequence per task, pushing a status
// update at every phase transition.
type CaptureWorker struct {
	convertService *service.ConvertService
	compiler       *pdf.Compiler
	hub            *websocket.Hub
	cfg            *config.Config
	launch         func(browser.Config) (captureSession, error)
}

// NewCaptureWorker creates a new capture worker.
func NewCaptureWorker(convertService *service.ConvertService, compiler *pdf.Compiler, hub *websocket.Hub, cfg *config.Config) *CaptureWorker {
	return &CaptureWorker{
		convertService: convertService,
		compiler:       compiler,
		hub:            hub,
		cfg:            cfg,
		launch: func(bc browser.Config) (captureSession, error) {
			return browser.Launch(bc)
		},
	}
}

// ProcessTask handles one queued capture task.
func (w *CaptureWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.CaptureTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal capture payload: %w", err)
	}

	log.Printf("Starting capture job %s for %s", payload.JobID, payload.URL)

	result, err := w.runJob(ctx, &payload)
	if err != nil {
		return err
	}

	log.Printf("Capture job %s completed: %d slides", payload.JobID, result.SlideCount)
	return nil
}

// runJob executes the whole pipeline for one job. Fatal errors mark the
// job failed and abort; per-slide failures only shrink the document.
func (w *CaptureWorker) runJob(ctx context.Context, payload *model.CaptureTaskPayload) (*model.ConvertResult, error) {
	jobID := payload.JobID

	w.updatePhase(jobID, model.JobStatusLaunchingBrowser)
	session, err := w.launch(browser.Config{
		Headless:        w.cfg.Browser.Headless,
		LaunchTimeout:   w.cfg.Browser.LaunchTimeout,
		PageLoadTimeout: w.cfg.Browser.PageLoadTimeout,
		UserAgent:       w.cfg.Browser.UserAgent,
		ViewportWidth:   w.cfg.Capture.ViewportWidth,
		ViewportHeight:  w.cfg.Capture.ViewportHeight,
	})
	if err != nil {
		return nil, w.failJob(jobID, fmt.Sprintf("Browser launch failed: %v", err))
	}
	defer session.Close()

	w.updatePhase(jobID, model.JobStatusLoadingPage)
	extraWait := time.Duration(payload.WaitTimeMs) * time.Millisecond
	if err := session.Open(payload.URL, extraWait); err != nil {
		return nil, w.failJob(jobID, fmt.Sprintf("Page load failed: %v", err))
	}

	driver := session.Driver()
	nav := browser.NewNavigator(w.cfg.Capture.NavigationDelay)

	w.updatePhase(jobID, model.JobStatusDetectingSlides)
	slideCount := browser.DetectSlideCount(driver, nav)
	if slideCount > w.cfg.Capture.MaxSlides {
		log.Printf("Job %s: clamping %d slides to limit %d", jobID, slideCount, w.cfg.Capture.MaxSlides)
		slideCount = w.cfg.Capture.MaxSlides
	}
	if slideCount == 0 {
		return nil, w.failJob(jobID, "No slides detected")
	}

	pipeline := capture.NewPipeline(driver, nav, capture.Options{
		RenderDelay:    w.cfg.Capture.RenderDelay,
		ViewportWidth:  w.cfg.Capture.ViewportWidth,
		ViewportHeight: w.cfg.Capture.ViewportHeight,
		JPEGQuality:    w.cfg.Capture.JPEGQuality,
		Progress: func(percent int) {
			w.convertService.SetCaptureProgress(jobID, percent)
			w.hub.BroadcastProgress(jobID, model.JobStatusCapturing, percent)
		},
	})
	shots := pipeline.CaptureAll(slideCount)
	images := capture.Images(shots)
	if len(images) == 0 {
		return nil, w.failJob(jobID, "No slides captured")
	}

	w.updatePhase(jobID, model.JobStatusCompiling)
	if _, err := w.compiler.Compile(images, jobID); err != nil {
		return nil, w.failJob(jobID, fmt.Sprintf("PDF compilation failed: %v", err))
	}

	result := &model.ConvertResult{
		DownloadLocation: fmt.Sprintf("/api/files/%s", jobID),
		Filename:         strings.TrimSuffix(payload.Filename, ".pdf") + ".pdf",
		SlideCount:       len(images),
	}
	w.convertService.CompleteJob(jobID, result)
	w.hub.BroadcastComplete(jobID, result)
	return result, nil
}

func (w *CaptureWorker) updatePhase(jobID string, status model.JobStatus) {
	w.convertService.SetPhase(jobID, status)
	w.hub.BroadcastProgress(jobID, status, model.PhaseProgress[status])
}

// failJob records the failure and returns it as an error so asynq marks
// the task failed too.
func (w *CaptureWorker) failJob(jobID, msg string) error {
	w.convertService.FailJob(jobID, msg)
	w.hub.BroadcastError(jobID, "CAPTURE_FAILED", msg)
	return fmt.Errorf("job %s: %s", jobID, msg)
}
