package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/deckfetch/api/internal/model"
	"github.com/deckfetch/api/internal/store"
	"github.com/deckfetch/api/internal/urlutil"
)

const TaskTypeCapture = "capture:process"

// TaskEnqueuer is the slice of asynq.Client the service needs; tests
// substitute a fake so no queue backend is required.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ConvertService owns the conversion job lifecycle: record creation, queue
// hand-off, status reads, and the phase updates pushed by the worker.
type ConvertService struct {
	store    store.JobStore
	enqueuer TaskEnqueuer
}

func NewConvertService(jobStore store.JobStore, enqueuer TaskEnqueuer) *ConvertService {
	return &ConvertService{
		store:    jobStore,
		enqueuer: enqueuer,
	}
}

// StartConvert creates a job record in the starting state and enqueues the
// capture task. MaxRetry is zero: a failed job stays failed, there are no
// temporal retries anywhere in the pipeline.
func (s *ConvertService) StartConvert(ctx context.Context, req *model.ConvertStartRequest) (*model.ConvertStartResponse, error) {
	jobID := uuid.New().String()
	now := time.Now()

	filename := req.Filename
	if filename == "" {
		filename = urlutil.TitleFromURL(req.URL)
	}
	filename = urlutil.SanitizeFilename(filename)

	s.store.Set(model.Job{
		ID:        jobID,
		Status:    model.JobStatusStarting,
		Progress:  model.PhaseProgress[model.JobStatusStarting],
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	})

	payload, err := json.Marshal(&model.CaptureTaskPayload{
		JobID:      jobID,
		URL:        req.URL,
		Filename:   filename,
		WaitTimeMs: req.Options.WaitTimeMs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = s.enqueuer.Enqueue(asynq.NewTask(TaskTypeCapture, payload),
		asynq.Queue("capture"),
		asynq.MaxRetry(0),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task: %w", err)
	}

	return &model.ConvertStartResponse{
		JobID:       jobID,
		Status:      model.JobStatusStarting,
		StatusURL:   fmt.Sprintf("/api/convert/status/%s", jobID),
		DownloadURL: fmt.Sprintf("/api/files/%s", jobID),
		CreatedAt:   now,
	}, nil
}

// GetStatus returns the job record for jobID. An unknown id yields a
// synthetic not_found record, never an error.
func (s *ConvertService) GetStatus(jobID string) model.Job {
	job, ok := s.store.Get(jobID)
	if !ok {
		msg := "Job not found"
		return model.Job{
			ID:       jobID,
			Status:   model.JobStatusNotFound,
			Progress: 0,
			Error:    &msg,
		}
	}
	return job
}

// SetPhase moves the job into a pipeline phase at that phase's baseline
// progress. Unknown jobs are ignored: the record may already have been
// swept.
func (s *ConvertService) SetPhase(jobID string, status model.JobStatus) {
	s.update(jobID, func(job *model.Job) {
		job.Status = status
		if p, ok := model.PhaseProgress[status]; ok {
			job.Progress = p
		}
	})
}

// SetCaptureProgress reports interpolated progress within the capturing
// phase.
func (s *ConvertService) SetCaptureProgress(jobID string, percent int) {
	s.update(jobID, func(job *model.Job) {
		job.Status = model.JobStatusCapturing
		job.Progress = percent
	})
}

// CompleteJob marks the job completed and records where the document can
// be fetched.
func (s *ConvertService) CompleteJob(jobID string, result *model.ConvertResult) {
	s.update(jobID, func(job *model.Job) {
		job.Status = model.JobStatusCompleted
		job.Progress = model.PhaseProgress[model.JobStatusCompleted]
		job.DownloadLocation = &result.DownloadLocation
		job.Filename = result.Filename
		job.SlideCount = result.SlideCount
		job.Error = nil
	})
}

// FailJob marks the job failed with a human-readable message. Progress
// resets to zero: a failed job produced nothing usable.
func (s *ConvertService) FailJob(jobID, errMsg string) {
	s.update(jobID, func(job *model.Job) {
		job.Status = model.JobStatusFailed
		job.Progress = 0
		job.Error = &errMsg
	})
}

// DeleteJob removes a job record; used by the retention sweeper.
func (s *ConvertService) DeleteJob(jobID string) {
	s.store.Delete(jobID)
}

// Jobs lists all job records; used by the retention sweeper.
func (s *ConvertService) Jobs() []model.Job {
	return s.store.List()
}

func (s *ConvertService) update(jobID string, mutate func(*model.Job)) {
	job, ok := s.store.Get(jobID)
	if !ok {
		log.Printf("Ignoring update for unknown job %s", jobID)
		return
	}
	mutate(&job)
	job.UpdatedAt = time.Now()
	s.store.Set(job)
}
