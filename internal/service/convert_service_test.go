package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfetch/api/internal/model"
	"github.com/deckfetch/api/internal/store"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "capture"}, nil
}

func newTestService() (*ConvertService, store.JobStore, *fakeEnqueuer) {
	jobStore := store.NewMemoryStore()
	enqueuer := &fakeEnqueuer{}
	return NewConvertService(jobStore, enqueuer), jobStore, enqueuer
}

func TestStartConvertCreatesRecordAndEnqueues(t *testing.T) {
	svc, jobStore, enqueuer := newTestService()

	resp, err := svc.StartConvert(context.Background(), &model.ConvertStartRequest{
		URL:      "https://pitch.com/v/quarterly-review",
		Filename: "Q3 Review",
		Options:  model.ConvertOptions{WaitTimeMs: 2000},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.JobID)
	assert.Equal(t, model.JobStatusStarting, resp.Status)
	assert.Equal(t, "/api/convert/status/"+resp.JobID, resp.StatusURL)
	assert.Equal(t, "/api/files/"+resp.JobID, resp.DownloadURL)

	job, ok := jobStore.Get(resp.JobID)
	require.True(t, ok)
	assert.Equal(t, model.JobStatusStarting, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Equal(t, "Q3 Review", job.Filename)

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, TaskTypeCapture, enqueuer.tasks[0].Type())

	var payload model.CaptureTaskPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	assert.Equal(t, resp.JobID, payload.JobID)
	assert.Equal(t, "https://pitch.com/v/quarterly-review", payload.URL)
	assert.Equal(t, 2000, payload.WaitTimeMs)
}

func TestStartConvertDerivesFilenameFromURL(t *testing.T) {
	svc, jobStore, _ := newTestService()

	resp, err := svc.StartConvert(context.Background(), &model.ConvertStartRequest{
		URL: "https://pitch.com/v/quarterly-review",
	})
	require.NoError(t, err)

	job, _ := jobStore.Get(resp.JobID)
	assert.Equal(t, "Quarterly Review", job.Filename)
}

func TestStartConvertEnqueueFailure(t *testing.T) {
	svc, _, enqueuer := newTestService()
	enqueuer.err = errors.New("redis down")

	_, err := svc.StartConvert(context.Background(), &model.ConvertStartRequest{
		URL: "https://pitch.com/v/deck",
	})
	assert.Error(t, err)
}

func TestGetStatusUnknownJob(t *testing.T) {
	svc, _, _ := newTestService()

	job := svc.GetStatus("no-such-job")
	assert.Equal(t, "no-such-job", job.ID)
	assert.Equal(t, model.JobStatusNotFound, job.Status)
	assert.Equal(t, 0, job.Progress)
	require.NotNil(t, job.Error)
	assert.Equal(t, "Job not found", *job.Error)
}

func TestPhaseAndProgressUpdates(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.StartConvert(context.Background(), &model.ConvertStartRequest{
		URL: "https://pitch.com/v/deck",
	})
	require.NoError(t, err)
	id := resp.JobID

	svc.SetPhase(id, model.JobStatusLaunchingBrowser)
	assert.Equal(t, 10, svc.GetStatus(id).Progress)

	svc.SetPhase(id, model.JobStatusLoadingPage)
	assert.Equal(t, 20, svc.GetStatus(id).Progress)

	svc.SetPhase(id, model.JobStatusDetectingSlides)
	assert.Equal(t, 30, svc.GetStatus(id).Progress)

	svc.SetCaptureProgress(id, 56)
	got := svc.GetStatus(id)
	assert.Equal(t, model.JobStatusCapturing, got.Status)
	assert.Equal(t, 56, got.Progress)

	svc.SetPhase(id, model.JobStatusCompiling)
	assert.Equal(t, 80, svc.GetStatus(id).Progress)
}

func TestCompleteJob(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.StartConvert(context.Background(), &model.ConvertStartRequest{
		URL: "https://pitch.com/v/deck",
	})
	require.NoError(t, err)

	svc.CompleteJob(resp.JobID, &model.ConvertResult{
		DownloadLocation: "/api/files/" + resp.JobID,
		Filename:         "Deck.pdf",
		SlideCount:       9,
	})

	job := svc.GetStatus(resp.JobID)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.Equal(t, 100, job.Progress)
	require.NotNil(t, job.DownloadLocation)
	assert.Equal(t, "/api/files/"+resp.JobID, *job.DownloadLocation)
	assert.Equal(t, "Deck.pdf", job.Filename)
	assert.Equal(t, 9, job.SlideCount)
	assert.Nil(t, job.Error)
}

func TestFailJob(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.StartConvert(context.Background(), &model.ConvertStartRequest{
		URL: "https://pitch.com/v/deck",
	})
	require.NoError(t, err)

	// Fail mid-capture: the partial progress must not survive.
	svc.SetCaptureProgress(resp.JobID, 56)
	svc.FailJob(resp.JobID, "Browser launch failed: boom")

	job := svc.GetStatus(resp.JobID)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Equal(t, 0, job.Progress)
	require.NotNil(t, job.Error)
	assert.Equal(t, "Browser launch failed: boom", *job.Error)
}

func TestUpdatesForUnknownJobAreIgnored(t *testing.T) {
	svc, jobStore, _ := newTestService()

	svc.SetPhase("gone", model.JobStatusCapturing)
	svc.CompleteJob("gone", &model.ConvertResult{})
	svc.FailJob("gone", "late failure")

	_, ok := jobStore.Get("gone")
	assert.False(t, ok, "updates must not resurrect swept jobs")
}
