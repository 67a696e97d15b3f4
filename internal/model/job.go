package model

import "time"

// Job status
type JobStatus string

const (
	JobStatusStarting         JobStatus = "starting"
	JobStatusLaunchingBrowser JobStatus = "launching_browser"
	JobStatusLoadingPage      JobStatus = "loading_page"
	JobStatusDetectingSlides  JobStatus = "detecting_slides"
	JobStatusCapturing        JobStatus = "capturing_screenshots"
	JobStatusCompiling        JobStatus = "compiling_pdf"
	JobStatusCompleted        JobStatus = "completed"
	JobStatusFailed           JobStatus = "failed"
	JobStatusNotFound         JobStatus = "not_found"
)

// PhaseProgress maps each pipeline phase to the progress percentage reported
// when the phase begins. The capturing phase interpolates between 40 and 80
// per slide; completed is always 100.
var PhaseProgress = map[JobStatus]int{
	JobStatusStarting:         0,
	JobStatusLaunchingBrowser: 10,
	JobStatusLoadingPage:      20,
	JobStatusDetectingSlides:  30,
	JobStatusCapturing:        40,
	JobStatusCompiling:        80,
	JobStatusCompleted:        100,
}

// IsTerminal reports whether the status is a final state.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job represents one presentation-to-PDF conversion tracked by the service.
// The record is last-write-wins on every field; readers may observe a
// slightly stale but always self-consistent snapshot.
type Job struct {
	ID               string    `json:"jobId"`
	Status           JobStatus `json:"status"`
	Progress         int       `json:"progress"`
	Error            *string   `json:"error"`
	DownloadLocation *string   `json:"downloadLocation"`
	Filename         string    `json:"filename,omitempty"`
	SlideCount       int       `json:"slideCount,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
