package model

import "time"

// ConvertOptions holds optional per-request capture tuning.
type ConvertOptions struct {
	// WaitTimeMs adds an extra settle wait after the initial page load,
	// for decks that render slowly.
	WaitTimeMs int `json:"waitTimeMs" validate:"omitempty,min=0,max=60000"`
}

// ConvertStartRequest represents the request to start a conversion job
type ConvertStartRequest struct {
	URL      string         `json:"url" validate:"required,url"`
	Filename string         `json:"filename" validate:"omitempty,max=100"`
	Options  ConvertOptions `json:"options"`
}

// ConvertStartResponse represents the response when starting a conversion
type ConvertStartResponse struct {
	JobID       string    `json:"jobId"`
	Status      JobStatus `json:"status"`
	StatusURL   string    `json:"statusUrl"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CaptureTaskPayload is the queued task body for one capture job.
type CaptureTaskPayload struct {
	JobID      string `json:"jobId"`
	URL        string `json:"url"`
	Filename   string `json:"filename"`
	WaitTimeMs int    `json:"waitTimeMs"`
}

// ConvertResult is what a finished capture pipeline hands back to its caller.
type ConvertResult struct {
	DownloadLocation string `json:"downloadLocation"`
	Filename         string `json:"filename"`
	SlideCount       int    `json:"slideCount"`
}

// LimitsResponse describes the service limits exposed on /api/limits.
type LimitsResponse struct {
	MaxSlides         int `json:"maxSlides"`
	PageLoadTimeoutMs int `json:"pageLoadTimeoutMs"`
	FileRetentionMin  int `json:"fileRetentionMinutes"`
	JobRetentionMin   int `json:"jobRetentionMinutes"`
}
