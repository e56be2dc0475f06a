package domain

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// AnalysisJob is the server-side record of one analysis run. Jobs live only
// in process memory; nothing survives a restart.
type AnalysisJob struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`

	// Stage is the latest progress label reported by the pipeline.
	Stage string `json:"stage,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`

	Result *AnalysisResult `json:"result,omitempty"`

	// ErrorKind and ErrorMessage are only set for failed jobs. ErrorMessage
	// is the user-facing string from the error funnel, never raw provider
	// text. DetectedType is set when the failure is an invalid-document
	// rejection carrying a detected label.
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	DetectedType string `json:"detected_type,omitempty"`
}
