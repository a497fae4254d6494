package runlog

import "time"

// Status describes the lifecycle of a run record.
type Status string

const (
	// StatusProcessing marks a run that has started but not finished.
	StatusProcessing Status = "processing"
	// StatusCompleted marks a successful run.
	StatusCompleted Status = "completed"
	// StatusFailed marks a run that ended with an error.
	StatusFailed Status = "failed"
)

// Run modes.
const (
	ModeVideo    = "video"
	ModeSubtitle = "subtitle"
)

// Run is one persisted pipeline execution.
type Run struct {
	ID              string
	Input           string
	Mode            string
	Source          string
	Target          string
	Model           string
	Status          Status
	ErrorMessage    string
	Outputs         map[string]string
	Events          []string
	StartedAt       time.Time
	FinishedAt      time.Time
	DurationSeconds float64
}
