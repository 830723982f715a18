package history

import "time"

// Status is the terminal state of a recorded run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one recorded generation run.
type Run struct {
	ID        string
	Operation string
	Input     string
	Status    Status
	// ResultJSON holds the typed result serialized as JSON; empty for failed runs.
	ResultJSON   string
	ErrorMessage string
	CreatedAt    time.Time
	DurationMS   int64
}

// Succeeded reports whether the run reached a usable result.
func (r *Run) Succeeded() bool {
	return r.Status == StatusCompleted
}
