package model

import "time"

// RunStatus represents the outcome of a collection run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run records one batch collection: login, report fetch, split, prune.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	Status       RunStatus
	SegmentCount int
	PrunedCount  int
	TotalBytes   int64 // Size of the combined report body.
	Error        string
}

// Duration returns the wall-clock time the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
