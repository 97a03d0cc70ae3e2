package driven

import (
	"context"

	"github.com/rubengr/gwreports/internal/domain/model"
)

// RunStore defines the driven port for the optional run journal.
type RunStore interface {
	// Record persists a finished run together with its artifacts.
	Record(ctx context.Context, run model.Run, artifacts []model.Artifact) error

	// ListRuns returns journaled runs, most recent first, up to limit.
	// A non-positive limit returns all runs.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	// ListArtifacts returns the artifacts recorded for the given run.
	ListArtifacts(ctx context.Context, runID string) ([]model.Artifact, error)
}
