package driven

import "github.com/rubengr/gwreports/internal/domain/model"

// ArtifactStore defines the driven port for writing split documents and the
// intermediate combined report to the output directory. Operations are local
// filesystem work and run synchronously; there is nothing to cancel.
type ArtifactStore interface {
	// WriteIntermediate persists the raw combined report before splitting.
	WriteIntermediate(body []byte) error

	// WriteSegments writes segment i to the zero-padded indexed file name for i.
	// Every segment is attempted even when an earlier one fails; the returned
	// artifacts cover the writes that succeeded and the error aggregates the
	// failures.
	WriteSegments(segments [][]byte) ([]model.Artifact, error)

	// Prune removes zero-length artifact files, returning the names removed.
	// Pruning is idempotent and never touches files outside the artifact
	// naming pattern.
	Prune() ([]string, error)

	// List returns the artifacts currently in the output directory, ordered
	// by index.
	List() ([]model.Artifact, error)
}
