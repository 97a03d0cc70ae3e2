package application

import (
	"fmt"
	"log/slog"

	"github.com/rubengr/gwreports/internal/domain/model"
	"github.com/rubengr/gwreports/internal/domain/port/driven"
	"github.com/rubengr/gwreports/internal/domain/split"
)

// Splitter runs the split and prune stages of the pipeline against an
// artifact store. It is used on its own when a combined report is already at
// hand, and by CollectService as the tail of a full run.
type Splitter struct {
	store    driven.ArtifactStore
	boundary []byte
}

// NewSplitter creates a Splitter writing through the given store, cutting
// bodies at boundary.
func NewSplitter(store driven.ArtifactStore, boundary string) *Splitter {
	return &Splitter{
		store:    store,
		boundary: []byte(boundary),
	}
}

// SplitResult summarizes one pass of the split and prune stages.
type SplitResult struct {
	Segments  int              // How many segments the body divided into.
	Artifacts []model.Artifact // Segment files that reached the disk.
	Pruned    []string         // Zero-length artifacts removed afterwards.
}

// SplitAndStore writes the intermediate report, splits body on the boundary,
// writes every segment, and prunes empty artifacts. An intermediate or prune
// failure is logged and does not fail the pass; failed segment writes do,
// after the remaining segments and the prune pass have been attempted.
func (sp *Splitter) SplitAndStore(body []byte) (SplitResult, error) {
	if err := sp.store.WriteIntermediate(body); err != nil {
		// The body is still in memory; splitting proceeds without the
		// intermediate copy.
		slog.Warn("intermediate report not written", "error", err)
	}

	segments := split.Split(body, sp.boundary)
	slog.Info("split combined report", "bytes", len(body), "segments", len(segments))

	artifacts, writeErr := sp.store.WriteSegments(segments)
	if writeErr != nil {
		slog.Error("segment writes incomplete", "written", len(artifacts), "error", writeErr)
	}

	pruned, pruneErr := sp.store.Prune()
	if pruneErr != nil {
		slog.Warn("prune incomplete", "error", pruneErr)
	}

	result := SplitResult{
		Segments:  len(segments),
		Artifacts: artifacts,
		Pruned:    pruned,
	}

	if writeErr != nil {
		return result, fmt.Errorf("write segments: %w", writeErr)
	}

	return result, nil
}
