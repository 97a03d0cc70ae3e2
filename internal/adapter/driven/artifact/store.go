// Package artifact implements the ArtifactStore port on the local filesystem.
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/rubengr/gwreports/internal/domain/model"
	"github.com/rubengr/gwreports/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ArtifactStore = (*Store)(nil)

// IntermediateName is the file that receives the raw combined report before
// splitting. It never matches the artifact naming pattern, so Prune and List
// ignore it.
const IntermediateName = "initial.xml"

// Store writes artifacts into a single output directory. Files are written
// atomically (temp file plus rename) so a crashed run never leaves a
// half-written artifact behind.
type Store struct {
	dir    string
	prefix string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
// prefix is prepended to every segment file name.
func NewStore(dir, prefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	return &Store{dir: dir, prefix: prefix}, nil
}

// segmentName returns the file name for segment index i, e.g. "report_0007.xml".
func (s *Store) segmentName(i int) string {
	return fmt.Sprintf("%s%04d.xml", s.prefix, i)
}

// parseIndex extracts the segment index from an artifact file name of the
// form <prefix><NNNN>.xml. Names outside that pattern report ok false.
func (s *Store) parseIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, s.prefix)
	if !ok {
		return 0, false
	}

	digits, ok := strings.CutSuffix(rest, ".xml")
	if !ok || len(digits) < 4 {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	idx, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}

	return idx, true
}

// WriteIntermediate persists the raw combined report before splitting.
func (s *Store) WriteIntermediate(body []byte) error {
	path := filepath.Join(s.dir, IntermediateName)
	if err := atomic.WriteFile(path, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("write intermediate report %s: %w", path, err)
	}

	slog.Info("wrote intermediate report", "path", path, "bytes", len(body))

	return nil
}

// WriteSegments writes each segment to its indexed file name. A failed write
// does not stop the remaining segments; failures are aggregated into the
// returned error while the successful writes are still reported.
func (s *Store) WriteSegments(segments [][]byte) ([]model.Artifact, error) {
	artifacts := make([]model.Artifact, 0, len(segments))
	var errs []error

	for i, segment := range segments {
		name := s.segmentName(i)
		if err := atomic.WriteFile(filepath.Join(s.dir, name), bytes.NewReader(segment)); err != nil {
			errs = append(errs, fmt.Errorf("write segment %s: %w", name, err))
			continue
		}

		artifacts = append(artifacts, model.Artifact{
			Index: i,
			Name:  name,
			Size:  int64(len(segment)),
		})
	}

	return artifacts, errors.Join(errs...)
}

// Prune removes zero-length artifact files from the output directory and
// returns the names removed. Files outside the artifact naming pattern are
// never touched. Running Prune again after a clean pass removes nothing.
func (s *Store) Prune() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read output directory %s: %w", s.dir, err)
	}

	var removed []string
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := s.parseIndex(entry.Name()); !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			errs = append(errs, fmt.Errorf("stat %s: %w", entry.Name(), err))
			continue
		}
		if info.Size() != 0 {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", entry.Name(), err))
			continue
		}
		removed = append(removed, entry.Name())
	}

	if len(removed) > 0 {
		slog.Info("pruned empty artifacts", "count", len(removed), "dir", s.dir)
	}

	return removed, errors.Join(errs...)
}

// List returns the artifacts currently in the output directory, ordered by index.
func (s *Store) List() ([]model.Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read output directory %s: %w", s.dir, err)
	}

	artifacts := []model.Artifact{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		idx, ok := s.parseIndex(entry.Name())
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}

		artifacts = append(artifacts, model.Artifact{
			Index: idx,
			Name:  entry.Name(),
			Size:  info.Size(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].Index < artifacts[j].Index
	})

	return artifacts, nil
}
