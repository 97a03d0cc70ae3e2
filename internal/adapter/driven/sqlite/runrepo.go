package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rubengr/gwreports/internal/domain/model"
	"github.com/rubengr/gwreports/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RunStore = (*RunRepo)(nil)

// RunRepo is the SQLite implementation of the RunStore port interface.
type RunRepo struct {
	db *DB
}

// NewRunRepo creates a new RunRepo backed by the given DB.
func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record persists a finished run and its artifacts in one transaction.
func (r *RunRepo) Record(ctx context.Context, run model.Run, artifacts []model.Artifact) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertRun = `
		INSERT INTO runs (id, started_at, finished_at, status, segment_count, pruned_count, total_bytes, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insertRun,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		string(run.Status), run.SegmentCount, run.PrunedCount, run.TotalBytes, run.Error,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	const insertArtifact = `
		INSERT INTO run_artifacts (run_id, idx, name, size)
		VALUES (?, ?, ?, ?)
	`
	for _, a := range artifacts {
		if _, err := tx.ExecContext(ctx, insertArtifact, run.ID, a.Index, a.Name, a.Size); err != nil {
			return fmt.Errorf("insert artifact %s for run %s: %w", a.Name, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}

	return nil
}

// ListRuns returns journaled runs ordered by start time, most recent first.
// A non-positive limit returns all runs.
func (r *RunRepo) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	query := `
		SELECT id, started_at, finished_at, status, segment_count, pruned_count, total_bytes, error
		FROM runs
		ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ListArtifacts returns the artifacts recorded for the given run, by index.
func (r *RunRepo) ListArtifacts(ctx context.Context, runID string) ([]model.Artifact, error) {
	const query = `
		SELECT idx, name, size
		FROM run_artifacts
		WHERE run_id = ?
		ORDER BY idx
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query artifacts for run %s: %w", runID, err)
	}
	defer rows.Close()

	var artifacts []model.Artifact
	for rows.Next() {
		var a model.Artifact
		if err := rows.Scan(&a.Index, &a.Name, &a.Size); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}

	return artifacts, nil
}

// scanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*model.Run, error) {
	var run model.Run
	var status string
	var startedAt, finishedAt string

	err := s.Scan(
		&run.ID, &startedAt, &finishedAt, &status,
		&run.SegmentCount, &run.PrunedCount, &run.TotalBytes, &run.Error,
	)
	if err != nil {
		return nil, err
	}

	run.Status = model.RunStatus(status)

	run.StartedAt, err = parseTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}

	run.FinishedAt, err = parseTime(finishedAt)
	if err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}

	return &run, nil
}

// parseTime handles the timestamp layouts SQLite may hand back depending on
// how the value was written.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
