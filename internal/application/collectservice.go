package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rubengr/gwreports/internal/domain/model"
	"github.com/rubengr/gwreports/internal/domain/port/driven"
)

// CollectService drives one end-to-end collection run: log in to the
// gateway, fetch the combined test report, split it into artifacts, and
// prune the empty ones. Runs are journaled when a RunStore is configured.
type CollectService struct {
	gateway  driven.GatewayClient
	splitter *Splitter
	runs     driven.RunStore // nil disables the journal

	username string
	password string
}

// NewCollectService wires a collection pipeline. runs may be nil, which
// disables journaling.
func NewCollectService(gateway driven.GatewayClient, store driven.ArtifactStore, runs driven.RunStore, username, password, boundary string) *CollectService {
	return &CollectService{
		gateway:  gateway,
		splitter: NewSplitter(store, boundary),
		runs:     runs,
		username: username,
		password: password,
	}
}

// Collect executes one collection run against the gateway. The returned Run
// describes the outcome whether or not it was journaled. A login or fetch
// failure aborts the run before anything is written.
func (s *CollectService) Collect(ctx context.Context) (model.Run, error) {
	run := model.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	token, err := s.gateway.Login(ctx, s.username, s.password)
	if err != nil {
		return s.finish(ctx, run, nil, fmt.Errorf("login: %w", err))
	}

	body, err := s.gateway.FetchTestReport(ctx, token)
	if err != nil {
		return s.finish(ctx, run, nil, fmt.Errorf("fetch report: %w", err))
	}
	run.TotalBytes = int64(len(body))

	result, err := s.splitter.SplitAndStore(body)
	run.SegmentCount = result.Segments
	run.PrunedCount = len(result.Pruned)

	return s.finish(ctx, run, result.Artifacts, err)
}

// finish stamps the outcome on the run, journals it, and logs the result.
// Journal failures are logged and never change the outcome.
func (s *CollectService) finish(ctx context.Context, run model.Run, artifacts []model.Artifact, err error) (model.Run, error) {
	run.FinishedAt = time.Now().UTC()
	run.Status = model.RunSucceeded
	if err != nil {
		run.Status = model.RunFailed
		run.Error = err.Error()
	}

	if s.runs != nil {
		if jerr := s.runs.Record(ctx, run, artifacts); jerr != nil {
			slog.Error("run not journaled", "run", run.ID, "error", jerr)
		}
	}

	if err != nil {
		return run, err
	}

	slog.Info("collection run complete",
		"run", run.ID,
		"segments", run.SegmentCount,
		"pruned", run.PrunedCount,
		"bytes", run.TotalBytes,
		"duration", run.Duration(),
	)
	return run, nil
}
