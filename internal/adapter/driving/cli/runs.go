package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rubengr/gwreports/internal/adapter/driven/sqlite"
	"github.com/rubengr/gwreports/internal/config"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List journaled collection runs, most recent first",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to list, 0 for all")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.HasJournal() {
		return fmt.Errorf("GWREPORTS_JOURNAL_PATH is not set")
	}

	db, err := sqlite.NewDB(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.RunMigrations(db.Writer); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}

	runs, err := sqlite.NewRunRepo(db).ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("no runs recorded")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %s  %-9s  segments=%d pruned=%d bytes=%d (%s)",
			run.StartedAt.Format(time.RFC3339), run.ID, run.Status,
			run.SegmentCount, run.PrunedCount, run.TotalBytes,
			run.Duration().Round(time.Millisecond))
		if run.Error != "" {
			line += "  error=" + run.Error
		}
		cmd.Println(line)
	}
	return nil
}
