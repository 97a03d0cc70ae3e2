package cli

import (
	"github.com/spf13/cobra"

	"github.com/rubengr/gwreports/internal/adapter/driven/artifact"
	"github.com/rubengr/gwreports/internal/application"
	"github.com/rubengr/gwreports/internal/config"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a full collection: log in, fetch the report, split, prune",
	RunE:  runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	// 1. Gateway client.
	client := newGatewayClient(cfg)

	// 2. Artifact store over the output directory.
	store, err := artifact.NewStore(cfg.OutputDir, cfg.OutputPrefix)
	if err != nil {
		return err
	}

	// 3. Optional run journal.
	journal, closeJournal := openJournal(cfg)
	defer closeJournal()

	// 4. Collection pipeline.
	svc := application.NewCollectService(client, store, journal, cfg.Username, cfg.Password, cfg.Boundary)

	run, err := svc.Collect(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("run %s: %d segments, %d pruned, %d bytes\n",
		run.ID, run.SegmentCount, run.PrunedCount, run.TotalBytes)
	return nil
}
