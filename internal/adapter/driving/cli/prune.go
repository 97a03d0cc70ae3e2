package cli

import (
	"github.com/spf13/cobra"

	"github.com/rubengr/gwreports/internal/adapter/driven/artifact"
	"github.com/rubengr/gwreports/internal/config"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove zero-length artifacts from the output directory",
	RunE:  runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := artifact.NewStore(cfg.OutputDir, cfg.OutputPrefix)
	if err != nil {
		return err
	}

	removed, err := store.Prune()
	for _, name := range removed {
		cmd.Println(name)
	}
	if err != nil {
		return err
	}

	cmd.Printf("pruned %d artifacts\n", len(removed))
	return nil
}
