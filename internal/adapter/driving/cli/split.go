package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rubengr/gwreports/internal/adapter/driven/artifact"
	"github.com/rubengr/gwreports/internal/application"
	"github.com/rubengr/gwreports/internal/config"
)

var splitInput string

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split an already downloaded combined report into artifacts",
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitInput, "in", "i", "", "combined report file, or - for stdin (required)")
	_ = splitCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	body, err := readCombinedReport(splitInput)
	if err != nil {
		return err
	}

	store, err := artifact.NewStore(cfg.OutputDir, cfg.OutputPrefix)
	if err != nil {
		return err
	}

	result, err := application.NewSplitter(store, cfg.Boundary).SplitAndStore(body)
	if err != nil {
		return err
	}

	cmd.Printf("%d segments, %d written, %d pruned\n",
		result.Segments, len(result.Artifacts), len(result.Pruned))
	return nil
}

func readCombinedReport(path string) ([]byte, error) {
	if path == "-" {
		body, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read combined report: %w", err)
	}
	return body, nil
}
