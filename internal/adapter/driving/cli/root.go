// Package cli implements the command-line driving adapter. Each subcommand
// loads configuration, wires the driven adapters it needs, and invokes the
// application layer.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rubengr/gwreports/internal/adapter/driven/gateway"
	"github.com/rubengr/gwreports/internal/adapter/driven/sqlite"
	"github.com/rubengr/gwreports/internal/config"
	"github.com/rubengr/gwreports/internal/domain/port/driven"
)

var verbose = false

var rootCmd = &cobra.Command{
	Use:   "gwreports",
	Short: "Collect and split combined test reports from an automation gateway",
	Long: `gwreports logs in to an automation gateway, downloads the combined
test report produced by the testrunner plugin, splits it into one file per
XML document, and removes empty artifacts.

Configuration comes from GWREPORTS_* environment variables; a .env file in
the working directory is loaded first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A developer .env is optional; real environments set vars directly.
		_ = godotenv.Load()

		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command under a signal-aware context (SIGINT,
// SIGTERM). It is the entry point used by package main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newGatewayClient builds a gateway client from the loaded configuration.
func newGatewayClient(cfg *config.Config) *gateway.Client {
	opts := []gateway.Option{
		gateway.WithTimeout(cfg.HTTPTimeout),
		gateway.WithAcceptTerms(cfg.AcceptTerms),
	}
	if cfg.TLSInsecure {
		opts = append(opts, gateway.WithInsecureTLS())
	}
	return gateway.New(cfg.GatewayURL, opts...)
}

// openJournal opens the run journal when one is configured. Journal trouble
// never blocks a collection run, so failures degrade to running without it.
// The returned close function is always safe to call.
func openJournal(cfg *config.Config) (driven.RunStore, func()) {
	if !cfg.HasJournal() {
		return nil, func() {}
	}

	db, err := sqlite.NewDB(cfg.JournalPath)
	if err != nil {
		slog.Warn("run journal unavailable", "path", cfg.JournalPath, "error", err)
		return nil, func() {}
	}
	if err := sqlite.RunMigrations(db.Writer); err != nil {
		slog.Warn("run journal unavailable", "path", cfg.JournalPath, "error", err)
		_ = db.Close()
		return nil, func() {}
	}

	return sqlite.NewRunRepo(db), func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing journal", "error", err)
		}
	}
}
