package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rubengr/gwreports/internal/config"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the gateway health endpoint",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth prints one line per gateway service and exits non-zero when any
// of them is down.
func runHealth(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireGateway(); err != nil {
		return err
	}

	health, err := newGatewayClient(cfg).CheckHealth(cmd.Context())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(health.Services))
	for name := range health.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		state := "up"
		if !health.Services[name] {
			state = "down"
		}
		cmd.Printf("%-24s %s\n", name, state)
	}

	if !health.Healthy() {
		return fmt.Errorf("gateway is unhealthy")
	}

	cmd.Printf("gateway healthy (health version %d)\n", health.Version)
	return nil
}
