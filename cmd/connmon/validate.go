package main

import (
	"fmt"

	"github.com/3578CN/connmon/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the monitor.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a connmon configuration file without starting the monitor.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  connmon validate -c config.yaml
  connmon validate --config /etc/connmon/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Interval: %s\n", cfg.Interval.Duration())
	fmt.Printf("  Probe:    %s %s\n", cfg.Probe.Type, cfg.Probe.Target)
	if cfg.Probe.Timeout != 0 {
		fmt.Printf("  Timeout:  %s\n", cfg.Probe.Timeout.Duration())
	}

	return nil
}
