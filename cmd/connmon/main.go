// Package main is the entry point for the connmon CLI.
//
// connmon can be used either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	connmon watch -c config.yaml    # Watch connectivity and log transitions
//	connmon validate -c config.yaml # Validate configuration
//	connmon version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "connmon",
	Short: "An edge-triggered connectivity monitor",
	Long: `connmon watches network reachability with a periodic probe and
reports only transitions: connected to disconnected and back. Repeated
identical results are silent, so its output is safe to wire to alerting
or to a proxy controller's mode switch.

Quick start:
  1. Create a config file (connmon.yaml)
  2. Run: connmon watch -c connmon.yaml

Example config:
  interval: 30s
  probe: tcp:1.1.1.1:443`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this connmon binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("connmon %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
