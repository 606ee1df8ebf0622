package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/3578CN/connmon"
	"github.com/3578CN/connmon/config"
	"github.com/spf13/cobra"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// watchCmd runs the connectivity monitor in the foreground.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch connectivity and log transitions",
	Long: `Watch network connectivity using the configured probe.

The monitor probes immediately, then at the configured interval, and logs
a line each time connectivity is gained or lost. Repeated identical
results produce no output.

The monitor runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  connmon watch -c config.yaml
  connmon watch --config /etc/connmon/config.yaml --verbose`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	watchCmd.Flags().BoolP("verbose", "v", false, "log individual probe failures")
	_ = watchCmd.MarkFlagRequired("config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"probe", cfg.Probe.Type,
		"target", cfg.Probe.Target,
		"interval", cfg.Interval.Duration().String(),
	)

	prb, err := config.BuildProbe(cfg)
	if err != nil {
		return fmt.Errorf("failed to build probe: %w", err)
	}

	opts := append(config.BuildOptions(cfg),
		connmon.WithLogger(logger),
		connmon.WithOnChange(func(connected bool) {
			if connected {
				logger.Info("connectivity gained", "target", cfg.Probe.Target)
			} else {
				logger.Warn("connectivity lost", "target", cfg.Probe.Target)
			}
		}),
	)

	m, err := connmon.New(prb, opts...)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Start(); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	<-ctx.Done()
	m.Close()
	logger.Info("shutdown complete")
	return nil
}
