package connmon

import (
	"errors"
	"log/slog"
	"time"
)

const defaultInterval = 10 * time.Second

// monitorConfig holds mutable state during Monitor construction.
type monitorConfig struct {
	interval time.Duration
	logger   *slog.Logger
	onChange []func(bool)
}

// Option is a function that configures a [Monitor] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithInterval], [WithOnChange], [WithLogger].
type Option func(*monitorConfig) error

// WithInterval sets the time between probe attempts.
//
// The interval bounds how often a new probe may start; it does not bound
// probe duration. When a probe outlasts the interval, intervening ticks are
// swallowed, so slow probes throttle the effective cadence to one probe at
// a time. Defaults to 10 seconds if not specified.
//
// Example:
//
//	m, err := connmon.New(probe,
//	    connmon.WithInterval(30*time.Second),
//	)
//
// Returns an error if the duration is zero or negative.
func WithInterval(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithOnChange registers a function to be called on every connectivity
// transition. The callback receives the new state: true when connectivity
// was gained, false when it was lost.
//
// Multiple callbacks may be registered by calling WithOnChange multiple
// times; they execute in registration order.
//
// IMPORTANT: Callbacks must be non-blocking. Long-running reactions should
// dispatch work to a separate goroutine; a blocking callback delays the
// completion handling of subsequent probes.
//
// Callbacks are invoked synchronously from the probe completion path,
// outside the monitor's critical section, so they may safely call Start,
// Stop, or Close. Panics within callbacks are recovered and logged; they
// do not crash the monitor.
//
// Nil callbacks are silently ignored.
func WithOnChange(cb func(connected bool)) Option {
	return func(cfg *monitorConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.onChange = append(cfg.onChange, cb)
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the monitor.
//
// This allows SDK consumers to control where logs are written and in what
// format. Lifecycle events are logged at info level, per-attempt probe
// failures at debug level. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	m, err := connmon.New(probe,
//	    connmon.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *monitorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
