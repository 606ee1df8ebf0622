package connmon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrClosed is returned by [Monitor.Start] after the monitor has been closed.
var ErrClosed = errors.New("connmon: monitor is closed")

// Probe is an externally supplied reachability check.
//
// A probe receives a context that is cancelled when the monitor is stopped,
// restarted, or closed, and must honor that cancellation promptly. It returns
// true when the target is reachable. Any error (including a context error) is
// treated by the monitor as "not connected" for that attempt; it is never
// propagated to the monitor's caller.
type Probe func(ctx context.Context) (bool, error)

// Monitor periodically runs a [Probe] and raises edge-triggered notifications.
//
// The monitor guarantees:
//
//   - At most one probe is in flight at any time, regardless of how the
//     interval compares to the probe's duration. Ticks that arrive while a
//     probe is running are swallowed, not queued.
//   - A notification fires exactly when the newly observed result differs
//     from the previously observed one, evaluated atomically with the store
//     of the new result. Repeats are silent.
//   - Stop and restart cancel the in-flight probe; a cancelled probe never
//     surfaces a result or a notification.
//
// All lifecycle methods are safe for concurrent use. None of them block on
// probe execution: probes run in their own goroutines, outside any critical
// section.
type Monitor struct {
	probe    Probe
	interval time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	closed      bool
	running     bool
	lifetimeCtx context.Context
	cancelLife  context.CancelFunc
	probeCtx    context.Context
	cancelProbe context.CancelFunc
	inFlight    bool
	last        *bool // nil until the first probe after Start completes

	notifier *notifier
}

// New creates a [Monitor] for the given probe.
//
// The probe must be non-nil. Options have sensible defaults:
//   - Interval: 10 seconds
//   - Logger: slog.Default()
//
// The monitor is created stopped; call [Monitor.Start] to begin probing.
//
// Example:
//
//	m, err := connmon.New(myProbe,
//	    connmon.WithInterval(30*time.Second),
//	    connmon.WithOnChange(onChange),
//	)
func New(probe Probe, opts ...Option) (*Monitor, error) {
	if probe == nil {
		return nil, errors.New("probe is required")
	}

	cfg := &monitorConfig{
		interval: defaultInterval,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Monitor{
		probe:    probe,
		interval: cfg.interval,
		logger:   logger,
		notifier: newNotifier(cfg.onChange, logger),
	}, nil
}

// Interval returns the configured time between probe attempts.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Connected reports the most recently observed connectivity state.
//
// known is false until the first probe after Start completes, and after a
// restart until the first probe of the new cycle completes.
func (m *Monitor) Connected() (connected, known bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return false, false
	}
	return *m.last, true
}

// Start begins periodic probing: once immediately, then at the configured
// interval. The last observed state is reset to unknown, so the first probe
// of the new cycle always produces a notification.
//
// Calling Start on a running monitor is a restart: the in-flight probe and
// the previous lifetime context are cancelled and discarded, and a fresh
// cycle begins immediately. A restart never waits for the stale probe to
// finish and never mixes results from before and after the restart.
//
// Returns [ErrClosed] if the monitor was closed.
func (m *Monitor) Start() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}

	restarted := m.running

	// release the previous cycle before its lifetime context, so the probe
	// observes cancellation through its own scope first
	if m.cancelProbe != nil {
		m.cancelProbe()
		m.cancelProbe = nil
		m.probeCtx = nil
	}
	if m.cancelLife != nil {
		m.cancelLife()
	}
	m.inFlight = false
	m.last = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.lifetimeCtx = ctx
	m.cancelLife = cancel
	m.running = true
	m.mu.Unlock()

	go m.run(ctx)

	if restarted {
		m.logger.Info("monitor restarted", "interval", m.interval.String())
	} else {
		m.logger.Info("monitor started", "interval", m.interval.String())
	}
	return nil
}

// Stop halts probing and cancels any in-flight probe.
//
// Stop does not wait for the probe to return; it only cancels and releases
// the timer and both cancellation scopes. A probe cancelled by Stop never
// fires a notification. Stop is idempotent; calling it when the monitor is
// not running is a safe no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	if m.cancelProbe != nil {
		m.cancelProbe()
		m.cancelProbe = nil
		m.probeCtx = nil
	}
	if m.cancelLife != nil {
		m.cancelLife()
		m.cancelLife = nil
		m.lifetimeCtx = nil
	}
	m.inFlight = false
	m.mu.Unlock()

	m.logger.Info("monitor stopped")
}

// Close stops the monitor and permanently disables it.
//
// After Close, [Monitor.Start] returns [ErrClosed] and all subscription
// channels are closed. Close is idempotent.
func (m *Monitor) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	// mark closed before stopping so a concurrent Start cannot slip in
	// between the stop and the point of no return
	m.closed = true
	m.mu.Unlock()

	m.Stop()
	m.notifier.close()
}

// run drives one Start-to-Stop cycle: an immediate tick, then one tick per
// interval, until the cycle's lifetime context is cancelled.
func (m *Monitor) run(ctx context.Context) {
	m.tick(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick attempts to launch one probe. The tick is swallowed when the monitor
// is stopped, a probe is already in flight, or ctx belongs to a superseded
// cycle (a stale run goroutine that has not yet observed its cancellation).
// The probe itself runs in its own goroutine so the timer loop never blocks.
func (m *Monitor) tick(ctx context.Context) {
	m.mu.Lock()
	if !m.running || m.inFlight || ctx != m.lifetimeCtx {
		m.mu.Unlock()
		return
	}
	probeCtx, cancel := context.WithCancel(ctx)
	m.probeCtx = probeCtx
	m.cancelProbe = cancel
	m.inFlight = true
	m.mu.Unlock()

	go m.runProbe(probeCtx, cancel)
}

// runProbe executes one probe attempt and handles its completion.
func (m *Monitor) runProbe(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	connected, err := m.probe(ctx)
	result := connected && err == nil

	m.mu.Lock()
	if ctx != m.probeCtx {
		// Stop or restart released this attempt while it ran; its result
		// must not surface
		m.mu.Unlock()
		return
	}
	m.inFlight = false
	m.probeCtx = nil
	m.cancelProbe = nil

	changed := m.last == nil || *m.last != result
	v := result
	m.last = &v
	m.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Debug("probe failed", "error", err)
	}

	if changed {
		m.logger.Debug("connectivity changed", "connected", result)
		m.notifier.notify(result)
	}
}
