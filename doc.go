// Package connmon provides an edge-triggered periodic connectivity monitor.
//
// connmon is designed as an SDK-first library for embedding in network
// controllers (proxy managers, tunnel daemons, gateway agents) that need to
// react promptly when connectivity appears or disappears, without piling up
// overlapping checks and without reacting to noisy repeated results.
//
// A [Monitor] runs an externally supplied [Probe] at a fixed interval,
// guarantees at most one probe is in flight at a time, and raises a change
// notification only when the observed connectivity state flips
// (connected ↔ disconnected). Repeated identical results are silent.
//
// # Quick Start
//
// Create a monitor with a probe and a change callback, then start it:
//
//	m, _ := connmon.New(probe.TCP("1.1.1.1:443", 2*time.Second),
//	    connmon.WithInterval(30*time.Second),
//	    connmon.WithOnChange(func(connected bool) {
//	        if connected {
//	            proxy.SwitchToDirect()
//	        } else {
//	            proxy.SwitchToFallback()
//	        }
//	    }),
//	)
//
//	m.Start()        // probes immediately, then every 30s
//	defer m.Close()
//
// # Lifecycle
//
// [Monitor.Start] begins (or restarts) probing. Restarting never waits for a
// stale probe: the previous probe is cancelled and its result discarded, so
// results from before and after the restart are never mixed.
// [Monitor.Stop] halts probing and cancels any in-flight probe; it is
// idempotent. [Monitor.Close] stops the monitor and permanently disables it;
// Start after Close returns [ErrClosed].
//
// Cancellation is hierarchical: each Start creates a lifetime context, and
// each probe attempt derives its own child context from it. Stopping the
// monitor cancels the lifetime context, which transitively cancels the
// running probe.
//
// # Notifications
//
// Change notifications are delivered two ways:
//
//   - Callbacks registered via [WithOnChange], invoked synchronously from
//     the completion path in registration order. Panics are recovered and
//     logged; they never crash the monitor.
//   - Channels returned by [Monitor.Subscribe], buffered and non-blocking;
//     slow consumers may miss updates.
//
// The first completed probe after Start is always compared against "unknown",
// so it always produces a notification carrying the initial state.
//
// # Probes
//
// A [Probe] is any func(ctx) (bool, error). The probe subpackage provides
// ready-made TCP and HTTP reachability probes. Probe errors are treated as
// "not connected" for that attempt and logged at debug level; they are never
// propagated to the caller.
package connmon
