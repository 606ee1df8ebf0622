// Package probe provides ready-made reachability probes for connmon.
//
// A probe answers one question: is the target reachable right now? Two
// implementations are provided:
//
//   - [TCP]: dials a TCP address and reports whether the connection
//     succeeds. Cheap and suitable for aggressive intervals.
//   - [HTTP]: performs an HTTP request and reports whether the response
//     status indicates health (below 400 by default).
//
// Both honor context cancellation promptly, so a monitor Stop or restart
// interrupts an outstanding check rather than waiting for its timeout.
//
// An unreachable target is a normal result (false, nil), not an error.
// Probes return a non-nil error only for cancellation and for failures that
// say nothing about reachability (for example, a malformed request).
package probe
