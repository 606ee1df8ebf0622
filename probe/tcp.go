package probe

import (
	"context"
	"net"
	"time"

	"github.com/3578CN/connmon"
)

// DefaultTCPTimeout bounds a single TCP dial when no timeout is given.
const DefaultTCPTimeout = 3 * time.Second

// TCP returns a [connmon.Probe] that reports whether a TCP connection to
// addr ("host:port") can be established within timeout.
//
// A refused or timed-out connection is a normal "not connected" result, not
// an error. The dial is additionally bounded by the probe context, so
// stopping the monitor interrupts it immediately.
//
// If timeout is zero or negative, [DefaultTCPTimeout] is used.
//
// Example:
//
//	m, err := connmon.New(probe.TCP("1.1.1.1:443", 2*time.Second))
func TCP(addr string, timeout time.Duration) connmon.Probe {
	if timeout <= 0 {
		timeout = DefaultTCPTimeout
	}
	dialer := &net.Dialer{Timeout: timeout}

	return func(ctx context.Context) (bool, error) {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			return false, nil
		}
		_ = conn.Close()
		return true, nil
	}
}
