package probe

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestTCP_Reachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer func() { _ = ln.Close() }()

	p := TCP(ln.Addr().String(), time.Second)

	connected, err := p(context.Background())
	if err != nil {
		t.Fatalf("probe error = %v", err)
	}
	if !connected {
		t.Error("probe = false, want true for a listening address")
	}
}

func TestTCP_Unreachable(t *testing.T) {
	// grab a port that is guaranteed free, then close the listener
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	p := TCP(addr, time.Second)

	connected, err := p(context.Background())
	if err != nil {
		t.Fatalf("probe error = %v, want nil for a refused connection", err)
	}
	if connected {
		t.Error("probe = true, want false for a closed port")
	}
}

func TestTCP_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := TCP("127.0.0.1:1", time.Second)

	connected, err := p(ctx)
	if err == nil {
		t.Fatal("probe should surface a context error when cancelled")
	}
	if connected {
		t.Error("cancelled probe must not report connected")
	}
}

func TestTCP_DefaultTimeout(t *testing.T) {
	// zero and negative timeouts fall back to the default rather than
	// producing an unbounded dial
	for _, d := range []time.Duration{0, -time.Second} {
		p := TCP("127.0.0.1:1", d)
		if p == nil {
			t.Fatalf("TCP() with timeout %v returned nil probe", d)
		}
	}
}
