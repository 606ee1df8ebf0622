// Demo of the connmon SDK against a local health endpoint that flips
// between healthy and unhealthy every few seconds. Watch the output: only
// transitions are reported, never repeats.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/3578CN/connmon"
	"github.com/3578CN/connmon/probe"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// local health endpoint that alternates between 200 and 503 every 5s
	var healthy atomic.Bool
	healthy.Store(true)
	go func() {
		for range time.Tick(5 * time.Second) {
			healthy.Store(!healthy.Load())
		}
	}()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})
	go func() {
		if err := http.ListenAndServe("localhost:9999", mux); err != nil {
			logger.Error("mock server failed", "error", err)
			os.Exit(1)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	m, err := connmon.New(
		probe.HTTP("http://localhost:9999/health", probe.WithTimeout(2*time.Second)),
		connmon.WithInterval(time.Second),
		connmon.WithLogger(logger),
		connmon.WithOnChange(func(connected bool) {
			if connected {
				logger.Info("connected")
			} else {
				logger.Warn("disconnected")
			}
		}),
	)
	if err != nil {
		logger.Error("failed to create monitor", "error", err)
		os.Exit(1)
	}

	if err := m.Start(); err != nil {
		logger.Error("failed to start monitor", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	// a channel subscription sees the same transitions as the callback
	updates := m.Subscribe()
	go func() {
		for connected := range updates {
			logger.Info("subscription update", "connected", connected)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}
