package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/3578CN/connmon"
)

// DefaultHTTPTimeout bounds a single HTTP request when no timeout is given.
const DefaultHTTPTimeout = 10 * time.Second

// drainLimit caps how much of a response body is read before closing,
// keeping connections reusable without buffering large responses.
const drainLimit = 64 << 10 // 64KB

// connection pooling limits: a connectivity probe talks to a single host,
// so the pool is kept deliberately small
const (
	httpMaxIdleConns    = 2
	httpIdleConnTimeout = 60 * time.Second
)

// httpConfig holds mutable state during HTTP probe construction.
type httpConfig struct {
	method  string
	headers map[string]string
	timeout time.Duration
}

// HTTPOption configures an [HTTP] probe during construction.
type HTTPOption func(*httpConfig)

// WithMethod sets the HTTP method for probe requests. Defaults to GET.
// HEAD is a good choice for endpoints whose body is irrelevant.
func WithMethod(method string) HTTPOption {
	return func(cfg *httpConfig) {
		cfg.method = method
	}
}

// WithHeader adds a custom HTTP header sent with every probe request.
// May be used multiple times.
func WithHeader(key, value string) HTTPOption {
	return func(cfg *httpConfig) {
		if cfg.headers == nil {
			cfg.headers = make(map[string]string)
		}
		cfg.headers[key] = value
	}
}

// WithTimeout bounds each probe request. Defaults to [DefaultHTTPTimeout].
// Zero or negative values are ignored.
func WithTimeout(d time.Duration) HTTPOption {
	return func(cfg *httpConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}

// HTTP returns a [connmon.Probe] that performs an HTTP request against url
// and reports whether the response status code is below 400.
//
// Request errors (connection refused, DNS failure, timeout) are normal
// "not connected" results, not probe errors. The request is bounded by the
// probe context in addition to the configured timeout, so stopping the
// monitor interrupts it immediately.
//
// The returned probe owns a small connection pool that is reused across
// attempts; do not share one probe across monitors probing at aggressive
// intervals.
//
// Example:
//
//	m, err := connmon.New(
//	    probe.HTTP("https://example.com/health",
//	        probe.WithMethod(http.MethodHead),
//	        probe.WithTimeout(5*time.Second),
//	    ),
//	)
func HTTP(url string, opts ...HTTPOption) connmon.Probe {
	cfg := &httpConfig{
		method:  http.MethodGet,
		timeout: DefaultHTTPTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := &http.Client{
		// no global timeout: each request is bounded via context
		Transport: &http.Transport{
			MaxIdleConns:    httpMaxIdleConns,
			IdleConnTimeout: httpIdleConnTimeout,
		},
	}

	return func(ctx context.Context) (bool, error) {
		reqCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, cfg.method, url, nil)
		if err != nil {
			return false, fmt.Errorf("failed to create request: %w", err)
		}
		for key, value := range cfg.headers {
			req.Header.Set(key, value)
		}

		resp, err := client.Do(req)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return false, ctx.Err()
			}
			return false, nil
		}
		defer func() { _ = resp.Body.Close() }()

		// drain a bounded amount so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))

		return resp.StatusCode < 400, nil
	}
}
