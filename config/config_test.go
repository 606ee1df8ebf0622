package config

import (
	"strings"
	"testing"
	"time"
)

func TestParse_ShorthandTCP(t *testing.T) {
	cfg, err := Parse([]byte(`
interval: 30s
probe: tcp:1.1.1.1:443
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Interval.Duration() != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", cfg.Interval.Duration())
	}
	if cfg.Probe.Type != "tcp" {
		t.Errorf("Probe.Type = %q, want %q", cfg.Probe.Type, "tcp")
	}
	if cfg.Probe.Target != "1.1.1.1:443" {
		t.Errorf("Probe.Target = %q, want %q", cfg.Probe.Target, "1.1.1.1:443")
	}
}

func TestParse_ShorthandHTTP(t *testing.T) {
	cfg, err := Parse([]byte(`probe: http:https://example.com/health`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Probe.Type != "http" {
		t.Errorf("Probe.Type = %q, want %q", cfg.Probe.Type, "http")
	}
	if cfg.Probe.Target != "https://example.com/health" {
		t.Errorf("Probe.Target = %q, want %q", cfg.Probe.Target, "https://example.com/health")
	}
	// default interval applies
	if cfg.Interval.Duration() != defaultInterval {
		t.Errorf("Interval = %v, want default %v", cfg.Interval.Duration(), defaultInterval)
	}
}

func TestParse_StructuredProbe(t *testing.T) {
	cfg, err := Parse([]byte(`
interval: 1m
probe:
  type: http
  target: https://example.com/health
  method: HEAD
  timeout: 5s
  headers:
    X-Check: connmon
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Probe.Method != "HEAD" {
		t.Errorf("Probe.Method = %q, want HEAD", cfg.Probe.Method)
	}
	if cfg.Probe.Timeout.Duration() != 5*time.Second {
		t.Errorf("Probe.Timeout = %v, want 5s", cfg.Probe.Timeout.Duration())
	}
	if cfg.Probe.Headers["X-Check"] != "connmon" {
		t.Errorf("Probe.Headers[X-Check] = %q, want connmon", cfg.Probe.Headers["X-Check"])
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("CONNMON_TARGET", "10.0.0.1:8443")
	t.Setenv("CONNMON_TOKEN", "secret")

	cfg, err := Parse([]byte(`probe: tcp:${CONNMON_TARGET}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Probe.Target != "10.0.0.1:8443" {
		t.Errorf("Probe.Target = %q, want expanded value", cfg.Probe.Target)
	}

	cfg, err = Parse([]byte(`
probe:
  type: http
  target: https://example.com/health
  headers:
    Authorization: Bearer ${CONNMON_TOKEN}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := cfg.Probe.Headers["Authorization"]; got != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
	}
}

func TestParse_EnvDefault(t *testing.T) {
	cfg, err := Parse([]byte(`probe: tcp:${CONNMON_UNSET_HOST:-1.1.1.1}:443`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Probe.Target != "1.1.1.1:443" {
		t.Errorf("Probe.Target = %q, want default-substituted value", cfg.Probe.Target)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing probe",
			yaml:    `interval: 10s`,
			wantErr: "probe is required",
		},
		{
			name:    "missing target",
			yaml:    "probe:\n  type: tcp",
			wantErr: "target is required",
		},
		{
			name:    "unknown probe type",
			yaml:    `probe: icmp:1.1.1.1`,
			wantErr: "unknown probe type",
		},
		{
			name:    "shorthand without separator",
			yaml:    `probe: somewhere`,
			wantErr: "unknown probe",
		},
		{
			name:    "invalid duration",
			yaml:    "interval: fast\nprobe: tcp:1.1.1.1:443",
			wantErr: "invalid duration",
		},
		{
			name:    "interval too small",
			yaml:    "interval: 100ms\nprobe: tcp:1.1.1.1:443",
			wantErr: "interval must be at least",
		},
		{
			name:    "tcp target without port",
			yaml:    `probe: tcp:1.1.1.1`,
			wantErr: "host:port",
		},
		{
			name:    "tcp probe with method",
			yaml:    "probe:\n  type: tcp\n  target: 1.1.1.1:443\n  method: GET",
			wantErr: "only valid for http",
		},
		{
			name:    "http target without scheme",
			yaml:    "probe:\n  type: http\n  target: example.com/health",
			wantErr: "scheme must be http or https",
		},
		{
			name:    "http bad method",
			yaml:    "probe:\n  type: http\n  target: https://example.com\n  method: DELETE",
			wantErr: "method must be GET, HEAD, or POST",
		},
		{
			name:    "unset env var",
			yaml:    `probe: tcp:${CONNMON_DEFINITELY_UNSET}:443`,
			wantErr: "is not set",
		},
		{
			name:    "negative timeout",
			yaml:    "probe:\n  type: tcp\n  target: 1.1.1.1:443\n  timeout: -5s",
			wantErr: "timeout cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Parse() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/connmon.yaml"); err == nil {
		t.Fatal("Load() on a missing file should fail")
	}
}
