// Package config provides YAML configuration parsing for connmon.
//
// This package enables running connmon as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	interval: 30s
//	probe: tcp:1.1.1.1:443
//
// Or with the structured probe form:
//
//	interval: 30s
//	probe:
//	  type: http
//	  target: https://example.com/health
//	  method: HEAD
//	  timeout: 5s
//	  headers:
//	    Authorization: Bearer ${HEALTH_TOKEN}
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// minInterval is the minimum allowed probe interval for production configs.
// This prevents accidental DoS of targets with overly aggressive probing.
const minInterval = 1 * time.Second

// defaultInterval is used when the config does not specify an interval.
const defaultInterval = 10 * time.Second

// Config is the root configuration structure for connmon.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Interval is the time between probe attempts.
	// Accepts duration strings like "10s", "1m", "500ms".
	// Defaults to 10s.
	Interval Duration `yaml:"interval"`

	// Probe defines the reachability check to run.
	// Can be shorthand ("tcp:host:port", "http:url") or structured.
	Probe ProbeConfig `yaml:"probe"`
}

// ProbeConfig specifies the reachability check.
//
// It supports two formats in YAML:
//
// Shorthand string:
//
//	probe: tcp:1.1.1.1:443
//	probe: http:https://example.com/health
//
// Structured object:
//
//	probe:
//	  type: tcp
//	  target: 1.1.1.1:443
//	  timeout: 2s
type ProbeConfig struct {
	// Type is the probe type: "tcp" or "http".
	Type string

	// Target is the probe destination: "host:port" for tcp, a URL for http.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Target string

	// Timeout bounds a single probe attempt. Zero means the probe's default.
	Timeout Duration

	// Method is the HTTP method (GET, HEAD, POST). http probes only.
	Method string

	// Headers are custom HTTP headers sent with each request. http probes
	// only. Values support environment variable substitution.
	Headers map[string]string
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler for ProbeConfig.
func (p *ProbeConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		return p.parseShorthand(s)
	}

	if node.Kind == yaml.MappingNode {
		// temporary struct to avoid infinite recursion
		var raw struct {
			Type    string            `yaml:"type"`
			Target  string            `yaml:"target"`
			Timeout Duration          `yaml:"timeout"`
			Method  string            `yaml:"method"`
			Headers map[string]string `yaml:"headers"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		p.Type = raw.Type
		p.Target = raw.Target
		p.Timeout = raw.Timeout
		p.Method = raw.Method
		p.Headers = raw.Headers
		return nil
	}

	return fmt.Errorf("probe must be a string or object, got %v", node.Kind)
}

// parseShorthand parses probe shorthand syntax.
//
// Supported formats:
//   - "tcp:host:port" → TCP dial probe
//   - "http:url" → HTTP probe (the url keeps its own scheme, e.g.
//     "http:https://example.com/health")
func (p *ProbeConfig) parseShorthand(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	idx := strings.Index(s, ":")
	if idx == -1 {
		return fmt.Errorf("unknown probe %q (expected 'tcp:host:port' or 'http:url')", s)
	}

	p.Type = s[:idx]
	p.Target = s[idx+1:]

	switch p.Type {
	case "tcp", "http":
		return nil
	default:
		return fmt.Errorf("unknown probe type %q", p.Type)
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
//
// Group 1: variable name, group 3: default value (if ":-" syntax used).
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML data into a validated [Config].
//
// Defaults are applied, environment variables in the probe target and
// headers are expanded, and all fields are validated.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if cfg.Interval == 0 {
		cfg.Interval = Duration(defaultInterval)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the parsed configuration and expands environment variables.
func (c *Config) validate() error {
	if c.Interval.Duration() < minInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minInterval, c.Interval.Duration())
	}

	if c.Probe.Type == "" {
		return errors.New("probe is required")
	}
	if c.Probe.Target == "" {
		return errors.New("probe: target is required")
	}

	expanded, err := expandEnvVars(c.Probe.Target)
	if err != nil {
		return fmt.Errorf("probe: target: %w", err)
	}
	c.Probe.Target = expanded

	if c.Probe.Timeout.Duration() < 0 {
		return fmt.Errorf("probe: timeout cannot be negative, got %s", c.Probe.Timeout.Duration())
	}

	switch c.Probe.Type {
	case "tcp":
		return c.validateTCP()
	case "http":
		return c.validateHTTP()
	default:
		return fmt.Errorf("probe: type must be tcp or http, got %q", c.Probe.Type)
	}
}

func (c *Config) validateTCP() error {
	if c.Probe.Method != "" {
		return errors.New("probe: method is only valid for http probes")
	}
	if len(c.Probe.Headers) > 0 {
		return errors.New("probe: headers are only valid for http probes")
	}

	if _, _, err := net.SplitHostPort(c.Probe.Target); err != nil {
		return fmt.Errorf("probe: target must be host:port: %w", err)
	}
	return nil
}

func (c *Config) validateHTTP() error {
	parsedURL, err := url.Parse(c.Probe.Target)
	if err != nil {
		return fmt.Errorf("probe: invalid target url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("probe: target url scheme must be http or https, got %q", parsedURL.Scheme)
	}

	if m := c.Probe.Method; m != "" && m != "GET" && m != "HEAD" && m != "POST" {
		return errors.New("probe: method must be GET, HEAD, or POST")
	}

	for k, v := range c.Probe.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("probe: headers[%s]: %w", k, err)
		}
		c.Probe.Headers[k] = expanded
	}
	return nil
}
