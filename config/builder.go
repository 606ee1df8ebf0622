package config

import (
	"fmt"
	"sort"

	"github.com/3578CN/connmon"
	"github.com/3578CN/connmon/probe"
)

// BuildProbe converts the parsed probe configuration into a [connmon.Probe].
func BuildProbe(cfg *Config) (connmon.Probe, error) {
	switch cfg.Probe.Type {
	case "tcp":
		return probe.TCP(cfg.Probe.Target, cfg.Probe.Timeout.Duration()), nil

	case "http":
		var opts []probe.HTTPOption
		if cfg.Probe.Method != "" {
			opts = append(opts, probe.WithMethod(cfg.Probe.Method))
		}
		if cfg.Probe.Timeout != 0 {
			opts = append(opts, probe.WithTimeout(cfg.Probe.Timeout.Duration()))
		}
		for _, kv := range sortedHeaders(cfg.Probe.Headers) {
			opts = append(opts, probe.WithHeader(kv[0], kv[1]))
		}
		return probe.HTTP(cfg.Probe.Target, opts...), nil

	default:
		// unreachable after validate, kept for direct Config construction
		return nil, fmt.Errorf("unknown probe type %q", cfg.Probe.Type)
	}
}

// BuildOptions converts the parsed configuration into [connmon.Option]
// values for [connmon.New].
func BuildOptions(cfg *Config) []connmon.Option {
	return []connmon.Option{
		connmon.WithInterval(cfg.Interval.Duration()),
	}
}

// sortedHeaders converts a header map to sorted key-value pairs.
func sortedHeaders(m map[string]string) [][2]string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, m[k]})
	}
	return pairs
}
