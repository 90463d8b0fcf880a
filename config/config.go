// Package config loads the non-topology parameters of a simulation run
// from YAML using a strict decoding pattern that rejects unknown keys.
package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dtnsim/dtnsim/sim"
	"github.com/dtnsim/dtnsim/sim/trace"
)

// RouterFlavor selects which CGR variant a node's Router field is built
// with. JSON/topology ingestion is a non-goal; RunConfig only carries the
// run parameters, not the contact plan itself.
type RouterFlavor string

const (
	RouterBasic    RouterFlavor = "cgr_basic"
	RouterAnchor   RouterFlavor = "cgr_anchor"
	RouterShortest RouterFlavor = "scgr"
)

// RunConfig is the full defaults.yaml-equivalent document for a dtnsim
// run: every top-level key must be listed here to satisfy
// KnownFields(true) strict parsing.
type RunConfig struct {
	HorizonMs       int64        `yaml:"horizon_ms"`
	DefaultDatarate int64        `yaml:"default_datarate"`
	DefaultDelay    int64        `yaml:"default_delay"`
	Router          RouterFlavor `yaml:"router"`
	LookaheadWindow int64        `yaml:"lookahead_window_ms"`
	RNGSeed         int64        `yaml:"rng_seed"`
	TraceLevel      string       `yaml:"trace_level"`
	Hotspots        []string     `yaml:"hotspots"`
}

// Load parses path as a strict RunConfig document: unknown fields are a
// hard error, via decoder.KnownFields(true).
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("reading run config %s: %w", path, err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	if cfg.Router == "" {
		cfg.Router = RouterBasic
	}
	if cfg.LookaheadWindow == 0 {
		cfg.LookaheadWindow = sim.DefaultLookaheadWindow
	}
	return cfg, nil
}

// TraceConfig converts the run config's trace_level string into a
// trace.Config, defaulting to LevelNone on an empty value.
func (c RunConfig) TraceConfig() (trace.Config, error) {
	if !trace.IsValid(c.TraceLevel) {
		return trace.Config{}, fmt.Errorf("unrecognized trace_level %q", c.TraceLevel)
	}
	if c.TraceLevel == "" {
		return trace.Config{Level: trace.LevelNone}, nil
	}
	return trace.Config{Level: trace.Level(c.TraceLevel)}, nil
}

// NewRouter builds the Router instance named by c.Router, honoring
// LookaheadWindow for the scgr flavor. Each call returns a fresh
// instance, since ShortestRouter carries per-node state that must not be
// shared across nodes (sim.ShortestRouter's doc comment).
func (c RunConfig) NewRouter() (sim.Router, error) {
	switch c.Router {
	case RouterBasic, "":
		return sim.BasicRouter{}, nil
	case RouterAnchor:
		return sim.AnchorRouter{}, nil
	case RouterShortest:
		return sim.NewShortestRouter(c.LookaheadWindow), nil
	default:
		return nil, fmt.Errorf("unknown router flavor %q", c.Router)
	}
}

// HotspotSet returns c.Hotspots as a lookup set, deduplicated and
// order-independent: the YAML list order must never influence anything
// downstream, so callers should only ever query membership, never range
// over the original slice for simulation behavior.
func (c RunConfig) HotspotSet() map[string]bool {
	out := make(map[string]bool, len(c.Hotspots))
	for _, h := range c.Hotspots {
		out[h] = true
	}
	return out
}

// SortedHotspots returns c.Hotspots deduplicated and lexicographically
// sorted, for callers (e.g. logging) that need a deterministic display
// order rather than a lookup set.
func (c RunConfig) SortedHotspots() []string {
	set := c.HotspotSet()
	out := make([]string, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}
