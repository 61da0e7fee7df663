// Package config holds the flat options record that tunes rendering.
//
// Options are a small set of recognized keys over an open map: config
// files are JSON objects merged left to right over the defaults, and
// keys the compiler does not recognize are kept and exposed to the
// templates untouched.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Recognized option keys.
const (
	KeyIncludePrivate = "include_private"
	KeyLegacyBehavior = "legacy_behavior"
)

// Options is the merged configuration for one build.
type Options struct {
	values map[string]any
}

// Default returns the baseline configuration.
func Default() *Options {
	return &Options{values: map[string]any{
		KeyIncludePrivate: false,
		KeyLegacyBehavior: true,
	}}
}

// Load returns the defaults with each named JSON file merged over them
// in order. Later files win on key conflicts.
func Load(paths ...string) (*Options, error) {
	opts := Default()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := opts.Merge(data); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return opts, nil
}

// Merge overlays one JSON object onto the options.
func (o *Options) Merge(data []byte) error {
	var overlay map[string]any
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	for k, v := range overlay {
		o.values[k] = v
	}
	return nil
}

// IncludePrivate reports whether private members are rendered.
func (o *Options) IncludePrivate() bool { return o.boolKey(KeyIncludePrivate) }

// LegacyBehavior reports whether legacy template compatibility is kept.
func (o *Options) LegacyBehavior() bool { return o.boolKey(KeyLegacyBehavior) }

func (o *Options) boolKey(key string) bool {
	b, _ := o.values[key].(bool)
	return b
}

// Get returns the raw value of any key, recognized or not.
func (o *Options) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Values returns the full key space for template exposure. The map is
// shared; callers must not mutate it.
func (o *Options) Values() map[string]any { return o.values }
