// SPDX-License-Identifier: MIT

// Package config loads the lvmatch configuration file: arena capacities,
// log level, and the pattern library keyed by type.
//
// The file is chosen by the --config flag or the LVMATCH_CONFIG environment
// variable. There is no discovery and no fallback path, so a run always
// states where its keywords come from.
//
// Example:
//
//	arena:
//	  states: 4096
//	  transitions: 4096
//	  queue: 1024
//	log:
//	  level: info
//	types:
//	  - type: 1
//	    name: greetings
//	    patterns:
//	      - {id: 1, text: he}
//	      - {id: 2, hex: "736865"}
package config

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatch/arena"
	"github.com/katalvlaran/lvmatch/pattern"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "LVMATCH_CONFIG"

// Sentinel errors for configuration loading.
var (
	// ErrNoConfig is returned by Load when neither a path nor EnvVar is set.
	ErrNoConfig = errors.New("config: no config file given")

	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Config is the whole configuration file.
type Config struct {
	Arena ArenaConfig  `yaml:"arena"`
	Log   LogConfig    `yaml:"log"`
	Types []TypeConfig `yaml:"types"`
}

// ArenaConfig sizes the shared arena pool. Zero values take the defaults.
type ArenaConfig struct {
	States      int `yaml:"states"`
	Transitions int `yaml:"transitions"`
	Queue       int `yaml:"queue"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// TypeConfig is one pattern set.
type TypeConfig struct {
	Type     pattern.Type    `yaml:"type"`
	Name     string          `yaml:"name"`
	Patterns []PatternConfig `yaml:"patterns"`
}

// PatternConfig is one keyword, given as text or as hex bytes (exactly one).
type PatternConfig struct {
	ID   pattern.ID `yaml:"id"`
	Text string     `yaml:"text,omitempty"`
	Hex  string     `yaml:"hex,omitempty"`
}

// Default returns a config with default arena capacities, info logging and
// no types.
func Default() *Config {
	c := arena.DefaultCapacity()
	return &Config{
		Arena: ArenaConfig{States: c.States, Transitions: c.Transitions, Queue: c.QueueElems},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads the file at path, or at $LVMATCH_CONFIG when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: set %s or pass --config", ErrNoConfig, EnvVar)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a config document. Unknown fields are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks capacities, log level and pattern encodings. Pattern-set
// invariants (non-empty, distinct) are checked by Library.
func (c *Config) Validate() error {
	if c.Arena.States <= 0 || c.Arena.Transitions <= 0 || c.Arena.Queue <= 0 {
		return fmt.Errorf("%w: arena capacities must be positive (%+v)", ErrInvalid, c.Arena)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	for _, t := range c.Types {
		for i, p := range t.Patterns {
			if _, err := p.Bytes(); err != nil {
				return fmt.Errorf("%w: type %d pattern %d: %v", ErrInvalid, t.Type, i, err)
			}
		}
	}
	return nil
}

// Capacity returns the arena capacities.
func (c *Config) Capacity() arena.Capacity {
	return arena.Capacity{States: c.Arena.States, Transitions: c.Arena.Transitions, QueueElems: c.Arena.Queue}
}

// Library builds the immutable pattern library the config describes.
func (c *Config) Library() (*pattern.StaticLibrary, error) {
	sets := make([]pattern.Set, 0, len(c.Types))
	for _, t := range c.Types {
		ps := make([]pattern.Pattern, 0, len(t.Patterns))
		for _, p := range t.Patterns {
			b, err := p.Bytes()
			if err != nil {
				return nil, fmt.Errorf("%w: type %d id %d: %v", ErrInvalid, t.Type, p.ID, err)
			}
			ps = append(ps, pattern.Pattern{ID: p.ID, Bytes: b})
		}
		sets = append(sets, pattern.Set{Type: t.Type, Name: t.Name, Patterns: ps})
	}
	return pattern.NewLibrary(sets...)
}

// Bytes returns the keyword bytes.
func (p PatternConfig) Bytes() ([]byte, error) {
	switch {
	case p.Text != "" && p.Hex != "":
		return nil, errors.New("both text and hex set")
	case p.Hex != "":
		return hex.DecodeString(p.Hex)
	default:
		return []byte(p.Text), nil
	}
}

// SlogLevel parses Level. Empty means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalid, l.Level)
}
