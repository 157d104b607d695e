// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/arena"
	"github.com/katalvlaran/lvmatch/config"
	"github.com/katalvlaran/lvmatch/pattern"
)

const sample = `
arena:
  states: 128
  transitions: 100
  queue: 16
log:
  level: debug
types:
  - type: 1
    name: greetings
    patterns:
      - {id: 1, text: he}
      - {id: 2, hex: "736865"}
  - type: 2
    name: binary
    patterns:
      - {id: 7, hex: "00ff"}
`

func TestParse(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, arena.Capacity{States: 128, Transitions: 100, QueueElems: 16}, cfg.Capacity())
	lvl, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lib, err := cfg.Library()
	require.NoError(t, err)
	assert.Equal(t, []pattern.Type{1, 2}, lib.Types())
	ps, err := lib.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "she", ps[1].String())
	ps, err = lib.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, ps[0].Bytes)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, arena.DefaultCapacity(), cfg.Capacity())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Types)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "arena:\n  stats: 3\n",
		"zero capacity":  "arena:\n  states: 0\n",
		"bad level":      "log:\n  level: loud\n",
		"bad hex":        "types:\n  - type: 1\n    patterns:\n      - {id: 1, hex: zz}\n",
		"text and hex":   "types:\n  - type: 1\n    patterns:\n      - {id: 1, text: a, hex: \"61\"}\n",
		"not a document": "arena: [1, 2\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
	_, err := config.Parse(strings.NewReader("log:\n  level: loud\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLibrary_InvalidSet(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader("types:\n  - type: 1\n    patterns:\n      - {id: 1, text: a}\n      - {id: 2, text: a}\n"))
	require.NoError(t, err)
	_, err = cfg.Library()
	assert.ErrorIs(t, err, pattern.ErrDuplicatePattern)

	cfg, err = config.Parse(strings.NewReader("types:\n  - type: 3\n    name: empty\n"))
	require.NoError(t, err)
	_, err = cfg.Library()
	assert.ErrorIs(t, err, pattern.ErrEmptyPatternSet)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Types, 2)

	t.Setenv(config.EnvVar, path)
	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Arena.States)

	t.Setenv(config.EnvVar, "")
	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrNoConfig)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
