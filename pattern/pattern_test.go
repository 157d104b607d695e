// SPDX-License-Identifier: MIT

package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmatch/pattern"
)

func greetings() pattern.Set {
	return pattern.Set{
		Type: 7,
		Name: "greetings",
		Patterns: []pattern.Pattern{
			pattern.New(1, "he"),
			pattern.New(2, "she"),
			pattern.New(3, "his"),
			pattern.New(4, "hers"),
		},
	}
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, pattern.Validate(nil), pattern.ErrEmptyPatternSet)
	assert.ErrorIs(t, pattern.Validate([]pattern.Pattern{}), pattern.ErrEmptyPatternSet)

	err := pattern.Validate([]pattern.Pattern{pattern.New(1, "a"), {ID: 2}})
	assert.ErrorIs(t, err, pattern.ErrEmptyPattern)
	assert.Contains(t, err.Error(), "index 1")

	err = pattern.Validate([]pattern.Pattern{pattern.New(1, "ab"), pattern.New(2, "ab")})
	assert.ErrorIs(t, err, pattern.ErrDuplicatePattern)

	// Repeated IDs are the library owner's concern, not a validation failure.
	assert.NoError(t, pattern.Validate([]pattern.Pattern{pattern.New(1, "a"), pattern.New(1, "b")}))
	assert.NoError(t, pattern.Validate(greetings().Patterns))
}

func TestNewLibrary_Lookup(t *testing.T) {
	lib, err := pattern.NewLibrary(greetings(), pattern.Set{Type: 2, Patterns: []pattern.Pattern{pattern.New(9, "x")}})
	require.NoError(t, err)

	ps, err := lib.Lookup(7)
	require.NoError(t, err)
	require.Len(t, ps, 4)
	assert.Equal(t, "hers", ps[3].String())
	assert.Equal(t, []pattern.Type{2, 7}, lib.Types())

	s, ok := lib.Set(7)
	require.True(t, ok)
	assert.Equal(t, "greetings", s.Name)

	_, err = lib.Lookup(99)
	assert.ErrorIs(t, err, pattern.ErrUnknownType)
}

func TestNewLibrary_Errors(t *testing.T) {
	_, err := pattern.NewLibrary(greetings(), greetings())
	assert.ErrorIs(t, err, pattern.ErrDuplicateType)

	_, err = pattern.NewLibrary(pattern.Set{Type: 1})
	assert.ErrorIs(t, err, pattern.ErrEmptyPatternSet)
}

func TestNewLibrary_CopiesInput(t *testing.T) {
	s := greetings()
	lib, err := pattern.NewLibrary(s)
	require.NoError(t, err)

	s.Patterns[0].Bytes[0] = 'X'
	ps, err := lib.Lookup(7)
	require.NoError(t, err)
	assert.Equal(t, "he", ps[0].String())
}

func TestFingerprint(t *testing.T) {
	a := greetings().Patterns
	b := greetings().Patterns
	assert.Equal(t, pattern.Fingerprint(a), pattern.Fingerprint(b))
	assert.Len(t, pattern.Fingerprint(a), 64)
	assert.True(t, pattern.Equal(a, b))

	// "ab"+"c" and "a"+"bc" must not collide.
	x := []pattern.Pattern{pattern.New(1, "ab"), pattern.New(1, "c")}
	y := []pattern.Pattern{pattern.New(1, "a"), pattern.New(1, "bc")}
	assert.NotEqual(t, pattern.Fingerprint(x), pattern.Fingerprint(y))

	// Order matters.
	b[0], b[1] = b[1], b[0]
	assert.NotEqual(t, pattern.Fingerprint(a), pattern.Fingerprint(b))
	assert.False(t, pattern.Equal(a, b))
}
