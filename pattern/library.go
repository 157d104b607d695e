// SPDX-License-Identifier: MIT

package pattern

import (
	"bytes"
	"fmt"
	"slices"
)

// StaticLibrary is an immutable Library over a fixed collection of Sets.
// It deep-copies its input, so callers may reuse their slices afterwards.
type StaticLibrary struct {
	sets  map[Type]Set
	types []Type
}

// NewLibrary validates every Set and returns an immutable library over them.
// Returns ErrDuplicateType when two sets share a Type, or the validation
// error of the first invalid set.
func NewLibrary(sets ...Set) (*StaticLibrary, error) {
	lib := &StaticLibrary{
		sets:  make(map[Type]Set, len(sets)),
		types: make([]Type, 0, len(sets)),
	}
	for _, s := range sets {
		if _, ok := lib.sets[s.Type]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateType, s.Type)
		}
		if err := Validate(s.Patterns); err != nil {
			return nil, fmt.Errorf("type %d (%s): %w", s.Type, s.Name, err)
		}
		lib.sets[s.Type] = Set{Type: s.Type, Name: s.Name, Patterns: clonePatterns(s.Patterns)}
		lib.types = append(lib.types, s.Type)
	}
	slices.Sort(lib.types)

	return lib, nil
}

// Lookup implements Library.
func (l *StaticLibrary) Lookup(t Type) ([]Pattern, error) {
	s, ok := l.sets[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}

	return s.Patterns, nil
}

// Set returns the registered Set for t.
func (l *StaticLibrary) Set(t Type) (Set, bool) {
	s, ok := l.sets[t]
	return s, ok
}

// Types returns every registered Type in ascending order.
func (l *StaticLibrary) Types() []Type {
	return slices.Clone(l.types)
}

// Validate checks the invariants an automaton build relies on: the set is
// non-empty, no pattern is empty, and no two patterns share bytes.
// Complexity: O(Σ|p|) time and space.
func Validate(ps []Pattern) error {
	if len(ps) == 0 {
		return ErrEmptyPatternSet
	}
	seen := make(map[string]int, len(ps))
	for i, p := range ps {
		if len(p.Bytes) == 0 {
			return fmt.Errorf("%w: index %d (id %d)", ErrEmptyPattern, i, p.ID)
		}
		if j, dup := seen[string(p.Bytes)]; dup {
			return fmt.Errorf("%w: %q at index %d and %d", ErrDuplicatePattern, p.Bytes, j, i)
		}
		seen[string(p.Bytes)] = i
	}

	return nil
}

// Equal reports whether two ordered pattern sets are identical.
func Equal(a, b []Pattern) bool {
	return slices.EqualFunc(a, b, func(x, y Pattern) bool {
		return x.ID == y.ID && bytes.Equal(x.Bytes, y.Bytes)
	})
}

func clonePatterns(ps []Pattern) []Pattern {
	out := make([]Pattern, len(ps))
	for i, p := range ps {
		out[i] = Pattern{ID: p.ID, Bytes: bytes.Clone(p.Bytes)}
	}
	return out
}
