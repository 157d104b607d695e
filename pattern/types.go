// SPDX-License-Identifier: MIT

package pattern

import (
	"errors"
	"strconv"
)

// Sentinel errors for pattern sets and libraries.
var (
	// ErrUnknownType is returned when a Type has no registered Set.
	ErrUnknownType = errors.New("pattern: unknown type")

	// ErrDuplicateType is returned when two Sets share one Type.
	ErrDuplicateType = errors.New("pattern: duplicate type")

	// ErrEmptyPatternSet is returned for a Set without patterns.
	ErrEmptyPatternSet = errors.New("pattern: empty pattern set")

	// ErrEmptyPattern is returned for a zero-length pattern.
	ErrEmptyPattern = errors.New("pattern: empty pattern")

	// ErrDuplicatePattern is returned when two patterns in a Set have equal bytes.
	ErrDuplicatePattern = errors.New("pattern: duplicate pattern")
)

// ID identifies a pattern inside its Set.
type ID int32

// Type selects one Set in a Library, and therefore one automaton.
type Type int32

// String returns the decimal form of t.
func (t Type) String() string { return strconv.FormatInt(int64(t), 10) }

// Pattern is one keyword to recognize.
type Pattern struct {
	// ID is reported back in every match of this pattern.
	ID ID

	// Bytes is the keyword itself. It must not be modified once the pattern
	// has been handed to a Library or an automaton.
	Bytes []byte
}

// New returns a Pattern for the given id and text.
func New(id ID, text string) Pattern {
	return Pattern{ID: id, Bytes: []byte(text)}
}

// Len returns the pattern length in bytes.
func (p Pattern) Len() int { return len(p.Bytes) }

// String returns the pattern bytes as a string.
func (p Pattern) String() string { return string(p.Bytes) }

// Set is the ordered list of patterns registered under one Type.
type Set struct {
	Type     Type
	Name     string
	Patterns []Pattern
}

// Library is the read-only lookup the automaton builder consumes.
// Implementations must be safe for concurrent use.
type Library interface {
	// Lookup returns the ordered patterns registered for t, or
	// ErrUnknownType when t has none. Callers must not mutate the result.
	Lookup(t Type) ([]Pattern, error)
}
