// SPDX-License-Identifier: MIT

// Package pattern provides the keyword library consumed by the automaton
// builder: identifiers, ordered pattern sets keyed by a type selector, and
// validation of those sets.
//
// What
//
//   - Pattern: an identifier plus an immutable, non-empty byte sequence.
//   - Set:     the ordered patterns registered under one Type.
//   - Library: read-only lookup of a Set's patterns by Type.
//   - StaticLibrary: an immutable in-memory Library.
//   - Fingerprint: a BLAKE3 digest of an ordered pattern set, stable across runs.
//
// Invariants
//
//   - Patterns inside one Set are pairwise distinct as byte sequences.
//   - A Set is never empty.
//   - Identifier uniqueness is the caller's concern; the library does not
//     reject repeated IDs.
//
// Usage
//
//	lib, err := pattern.NewLibrary(pattern.Set{
//	    Type: 1,
//	    Name: "greetings",
//	    Patterns: []pattern.Pattern{pattern.New(1, "he"), pattern.New(2, "she")},
//	})
//	if err != nil {
//	    // ErrDuplicateType, ErrEmptyPatternSet, ErrEmptyPattern or ErrDuplicatePattern
//	}
//	ps, err := lib.Lookup(1)
package pattern
