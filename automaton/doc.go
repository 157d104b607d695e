// SPDX-License-Identifier: MIT

// Package automaton builds and runs an Aho-Corasick keyword automaton over
// arena-backed, index-addressed states.
//
// What
//
//   - Build inserts every pattern of one type into a goto-trie rooted at
//     state 0, then runs a breadth-first pass that fixes each state's failure
//     link and finishes its output set.
//   - The result is immutable. Step(s, b) is the total transition function:
//     explicit trie edges first, failure fallback otherwise, with the root
//     looping to itself on any byte it has no edge for.
//   - Scan, Contains and Scanner stream input one byte per step and report
//     every occurrence of every pattern, overlapping ones included.
//
// Match offsets
//
//	End is exclusive: the offset just past the last matched byte.
//	Scanning "ushers" for {"he","she","his","hers"} yields
//	  she [1,4)  he [2,4)  hers [2,6)
//	Matches sharing an End are reported longest first (failure-chain order).
//
// Invariants (checked by the tests)
//
//   - Depth(Root) == 0; a child's depth is its parent's plus one.
//   - Depth(Fail(s)) < Depth(s) for every s != Root; Fail(Root) == Root.
//   - Outputs(s) = own(s) ∪ Outputs(Fail(s)), computed once at build time.
//
// Complexity (n = Σ|p|, m = input length, z = matches)
//
//   - Build: O(n) states and edges, O(n·σ_s) where σ_s is the mean fan-out
//     walked per failure step.
//   - Scan:  O(m + z); no per-byte allocation. The root uses a dense table.
//
// Concurrency
//
//	Build must not run concurrently on the same arena.Pool (the pool enforces
//	this). A built Automaton is read-only and may be scanned from any number
//	of goroutines, each with its own Scanner.
//
// Usage
//
//	a, err := automaton.Compile([]pattern.Pattern{pattern.New(1, "he"), pattern.New(2, "she")})
//	var ms automaton.Matches
//	if a.Scan([]byte("ushers"), &ms) {
//	    // ms holds {2 [1,4)} {1 [2,4)}
//	}
package automaton
