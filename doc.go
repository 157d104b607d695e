// SPDX-License-Identifier: MIT

// Package lvmatch is a multi-keyword matcher: build an Aho-Corasick
// automaton once per keyword set, then scan any number of byte streams in
// a single linear pass, reporting every occurrence of every keyword.
//
// What is inside
//
//	• Fixed-capacity arena: states, transitions and the build queue are
//	  drawn from one pre-sized pool and returned on teardown.
//	• Index-addressed automaton: goto trie, breadth-first failure links,
//	  output sets finished at build time; immutable afterwards.
//	• Streaming scanners: chunk-insensitive, allocation-free per byte,
//	  safe to run concurrently over one automaton.
//	• Registry: one automaton per type selector with an explicit
//	  build / scan / teardown lifecycle and structured error kinds.
//
// Packages:
//
//	pattern/     keyword sets keyed by type, validation, fingerprints
//	arena/       fixed-capacity pool, leases, index FIFO
//	automaton/   trie builder, failure-link pass, Automaton, Scanner
//	registry/    type-keyed lifecycle over a shared pool
//	config/      YAML configuration (arena sizes, log level, keyword sets)
//	report/      text, JSON-lines and CBOR match encodings
//	cmd/lvmatch  command-line scanner
//
// Quick example:
//
//	a, _ := automaton.Compile([]pattern.Pattern{pattern.New(1, "he"), pattern.New(2, "she")})
//	var ms automaton.Matches
//	a.Scan([]byte("ushers"), &ms) // she [1,4), he [2,4)
//
//	go get github.com/katalvlaran/lvmatch
package lvmatch
