// SPDX-License-Identifier: MIT

package automaton

import (
	"errors"
	"io"
)

// defaultReadBuffer is the chunk size ReadFrom uses when given no buffer.
const defaultReadBuffer = 32 << 10

// Scan runs input through a fresh cursor and appends every match to *dst in
// report order. dst may be nil when only the outcome matters.
// Returns true when at least one pattern occurs in input.
func (a *Automaton) Scan(input []byte, dst *Matches) bool {
	sc := Scanner{a: a}
	var n int
	if dst == nil {
		n = sc.Feed(input, nil)
	} else {
		n = sc.Feed(input, func(m Match) { *dst = append(*dst, m) })
	}
	return n > 0
}

// Contains reports whether any pattern occurs in input, stopping at the
// first match.
func (a *Automaton) Contains(input []byte) bool {
	s := Root
	for _, c := range input {
		s = a.Step(s, c)
		if len(a.states[s].out) > 0 {
			return true
		}
	}
	return false
}

// Scanner is a streaming cursor over an Automaton. Feeding a buffer in
// arbitrary chunks reports exactly the matches of feeding it whole, with
// offsets counted from the first byte fed since the last Reset.
// A Scanner is not safe for concurrent use; give each goroutine its own.
type Scanner struct {
	a      *Automaton
	state  StateID
	offset int64
}

// NewScanner returns a cursor positioned at the root, offset 0.
func (a *Automaton) NewScanner() *Scanner {
	return &Scanner{a: a}
}

// Feed advances the cursor over chunk, calling fn for each match in report
// order. fn may be nil. Returns the number of matches found in chunk.
func (sc *Scanner) Feed(chunk []byte, fn func(Match)) int {
	a := sc.a
	s := sc.state
	n := 0
	for i, c := range chunk {
		s = a.Step(s, c)
		out := a.states[s].out
		if len(out) == 0 {
			continue
		}
		n += len(out)
		if fn == nil {
			continue
		}
		end := sc.offset + int64(i) + 1
		for _, pi := range out {
			fn(a.match(pi, end))
		}
	}
	sc.state = s
	sc.offset += int64(len(chunk))
	return n
}

// ReadFrom feeds r to the cursor until EOF, reading into buf (a 32 KiB
// buffer is allocated when buf is empty). Returns the number of bytes fed
// and the first read error other than io.EOF.
func (sc *Scanner) ReadFrom(r io.Reader, buf []byte, fn func(Match)) (int64, error) {
	if len(buf) == 0 {
		buf = make([]byte, defaultReadBuffer)
	}
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sc.Feed(buf[:n], fn)
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Reset returns the cursor to the root at offset 0.
func (sc *Scanner) Reset() {
	sc.state = Root
	sc.offset = 0
}

// State returns the cursor's current state.
func (sc *Scanner) State() StateID { return sc.state }

// Offset returns the number of bytes fed since the last Reset.
func (sc *Scanner) Offset() int64 { return sc.offset }

// Automaton returns the automaton the cursor runs over.
func (sc *Scanner) Automaton() *Automaton { return sc.a }
