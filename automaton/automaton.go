// SPDX-License-Identifier: MIT

package automaton

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvmatch/pattern"
)

// state is one slab entry. Edges form a singly linked list through the
// automaton's edge slab, headed by first.
type state struct {
	depth  int32
	parent StateID
	label  byte
	fail   StateID
	first  int32
	own    []int32 // pattern indices terminating here
	out    []int32 // own followed by out(fail)
}

// edge is one explicit goto transition.
type edge struct {
	label  byte
	target StateID
	next   int32
}

// Automaton is the immutable result of Build.
type Automaton struct {
	typ         pattern.Type
	patterns    []pattern.Pattern
	states      []state
	edges       []edge
	root        [256]StateID // root goto table; Root means the implicit self-loop
	fingerprint string
}

// Type returns the type selector the automaton was built for.
func (a *Automaton) Type() pattern.Type { return a.typ }

// Len returns the number of states, the root included.
func (a *Automaton) Len() int { return len(a.states) }

// Edges returns the number of explicit goto transitions.
func (a *Automaton) Edges() int { return len(a.edges) }

// Patterns returns the ordered pattern set. Callers must not mutate it.
func (a *Automaton) Patterns() []pattern.Pattern { return a.patterns }

// Fingerprint returns pattern.Fingerprint of the set the automaton was built from.
func (a *Automaton) Fingerprint() string { return a.fingerprint }

// Valid reports whether s addresses a state of a.
func (a *Automaton) Valid(s StateID) bool { return s >= 0 && int(s) < len(a.states) }

// Depth returns the length of the trie path spelling s. s must be Valid.
func (a *Automaton) Depth(s StateID) int { return int(a.states[s].depth) }

// Fail returns the failure link of s. s must be Valid.
func (a *Automaton) Fail(s StateID) StateID { return a.states[s].fail }

// Outputs returns the identifiers of every pattern recognized on entering s.
// s must be Valid.
func (a *Automaton) Outputs(s StateID) []pattern.ID {
	return a.ids(a.states[s].out)
}

// Goto returns the explicit trie transition of s on b, if any.
// The root's implicit self-loop is not an explicit transition.
func (a *Automaton) Goto(s StateID, b byte) (StateID, bool) {
	if s == Root {
		t := a.root[b]
		return t, t != Root
	}
	for e := a.states[s].first; e != noEdge; e = a.edges[e].next {
		if a.edges[e].label == b {
			return a.edges[e].target, true
		}
	}
	return Root, false
}

// Step returns the successor of s on b under the total transition function:
// the explicit edge if present, otherwise the first explicit edge on b found
// along the failure chain, otherwise Root. s must be Valid.
func (a *Automaton) Step(s StateID, b byte) StateID {
	for {
		if t, ok := a.Goto(s, b); ok {
			return t
		}
		if s == Root {
			return Root
		}
		s = a.states[s].fail
	}
}

// Inspect returns a description of s, including the path spelling it.
func (a *Automaton) Inspect(s StateID) (StateInfo, error) {
	if !a.Valid(s) {
		return StateInfo{}, fmt.Errorf("%w: %d (len %d)", ErrStateOutOfRange, s, len(a.states))
	}
	st := &a.states[s]
	path := make([]byte, st.depth)
	for cur, i := s, int(st.depth)-1; cur != Root; cur, i = a.states[cur].parent, i-1 {
		path[i] = a.states[cur].label
	}

	return StateInfo{
		ID:      s,
		Depth:   int(st.depth),
		Fail:    st.fail,
		Path:    path,
		Own:     a.ids(st.own),
		Outputs: a.ids(st.out),
	}, nil
}

// children returns the explicit successors of s in ascending label order.
func (a *Automaton) children(s StateID) []StateID {
	var kids []StateID
	if s == Root {
		for _, t := range a.root {
			if t != Root {
				kids = append(kids, t)
			}
		}
		return kids
	}
	for e := a.states[s].first; e != noEdge; e = a.edges[e].next {
		kids = append(kids, a.edges[e].target)
	}
	slices.SortFunc(kids, func(x, y StateID) int {
		return int(a.states[x].label) - int(a.states[y].label)
	})
	return kids
}

// Walk visits every state depth-first in pre-order, children in ascending
// byte order, starting at Root. Returning an error from fn stops the walk
// and propagates that error.
func (a *Automaton) Walk(fn func(StateInfo) error) error {
	stack := []StateID{Root}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info, err := a.Inspect(s)
		if err != nil {
			return err
		}
		if err = fn(info); err != nil {
			return fmt.Errorf("automaton: walk aborted at state %d: %w", s, err)
		}
		kids := a.children(s)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return nil
}

func (a *Automaton) ids(idx []int32) []pattern.ID {
	if len(idx) == 0 {
		return nil
	}
	out := make([]pattern.ID, len(idx))
	for i, pi := range idx {
		out[i] = a.patterns[pi].ID
	}
	return out
}

func (a *Automaton) match(pi int32, end int64) Match {
	return Match{
		Pattern: a.patterns[pi].ID,
		Index:   int(pi),
		Start:   end - int64(len(a.patterns[pi].Bytes)),
		End:     end,
	}
}
