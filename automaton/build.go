// SPDX-License-Identifier: MIT

package automaton

import (
	"fmt"

	"github.com/katalvlaran/lvmatch/arena"
	"github.com/katalvlaran/lvmatch/pattern"
)

// builder encapsulates the mutable state of one Build.
type builder struct {
	a     *Automaton
	lease *arena.Lease
	opts  Options
}

// Build compiles ps into an automaton for typ, charging every state and
// transition to lease. Once ps validates, the lease is sealed before Build
// returns, on success and on failure alike; its charges stay until the
// caller releases it.
//
// Returns the pattern validation errors (ErrEmptyPatternSet, ErrEmptyPattern,
// ErrDuplicatePattern) before touching the lease, ErrNilLease for a nil lease,
// arena.ErrStateExhausted or arena.ErrTransitionExhausted from insertion,
// arena.ErrQueueExhausted from the failure-link pass, or the context error.
// No partial automaton is ever returned.
func Build(lease *arena.Lease, typ pattern.Type, ps []pattern.Pattern, opts ...Option) (*Automaton, error) {
	if err := pattern.Validate(ps); err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, ErrNilLease
	}
	defer lease.Seal()

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{
		a: &Automaton{
			typ:         typ,
			patterns:    ps,
			fingerprint: pattern.Fingerprint(ps),
		},
		lease: lease,
		opts:  o,
	}
	b.reserve()

	if _, err := b.newState(Root, 0); err != nil {
		return nil, fmt.Errorf("automaton: root: %w", err)
	}
	if err := b.insertAll(); err != nil {
		return nil, err
	}
	if err := b.link(); err != nil {
		return nil, err
	}

	return b.a, nil
}

// Compile builds ps on a private pool sized to the trie bound, for callers
// that do not share an arena across automatons.
func Compile(ps []pattern.Pattern, opts ...Option) (*Automaton, error) {
	if err := pattern.Validate(ps); err != nil {
		return nil, err
	}
	bound := trieBound(ps)
	pool, err := arena.NewPool(arena.Capacity{States: bound, Transitions: bound, QueueElems: bound})
	if err != nil {
		return nil, err
	}
	lease, err := pool.Begin()
	if err != nil {
		return nil, err
	}
	a, err := Build(lease, 0, ps, opts...)
	if err != nil {
		lease.Release()
		return nil, err
	}
	return a, nil
}

// trieBound is the most states a trie over ps can need.
func trieBound(ps []pattern.Pattern) int {
	n := 1
	for _, p := range ps {
		n += len(p.Bytes)
	}
	return n
}

// reserve sizes the slabs once so insertion never reallocates them.
func (b *builder) reserve() {
	n := trieBound(b.a.patterns)
	states, transitions := b.lease.Remaining()
	b.a.states = make([]state, 0, min(n, states+1))
	b.a.edges = make([]edge, 0, min(n-1, transitions+1))
}

// newState charges and appends a state reached from parent on label.
func (b *builder) newState(parent StateID, label byte) (StateID, error) {
	if err := b.lease.TakeState(); err != nil {
		return Root, err
	}
	id := StateID(len(b.a.states))
	depth := int32(0)
	if id != Root {
		depth = b.a.states[parent].depth + 1
	}
	b.a.states = append(b.a.states, state{
		depth:  depth,
		parent: parent,
		label:  label,
		fail:   Root,
		first:  noEdge,
	})
	return id, nil
}

// extend allocates a new child of s on label together with the edge to it.
func (b *builder) extend(s StateID, label byte) (StateID, error) {
	t, err := b.newState(s, label)
	if err != nil {
		return Root, err
	}
	if err = b.lease.TakeTransition(); err != nil {
		return Root, err
	}
	a := b.a
	a.edges = append(a.edges, edge{label: label, target: t, next: a.states[s].first})
	a.states[s].first = int32(len(a.edges) - 1)
	if s == Root {
		a.root[label] = t
	}
	return t, nil
}

// insertAll adds every pattern to the trie, recording own outputs.
func (b *builder) insertAll() error {
	for i, p := range b.a.patterns {
		if err := b.opts.Ctx.Err(); err != nil {
			return fmt.Errorf("automaton: build canceled: %w", err)
		}
		terminal, err := b.insert(p)
		if err != nil {
			return fmt.Errorf("automaton: insert pattern %d (id %d): %w", i, p.ID, err)
		}
		st := &b.a.states[terminal]
		st.own = append(st.own, int32(i))
		b.opts.OnInsert(p, terminal)
	}
	return nil
}

// insert walks p's path from the root, extending it where edges are missing.
func (b *builder) insert(p pattern.Pattern) (StateID, error) {
	s := Root
	for _, c := range p.Bytes {
		if t, ok := b.a.Goto(s, c); ok {
			s = t
			continue
		}
		t, err := b.extend(s, c)
		if err != nil {
			return Root, err
		}
		s = t
	}
	return s, nil
}
