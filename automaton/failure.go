// SPDX-License-Identifier: MIT

package automaton

import (
	"fmt"

	"github.com/katalvlaran/lvmatch/arena"
)

// link runs the failure-link pass: a breadth-first walk from the root's
// children, each state's link derived from its parent's. The root never
// enters the queue.
func (b *builder) link() error {
	q := b.lease.Queue()
	a := b.a

	// Depth-1 states fail to the root.
	for _, c := range a.root {
		if c == Root {
			continue
		}
		b.setFail(c, Root)
		if err := b.enqueue(q, c); err != nil {
			return err
		}
	}

	for q.Len() > 0 {
		if err := b.opts.Ctx.Err(); err != nil {
			return fmt.Errorf("automaton: build canceled: %w", err)
		}
		idx, _ := q.Pop()
		s := StateID(idx)
		for e := a.states[s].first; e != noEdge; e = a.edges[e].next {
			c := a.edges[e].target
			// fail(s) is final, so Step follows the failure chain from it
			// until some state offers an edge on the label.
			b.setFail(c, a.Step(a.states[s].fail, a.edges[e].label))
			if err := b.enqueue(q, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) enqueue(q *arena.Queue, s StateID) error {
	if err := q.Push(int32(s)); err != nil {
		return fmt.Errorf("automaton: failure links at state %d (depth %d): %w", s, b.a.states[s].depth, err)
	}
	return nil
}

// setFail fixes the failure link of c and finishes its output set.
// f is shallower than c, so out(f) is already final.
func (b *builder) setFail(c, f StateID) {
	st := &b.a.states[c]
	st.fail = f
	inherited := b.a.states[f].out
	switch {
	case len(st.own) == 0:
		st.out = inherited
	case len(inherited) == 0:
		st.out = st.own
	default:
		out := make([]int32, 0, len(st.own)+len(inherited))
		out = append(out, st.own...)
		st.out = append(out, inherited...)
	}
	b.opts.OnLink(c, f, int(st.depth))
}
