// SPDX-License-Identifier: MIT

package automaton

import (
	"context"
	"errors"

	"github.com/katalvlaran/lvmatch/pattern"
)

// Sentinel errors for automaton construction and inspection.
var (
	// ErrNilLease is returned when Build is called without an arena lease.
	ErrNilLease = errors.New("automaton: lease is nil")

	// ErrStateOutOfRange is returned by Inspect for an unknown StateID.
	ErrStateOutOfRange = errors.New("automaton: state out of range")
)

// StateID addresses a state by its index in the automaton's state slab.
type StateID int32

// Root is the start state of every automaton.
const Root StateID = 0

// noEdge terminates a state's edge list.
const noEdge int32 = -1

// Option configures a Build via functional arguments.
type Option func(*Options)

// Options holds build parameters and hooks.
type Options struct {
	// Ctx allows cancellation; it is checked once per inserted pattern and
	// once per state dequeued by the failure-link pass.
	Ctx context.Context

	// OnInsert is called after a pattern has been inserted, with the state
	// its path terminates at.
	OnInsert func(p pattern.Pattern, terminal StateID)

	// OnLink is called as each non-root state's failure link is fixed.
	OnLink func(s, fail StateID, depth int)
}

// DefaultOptions returns Options with a background context and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnInsert: func(pattern.Pattern, StateID) {},
		OnLink:   func(StateID, StateID, int) {},
	}
}

// WithContext sets a context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnInsert registers a hook run after each pattern insertion.
func WithOnInsert(fn func(p pattern.Pattern, terminal StateID)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnInsert = fn
		}
	}
}

// WithOnLink registers a hook run as each failure link is fixed.
func WithOnLink(fn func(s, fail StateID, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnLink = fn
		}
	}
}

// Match is one occurrence of a pattern in scanned input.
type Match struct {
	// Pattern is the matched pattern's identifier.
	Pattern pattern.ID

	// Index is the pattern's position in the ordered set the automaton was built from.
	Index int

	// Start and End delimit the occurrence as [Start, End) in input offsets.
	Start, End int64
}

// Len returns the occurrence length.
func (m Match) Len() int64 { return m.End - m.Start }

// Matches is the ordered result of a scan: ascending End, and for one End
// longest pattern first.
type Matches []Match

// IDs returns the pattern identifiers in report order.
func (ms Matches) IDs() []pattern.ID {
	ids := make([]pattern.ID, len(ms))
	for i, m := range ms {
		ids[i] = m.Pattern
	}
	return ids
}

// StateInfo describes one state for inspection and dumps.
type StateInfo struct {
	ID      StateID
	Depth   int
	Fail    StateID
	Path    []byte       // bytes spelling the state from the root
	Own     []pattern.ID // patterns terminating exactly here
	Outputs []pattern.ID // Own plus those inherited along the failure chain
}
