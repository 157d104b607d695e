// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/katalvlaran/lvmatch/arena"
	"github.com/katalvlaran/lvmatch/automaton"
	"github.com/katalvlaran/lvmatch/pattern"
)

// entry is one type's slot: a ready automaton, or the lease of a failed build.
type entry struct {
	auto  *automaton.Automaton
	lease *arena.Lease
	err   error
}

// Registry maps pattern types to automatons built over one shared pool.
// It is safe for concurrent use.
type Registry struct {
	lib       pattern.Library
	pool      *arena.Pool
	log       *slog.Logger
	buildOpts []automaton.Option

	buildMu sync.Mutex // serializes builds
	mu      sync.RWMutex
	entries map[pattern.Type]*entry
}

// New returns an empty registry drawing patterns from lib and capacity from pool.
func New(lib pattern.Library, pool *arena.Pool, opts ...Option) (*Registry, error) {
	if lib == nil {
		return nil, ErrNilLibrary
	}
	if pool == nil {
		return nil, ErrNilPool
	}
	r := &Registry{
		lib:     lib,
		pool:    pool,
		log:     discardLogger(),
		entries: make(map[pattern.Type]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Build compiles the pattern set registered for t. The selector and the
// set are validated before any arena access. A failed build leaves t in
// the Failed status holding its charges until Teardown.
func (r *Registry) Build(ctx context.Context, t pattern.Type) error {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	if r.Status(t) != Absent {
		return newError("build", t, ErrTeardownRequired)
	}
	ps, err := r.lib.Lookup(t)
	if err != nil {
		return newError("build", t, err)
	}
	if err = pattern.Validate(ps); err != nil {
		return newError("build", t, err)
	}

	lease, err := r.pool.Begin()
	if err != nil {
		return newError("build", t, err)
	}
	started := time.Now()
	opts := append(slices.Clip(r.buildOpts), automaton.WithContext(ctx))
	a, err := automaton.Build(lease, t, ps, opts...)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.entries[t] = &entry{lease: lease, err: err}
		states, transitions := lease.Held()
		r.log.Warn("build failed",
			"type", t,
			"patterns", len(ps),
			"states_held", states,
			"transitions_held", transitions,
			"error", err,
		)
		return newError("build", t, err)
	}
	r.entries[t] = &entry{auto: a, lease: lease}
	r.log.Info("build complete",
		"type", t,
		"patterns", len(ps),
		"states", a.Len(),
		"edges", a.Edges(),
		"fingerprint", a.Fingerprint(),
		"duration", time.Since(started),
	)
	return nil
}

// Scan runs input through t's automaton, appending every match to *dst.
// Returns true when at least one pattern matched. A type the library does
// not know fails as an invalid argument, a known one without an automaton
// with ErrNotBuilt.
func (r *Registry) Scan(t pattern.Type, input []byte, dst *automaton.Matches) (bool, error) {
	if input == nil {
		return false, newError("scan", t, ErrNilInput)
	}
	if dst == nil {
		return false, newError("scan", t, ErrNilOutput)
	}
	a, err := r.ready("scan", t)
	if err != nil {
		return false, err
	}
	return a.Scan(input, dst), nil
}

// Automaton returns t's automaton for streaming use via NewScanner.
func (r *Registry) Automaton(t pattern.Type) (*automaton.Automaton, error) {
	return r.ready("lookup", t)
}

// Teardown releases t's arena charges, whether its build succeeded or failed.
func (r *Registry) Teardown(t pattern.Type) error {
	r.mu.Lock()
	e, ok := r.entries[t]
	if !ok {
		r.mu.Unlock()
		return r.absent("teardown", t)
	}
	delete(r.entries, t)
	r.mu.Unlock()

	states, transitions := e.lease.Held()
	e.lease.Release()
	r.log.Debug("teardown",
		"type", t,
		"states_released", states,
		"transitions_released", transitions,
		"failed_build", e.err != nil,
	)
	return nil
}

// TeardownAll releases every type, in ascending type order.
func (r *Registry) TeardownAll() {
	for _, t := range r.Types() {
		_ = r.Teardown(t)
	}
}

// Status returns t's lifecycle status.
func (r *Registry) Status(t pattern.Type) Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[t]
	switch {
	case !ok:
		return Absent
	case e.err != nil:
		return Failed
	default:
		return Ready
	}
}

// Types returns every Ready or Failed type in ascending order.
func (r *Registry) Types() []pattern.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ts := make([]pattern.Type, 0, len(r.entries))
	for t := range r.entries {
		ts = append(ts, t)
	}
	slices.Sort(ts)
	return ts
}

// Pool returns the arena pool backing the registry.
func (r *Registry) Pool() *arena.Pool { return r.pool }

func (r *Registry) ready(op string, t pattern.Type) (*automaton.Automaton, error) {
	r.mu.RLock()
	e, ok := r.entries[t]
	r.mu.RUnlock()
	if !ok {
		return nil, r.absent(op, t)
	}
	if e.auto == nil {
		return nil, newError(op, t, ErrNotBuilt)
	}
	return e.auto, nil
}

// absent reports why t has no entry: a selector the library does not know
// is an invalid argument, anything else was simply never built.
func (r *Registry) absent(op string, t pattern.Type) error {
	if _, err := r.lib.Lookup(t); errors.Is(err, pattern.ErrUnknownType) {
		return newError(op, t, err)
	}
	return newError(op, t, ErrNotBuilt)
}
