// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/lvmatch/arena"
	"github.com/katalvlaran/lvmatch/automaton"
	"github.com/katalvlaran/lvmatch/pattern"
)

// Sentinel errors raised by the registry itself.
var (
	// ErrNilLibrary is returned by New without a pattern library.
	ErrNilLibrary = errors.New("registry: library is nil")

	// ErrNilPool is returned by New without an arena pool.
	ErrNilPool = errors.New("registry: pool is nil")

	// ErrNilInput is returned by Scan for a nil input buffer.
	ErrNilInput = errors.New("registry: input is nil")

	// ErrNilOutput is returned by Scan for a nil match destination.
	ErrNilOutput = errors.New("registry: output is nil")

	// ErrNotBuilt is returned when a type has no completed automaton.
	ErrNotBuilt = errors.New("registry: automaton not built")

	// ErrTeardownRequired is returned by Build for a type that is Ready or Failed.
	ErrTeardownRequired = errors.New("registry: teardown required before rebuild")
)

// Kind classifies an error by cause.
type Kind uint8

const (
	// KindUnknown is any error outside the registry's taxonomy.
	KindUnknown Kind = iota
	// KindInvalidArgument covers bad selectors, pattern sets and buffers.
	KindInvalidArgument
	// KindResourceExhausted covers arena capacity reached during a build.
	KindResourceExhausted
	// KindNotBuilt covers use of a type without a completed automaton.
	KindNotBuilt
	// KindConflict covers a rebuild attempted without teardown.
	KindConflict
	// KindCanceled covers a build stopped by its context.
	KindCanceled
)

var kindNames = [...]string{
	KindUnknown:           "unknown",
	KindInvalidArgument:   "invalid-argument",
	KindResourceExhausted: "resource-exhausted",
	KindNotBuilt:          "not-built",
	KindConflict:          "conflict",
	KindCanceled:          "canceled",
}

// String returns the kind's name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Code returns a stable status code for k; 0 means unknown.
func (k Kind) Code() int { return int(k) }

// KindOf classifies err by the sentinel it wraps. nil yields KindUnknown.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, arena.ErrStateExhausted),
		errors.Is(err, arena.ErrTransitionExhausted),
		errors.Is(err, arena.ErrQueueExhausted):
		return KindResourceExhausted
	case errors.Is(err, ErrNotBuilt):
		return KindNotBuilt
	case errors.Is(err, ErrTeardownRequired), errors.Is(err, arena.ErrBuildInProgress):
		return KindConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, pattern.ErrUnknownType),
		errors.Is(err, pattern.ErrEmptyPatternSet),
		errors.Is(err, pattern.ErrEmptyPattern),
		errors.Is(err, pattern.ErrDuplicatePattern),
		errors.Is(err, ErrNilInput),
		errors.Is(err, ErrNilOutput):
		return KindInvalidArgument
	}
	return KindUnknown
}

// Error is the structured result of a failed registry operation.
type Error struct {
	Op   string       // "build", "scan" or "teardown"
	Type pattern.Type // selector the operation targeted
	Kind Kind
	Err  error
}

func newError(op string, t pattern.Type, err error) *Error {
	return &Error{Op: op, Type: t, Kind: classify(err), Err: err}
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("registry: %s type %d [%s]: %v", e.Op, e.Type, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Status is the lifecycle position of one type.
type Status uint8

const (
	// Absent: no automaton and no arena charges.
	Absent Status = iota
	// Ready: a completed automaton is available for scans.
	Ready
	// Failed: the last build failed; its charges await Teardown.
	Failed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "absent"
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the structured logger. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithBuildOptions appends automaton options applied to every build.
func WithBuildOptions(opts ...automaton.Option) Option {
	return func(r *Registry) {
		r.buildOpts = append(r.buildOpts, opts...)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
