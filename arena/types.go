// SPDX-License-Identifier: MIT

package arena

import "errors"

// Sentinel errors for pool construction and allocation.
var (
	// ErrInvalidCapacity is returned when a Capacity field is not positive.
	ErrInvalidCapacity = errors.New("arena: capacity must be positive")

	// ErrBuildInProgress is returned by Begin while another lease is open.
	ErrBuildInProgress = errors.New("arena: build already in progress")

	// ErrLeaseClosed is returned when allocating from a sealed or released lease.
	ErrLeaseClosed = errors.New("arena: lease is not open")

	// ErrStateExhausted is returned when the state capacity is reached.
	ErrStateExhausted = errors.New("arena: state capacity exhausted")

	// ErrTransitionExhausted is returned when the transition capacity is reached.
	ErrTransitionExhausted = errors.New("arena: transition capacity exhausted")

	// ErrQueueExhausted is returned when the failure-link queue is full.
	ErrQueueExhausted = errors.New("arena: queue capacity exhausted")
)

// Capacity sizes a Pool.
type Capacity struct {
	// States is the total number of automaton states across all live automatons.
	States int

	// Transitions is the total number of explicit trie edges across all live automatons.
	Transitions int

	// QueueElems is the number of simultaneously queued states during one build.
	QueueElems int
}

// DefaultCapacity returns a Capacity suited to a few thousand short keywords.
func DefaultCapacity() Capacity {
	return Capacity{States: 1 << 16, Transitions: 1 << 16, QueueElems: 1 << 14}
}

// Usage is a snapshot of a Pool's accounting.
type Usage struct {
	Capacity    Capacity
	States      int  // states charged to live leases
	Transitions int  // transitions charged to live leases
	QueuePeak   int  // highest queue length of any finished build
	Leases      int  // leases not yet released
	Building    bool // a lease is open
}
