// SPDX-License-Identifier: MIT

// Package arena provides the fixed-capacity resource pool every automaton
// build draws from: a state budget, a transition budget, and one index FIFO
// used by the failure-link breadth-first pass.
//
// What
//
//   - Pool:  shared capacities, sized once, never grown.
//   - Lease: the charges of one build. Holding an open lease is the build slot;
//     only one lease may be open at a time.
//   - Queue: a ring of int32 state indices with QueueElems slots.
//
// Lifecycle
//
//	lease, err := pool.Begin()        // ErrBuildInProgress if another build is open
//	err = lease.TakeState()           // ErrStateExhausted at capacity
//	err = lease.TakeTransition()      // ErrTransitionExhausted at capacity
//	err = lease.Queue().Push(idx)     // ErrQueueExhausted when full
//	lease.Seal()                      // build done: queue reset, slot freed
//	lease.Release()                   // teardown: every charge returned
//
// Exhaustion is fatal to the build in progress but never leaks: Release on
// a failed lease returns the pool to the exact usage it had before Begin.
//
// Complexity
//
//   - Begin, Take*, Push, Pop, Seal, Release: O(1).
//   - NewPool: O(QueueElems) for the queue storage.
package arena
