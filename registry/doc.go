// SPDX-License-Identifier: MIT

// Package registry coordinates one automaton per pattern type over a shared
// arena.Pool: Build compiles a type's pattern set, Scan runs input against
// it, Teardown returns its arena capacity.
//
// Lifecycle per type
//
//	Absent ──Build ok──▶ Ready ──Teardown──▶ Absent
//	   │                   ▲
//	   └──Build failed──▶ Failed ──Teardown──▶ Absent
//
// A Failed type keeps its arena charges until Teardown, and a type in
// either Ready or Failed must be torn down before it can be rebuilt
// (ErrTeardownRequired). Scans against Absent or Failed types fail with
// ErrNotBuilt without touching any automaton.
//
// Errors
//
//	Every failure is an *Error carrying the operation, the type and a Kind:
//	  InvalidArgument   unknown type, invalid pattern set, nil input or output
//	  ResourceExhausted state, transition or queue capacity reached
//	  NotBuilt          scan or teardown of a type without an automaton
//	  Conflict          rebuild without teardown
//	  Canceled          build context done
//	The underlying sentinel stays reachable through errors.Is, so the three
//	exhaustion sites remain distinguishable.
//
// Concurrency
//
//	Builds are serialized. Scans only take a read lock to fetch the
//	automaton and then run lock-free. Tearing down a type while scans
//	against it are running is the caller's responsibility to avoid; an
//	in-flight scan still completes against the unchanged automaton.
package registry
