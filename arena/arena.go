// SPDX-License-Identifier: MIT

package arena

import (
	"fmt"
	"sync"
)

// Pool is the shared, fixed-capacity budget behind every automaton.
// All methods are safe for concurrent use; the queue it lends is not.
type Pool struct {
	mu          sync.Mutex
	capacity    Capacity
	states      int
	transitions int
	leases      int
	open        *Lease
	queue       *Queue
	queuePeak   int
}

// NewPool allocates a Pool with the given capacities.
// Returns ErrInvalidCapacity when any capacity is not positive.
func NewPool(c Capacity) (*Pool, error) {
	if c.States <= 0 || c.Transitions <= 0 || c.QueueElems <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidCapacity, c)
	}

	return &Pool{capacity: c, queue: newQueue(c.QueueElems)}, nil
}

// Begin opens a lease for one build. Only one lease may be open at a time;
// a second call returns ErrBuildInProgress until the first is sealed or released.
func (p *Pool) Begin() (*Lease, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open != nil {
		return nil, ErrBuildInProgress
	}
	l := &Lease{pool: p, state: leaseOpen}
	p.open = l
	p.leases++
	p.queue.Reset()

	return l, nil
}

// Usage returns a snapshot of the pool's accounting.
func (p *Pool) Usage() Usage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Usage{
		Capacity:    p.capacity,
		States:      p.states,
		Transitions: p.transitions,
		QueuePeak:   p.queuePeak,
		Leases:      p.leases,
		Building:    p.open != nil,
	}
}

// closeBuild frees the build slot. Callers hold p.mu.
func (p *Pool) closeBuild() {
	if p.queue.peak > p.queuePeak {
		p.queuePeak = p.queue.peak
	}
	p.queue.Reset()
	p.open = nil
}

// Capacity returns the pool's configured capacities.
func (p *Pool) Capacity() Capacity { return p.capacity }

type leaseState uint8

const (
	leaseOpen leaseState = iota
	leaseSealed
	leaseReleased
)

// Lease records the charges of one automaton against its Pool.
type Lease struct {
	pool        *Pool
	state       leaseState
	states      int
	transitions int
}

// TakeState charges one state. Returns ErrStateExhausted at capacity.
func (l *Lease) TakeState() error {
	p := l.pool
	p.mu.Lock()
	defer p.mu.Unlock()
	if l.state != leaseOpen {
		return ErrLeaseClosed
	}
	if p.states >= p.capacity.States {
		return fmt.Errorf("%w: %d in use", ErrStateExhausted, p.states)
	}
	p.states++
	l.states++
	return nil
}

// TakeTransition charges one transition. Returns ErrTransitionExhausted at capacity.
func (l *Lease) TakeTransition() error {
	p := l.pool
	p.mu.Lock()
	defer p.mu.Unlock()
	if l.state != leaseOpen {
		return ErrLeaseClosed
	}
	if p.transitions >= p.capacity.Transitions {
		return fmt.Errorf("%w: %d in use", ErrTransitionExhausted, p.transitions)
	}
	p.transitions++
	l.transitions++
	return nil
}

// Remaining returns how many states and transitions the pool can still charge.
func (l *Lease) Remaining() (states, transitions int) {
	p := l.pool
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capacity.States - p.states, p.capacity.Transitions - p.transitions
}

// Queue returns the pool's FIFO. Valid only while the lease is open.
func (l *Lease) Queue() *Queue { return l.pool.queue }

// Held returns the states and transitions charged to this lease.
func (l *Lease) Held() (states, transitions int) {
	l.pool.mu.Lock()
	defer l.pool.mu.Unlock()
	return l.states, l.transitions
}

// Seal ends the build phase: the queue is emptied and the build slot freed.
// Charges stay with the lease until Release. Sealing twice is a no-op.
func (l *Lease) Seal() {
	p := l.pool
	p.mu.Lock()
	defer p.mu.Unlock()
	if l.state != leaseOpen {
		return
	}
	l.state = leaseSealed
	p.closeBuild()
}

// Release returns every charge to the pool and closes the lease.
// It may follow Seal or replace it after a failed build. Releasing twice is a no-op.
func (l *Lease) Release() {
	p := l.pool
	p.mu.Lock()
	defer p.mu.Unlock()
	if l.state == leaseReleased {
		return
	}
	if p.open == l {
		p.closeBuild()
	}
	p.states -= l.states
	p.transitions -= l.transitions
	l.states, l.transitions = 0, 0
	l.state = leaseReleased
	p.leases--
}

// Released reports whether Release has been called.
func (l *Lease) Released() bool {
	l.pool.mu.Lock()
	defer l.pool.mu.Unlock()
	return l.state == leaseReleased
}
