// SPDX-License-Identifier: MIT

package arena

// Queue is a bounded FIFO of int32 indices stored in a ring.
// It is owned by a Pool and lent to the open lease; it is not safe for
// concurrent use.
type Queue struct {
	buf  []int32
	head int
	n    int
	peak int
}

func newQueue(capacity int) *Queue {
	return &Queue{buf: make([]int32, capacity)}
}

// Push appends idx at the tail. Returns ErrQueueExhausted when full.
func (q *Queue) Push(idx int32) error {
	if q.n == len(q.buf) {
		return ErrQueueExhausted
	}
	q.buf[(q.head+q.n)%len(q.buf)] = idx
	q.n++
	if q.n > q.peak {
		q.peak = q.n
	}
	return nil
}

// Pop removes and returns the head. ok is false when the queue is empty.
func (q *Queue) Pop() (idx int32, ok bool) {
	if q.n == 0 {
		return 0, false
	}
	idx = q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return idx, true
}

// Len returns the number of queued indices.
func (q *Queue) Len() int { return q.n }

// Cap returns the number of slots.
func (q *Queue) Cap() int { return len(q.buf) }

// Reset empties the queue.
func (q *Queue) Reset() {
	q.head, q.n = 0, 0
}
