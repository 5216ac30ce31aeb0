// Package sched provides a virtual clock with a queue of delayed callbacks.
//
// Game phases are chained through Queue.After instead of timers. The queue
// never runs anything on its own: the owner advances virtual time, either
// from a frame tick in the terminal front end or directly in tests, and due
// callbacks run synchronously on the caller's goroutine.
package sched

import (
	"sort"
	"time"
)

type task struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// Queue is a virtual clock and a list of callbacks waiting for it.
// It is not safe for concurrent use.
type Queue struct {
	origin time.Time
	now    time.Duration
	seq    uint64
	tasks  []task
}

// NewQueue creates a queue whose clock starts at origin.
func NewQueue(origin time.Time) *Queue {
	return &Queue{origin: origin}
}

// Now returns the current virtual time.
func (q *Queue) Now() time.Time {
	return q.origin.Add(q.now)
}

// Elapsed returns how far the clock has advanced since creation.
func (q *Queue) Elapsed() time.Duration {
	return q.now
}

// Pending returns the number of callbacks not yet run.
func (q *Queue) Pending() int {
	return len(q.tasks)
}

// After schedules fn to run once the clock has advanced by d.
// Callbacks due at the same instant run in scheduling order.
func (q *Queue) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	q.seq++
	t := task{at: q.now + d, seq: q.seq, fn: fn}

	i := sort.Search(len(q.tasks), func(i int) bool {
		other := q.tasks[i]
		return other.at > t.at || (other.at == t.at && other.seq > t.seq)
	})
	q.tasks = append(q.tasks, task{})
	copy(q.tasks[i+1:], q.tasks[i:])
	q.tasks[i] = t
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way, including ones scheduled by callbacks inside the window.
// Returns the number of callbacks run.
func (q *Queue) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := q.now + d
	ran := 0
	for len(q.tasks) > 0 && q.tasks[0].at <= target {
		t := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.now = t.at
		t.fn()
		ran++
	}
	q.now = target
	return ran
}

// Flush runs all pending callbacks, jumping the clock to each one.
// limit bounds the number of callbacks run, guarding against callbacks that
// keep rescheduling themselves.
func (q *Queue) Flush(limit int) int {
	ran := 0
	for len(q.tasks) > 0 && ran < limit {
		next := q.tasks[0].at
		ran += q.Advance(next - q.now)
	}
	return ran
}
