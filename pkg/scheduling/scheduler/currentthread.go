package scheduler

import (
	"sync"
	"time"

	"github.com/vnykmshr/rxflow/internal/goid"
	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// trampolines maps a goroutine id to its active trampoline queue. A slot
// exists only while that goroutine is draining; nested schedule calls find
// it and enqueue instead of recursing.
var trampolines = struct {
	mu     sync.Mutex
	queues map[int64]*TimedQueue
}{queues: make(map[int64]*TimedQueue)}

// currentThreadScheduler flattens recursive scheduling into an iterative
// drain of a per-goroutine queue, bounding stack depth.
type currentThreadScheduler struct{}

// NewCurrentThread creates the trampoline scheduler. The first schedule
// call on a goroutine makes that goroutine the drainer: it executes queued
// actions in (due, insertion) order, sleeping until each due time, until
// the queue empties. Nested schedule calls from inside an action enqueue
// and return immediately.
func NewCurrentThread() Scheduler {
	return currentThreadScheduler{}
}

func (currentThreadScheduler) Now() time.Time {
	return time.Now()
}

func (currentThreadScheduler) ScheduleAbsolute(due time.Time, action Action) subscription.Subscription {
	if due.IsZero() {
		due = time.Now()
	}
	d := newDiscardableAction(action)

	id := goid.ID()
	trampolines.mu.Lock()
	q, active := trampolines.queues[id]
	if active {
		trampolines.mu.Unlock()
		q.Enqueue(due, d.run)
		return d.Subscription()
	}
	q = NewTimedQueue()
	trampolines.queues[id] = q
	trampolines.mu.Unlock()
	q.Enqueue(due, d.run)

	// This goroutine is now the drainer. The slot must be reset on every
	// exit path, including a panicking action, so a failure does not
	// poison subsequent scheduling on this goroutine.
	defer func() {
		trampolines.mu.Lock()
		delete(trampolines.queues, id)
		trampolines.mu.Unlock()
	}()

	for {
		run, dueAt, ok := q.Dequeue()
		if !ok {
			return d.Subscription()
		}
		if wait := time.Until(dueAt); wait > 0 {
			time.Sleep(wait)
		}
		run()
	}
}
