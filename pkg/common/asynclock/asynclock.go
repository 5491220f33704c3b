// Package asynclock provides a FIFO queue of deferred actions with
// single-entry execution.
//
// Unlike a mutex, waiting never blocks: if the lock is busy the action is
// queued and executed later by whichever goroutine currently holds the
// lock. The goroutine that finds the lock idle becomes the drainer and runs
// queued actions, including any enqueued while it was draining. This bounds
// stack depth under reentrancy and keeps dispatch fair.
package asynclock

import (
	"sync"

	"github.com/vnykmshr/rxflow/pkg/common/errors"
)

// Lock is a cooperative mutual-exclusion queue. The zero value is not
// usable; create one with New.
type Lock struct {
	mu         sync.Mutex
	queue      []func()
	isAcquired bool
	hasFaulted bool
}

// New creates an idle lock.
func New() *Lock {
	return &Lock{}
}

// Wait schedules action under the lock. Exactly one action runs at a time;
// actions run in enqueue order. If the lock is idle the calling goroutine
// runs action inline and then drains the queue. If the lock has faulted the
// action is dropped.
func (l *Lock) Wait(action func()) {
	l.mu.Lock()
	if l.hasFaulted {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, action)
	if l.isAcquired {
		l.mu.Unlock()
		return
	}
	l.isAcquired = true
	l.mu.Unlock()

	l.drain()
}

// drain pops and runs queued actions until the queue is empty. The lock's
// mutex is released while each action runs.
func (l *Lock) drain() {
	for {
		l.mu.Lock()
		if l.hasFaulted || len(l.queue) == 0 {
			l.isAcquired = false
			l.queue = nil
			l.mu.Unlock()
			return
		}
		next := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		next()
	}
}

// Dispose faults the lock: pending actions are discarded and all future
// Wait calls become no-ops. Safe to call from inside an action.
func (l *Lock) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hasFaulted = true
	l.queue = nil
}

// Err reports why the lock no longer accepts work: nil while live,
// errors.ErrDisposed once the lock has faulted.
func (l *Lock) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hasFaulted {
		return errors.ErrDisposed
	}
	return nil
}
