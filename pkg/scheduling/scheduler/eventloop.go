package scheduler

import (
	"sync"
	"time"

	"github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// EventLoop runs actions one at a time on a single dedicated goroutine.
// Delays are cooperative: the loop waits on a timer instead of blocking a
// caller, and an earlier arrival wakes it to re-examine the queue.
type EventLoop struct {
	queue *TimedQueue
	wake  chan struct{}
	done  chan struct{}
	once  sync.Once

	stopped chan struct{}
}

// NewEventLoop creates an event-loop scheduler and starts its loop.
func NewEventLoop() *EventLoop {
	l := &EventLoop{
		queue:   NewTimedQueue(),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

// Now returns the wall-clock time.
func (l *EventLoop) Now() time.Time {
	return time.Now()
}

// ScheduleAbsolute enqueues action for the loop goroutine. Work handed to
// a stopped loop is dropped and the empty subscription is returned; Err
// tells the two apart.
func (l *EventLoop) ScheduleAbsolute(due time.Time, action Action) subscription.Subscription {
	select {
	case <-l.done:
		return subscription.Empty()
	default:
	}

	if due.IsZero() {
		due = time.Now()
	}
	d := newDiscardableAction(action)
	l.queue.Enqueue(due, d.run)

	// Coalesced wake-up; the loop re-peeks after every signal.
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return d.Subscription()
}

// Stop shuts the loop down. Pending actions are discarded. The returned
// channel closes once the loop goroutine has exited.
func (l *EventLoop) Stop() <-chan struct{} {
	l.once.Do(func() { close(l.done) })
	return l.stopped
}

// Err reports why the loop no longer accepts work: nil while running,
// errors.ErrSchedulerStopped after Stop.
func (l *EventLoop) Err() error {
	select {
	case <-l.done:
		return errors.ErrSchedulerStopped
	default:
		return nil
	}
}

func (l *EventLoop) run() {
	defer close(l.stopped)

	for {
		due, ok := l.queue.Peek()
		if !ok {
			select {
			case <-l.wake:
				continue
			case <-l.done:
				return
			}
		}

		if wait := time.Until(due); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-l.wake:
				// An earlier action may have arrived; re-examine the queue.
			case <-l.done:
				timer.Stop()
				return
			}
			timer.Stop()
			continue
		}

		run, _, ok := l.queue.Dequeue()
		if !ok {
			continue
		}
		// Contain the failure so one panicking action does not take the
		// loop down with it.
		dispatch(run)
	}
}
