package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// Action is a unit of schedulable work. It returns a subscription
// representing the work it left in flight; return subscription.Empty()
// when there is none. The returned subscription is canceled when the
// handle for the scheduled action is unsubscribed after dispatch.
type Action func() subscription.Subscription

// Scheduler executes actions at points in time, cancelably. Every
// scheduler provides two primitives — a clock and absolute-time
// scheduling — and the package derives relative, recursive, periodic and
// cron scheduling from them.
type Scheduler interface {
	// Now returns the scheduler's current time. For the test scheduler
	// this is virtual time, decoupled from the wall clock.
	Now() time.Time

	// ScheduleAbsolute runs action once the scheduler's clock reaches due.
	// A zero due time means the action is due immediately. The returned
	// subscription cancels the action: before dispatch it prevents the
	// action from ever running, after dispatch it cancels the action's
	// in-flight work.
	ScheduleAbsolute(due time.Time, action Action) subscription.Subscription
}

// Schedule runs action as soon as the scheduler allows.
func Schedule(s Scheduler, action Action) subscription.Subscription {
	return s.ScheduleAbsolute(time.Time{}, action)
}

// ScheduleRelative runs action after delay has elapsed on s's clock.
func ScheduleRelative(s Scheduler, delay time.Duration, action Action) subscription.Subscription {
	return s.ScheduleAbsolute(s.Now().Add(delay), action)
}

// ScheduleRecursive runs cont, handing it a reschedule thunk that queues
// the next invocation. At most one invocation is scheduled at a time;
// unsubscribing the returned handle halts the recursion within one step.
func ScheduleRecursive(s Scheduler, cont func(reschedule func()) subscription.Subscription) subscription.Subscription {
	child := subscription.NewMultipleAssignment()
	parent := subscription.NewComposite(child)

	var wrapped Action
	wrapped = func() subscription.Subscription {
		return cont(func() {
			if parent.IsUnsubscribed() {
				return
			}
			// Overwriting the slot implicitly cancels the previous child.
			child.Set(Schedule(s, wrapped))
		})
	}
	child.Set(Schedule(s, wrapped))
	return parent
}

// SchedulePeriodically runs work after initialDelay and then once per
// period. The period is measured from iteration start, so an iteration
// that overruns makes the next one due immediately, but iterations are
// never doubled to catch up. Unsubscribing cancels the latest scheduled
// iteration and prevents all future ones.
//
// period must be positive; SchedulePeriodically panics otherwise.
func SchedulePeriodically(s Scheduler, initialDelay, period time.Duration, work func()) subscription.Subscription {
	if period <= 0 {
		panic("scheduler: period must be positive")
	}

	var stopped atomic.Bool
	latest := subscription.NewMultipleAssignment()

	var loop Action
	loop = func() subscription.Subscription {
		if stopped.Load() {
			return subscription.Empty()
		}
		started := s.Now()
		work()
		if stopped.Load() {
			return subscription.Empty()
		}
		delay := period - s.Now().Sub(started)
		if delay < 0 {
			delay = 0
		}
		latest.Set(s.ScheduleAbsolute(s.Now().Add(delay), loop))
		return subscription.Empty()
	}

	latest.Set(s.ScheduleAbsolute(s.Now().Add(initialDelay), loop))
	return subscription.NewComposite(
		subscription.New(func() { stopped.Store(true) }),
		latest,
	)
}

// waitUntil blocks until now() reaches due or stop closes. A nil stop
// channel never fires. Returns false if stopped before the due time.
func waitUntil(now func() time.Time, due time.Time, stop <-chan struct{}) bool {
	delay := due.Sub(now())
	if delay <= 0 {
		return true
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stop:
		return false
	}
}
