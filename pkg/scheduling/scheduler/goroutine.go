package scheduler

import (
	"time"

	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// goroutineScheduler spawns a fresh goroutine for every action.
type goroutineScheduler struct{}

// NewGoroutine creates a scheduler that runs each action on its own
// goroutine, sleeping there until the due time. Unsubscribing before the
// due time aborts the sleep and the action never runs.
func NewGoroutine() Scheduler {
	return goroutineScheduler{}
}

func (goroutineScheduler) Now() time.Time {
	return time.Now()
}

func (goroutineScheduler) ScheduleAbsolute(due time.Time, action Action) subscription.Subscription {
	d := newDiscardableAction(action)
	stop := make(chan struct{})

	go func() {
		if !due.IsZero() && !waitUntil(time.Now, due, stop) {
			return
		}
		d.run()
	}()

	return subscription.NewComposite(
		subscription.New(func() { close(stop) }),
		d.Subscription(),
	)
}
