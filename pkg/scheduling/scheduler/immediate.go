package scheduler

import (
	"time"

	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// immediateScheduler executes work inline on the caller. A future due time
// blocks the caller until it arrives.
type immediateScheduler struct{}

// NewImmediate creates a scheduler that runs actions synchronously on the
// calling goroutine, sleeping until the due time when one is given.
func NewImmediate() Scheduler {
	return immediateScheduler{}
}

func (immediateScheduler) Now() time.Time {
	return time.Now()
}

func (immediateScheduler) ScheduleAbsolute(due time.Time, action Action) subscription.Subscription {
	d := newDiscardableAction(action)
	if !due.IsZero() {
		waitUntil(time.Now, due, nil)
	}
	d.run()
	return d.Subscription()
}
