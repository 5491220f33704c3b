package scheduler

import (
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// cronParser accepts six-field expressions with second granularity.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// ScheduleCron runs work at every firing time of the cron expression,
// evaluated against s's clock — on a test scheduler the firings follow
// virtual time. Unsubscribing the returned handle cancels the next firing
// and prevents all future ones.
//
// Returns an error if the expression does not parse.
func ScheduleCron(s Scheduler, expr string, work func()) (subscription.Subscription, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	var stopped atomic.Bool
	latest := subscription.NewMultipleAssignment()

	var loop Action
	loop = func() subscription.Subscription {
		if stopped.Load() {
			return subscription.Empty()
		}
		work()
		if stopped.Load() {
			return subscription.Empty()
		}
		next := schedule.Next(s.Now())
		if next.IsZero() {
			// The expression has no further firing times.
			return subscription.Empty()
		}
		latest.Set(s.ScheduleAbsolute(next, loop))
		return subscription.Empty()
	}

	first := schedule.Next(s.Now())
	if first.IsZero() {
		return subscription.Empty(), nil
	}
	latest.Set(s.ScheduleAbsolute(first, loop))
	return subscription.NewComposite(
		subscription.New(func() { stopped.Store(true) }),
		latest,
	), nil
}
