// Package scheduler provides cancelable execution of actions at points in
// time, with several execution strategies behind one small interface.
//
// Every scheduler supplies two primitives, a clock and absolute-time
// scheduling:
//
//	type Scheduler interface {
//		Now() time.Time
//		ScheduleAbsolute(due time.Time, action Action) subscription.Subscription
//	}
//
// Relative, recursive, periodic and cron scheduling are derived from these,
// so they behave identically on every scheduler — including the virtual-time
// one used in tests:
//
//	sub := scheduler.ScheduleRelative(s, time.Second, action)
//	sub = scheduler.ScheduleRecursive(s, func(reschedule func()) subscription.Subscription {
//		// ... do a step, then:
//		reschedule()
//		return subscription.Empty()
//	})
//	sub = scheduler.SchedulePeriodically(s, 0, time.Minute, work)
//	sub, err := scheduler.ScheduleCron(s, "0 */5 * * * *", work)
//
// Concrete schedulers:
//
//   - NewImmediate executes inline on the caller, sleeping until the due time.
//   - NewCurrentThread is a per-goroutine trampoline: nested schedule calls
//     enqueue onto the active drain loop instead of recursing.
//   - NewGoroutine spawns a fresh goroutine per action.
//   - NewEventLoop runs actions one at a time on a dedicated goroutine with
//     cooperative (non-blocking) delays.
//   - NewPool dispatches actions to a fixed set of worker goroutines.
//   - NewTest is the virtual-time scheduler: nothing runs until the test
//     calls AdvanceTo, AdvanceBy or TriggerActions.
//
// Within one scheduler instance, actions with distinct due times run in time
// order and ties break by insertion order. Across schedulers no ordering is
// promised.
//
// Every scheduling operation returns a subscription. Unsubscribing before
// dispatch prevents the action from ever running; unsubscribing after
// dispatch cancels the subscription the action returned. Unsubscribing is
// idempotent and safe from any goroutine.
package scheduler
