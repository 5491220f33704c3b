package scheduler

import (
	"sync"
	"time"

	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// virtualEpoch is where every test scheduler's clock starts. Virtual time
// never touches the wall clock.
var virtualEpoch = time.Unix(0, 0).UTC()

// TestScheduler is a virtual-time scheduler for deterministic tests.
// Scheduling never runs anything; actions execute only when the test
// advances time, in (due, insertion) order, with the clock moved forward to
// each action's due time before it runs. Repeated runs of the same schedule
// produce identical execution orders.
type TestScheduler struct {
	mu    sync.Mutex
	clock time.Time
	queue *TimedQueue
}

// NewTest creates a test scheduler with its clock at the virtual epoch.
func NewTest() *TestScheduler {
	return &TestScheduler{
		clock: virtualEpoch,
		queue: NewTimedQueue(),
	}
}

// Now returns the current virtual time.
func (s *TestScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// At translates an offset from the virtual epoch into an absolute virtual
// time, for use with ScheduleAbsolute and AdvanceTo.
func (s *TestScheduler) At(offset time.Duration) time.Time {
	return virtualEpoch.Add(offset)
}

// ScheduleAbsolute enqueues action without running it. A zero due time
// means due at the current virtual time.
func (s *TestScheduler) ScheduleAbsolute(due time.Time, action Action) subscription.Subscription {
	if due.IsZero() {
		due = s.Now()
	}
	d := newDiscardableAction(action)
	s.queue.Enqueue(due, d.run)
	return d.Subscription()
}

// AdvanceTo moves virtual time to t, executing every action due at or
// before t in priority order. The clock is moved forward to each action's
// due time before it executes, so an action observing Now sees its own due
// time. The clock never moves backwards: an action whose due time is
// already past sees the current virtual time instead.
// Actions scheduled during the drain run too if they fall within t.
func (s *TestScheduler) AdvanceTo(t time.Time) {
	for {
		due, ok := s.queue.Peek()
		if !ok || due.After(t) {
			break
		}
		run, dueAt, ok := s.queue.Dequeue()
		if !ok {
			break
		}
		s.setClock(dueAt)
		run()
	}
	s.setClock(t)
}

// AdvanceBy moves virtual time forward by d.
func (s *TestScheduler) AdvanceBy(d time.Duration) {
	s.AdvanceTo(s.Now().Add(d))
}

// TriggerActions executes all actions due at or before the current
// virtual time without advancing it further.
func (s *TestScheduler) TriggerActions() {
	s.AdvanceTo(s.Now())
}

// setClock moves the clock forward to t; it never goes backwards.
func (s *TestScheduler) setClock(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.After(s.clock) {
		s.clock = t
	}
}
