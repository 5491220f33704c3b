package metrics

import (
	"sync/atomic"
	"time"

	"github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/observer"
	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
	"github.com/vnykmshr/rxflow/pkg/scheduling/scheduler"
)

// instrumentedScheduler counts scheduled, executed and canceled actions
// and times their execution.
type instrumentedScheduler struct {
	inner    scheduler.Scheduler
	name     string
	registry *Registry
}

// InstrumentScheduler wraps s so that every scheduling operation is
// recorded in the default registry under the given scheduler name. The
// wrapper is transparent: timing and cancellation semantics are unchanged.
func InstrumentScheduler(s scheduler.Scheduler, name string) scheduler.Scheduler {
	return InstrumentSchedulerWithConfig(s, name, DefaultConfig())
}

// InstrumentSchedulerWithConfig is InstrumentScheduler with a custom
// metrics configuration. With metrics disabled, s is returned unwrapped.
func InstrumentSchedulerWithConfig(s scheduler.Scheduler, name string, cfg Config) scheduler.Scheduler {
	registry := registryFor(cfg)
	if registry == nil {
		return s
	}
	return &instrumentedScheduler{inner: s, name: name, registry: registry}
}

func (s *instrumentedScheduler) Now() time.Time {
	return s.inner.Now()
}

func (s *instrumentedScheduler) ScheduleAbsolute(due time.Time, action scheduler.Action) subscription.Subscription {
	s.registry.ActionsScheduled.WithLabelValues(s.name).Inc()
	s.registry.QueueDepth.WithLabelValues(s.name).Inc()

	// The depth gauge is decremented exactly once, whether the action is
	// dispatched or canceled first.
	var settled atomic.Bool
	settle := func() {
		if settled.CompareAndSwap(false, true) {
			s.registry.QueueDepth.WithLabelValues(s.name).Dec()
		}
	}

	timed := func() subscription.Subscription {
		settle()
		started := time.Now()
		defer func() {
			s.registry.ActionDuration.WithLabelValues(s.name).Observe(time.Since(started).Seconds())
			s.registry.ActionsExecuted.WithLabelValues(s.name).Inc()
		}()
		return action()
	}

	inner := s.inner.ScheduleAbsolute(due, timed)
	return subscription.NewComposite(
		subscription.New(func() {
			s.registry.ActionsCanceled.WithLabelValues(s.name).Inc()
			settle()
		}),
		inner,
	)
}

// instrumentedObserver counts the notifications flowing through an
// observer chain.
type instrumentedObserver[T any] struct {
	dest     observer.Observer[T]
	name     string
	registry *Registry
}

// InstrumentObserver wraps dest so that every notification is counted in
// the default registry under the given observer name. Contract violations
// panicking through the wrapper are counted by kind before propagating.
func InstrumentObserver[T any](dest observer.Observer[T], name string) observer.Observer[T] {
	return InstrumentObserverWithConfig(dest, name, DefaultConfig())
}

// InstrumentObserverWithConfig is InstrumentObserver with a custom
// metrics configuration. With metrics disabled, dest is returned unwrapped.
func InstrumentObserverWithConfig[T any](dest observer.Observer[T], name string, cfg Config) observer.Observer[T] {
	registry := registryFor(cfg)
	if registry == nil {
		return dest
	}
	return &instrumentedObserver[T]{dest: dest, name: name, registry: registry}
}

// countViolation records a contract violation escaping from a delegated
// notification.
func (o *instrumentedObserver[T]) countViolation() {
	if r := recover(); r != nil {
		if err, ok := r.(error); ok && errors.IsViolation(err) {
			kind := errors.ViolationOf(err)
			o.registry.ContractViolations.WithLabelValues(o.name, kind.String()).Inc()
		}
		panic(r)
	}
}

func (o *instrumentedObserver[T]) OnNext(value T) {
	o.registry.NotificationsTotal.WithLabelValues(o.name, "next").Inc()
	defer o.countViolation()
	o.dest.OnNext(value)
}

func (o *instrumentedObserver[T]) OnError(err error) {
	o.registry.NotificationsTotal.WithLabelValues(o.name, "error").Inc()
	defer o.countViolation()
	o.dest.OnError(err)
}

func (o *instrumentedObserver[T]) OnCompleted() {
	o.registry.NotificationsTotal.WithLabelValues(o.name, "completed").Inc()
	defer o.countViolation()
	o.dest.OnCompleted()
}
