/*
Package rxflow provides the core runtime for push-based dataflow in Go:
observer protocol adapters and a pluggable scheduler framework.

Observers (pkg/reactive/observer):
  - Create: build an observer from three callbacks
  - Safe: terminal finality, silent dropping
  - Checked: reject reentrancy and post-terminal notifications
  - Synchronize / SynchronizeAsync: serialize concurrent producers

Subscriptions (pkg/reactive/subscription):
  - New, Empty: cancelable handles with idempotent teardown
  - Composite, MultipleAssignment: aggregate and replaceable children

Scheduling (pkg/scheduling/scheduler):
  - Immediate, CurrentThread, Goroutine, EventLoop, Pool schedulers
  - derived relative, recursive, periodic and cron scheduling
  - TestScheduler: deterministic virtual time for tests

Metrics (pkg/metrics):
  - Prometheus instrumentation for observers and schedulers

Example usage:

	import (
		"github.com/vnykmshr/rxflow/pkg/reactive/observer"
		"github.com/vnykmshr/rxflow/pkg/scheduling/scheduler"
	)

	o := observer.Synchronize(observer.Safe(dest))
	l := scheduler.NewEventLoop()
	defer func() { <-l.Stop() }()

	scheduler.SchedulePeriodically(l, 0, time.Second, func() {
		o.OnNext(sample())
	})
*/
package rxflow
