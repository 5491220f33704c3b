/*
Package metrics provides Prometheus instrumentation for rxflow components.

Instrumentation is opt-in and transparent: wrap a scheduler or an observer
and use the wrapper exactly like the original.

	s := metrics.InstrumentScheduler(scheduler.NewEventLoop(), "events")
	o := metrics.InstrumentObserver(observer.Safe(dest), "sink")

Observer metrics count notifications by kind (next, error, completed) and
contract violations by violation kind. Scheduler metrics count scheduled,
executed and canceled actions, track how many actions are pending, and
time action execution.

By default metrics register with prometheus.DefaultRegisterer under the
"rxflow" namespace; use the WithConfig variants to target a custom
registry or namespace, or to disable collection entirely:

	cfg := metrics.Config{Enabled: true, Registry: myRegistry, Namespace: "myapp"}
	s := metrics.InstrumentSchedulerWithConfig(sched, "events", cfg)
*/
package metrics
