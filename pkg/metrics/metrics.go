// Package metrics provides Prometheus instrumentation for rxflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for rxflow components.
type Registry struct {
	// Observer metrics
	NotificationsTotal *prometheus.CounterVec
	ContractViolations *prometheus.CounterVec

	// Scheduler metrics
	ActionsScheduled *prometheus.CounterVec
	ActionsExecuted  *prometheus.CounterVec
	ActionsCanceled  *prometheus.CounterVec
	ActionDuration   *prometheus.HistogramVec
	QueueDepth       *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by rxflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, "rxflow")
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "observer",
				Name:      "notifications_total",
				Help:      "Total number of notifications delivered to observers",
			},
			[]string{"observer_name", "kind"},
		),

		ContractViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "observer",
				Name:      "contract_violations_total",
				Help:      "Total number of observer contract violations detected",
			},
			[]string{"observer_name", "kind"},
		),

		ActionsScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "actions_scheduled_total",
				Help:      "Total number of actions handed to the scheduler",
			},
			[]string{"scheduler_name"},
		),

		ActionsExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "actions_executed_total",
				Help:      "Total number of actions dispatched, including actions that panicked",
			},
			[]string{"scheduler_name"},
		),

		ActionsCanceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "actions_canceled_total",
				Help:      "Total number of scheduled actions canceled via their subscription",
			},
			[]string{"scheduler_name"},
		),

		ActionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "action_duration_seconds",
				Help:      "Time spent executing scheduled actions",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"scheduler_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "queue_depth",
				Help:      "Number of actions currently scheduled and not yet dispatched",
			},
			[]string{"scheduler_name"},
		),
	}
}
