package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShutdownMetrics tracks emergency shutdown executions.
//
// Metrics:
//   - aegis_controller_shutdown_duration_seconds: shutdown duration histogram
//   - aegis_controller_shutdown_triggers_total: trigger counter by cause
//   - aegis_controller_shutdown_within_budget: 1 if the last shutdown met
//     the response budget, 0 otherwise
type ShutdownMetrics struct {
	enabled bool

	duration     prometheus.Histogram
	triggers     *prometheus.CounterVec
	withinBudget prometheus.Gauge
}

// NewShutdownMetrics creates and registers the shutdown metric group.
func NewShutdownMetrics(cfg Config, registry *prometheus.Registry) *ShutdownMetrics {
	sm := &ShutdownMetrics{
		enabled: cfg.Enabled,

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "shutdown_duration_seconds",
			Help:      "Duration of the emergency shutdown sequence",
			Buckets:   cfg.ShutdownDurationBuckets,
		}),

		triggers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "shutdown_triggers_total",
			Help:      "Total emergency shutdown triggers by cause",
		}, []string{"cause"}),

		withinBudget: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "shutdown_within_budget",
			Help:      "Whether the last shutdown met the response budget (1=yes)",
		}),
	}

	registry.MustRegister(sm.duration, sm.triggers, sm.withinBudget)

	return sm
}

// RecordShutdown records one completed emergency shutdown.
//
// Parameters:
//   - cause: what triggered the shutdown ("safety_check", "emergency_watch",
//     "operational_fault", "external")
//   - duration: measured wall-clock shutdown duration
//   - withinBudget: whether the duration met the response budget
func (sm *ShutdownMetrics) RecordShutdown(cause string, duration time.Duration, withinBudget bool) {
	if !sm.enabled {
		return
	}

	sm.duration.Observe(duration.Seconds())
	sm.triggers.WithLabelValues(cause).Inc()
	if withinBudget {
		sm.withinBudget.Set(1)
	} else {
		sm.withinBudget.Set(0)
	}
}
