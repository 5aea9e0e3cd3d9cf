package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MonitorMetrics tracks the three periodic monitor tasks.
//
// Metrics:
//   - aegis_controller_monitor_ticks_total: loop iterations by task
//   - aegis_controller_monitor_loop_duration_seconds: iteration duration by task
//   - aegis_controller_field_stability: stability score gauge
type MonitorMetrics struct {
	enabled bool

	ticksTotal   *prometheus.CounterVec
	loopDuration *prometheus.HistogramVec
	stability    prometheus.Gauge
}

// NewMonitorMetrics creates and registers the monitor metric group.
func NewMonitorMetrics(cfg Config, registry *prometheus.Registry) *MonitorMetrics {
	mm := &MonitorMetrics{
		enabled: cfg.Enabled,

		ticksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "monitor_ticks_total",
			Help:      "Total monitor loop iterations per task",
		}, []string{"task"}),

		loopDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "monitor_loop_duration_seconds",
			Help:      "Duration of one monitor loop iteration",
			Buckets:   cfg.LoopDurationBuckets,
		}, []string{"task"}),

		stability: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "field_stability",
			Help:      "Field stability score in [0,1]",
		}),
	}

	registry.MustRegister(mm.ticksTotal, mm.loopDuration, mm.stability)

	return mm
}

// RecordTick records one loop iteration for a task.
//
// Parameters:
//   - task: "safety_check", "field_quality", or "emergency_watch"
//   - duration: how long the iteration took
func (mm *MonitorMetrics) RecordTick(task string, duration time.Duration) {
	if !mm.enabled {
		return
	}

	mm.ticksTotal.WithLabelValues(task).Inc()
	mm.loopDuration.WithLabelValues(task).Observe(duration.Seconds())
}

// UpdateStability updates the field stability gauge.
func (mm *MonitorMetrics) UpdateStability(score float64) {
	if !mm.enabled {
		return
	}

	mm.stability.Set(score)
}
