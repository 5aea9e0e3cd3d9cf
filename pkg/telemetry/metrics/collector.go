package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled gates all metric recording.
	Enabled bool

	// Namespace is the metric namespace. Default: "aegis".
	Namespace string

	// Subsystem is the metric subsystem. Default: "controller".
	Subsystem string

	// ShutdownDurationBuckets are the histogram buckets (seconds) for the
	// emergency shutdown duration. Defaults to sub-50ms-focused buckets.
	ShutdownDurationBuckets []float64

	// LoopDurationBuckets are the histogram buckets (seconds) for monitor
	// loop iterations. Defaults to microsecond-scale buckets.
	LoopDurationBuckets []float64
}

// Collector is the orchestrator for all Prometheus metrics in the
// controller. It manages registration on a private registry and provides a
// unified recording interface for the monitor tasks and the shutdown
// coordinator.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	safety   *SafetyMetrics
	monitor  *MonitorMetrics
	shutdown *ShutdownMetrics
}

// NewCollector creates a metrics collector with the specified configuration.
// If registry is nil, a new private registry is created.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "aegis"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "controller"
	}
	if len(cfg.ShutdownDurationBuckets) == 0 {
		// The emergency budget is 50ms; resolve well below and just above it.
		cfg.ShutdownDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}
	}
	if len(cfg.LoopDurationBuckets) == 0 {
		// Monitor loops run at 50us..1ms cadence.
		cfg.LoopDurationBuckets = []float64{5e-6, 1e-5, 2.5e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.safety = NewSafetyMetrics(cfg, registry)
	c.monitor = NewMonitorMetrics(cfg, registry)
	c.shutdown = NewShutdownMetrics(cfg, registry)

	return c
}

// Enabled reports whether recording is enabled.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Safety returns the safety metric group.
func (c *Collector) Safety() *SafetyMetrics {
	return c.safety
}

// Monitor returns the monitor metric group.
func (c *Collector) Monitor() *MonitorMetrics {
	return c.monitor
}

// Shutdown returns the shutdown metric group.
func (c *Collector) Shutdown() *ShutdownMetrics {
	return c.shutdown
}
