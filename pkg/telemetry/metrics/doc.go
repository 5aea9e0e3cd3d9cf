// Package metrics exposes Prometheus metrics for the safety controller.
//
// # Overview
//
// The Collector owns a private registry and three metric groups:
//
//   - SafetyMetrics: live field gauges (strength, energy density,
//     compliance, causality, overall margin) and a violation counter
//     labelled by check and severity.
//   - MonitorMetrics: per-task tick counters and loop duration histograms,
//     plus the field stability gauge.
//   - ShutdownMetrics: emergency shutdown duration histogram with
//     sub-budget buckets, a trigger counter by cause, and a within-budget
//     gauge.
//
// Every record call is gated on Config.Enabled so a disabled collector has
// near-zero cost.
//
// # Usage
//
//	collector := metrics.NewCollector(metrics.Config{Enabled: true})
//	http.Handle("/metrics", collector.Handler())
package metrics
