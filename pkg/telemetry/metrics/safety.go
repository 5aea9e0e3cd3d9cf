package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SafetyMetrics tracks the live field state and safety violations.
//
// Metrics:
//   - aegis_controller_field_strength_tesla: current field strength gauge
//   - aegis_controller_energy_density_joules_m3: current energy density gauge
//   - aegis_controller_positive_energy_compliance: compliance ratio gauge
//   - aegis_controller_causality_preservation: causality score gauge
//   - aegis_controller_overall_safety_margin: aggregate margin gauge
//   - aegis_controller_violations_total: violation counter by check, severity
type SafetyMetrics struct {
	enabled bool

	fieldStrength   prometheus.Gauge
	energyDensity   prometheus.Gauge
	compliance      prometheus.Gauge
	causality       prometheus.Gauge
	overallMargin   prometheus.Gauge
	violationsTotal *prometheus.CounterVec
}

// NewSafetyMetrics creates and registers the safety metric group.
func NewSafetyMetrics(cfg Config, registry *prometheus.Registry) *SafetyMetrics {
	sm := &SafetyMetrics{
		enabled: cfg.Enabled,

		fieldStrength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "field_strength_tesla",
			Help:      "Current graviton field strength in Tesla",
		}),

		energyDensity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "energy_density_joules_m3",
			Help:      "Current scalar energy density in J/m^3",
		}),

		compliance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "positive_energy_compliance",
			Help:      "Fraction of field sample points with non-negative energy density",
		}),

		causality: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "causality_preservation",
			Help:      "Causality preservation score in [0,1]",
		}),

		overallMargin: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "overall_safety_margin",
			Help:      "Aggregate safety margin (minimum of all margin factors)",
		}),

		violationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "violations_total",
			Help:      "Total number of safety violations detected",
		}, []string{"check", "severity"}),
	}

	registry.MustRegister(
		sm.fieldStrength,
		sm.energyDensity,
		sm.compliance,
		sm.causality,
		sm.overallMargin,
		sm.violationsTotal,
	)

	return sm
}

// UpdateField updates the live field gauges from a metrics snapshot.
func (sm *SafetyMetrics) UpdateField(fieldStrength, energyDensity, compliance, causality, overallMargin float64) {
	if !sm.enabled {
		return
	}

	sm.fieldStrength.Set(fieldStrength)
	sm.energyDensity.Set(energyDensity)
	sm.compliance.Set(compliance)
	sm.causality.Set(causality)
	sm.overallMargin.Set(overallMargin)
}

// RecordViolation counts one violation for a named check.
//
// Parameters:
//   - check: which check fired ("field_strength", "energy_density",
//     "positive_energy", "causality")
//   - severity: "warning" or "critical"
func (sm *SafetyMetrics) RecordViolation(check, severity string) {
	if !sm.enabled {
		return
	}

	sm.violationsTotal.WithLabelValues(check, severity).Inc()
}
