package controller

import (
	"time"

	"gravimed/aegis/pkg/enhancement"
	"gravimed/aegis/pkg/field"
	"gravimed/aegis/pkg/safety"
	"gravimed/aegis/pkg/validation"
)

// Certification summarizes the safety certification state of the
// controller for operator displays and compliance exports.
type Certification struct {
	// PositiveEnergyGuaranteed: compliance is at or above 99.9%.
	PositiveEnergyGuaranteed bool `json:"positive_energy_guaranteed"`

	// NoExoticMatter: the enforcement layer forbids sustained negative
	// energy densities.
	NoExoticMatter bool `json:"no_exotic_matter"`

	// MedicalGradeValidated: the current field passes every envelope
	// check.
	MedicalGradeValidated bool `json:"medical_grade_validated"`

	// EmergencyReady: the shutdown path is armed.
	EmergencyReady bool `json:"emergency_ready"`

	// BiologicalProtectionActive: the biological margin checks pass.
	BiologicalProtectionActive bool `json:"biological_protection_active"`
}

// StatusReport is a point-in-time snapshot of the controller.
type StatusReport struct {
	// Timestamp is when the report was assembled.
	Timestamp time.Time `json:"timestamp"`

	// State is the lifecycle state name.
	State string `json:"state"`

	// Profile is the active safety profile.
	Profile safety.Profile `json:"profile"`

	// Constraints is the active envelope.
	Constraints safety.Constraints `json:"constraints"`

	// Metrics is the latest published field metrics snapshot.
	Metrics field.Metrics `json:"metrics"`

	// Validation is the envelope validation of Metrics.
	Validation validation.Result `json:"validation"`

	// Enhancement is the configured polymer parameter block.
	Enhancement enhancement.Parameters `json:"enhancement"`

	// RestartRequired reports that the on-disk configuration diverged from
	// the running envelope and a new controller instance is needed.
	RestartRequired bool `json:"restart_required,omitempty"`

	// LastCriticalViolations holds the most recent critical-watch trip,
	// empty if the watch has never tripped.
	LastCriticalViolations []string `json:"last_critical_violations,omitempty"`

	// LastCriticalTime is when the critical watch last tripped.
	LastCriticalTime *time.Time `json:"last_critical_time,omitempty"`

	// Certification is the derived certification block.
	Certification Certification `json:"certification"`

	// Shutdown is the emergency shutdown report, nil if none occurred.
	Shutdown *ShutdownReport `json:"shutdown,omitempty"`
}

// Status assembles a status report from the current controller state.
func (c *Controller) Status() StatusReport {
	m := c.CurrentMetrics()
	result := c.validator.Validate(m)

	report := StatusReport{
		Timestamp:       time.Now(),
		State:           c.State().String(),
		Profile:         c.config.Profile,
		Constraints:     c.constraints,
		Metrics:         m,
		Validation:      result,
		Enhancement:     c.calculator.Parameters(),
		RestartRequired: c.restartRequired.Load(),
		Certification: Certification{
			PositiveEnergyGuaranteed:   m.PositiveEnergyCompliance >= 0.999,
			NoExoticMatter:             true,
			MedicalGradeValidated:      result.Safe,
			EmergencyReady:             m.EmergencyResponseReady,
			BiologicalProtectionActive: result.BiologicalProtectionOK,
		},
		Shutdown: c.shutdownReport.Load(),
	}

	if rec := c.lastCritical.Load(); rec != nil {
		report.LastCriticalViolations = rec.Violations
		t := rec.Time
		report.LastCriticalTime = &t
	}

	return report
}
