package validation

import (
	"fmt"

	"gravimed/aegis/pkg/field"
	"gravimed/aegis/pkg/safety"
)

const (
	// emergencyFieldRatio is the field strength multiple of the profile
	// limit above which a violation becomes an emergency.
	emergencyFieldRatio = 10.0

	// criticalComplianceFloor is the emergency-watch compliance threshold.
	criticalComplianceFloor = 0.99

	// criticalCausalityFloor is the emergency-watch causality threshold.
	criticalCausalityFloor = 0.99

	// marginEpsilon floors ratios before taking reciprocals so margins stay
	// finite for an idle field.
	marginEpsilon = 1e-10
)

// Margins holds the reciprocal safety margins for a snapshot.
type Margins struct {
	// FieldStrength is the reciprocal of the field strength ratio.
	FieldStrength float64 `json:"field_strength_margin"`

	// EnergyDensity is the reciprocal of the energy density ratio.
	EnergyDensity float64 `json:"energy_density_margin"`

	// BiologicalProtection is the snapshot's biological safety factor.
	BiologicalProtection float64 `json:"biological_protection_factor"`

	// Overall is the minimum of all margins.
	Overall float64 `json:"overall_safety_margin"`
}

// Result is the outcome of validating one metrics snapshot.
type Result struct {
	// Safe reports whether the snapshot passed every check.
	Safe bool `json:"safe_for_medical_use"`

	// Violations lists each failed check, human-readable.
	Violations []string `json:"safety_violations"`

	// Margins holds the reciprocal safety margins.
	Margins Margins `json:"safety_margin_factors"`

	// EmergencyRequired reports whether any check crossed the emergency
	// tier.
	EmergencyRequired bool `json:"emergency_action_required"`

	// BiologicalProtectionOK reports whether biological protection remains
	// validated.
	BiologicalProtectionOK bool `json:"biological_protection_validated"`
}

// Validator classifies metrics snapshots against one profile's constraints.
type Validator struct {
	constraints safety.Constraints
}

// NewValidator creates a validator bound to the given constraints.
func NewValidator(constraints safety.Constraints) *Validator {
	return &Validator{constraints: constraints}
}

// Constraints returns the bound constraint table.
func (v *Validator) Constraints() safety.Constraints {
	return v.constraints
}

// Validate runs the four safety checks against a metrics snapshot.
func (v *Validator) Validate(m field.Metrics) Result {
	result := Result{
		Safe:                   true,
		BiologicalProtectionOK: true,
	}

	fieldRatio := m.FieldStrength / v.constraints.MaxFieldStrength
	if fieldRatio > 1.0 {
		result.Safe = false
		result.Violations = append(result.Violations,
			fmt.Sprintf("field strength exceeds limit: %.2fx over threshold", fieldRatio))
		if fieldRatio > emergencyFieldRatio {
			result.EmergencyRequired = true
		}
	}

	densityRatio := m.EnergyDensity / v.constraints.MaxEnergyDensity
	if densityRatio > 1.0 {
		result.Safe = false
		result.Violations = append(result.Violations,
			fmt.Sprintf("energy density exceeds limit: %.2fx over threshold", densityRatio))
	}

	if m.PositiveEnergyCompliance < v.constraints.RequiredCompliance {
		result.Safe = false
		result.BiologicalProtectionOK = false
		result.EmergencyRequired = true
		result.Violations = append(result.Violations,
			fmt.Sprintf("positive energy compliance below requirement: %.6f", m.PositiveEnergyCompliance))
	}

	if m.CausalityPreservation < v.constraints.CausalityThreshold {
		result.Safe = false
		result.EmergencyRequired = true
		result.Violations = append(result.Violations,
			fmt.Sprintf("causality preservation below threshold: %.6f", m.CausalityPreservation))
	}

	result.Margins = Margins{
		FieldStrength:        1.0 / max(fieldRatio, marginEpsilon),
		EnergyDensity:        1.0 / max(densityRatio, marginEpsilon),
		BiologicalProtection: m.BiologicalSafetyFactor,
	}
	result.Margins.Overall = min(
		result.Margins.FieldStrength,
		result.Margins.EnergyDensity,
		m.BiologicalSafetyFactor,
	)

	return result
}

// CheckCritical runs the emergency-watch predicate set: a narrower, stricter
// group of thresholds checked at 1ms cadence while the field is energized.
// Any returned entry demands immediate shutdown.
func (v *Validator) CheckCritical(m field.Metrics) []string {
	var critical []string

	if m.FieldStrength > emergencyFieldRatio*v.constraints.MaxFieldStrength {
		critical = append(critical, "critical field strength violation")
	}
	if m.PositiveEnergyCompliance < criticalComplianceFloor {
		critical = append(critical, "critical positive energy violation")
	}
	if m.CausalityPreservation < criticalCausalityFloor {
		critical = append(critical, "critical causality violation")
	}

	return critical
}
