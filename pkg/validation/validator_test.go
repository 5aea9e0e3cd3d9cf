package validation

import (
	"strings"
	"testing"

	"gravimed/aegis/pkg/field"
	"gravimed/aegis/pkg/safety"
)

func tissueValidator(t *testing.T) *Validator {
	t.Helper()
	constraints, err := safety.ConstraintsFor(safety.ProfileTissueStandard)
	if err != nil {
		t.Fatalf("ConstraintsFor failed: %v", err)
	}
	return NewValidator(constraints)
}

// nominal returns a fully compliant snapshot for the tissue profile.
func nominal() field.Metrics {
	m := field.SafeMetrics()
	m.FieldStrength = 1e-15
	m.EnergyDensity = 1e-27
	m.BiologicalSafetyFactor = 1e12
	return m
}

func TestValidate_NominalMetricsAreSafe(t *testing.T) {
	v := tissueValidator(t)

	result := v.Validate(nominal())

	if !result.Safe {
		t.Errorf("expected safe, got violations: %v", result.Violations)
	}
	if result.EmergencyRequired {
		t.Error("expected no emergency")
	}
	if !result.BiologicalProtectionOK {
		t.Error("expected biological protection validated")
	}
}

func TestValidate_FieldStrengthBoundaries(t *testing.T) {
	const limit = 1e-12 // tissue_standard

	tests := []struct {
		name          string
		strength      float64
		wantSafe      bool
		wantEmergency bool
	}{
		{"just under limit", limit * (1 - 1e-9), true, false},
		{"at limit", limit, true, false},
		{"just over limit", limit * (1 + 1e-9), false, false},
		{"just under 10x", limit * 10 * (1 - 1e-9), false, false},
		{"just over 10x", limit * 10 * (1 + 1e-9), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := nominal()
			m.FieldStrength = tt.strength

			result := tissueValidator(t).Validate(m)

			if result.Safe != tt.wantSafe {
				t.Errorf("Safe = %v, want %v", result.Safe, tt.wantSafe)
			}
			if result.EmergencyRequired != tt.wantEmergency {
				t.Errorf("EmergencyRequired = %v, want %v",
					result.EmergencyRequired, tt.wantEmergency)
			}
		})
	}
}

func TestValidate_EnergyDensityViolationIsNotEmergency(t *testing.T) {
	m := nominal()
	m.EnergyDensity = 1e-20 // far over the 1e-24 tissue limit

	result := tissueValidator(t).Validate(m)

	if result.Safe {
		t.Error("expected unsafe")
	}
	if result.EmergencyRequired {
		t.Error("energy density alone must not force an emergency")
	}
	if len(result.Violations) != 1 {
		t.Errorf("expected 1 violation, got %v", result.Violations)
	}
}

func TestValidate_ComplianceBoundaries(t *testing.T) {
	tests := []struct {
		name          string
		compliance    float64
		wantEmergency bool
	}{
		{"full compliance", 1.0, false},
		{"just below", 1.0 - 1e-9, true},
		{"well below", 0.97, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := nominal()
			m.PositiveEnergyCompliance = tt.compliance

			result := tissueValidator(t).Validate(m)

			if result.EmergencyRequired != tt.wantEmergency {
				t.Errorf("EmergencyRequired = %v, want %v",
					result.EmergencyRequired, tt.wantEmergency)
			}
			if tt.wantEmergency && result.BiologicalProtectionOK {
				t.Error("compliance violation must revoke biological protection")
			}
		})
	}
}

func TestValidate_CausalityBoundaries(t *testing.T) {
	tests := []struct {
		name          string
		causality     float64
		wantSafe      bool
		wantEmergency bool
	}{
		{"at threshold", 0.995, true, false},
		{"just above", 0.995 + 1e-9, true, false},
		{"just below", 0.995 - 1e-9, false, true},
		{"degraded", 0.98, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := nominal()
			m.CausalityPreservation = tt.causality

			result := tissueValidator(t).Validate(m)

			if result.Safe != tt.wantSafe {
				t.Errorf("Safe = %v, want %v", result.Safe, tt.wantSafe)
			}
			if result.EmergencyRequired != tt.wantEmergency {
				t.Errorf("EmergencyRequired = %v, want %v",
					result.EmergencyRequired, tt.wantEmergency)
			}
		})
	}
}

func TestValidate_DegradedCausalityScenario(t *testing.T) {
	// Causality 0.98, everything else nominal: unsafe and emergency.
	m := nominal()
	m.CausalityPreservation = 0.98

	result := tissueValidator(t).Validate(m)

	if result.Safe {
		t.Error("expected unsafe")
	}
	if !result.EmergencyRequired {
		t.Error("expected emergency required")
	}
	found := false
	for _, v := range result.Violations {
		if strings.Contains(v, "causality") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a causality violation, got %v", result.Violations)
	}
}

func TestValidate_MarginsFloored(t *testing.T) {
	// Idle field: ratios are zero, margins must stay finite.
	m := nominal()
	m.FieldStrength = 0
	m.EnergyDensity = 0

	result := tissueValidator(t).Validate(m)

	if result.Margins.FieldStrength != 1.0/marginEpsilon {
		t.Errorf("expected floored field margin, got %g", result.Margins.FieldStrength)
	}
	if result.Margins.Overall > result.Margins.FieldStrength {
		t.Error("overall margin must not exceed any component margin")
	}
	if result.Margins.Overall != m.BiologicalSafetyFactor {
		t.Errorf("expected overall margin %g, got %g",
			m.BiologicalSafetyFactor, result.Margins.Overall)
	}
}

func TestCheckCritical(t *testing.T) {
	const limit = 1e-12

	tests := []struct {
		name    string
		mutate  func(*field.Metrics)
		wantHit int
	}{
		{"nominal", func(m *field.Metrics) {}, 0},
		{"field over 10x", func(m *field.Metrics) { m.FieldStrength = limit * 11 }, 1},
		{"field over 1x under 10x", func(m *field.Metrics) { m.FieldStrength = limit * 5 }, 0},
		{"compliance under 0.99", func(m *field.Metrics) { m.PositiveEnergyCompliance = 0.985 }, 1},
		{"causality under 0.99", func(m *field.Metrics) { m.CausalityPreservation = 0.985 }, 1},
		{"everything critical", func(m *field.Metrics) {
			m.FieldStrength = limit * 100
			m.PositiveEnergyCompliance = 0.5
			m.CausalityPreservation = 0.5
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := nominal()
			tt.mutate(&m)

			critical := tissueValidator(t).CheckCritical(m)

			if len(critical) != tt.wantHit {
				t.Errorf("expected %d critical hits, got %v", tt.wantHit, critical)
			}
		})
	}
}
