package field

// Metrics is a derived snapshot of the live field state. It is a plain
// value: the controller publishes complete copies, never shared references.
type Metrics struct {
	// FieldStrength is the effective graviton field strength in Tesla.
	FieldStrength float64 `json:"field_strength_tesla"`

	// EnergyDensity is the scalar energy density in J/m^3 derived from the
	// total field magnitude.
	EnergyDensity float64 `json:"energy_density_joules_m3"`

	// StressSample is the cached representative stress tensor for the grid.
	StressSample Tensor `json:"stress_sample"`

	// Curvature is the effective spacetime curvature estimate.
	Curvature float64 `json:"spacetime_curvature"`

	// CausalityPreservation is a [0,1] score; 1 means no problematic field
	// behavior observed.
	CausalityPreservation float64 `json:"causality_preservation"`

	// PositiveEnergyCompliance is the fraction of sample points with
	// non-negative energy density, in [0,1].
	PositiveEnergyCompliance float64 `json:"positive_energy_compliance"`

	// BiologicalSafetyFactor is the margin between the profile's field
	// limit and the observed field strength, capped at the protection
	// factor.
	BiologicalSafetyFactor float64 `json:"biological_safety_factor"`

	// EnhancementFactor is the currently reported polymer enhancement
	// factor.
	EnhancementFactor float64 `json:"enhancement_factor"`

	// Stability is the [0,1] field stability score maintained by the
	// field-quality monitor task.
	Stability float64 `json:"field_stability"`

	// EmergencyResponseReady reports whether the emergency shutdown path is
	// armed.
	EmergencyResponseReady bool `json:"emergency_response_ready"`
}

// SafeMetrics returns the known-safe default snapshot the controller resets
// to after an emergency shutdown: zero field, full compliance, readiness
// asserted.
func SafeMetrics() Metrics {
	return Metrics{
		CausalityPreservation:    1.0,
		PositiveEnergyCompliance: 1.0,
		EnhancementFactor:        1.0,
		Stability:                1.0,
		EmergencyResponseReady:   true,
	}
}
