package enforcement

// Metrics describes one enforcement pass.
type Metrics struct {
	// PreMinEnergyDensity is the minimum per-point energy density before
	// correction.
	PreMinEnergyDensity float64 `json:"pre_min_energy_density"`

	// PostMinEnergyDensity is the minimum per-point energy density after
	// correction. Equal to PreMinEnergyDensity when no correction ran.
	PostMinEnergyDensity float64 `json:"post_min_energy_density"`

	// CorrectedPoints is the number of points that violated the constraint
	// before correction.
	CorrectedPoints int `json:"corrected_points"`

	// ViolationPoints is the number of points still violating the
	// constraint after correction. Zero for the default strategy.
	ViolationPoints int `json:"violation_points"`

	// TotalPoints is the number of sample points inspected.
	TotalPoints int `json:"total_points"`

	// ComplianceRatio is the post-correction fraction of points with
	// non-negative energy density.
	ComplianceRatio float64 `json:"compliance_ratio"`

	// ProjectionApplied reports whether any correction was performed.
	ProjectionApplied bool `json:"projection_applied"`
}

// Satisfied reports whether the configuration met the positive energy
// constraint without correction.
func (m Metrics) Satisfied() bool {
	return !m.ProjectionApplied
}
