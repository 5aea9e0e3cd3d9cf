// Package safety defines the biological safety profiles and the numeric
// constraint tables attached to them.
//
// # Overview
//
// A Profile names a tier of biological exposure (neural tissue up to
// surgical instrument control). Each tier carries hard limits on graviton
// field strength, energy density, and spacetime curvature. The tiers are
// strictly ordered: iterating from the most conservative profile to the most
// permissive one yields strictly increasing field strength limits.
//
// The emergency response budget (50ms) is deliberately identical across all
// profiles: the shutdown path must meet the same deadline regardless of how
// permissive the field limits are.
//
// # Usage
//
//	constraints, err := safety.ConstraintsFor(safety.ProfileTissueStandard)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(constraints.MaxFieldStrength) // 1e-12 T
package safety
