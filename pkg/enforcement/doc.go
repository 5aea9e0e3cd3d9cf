// Package enforcement projects a graviton field configuration onto the
// positive-energy subspace.
//
// # Overview
//
// The Enforcer sweeps the sampled grid once, finds points whose energy
// density is negative, and applies the configured CorrectionStrategy to
// each. The contract is compliance, not minimal perturbation: after Enforce
// returns, every sample point has non-negative energy density, but the
// correction is a heuristic attenuation rather than a least-perturbation
// projection. A stricter strategy can be plugged in without touching
// callers.
//
// # Usage
//
//	enforcer := enforcement.NewEnforcer(enforcement.Config{})
//	safe, metrics := enforcer.Enforce(cfg)
//	if metrics.ProjectionApplied {
//	    log.Printf("corrected %d points", metrics.CorrectedPoints)
//	}
//
// # Thread safety
//
// The Enforcer is stateless apart from its strategy and logger and can be
// used concurrently from multiple goroutines.
package enforcement
