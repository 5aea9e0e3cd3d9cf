package enforcement

import (
	"gravimed/aegis/pkg/field"
)

// DefaultAttenuationFactor is the conservative scale applied to the
// negative-contributing components of a violating tensor.
const DefaultAttenuationFactor = 0.1

// CorrectionStrategy rewrites a single violating tensor so that its energy
// density becomes non-negative. Implementations must be deterministic and
// side-effect free.
type CorrectionStrategy interface {
	// Correct returns a replacement for a tensor whose energy density is
	// negative. The result must have non-negative energy density.
	Correct(t field.Tensor) field.Tensor

	// Name identifies the strategy in logs and reports.
	Name() string
}

// AttenuationStrategy is the default heuristic correction: it scales the
// time-space mixing components (the negative contributors under the -+++
// contraction) of a violating tensor by a fixed factor, and zeroes them
// outright when attenuation alone cannot restore a non-negative density.
//
// This is not a least-perturbation projection onto the positive-energy
// subspace; it guarantees compliance only.
type AttenuationStrategy struct {
	// Factor is the attenuation applied to mixing components. Must be in
	// (0, 1); zero selects DefaultAttenuationFactor.
	Factor float64
}

// Correct implements CorrectionStrategy.
func (s AttenuationStrategy) Correct(t field.Tensor) field.Tensor {
	factor := s.Factor
	if factor <= 0 || factor >= 1 {
		factor = DefaultAttenuationFactor
	}

	out := t
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			if (mu == 0) != (nu == 0) {
				out[mu][nu] *= factor
			}
		}
	}
	if field.EnergyDensity(out) >= 0 {
		return out
	}

	// Attenuation was not enough: the positive part of the contraction is
	// too small to absorb even the scaled mixing terms. Drop them.
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			if (mu == 0) != (nu == 0) {
				out[mu][nu] = 0
			}
		}
	}
	return out
}

// Name implements CorrectionStrategy.
func (s AttenuationStrategy) Name() string {
	return "attenuation"
}
