package safety

import (
	"errors"
	"fmt"
	"time"
)

// Profile identifies a biological safety tier for graviton field operation.
type Profile string

const (
	// ProfileNeuralUltraSafe is the most conservative tier, for direct
	// neural tissue exposure (1e-18 T field limit).
	ProfileNeuralUltraSafe Profile = "neural_ultra_safe"

	// ProfileVascularSafe covers blood vessel exposure (1e-16 T).
	ProfileVascularSafe Profile = "vascular_safe"

	// ProfileCellularSafe covers individual cell manipulation (1e-14 T).
	ProfileCellularSafe Profile = "cellular_safe"

	// ProfileTissueStandard covers general tissue exposure (1e-12 T).
	// This is the default profile.
	ProfileTissueStandard Profile = "tissue_standard"

	// ProfileOrganLevel covers organ-scale manipulation (1e-10 T).
	ProfileOrganLevel Profile = "organ_level"

	// ProfileSurgicalTools is the most permissive tier, for instrument
	// control away from tissue (1e-8 T).
	ProfileSurgicalTools Profile = "surgical_tools"
)

// ErrUnknownProfile is returned when a profile name has no constraint table.
var ErrUnknownProfile = errors.New("unknown safety profile")

const (
	// EmergencyResponseBudget is the maximum wall-clock duration allowed for
	// the emergency shutdown sequence. It is constant across all profiles.
	EmergencyResponseBudget = 50 * time.Millisecond

	// BiologicalProtectionFactor is the protection margin maintained above
	// WHO biological exposure limits.
	BiologicalProtectionFactor = 1e12

	// CausalityThreshold is the minimum acceptable causality preservation
	// score for safe operation.
	CausalityThreshold = 0.995

	// RequiredCompliance is the positive energy compliance ratio required
	// for safe operation.
	RequiredCompliance = 1.0
)

// Constraints holds the numeric limits attached to a safety profile.
type Constraints struct {
	// MaxFieldStrength is the maximum graviton field strength in Tesla.
	MaxFieldStrength float64

	// MaxEnergyDensity is the maximum energy density in J/m^3.
	MaxEnergyDensity float64

	// MaxCurvature is the maximum allowed spacetime curvature.
	MaxCurvature float64

	// EmergencyResponseBudget is the shutdown deadline. Identical for every
	// profile; carried here so callers hold one value object.
	EmergencyResponseBudget time.Duration

	// BiologicalProtectionFactor is the margin above WHO exposure limits.
	BiologicalProtectionFactor float64

	// CausalityThreshold is the minimum causality preservation score.
	CausalityThreshold float64

	// RequiredCompliance is the required positive energy compliance ratio.
	RequiredCompliance float64
}

// limits is the per-profile constraint table. Each step up multiplies the
// field strength limit by 100 and relaxes energy density and curvature
// accordingly. Ordering here is conservative to permissive and is relied on
// by Profiles().
var limits = []struct {
	profile   Profile
	field     float64
	density   float64
	curvature float64
}{
	{ProfileNeuralUltraSafe, 1e-18, 1e-30, 1e-50},
	{ProfileVascularSafe, 1e-16, 1e-28, 1e-48},
	{ProfileCellularSafe, 1e-14, 1e-26, 1e-46},
	{ProfileTissueStandard, 1e-12, 1e-24, 1e-44},
	{ProfileOrganLevel, 1e-10, 1e-22, 1e-42},
	{ProfileSurgicalTools, 1e-8, 1e-20, 1e-40},
}

// Profiles returns all safety profiles ordered from most conservative to
// most permissive. The returned slice is a copy.
func Profiles() []Profile {
	out := make([]Profile, len(limits))
	for i, l := range limits {
		out[i] = l.profile
	}
	return out
}

// ConstraintsFor returns the constraint table for the given profile.
// It returns ErrUnknownProfile for a profile with no table.
func ConstraintsFor(p Profile) (Constraints, error) {
	for _, l := range limits {
		if l.profile == p {
			return Constraints{
				MaxFieldStrength:           l.field,
				MaxEnergyDensity:           l.density,
				MaxCurvature:               l.curvature,
				EmergencyResponseBudget:    EmergencyResponseBudget,
				BiologicalProtectionFactor: BiologicalProtectionFactor,
				CausalityThreshold:         CausalityThreshold,
				RequiredCompliance:         RequiredCompliance,
			}, nil
		}
	}
	return Constraints{}, fmt.Errorf("%w: %q", ErrUnknownProfile, p)
}

// ParseProfile converts a configuration string into a Profile.
func ParseProfile(s string) (Profile, error) {
	p := Profile(s)
	if _, err := ConstraintsFor(p); err != nil {
		return "", err
	}
	return p, nil
}

// String returns the profile name.
func (p Profile) String() string {
	return string(p)
}
