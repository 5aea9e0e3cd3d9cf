package safety

import (
	"errors"
	"testing"
	"time"
)

func TestConstraintsFor_KnownProfiles(t *testing.T) {
	tests := []struct {
		profile     Profile
		maxField    float64
		maxDensity  float64
		maxCurvature float64
	}{
		{ProfileNeuralUltraSafe, 1e-18, 1e-30, 1e-50},
		{ProfileVascularSafe, 1e-16, 1e-28, 1e-48},
		{ProfileCellularSafe, 1e-14, 1e-26, 1e-46},
		{ProfileTissueStandard, 1e-12, 1e-24, 1e-44},
		{ProfileOrganLevel, 1e-10, 1e-22, 1e-42},
		{ProfileSurgicalTools, 1e-8, 1e-20, 1e-40},
	}

	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			c, err := ConstraintsFor(tt.profile)
			if err != nil {
				t.Fatalf("ConstraintsFor failed: %v", err)
			}
			if c.MaxFieldStrength != tt.maxField {
				t.Errorf("Expected max field %g, got %g", tt.maxField, c.MaxFieldStrength)
			}
			if c.MaxEnergyDensity != tt.maxDensity {
				t.Errorf("Expected max density %g, got %g", tt.maxDensity, c.MaxEnergyDensity)
			}
			if c.MaxCurvature != tt.maxCurvature {
				t.Errorf("Expected max curvature %g, got %g", tt.maxCurvature, c.MaxCurvature)
			}
		})
	}
}

func TestConstraintsFor_Unknown(t *testing.T) {
	_, err := ConstraintsFor(Profile("interstitial"))
	if err == nil {
		t.Fatal("Expected error for unknown profile")
	}
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Expected ErrUnknownProfile, got %v", err)
	}
}

func TestProfiles_StrictlyIncreasingFieldLimit(t *testing.T) {
	profiles := Profiles()
	if len(profiles) != 6 {
		t.Fatalf("Expected 6 profiles, got %d", len(profiles))
	}

	prev := 0.0
	for _, p := range profiles {
		c, err := ConstraintsFor(p)
		if err != nil {
			t.Fatalf("ConstraintsFor(%s) failed: %v", p, err)
		}
		if c.MaxFieldStrength <= prev {
			t.Errorf("Profile %s field limit %g not strictly greater than previous %g",
				p, c.MaxFieldStrength, prev)
		}
		prev = c.MaxFieldStrength
	}
}

func TestEmergencyBudget_ConstantAcrossProfiles(t *testing.T) {
	for _, p := range Profiles() {
		c, err := ConstraintsFor(p)
		if err != nil {
			t.Fatalf("ConstraintsFor(%s) failed: %v", p, err)
		}
		if c.EmergencyResponseBudget != 50*time.Millisecond {
			t.Errorf("Profile %s: expected 50ms budget, got %v", p, c.EmergencyResponseBudget)
		}
	}
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("tissue_standard")
	if err != nil {
		t.Fatalf("ParseProfile failed: %v", err)
	}
	if p != ProfileTissueStandard {
		t.Errorf("Expected tissue_standard, got %s", p)
	}

	if _, err := ParseProfile("bogus"); err == nil {
		t.Error("Expected error for bogus profile name")
	}
}
