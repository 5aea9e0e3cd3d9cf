package field

import (
	"errors"
	"math"
	"testing"
)

func TestNewConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		resolution int
		wantErr    bool
	}{
		{"default", DefaultResolution, false},
		{"minimum", 1, false},
		{"small", 4, false},
		{"zero", 0, true},
		{"negative", -8, true},
		{"too large", MaxResolution + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfiguration(tt.resolution)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidResolution) {
					t.Errorf("expected ErrInvalidResolution, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConfiguration failed: %v", err)
			}
			want := tt.resolution * tt.resolution * tt.resolution
			if cfg.Len() != want {
				t.Errorf("expected %d points, got %d", want, cfg.Len())
			}
			if !cfg.IsZero() {
				t.Error("new configuration should be zeroed")
			}
		})
	}
}

func TestTensor_LorentzQ(t *testing.T) {
	tests := []struct {
		name   string
		tensor Tensor
		want   float64
	}{
		{"zero", Tensor{}, 0},
		{"timelike only", Tensor{{3}}, 9},
		{"spatial diagonal", Tensor{0: {0}, 1: {0, 2}}, 4},
		{"mixing only", Tensor{{0, 2, 0, 0}}, -4},
		{
			"mixed signs",
			Tensor{{1, 2, 0, 0}, {2, 0, 0, 0}}, // T00=1, T01=T10=2
			1 - 4 - 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tensor.LorentzQ(); got != tt.want {
				t.Errorf("LorentzQ = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestEnergyDensity_SignFollowsContraction(t *testing.T) {
	positive := Tensor{{1}}
	negative := Tensor{{0, 1, 0, 0}}

	if d := EnergyDensity(positive); d <= 0 {
		t.Errorf("timelike tensor should have positive density, got %g", d)
	}
	if d := EnergyDensity(negative); d >= 0 {
		t.Errorf("mixing tensor should have negative density, got %g", d)
	}
}

func TestConfiguration_CloneIsDeep(t *testing.T) {
	cfg, err := NewConfiguration(2)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}
	cfg.SetAt(0, 0, 0, Tensor{{1}})

	clone := cfg.Clone()
	clone.SetAt(0, 0, 0, Tensor{{2}})

	if cfg.At(0, 0, 0)[0][0] != 1 {
		t.Error("mutating the clone changed the original")
	}
	if clone.At(0, 0, 0)[0][0] != 2 {
		t.Error("clone did not take the write")
	}
}

func TestConfiguration_ComplianceRatio(t *testing.T) {
	cfg, err := NewConfiguration(2)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}

	// All-zero grid is fully compliant.
	if r := cfg.ComplianceRatio(); r != 1.0 {
		t.Errorf("expected compliance 1.0 for zero grid, got %g", r)
	}

	// One mixing-dominated point out of 8.
	cfg.SetAt(1, 1, 1, Tensor{{0, 1, 0, 0}})
	want := 7.0 / 8.0
	if r := cfg.ComplianceRatio(); math.Abs(r-want) > 1e-12 {
		t.Errorf("expected compliance %g, got %g", want, r)
	}
	if cfg.MinEnergyDensity() >= 0 {
		t.Error("expected negative minimum density")
	}
}

func TestConfiguration_ZeroClearsEverything(t *testing.T) {
	cfg, err := NewConfiguration(3)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}
	for p := 0; p < cfg.Len(); p++ {
		cfg.SetPoint(p, Tensor{{float64(p + 1)}})
	}

	cfg.Zero()

	if !cfg.IsZero() {
		t.Error("Zero did not clear all points")
	}
	if cfg.Norm2() != 0 {
		t.Errorf("expected zero norm, got %g", cfg.Norm2())
	}
}

func TestConfiguration_Stability(t *testing.T) {
	cfg, err := NewConfiguration(2)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}

	// Zero field: stability 1.
	if s := cfg.Stability(); s != 1.0 {
		t.Errorf("expected stability 1.0 for zero field, got %g", s)
	}

	// Uniform field: stddev across components is nonzero (most components
	// are zero), so stability drops below 1 but stays positive.
	for p := 0; p < cfg.Len(); p++ {
		cfg.SetPoint(p, Tensor{{1}})
	}
	s := cfg.Stability()
	if s <= 0 || s >= 1 {
		t.Errorf("expected stability in (0,1), got %g", s)
	}
}

func TestConfiguration_TotalEnergyDensity(t *testing.T) {
	cfg, err := NewConfiguration(2)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}

	if got := cfg.TotalEnergyDensity(); got != 0 {
		t.Errorf("zero field density = %g, want 0", got)
	}

	// A mixing-dominated point has negative per-point density, but the
	// magnitude-derived total is always non-negative.
	var mixing Tensor
	mixing[0][1] = 0.5
	mixing[1][0] = 0.5
	cfg.SetAt(0, 0, 0, mixing)

	total := cfg.TotalEnergyDensity()
	if total <= 0 {
		t.Errorf("magnitude-derived density = %g, want > 0", total)
	}
	if cfg.MinEnergyDensity() >= 0 {
		t.Error("mixing point should carry negative per-point density")
	}

	want := 0.5 * cfg.Norm2() / (8 * math.Pi * 6.67430e-11)
	if math.Abs(total-want)/want > 1e-12 {
		t.Errorf("density = %g, want %g", total, want)
	}
}

func TestSafeMetrics(t *testing.T) {
	m := SafeMetrics()

	if m.FieldStrength != 0 || m.EnergyDensity != 0 {
		t.Error("safe metrics should describe a zero field")
	}
	if m.PositiveEnergyCompliance != 1.0 {
		t.Errorf("expected full compliance, got %g", m.PositiveEnergyCompliance)
	}
	if m.CausalityPreservation != 1.0 {
		t.Errorf("expected causality 1.0, got %g", m.CausalityPreservation)
	}
	if !m.EmergencyResponseReady {
		t.Error("safe metrics should assert emergency readiness")
	}
}
