package enforcement

import (
	"math"
	"math/rand"
	"testing"

	"gravimed/aegis/pkg/field"
)

// mixingTensor builds a tensor whose energy density is the given negative
// value, by loading a single time-space mixing component.
func mixingTensor(t *testing.T, density float64) field.Tensor {
	t.Helper()
	if density >= 0 {
		t.Fatalf("mixingTensor wants a negative density, got %g", density)
	}
	// density = coeff * (-2x^2) for T01 = T10 = x, so solve for x using a
	// probe tensor with x = 1.
	probe := field.Tensor{{0, 1, 0, 0}, {1, 0, 0, 0}}
	unit := field.EnergyDensity(probe) // negative
	x := math.Sqrt(density / unit)

	return field.Tensor{{0, x, 0, 0}, {x, 0, 0, 0}}
}

func TestEnforce_CompliantConfigurationUnchanged(t *testing.T) {
	cfg, err := field.NewConfiguration(4)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}
	cfg.SetAt(1, 2, 3, field.Tensor{{1}})

	enforcer := NewEnforcer(Config{})
	safe, metrics := enforcer.Enforce(cfg)

	if safe != cfg {
		t.Error("compliant configuration should be returned unchanged")
	}
	if metrics.ProjectionApplied {
		t.Error("expected no projection")
	}
	if metrics.CorrectedPoints != 0 || metrics.ViolationPoints != 0 {
		t.Errorf("expected zero violations, got corrected=%d remaining=%d",
			metrics.CorrectedPoints, metrics.ViolationPoints)
	}
	if metrics.ComplianceRatio != 1.0 {
		t.Errorf("expected compliance 1.0, got %g", metrics.ComplianceRatio)
	}
}

func TestEnforce_SingleNegativePoint(t *testing.T) {
	// One grid point at energy density -2e-14, all others non-negative.
	cfg, err := field.NewConfiguration(4)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}
	cfg.SetAt(0, 0, 0, mixingTensor(t, -2e-14))
	cfg.SetAt(3, 3, 3, field.Tensor{{1e-3}})

	enforcer := NewEnforcer(Config{})
	safe, metrics := enforcer.Enforce(cfg)

	if !metrics.ProjectionApplied {
		t.Fatal("expected projection to run")
	}
	if metrics.CorrectedPoints != 1 {
		t.Errorf("expected 1 corrected point, got %d", metrics.CorrectedPoints)
	}
	if metrics.ViolationPoints != 0 {
		t.Errorf("expected 0 residual violations, got %d", metrics.ViolationPoints)
	}
	if metrics.ComplianceRatio != 1.0 {
		t.Errorf("expected compliance 1.0, got %g", metrics.ComplianceRatio)
	}
	if metrics.PreMinEnergyDensity >= 0 {
		t.Errorf("expected negative pre-correction minimum, got %g", metrics.PreMinEnergyDensity)
	}
	if safe.MinEnergyDensity() < 0 {
		t.Errorf("post-correction minimum still negative: %g", safe.MinEnergyDensity())
	}

	// Input must not be mutated.
	if cfg.MinEnergyDensity() >= 0 {
		t.Error("enforce mutated the caller's configuration")
	}
}

func TestEnforce_RandomizedNegativeInjections(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 25; trial++ {
		cfg, err := field.NewConfiguration(6)
		if err != nil {
			t.Fatalf("NewConfiguration failed: %v", err)
		}

		// Background of benign points plus random exotic injections.
		for p := 0; p < cfg.Len(); p++ {
			var tensor field.Tensor
			tensor[0][0] = rng.Float64() * 1e-6
			switch rng.Intn(4) {
			case 0:
				// Mixing-dominated: negative density.
				tensor[0][1] = rng.Float64() * 1e-3
				tensor[1][0] = tensor[0][1]
			case 1:
				// Mixing with strong timelike part: sign varies.
				tensor[0][2] = rng.Float64() * 1e-6
				tensor[0][0] = rng.Float64() * 1e-5
			}
			cfg.SetPoint(p, tensor)
		}

		enforcer := NewEnforcer(Config{})
		safe, metrics := enforcer.Enforce(cfg)

		if safe.MinEnergyDensity() < 0 {
			t.Fatalf("trial %d: residual negative density %g",
				trial, safe.MinEnergyDensity())
		}
		if metrics.ViolationPoints != 0 {
			t.Fatalf("trial %d: %d residual violations reported",
				trial, metrics.ViolationPoints)
		}
		if metrics.ComplianceRatio != 1.0 {
			t.Fatalf("trial %d: compliance %g", trial, metrics.ComplianceRatio)
		}
	}
}

func TestAttenuationStrategy_ScalesMixingComponents(t *testing.T) {
	// Timelike part large enough that 10x attenuation restores compliance.
	in := field.Tensor{{1, 2, 0, 0}, {2, 0, 0, 0}}
	if field.EnergyDensity(in) >= 0 {
		t.Fatal("test tensor should start non-compliant")
	}

	out := AttenuationStrategy{Factor: 0.1}.Correct(in)

	if out[0][0] != 1 {
		t.Errorf("timelike component changed: %g", out[0][0])
	}
	if math.Abs(out[0][1]-0.2) > 1e-15 || math.Abs(out[1][0]-0.2) > 1e-15 {
		t.Errorf("mixing components not attenuated: %g, %g", out[0][1], out[1][0])
	}
	if field.EnergyDensity(out) < 0 {
		t.Errorf("corrected tensor still negative: %g", field.EnergyDensity(out))
	}
}

func TestAttenuationStrategy_ZeroesWhenAttenuationInsufficient(t *testing.T) {
	// No positive part at all: attenuation cannot help.
	in := field.Tensor{{0, 5, 0, 0}, {5, 0, 0, 0}}

	out := AttenuationStrategy{}.Correct(in)

	if out[0][1] != 0 || out[1][0] != 0 {
		t.Errorf("expected mixing components zeroed, got %g, %g", out[0][1], out[1][0])
	}
	if field.EnergyDensity(out) < 0 {
		t.Errorf("corrected tensor still negative: %g", field.EnergyDensity(out))
	}
}

// stubStrategy leaves tensors untouched, violating the strategy contract.
// Used to verify that the enforcer reports residual violations honestly.
type stubStrategy struct{}

func (stubStrategy) Correct(t field.Tensor) field.Tensor { return t }
func (stubStrategy) Name() string                        { return "stub" }

func TestEnforce_ReportsResidualViolations(t *testing.T) {
	cfg, err := field.NewConfiguration(2)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}
	cfg.SetAt(0, 0, 0, field.Tensor{{0, 1, 0, 0}})

	enforcer := NewEnforcer(Config{Strategy: stubStrategy{}})
	_, metrics := enforcer.Enforce(cfg)

	if metrics.ViolationPoints != 1 {
		t.Errorf("expected 1 residual violation, got %d", metrics.ViolationPoints)
	}
	if metrics.ComplianceRatio >= 1.0 {
		t.Errorf("expected compliance below 1.0, got %g", metrics.ComplianceRatio)
	}
}
