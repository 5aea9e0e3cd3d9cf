package enhancement

import (
	"math"
	"testing"

	"gravimed/aegis/pkg/field"
)

func unitConfiguration(t *testing.T) *field.Configuration {
	t.Helper()
	cfg, err := field.NewConfiguration(2)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}
	// Unit-norm field: a single component of 1.
	cfg.SetAt(0, 0, 0, field.Tensor{{1}})
	return cfg
}

func TestEnhance_ReferenceParameters(t *testing.T) {
	calc := NewCalculator(Config{
		PolymerScale:     0.15,
		ImmirziParameter: 0.2375,
	})

	_, metrics := calc.Enhance(unitConfiguration(t))

	if math.Abs(metrics.SincFactor-0.9628) > 1e-3 {
		t.Errorf("sinc factor %g outside 0.9628 +/- 1e-3", metrics.SincFactor)
	}
	if math.Abs(metrics.CombinedMultiplier-0.2164) > 1e-3 {
		t.Errorf("combined multiplier %g outside 0.2164 +/- 1e-3", metrics.CombinedMultiplier)
	}
}

func TestEnhance_NeverAmplifies(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		gamma float64
	}{
		{"defaults", 0, 0},
		{"small scale", 0.01, 0.1},
		{"large scale", 0.9, 0.5},
		{"large gamma", 0.15, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(Config{
				PolymerScale:     tt.scale,
				ImmirziParameter: tt.gamma,
			})

			classical := unitConfiguration(t)
			classical.SetAt(1, 1, 1, field.Tensor{{0, 0.5, 0, 0}})

			enhanced, metrics := calc.Enhance(classical)

			if enhanced.Norm2() > classical.Norm2() {
				t.Errorf("enhanced norm %g exceeds classical norm %g",
					enhanced.Norm2(), classical.Norm2())
			}
			if metrics.FieldStrengthRatio > 1.0 {
				t.Errorf("field strength ratio %g above 1", metrics.FieldStrengthRatio)
			}
		})
	}
}

func TestEnhance_TheoreticalAndMeasuredAreIndependent(t *testing.T) {
	calc := NewCalculator(Config{})

	_, metrics := calc.Enhance(unitConfiguration(t))

	// Theoretical figure is the nominal constant scaled by sinc.
	wantTheoretical := DefaultNominalReduction * metrics.SincFactor
	if math.Abs(metrics.TheoreticalReduction-wantTheoretical) > 1 {
		t.Errorf("theoretical reduction %g, want %g", metrics.TheoreticalReduction, wantTheoretical)
	}

	// Measured figure is 1/multiplier^2 for any nonzero input.
	wantMeasured := 1.0 / (metrics.CombinedMultiplier * metrics.CombinedMultiplier)
	if math.Abs(metrics.MeasuredReduction-wantMeasured)/wantMeasured > 1e-9 {
		t.Errorf("measured reduction %g, want %g", metrics.MeasuredReduction, wantMeasured)
	}

	// The two figures do not agree; the API exposes both on purpose.
	if metrics.TheoreticalReduction == metrics.MeasuredReduction {
		t.Error("theoretical and measured reduction should differ for default parameters")
	}
}

func TestEnhance_ZeroField(t *testing.T) {
	calc := NewCalculator(Config{})

	cfg, err := field.NewConfiguration(2)
	if err != nil {
		t.Fatalf("NewConfiguration failed: %v", err)
	}

	enhanced, metrics := calc.Enhance(cfg)

	if !enhanced.IsZero() {
		t.Error("enhancing a zero field should yield a zero field")
	}
	if metrics.MeasuredReduction != 0 {
		t.Errorf("expected measured reduction 0 for zero field, got %g", metrics.MeasuredReduction)
	}
	if metrics.FieldStrengthRatio != 0 {
		t.Errorf("expected strength ratio 0 for zero field, got %g", metrics.FieldStrengthRatio)
	}
}

func TestEnhance_InputNotMutated(t *testing.T) {
	calc := NewCalculator(Config{})
	classical := unitConfiguration(t)

	_, _ = calc.Enhance(classical)

	if classical.At(0, 0, 0)[0][0] != 1 {
		t.Error("enhance mutated the caller's configuration")
	}
}

func TestSinc(t *testing.T) {
	if sinc(0) != 1 {
		t.Errorf("sinc(0) = %g, want 1", sinc(0))
	}
	if math.Abs(sinc(math.Pi)-0) > 1e-15 {
		t.Errorf("sinc(pi) = %g, want ~0", sinc(math.Pi))
	}
}
