package enhancement

import (
	"log/slog"
	"math"

	"gravimed/aegis/pkg/field"
)

// PlanckLength is the Planck length in meters.
const PlanckLength = 1.616255e-35

// Default polymer parameters.
const (
	// DefaultPolymerScale is the optimized polymer scale parameter mu.
	DefaultPolymerScale = 0.15

	// DefaultImmirziParameter is the Immirzi-like parameter gamma.
	DefaultImmirziParameter = 0.2375

	// DefaultNominalReduction is the configured headline energy reduction
	// constant (242M).
	DefaultNominalReduction = 242e6
)

// Config contains configuration for the Calculator.
type Config struct {
	// PolymerScale is the polymer scale parameter mu. Zero selects the
	// default.
	PolymerScale float64

	// ImmirziParameter is the secondary parameter gamma. Zero selects the
	// default.
	ImmirziParameter float64

	// NominalReduction is the configured reduction constant used for the
	// theoretical figure. Zero selects the default.
	NominalReduction float64

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Metrics describes one enhancement pass.
type Metrics struct {
	// SincFactor is sinc(pi*mu).
	SincFactor float64 `json:"sinc_factor"`

	// ImmirziFactor is gamma/(1+gamma^2).
	ImmirziFactor float64 `json:"immirzi_factor"`

	// CombinedMultiplier is the elementwise multiplier applied to the
	// field: SincFactor * ImmirziFactor.
	CombinedMultiplier float64 `json:"combined_multiplier"`

	// TheoreticalReduction is the configured nominal constant scaled by the
	// sinc factor. This is the claimed figure; it is not derived from the
	// actual field magnitudes.
	TheoreticalReduction float64 `json:"theoretical_reduction"`

	// MeasuredReduction is the observed input/output magnitude ratio
	// (classical norm^2 over enhanced norm^2). Zero when the input field
	// is zero.
	MeasuredReduction float64 `json:"measured_reduction"`

	// FieldStrengthRatio is enhanced norm over classical norm, in [0,1].
	FieldStrengthRatio float64 `json:"field_strength_ratio"`
}

// Parameters is the configured polymer parameter block, exposed through
// status reports.
type Parameters struct {
	// PolymerScale is the polymer scale parameter mu.
	PolymerScale float64 `json:"polymer_scale"`

	// ImmirziParameter is the secondary parameter gamma.
	ImmirziParameter float64 `json:"immirzi_parameter"`

	// NominalReduction is the configured headline reduction constant.
	NominalReduction float64 `json:"nominal_reduction"`

	// PolymerLengthScale is mu times the Planck length, in meters.
	PolymerLengthScale float64 `json:"polymer_length_scale_m"`
}

// Calculator applies the polymer enhancement transform.
type Calculator struct {
	scale   float64
	gamma   float64
	nominal float64
	logger  *slog.Logger
}

// NewCalculator creates a calculator with the given configuration.
func NewCalculator(cfg Config) *Calculator {
	if cfg.PolymerScale == 0 {
		cfg.PolymerScale = DefaultPolymerScale
	}
	if cfg.ImmirziParameter == 0 {
		cfg.ImmirziParameter = DefaultImmirziParameter
	}
	if cfg.NominalReduction == 0 {
		cfg.NominalReduction = DefaultNominalReduction
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Calculator{
		scale:   cfg.PolymerScale,
		gamma:   cfg.ImmirziParameter,
		nominal: cfg.NominalReduction,
		logger:  cfg.Logger.With("component", "enhancement"),
	}
}

// PolymerScale returns the configured polymer scale parameter.
func (c *Calculator) PolymerScale() float64 { return c.scale }

// ImmirziParameter returns the configured secondary parameter.
func (c *Calculator) ImmirziParameter() float64 { return c.gamma }

// NominalReduction returns the configured reduction constant.
func (c *Calculator) NominalReduction() float64 { return c.nominal }

// Parameters returns the configured parameter block.
func (c *Calculator) Parameters() Parameters {
	return Parameters{
		PolymerScale:       c.scale,
		ImmirziParameter:   c.gamma,
		NominalReduction:   c.nominal,
		PolymerLengthScale: c.scale * PlanckLength,
	}
}

// SincFactor returns sinc(pi*mu) for the configured scale.
func (c *Calculator) SincFactor() float64 {
	return sinc(math.Pi * c.scale)
}

// Enhance applies the polymer correction to a classical field, returning
// the enhanced field (a new configuration; the input is not mutated) and
// the enhancement metrics.
func (c *Calculator) Enhance(classical *field.Configuration) (*field.Configuration, Metrics) {
	sincFactor := sinc(math.Pi * c.scale)
	immirzi := c.gamma / (1 + c.gamma*c.gamma)
	multiplier := sincFactor * immirzi

	enhanced := classical.Clone()
	for p := 0; p < enhanced.Len(); p++ {
		enhanced.SetPoint(p, enhanced.Point(p).Scale(multiplier))
	}

	metrics := Metrics{
		SincFactor:           sincFactor,
		ImmirziFactor:        immirzi,
		CombinedMultiplier:   multiplier,
		TheoreticalReduction: c.nominal * sincFactor,
	}

	classicalNorm2 := classical.Norm2()
	enhancedNorm2 := enhanced.Norm2()
	if enhancedNorm2 > 0 {
		metrics.MeasuredReduction = classicalNorm2 / enhancedNorm2
	}
	if classicalNorm2 > 0 {
		metrics.FieldStrengthRatio = math.Sqrt(enhancedNorm2 / classicalNorm2)
	}

	c.logger.Debug("polymer enhancement applied",
		"sinc_factor", sincFactor,
		"combined_multiplier", multiplier,
		"theoretical_reduction", metrics.TheoreticalReduction,
		"measured_reduction", metrics.MeasuredReduction,
	)

	return enhanced, metrics
}

// sinc returns sin(x)/x with the removable singularity at zero filled in.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}
