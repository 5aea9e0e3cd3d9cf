package enforcement

import (
	"log/slog"

	"gravimed/aegis/pkg/field"
)

// Config contains configuration for the Enforcer.
type Config struct {
	// Strategy is the correction applied to violating points.
	// Defaults to AttenuationStrategy with DefaultAttenuationFactor.
	Strategy CorrectionStrategy

	// Logger receives violation warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Enforcer applies the positive energy constraint to field configurations.
type Enforcer struct {
	strategy CorrectionStrategy
	logger   *slog.Logger
}

// NewEnforcer creates an enforcer with the given configuration.
func NewEnforcer(cfg Config) *Enforcer {
	if cfg.Strategy == nil {
		cfg.Strategy = AttenuationStrategy{Factor: DefaultAttenuationFactor}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Enforcer{
		strategy: cfg.Strategy,
		logger:   cfg.Logger.With("component", "enforcement"),
	}
}

// Strategy returns the active correction strategy.
func (e *Enforcer) Strategy() CorrectionStrategy {
	return e.strategy
}

// Enforce projects cfg onto the positive-energy subspace.
//
// When no point violates the constraint, the input configuration is returned
// unchanged with ProjectionApplied false. Otherwise a corrected deep copy is
// returned; the caller's configuration is never mutated. The pass is
// deterministic and, apart from logging, side-effect free.
func (e *Enforcer) Enforce(cfg *field.Configuration) (*field.Configuration, Metrics) {
	total := cfg.Len()
	metrics := Metrics{
		TotalPoints:     total,
		ComplianceRatio: 1.0,
	}
	if total == 0 {
		return cfg, metrics
	}

	preMin := field.EnergyDensity(cfg.Point(0))
	violations := 0
	for p := 0; p < total; p++ {
		d := field.EnergyDensity(cfg.Point(p))
		if d < preMin {
			preMin = d
		}
		if d < 0 {
			violations++
		}
	}
	metrics.PreMinEnergyDensity = preMin
	metrics.PostMinEnergyDensity = preMin
	metrics.CorrectedPoints = violations

	if violations == 0 {
		return cfg, metrics
	}

	e.logger.Warn("positive energy constraint violation detected",
		"min_energy_density", preMin,
		"violation_points", violations,
		"total_points", total,
		"strategy", e.strategy.Name(),
	)

	safe := cfg.Clone()
	for p := 0; p < total; p++ {
		if field.EnergyDensity(safe.Point(p)) < 0 {
			safe.SetPoint(p, e.strategy.Correct(safe.Point(p)))
		}
	}

	metrics.ProjectionApplied = true
	metrics.PostMinEnergyDensity = safe.MinEnergyDensity()
	metrics.ComplianceRatio = safe.ComplianceRatio()

	remaining := 0
	for p := 0; p < total; p++ {
		if field.EnergyDensity(safe.Point(p)) < 0 {
			remaining++
		}
	}
	metrics.ViolationPoints = remaining

	if remaining > 0 {
		// The strategy contract forbids this; surface it loudly rather
		// than report a clean pass.
		e.logger.Error("correction strategy left residual violations",
			"strategy", e.strategy.Name(),
			"residual_points", remaining,
		)
	}

	return safe, metrics
}
