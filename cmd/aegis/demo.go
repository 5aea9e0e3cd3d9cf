package main

import (
	"context"
	"log/slog"
	"math"
	"time"

	"gravimed/aegis/pkg/controller"
	"gravimed/aegis/pkg/field"
)

// demoTensor builds the synthetic field sample at the given amplitude.
func demoTensor(amplitude float64) field.Tensor {
	var t field.Tensor
	t[1][1] = amplitude
	t[2][2] = amplitude * 0.5
	return t
}

// runDemoGenerator drives the controller with a synthetic field so the
// monitors, metrics, and audit trail have something to observe without
// generator hardware attached. The field breathes sinusoidally at half the
// profile limits, always inside the envelope.
func runDemoGenerator(ctx context.Context, ctrl *controller.Controller, resolution int) {
	constraints := ctrl.Constraints()

	// Evaluate the demo tensor shape at unit amplitude: strength scales
	// linearly with amplitude, energy density quadratically. Size the
	// peak so both sit at half their profile limits.
	unit, err := field.NewConfiguration(1)
	if err != nil {
		slog.Error("demo generator failed to allocate field", "error", err)
		return
	}
	unit.SetPoint(0, demoTensor(1))
	strengthCap := 0.5 * constraints.MaxFieldStrength / unit.FieldStrength()
	densityCap := math.Sqrt(0.5 * constraints.MaxEnergyDensity / unit.TotalEnergyDensity())
	peak := math.Min(strengthCap, densityCap)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctrl.State() != controller.StateActive {
				return
			}

			phase := time.Since(start).Seconds()
			amplitude := peak * (0.5 + 0.5*math.Sin(phase))

			cfg, err := field.NewConfiguration(resolution)
			if err != nil {
				slog.Error("demo generator failed to allocate field", "error", err)
				return
			}

			cfg.SetPoint(0, demoTensor(amplitude))

			if err := ctrl.ApplyConfiguration(cfg); err != nil {
				slog.Warn("demo field rejected", "error", err)
			}
		}
	}
}
