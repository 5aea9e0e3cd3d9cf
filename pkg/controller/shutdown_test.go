package controller

import (
	"sync"
	"testing"
	"time"

	"gravimed/aegis/pkg/field"
	"gravimed/aegis/pkg/safety"
	"gravimed/aegis/pkg/telemetry/metrics"
)

func TestEmergencyShutdownReport(t *testing.T) {
	c := newTestController(t)
	_ = c.Start()

	cfg, _ := field.NewConfiguration(8)
	cfg.SetPoint(0, diagonalTensor(1e-17))
	if err := c.ApplyConfiguration(cfg); err != nil {
		t.Fatalf("ApplyConfiguration() error = %v", err)
	}

	report := c.EmergencyShutdown("operator_panel")

	if report.Cause != "operator_panel" {
		t.Errorf("Cause = %q", report.Cause)
	}
	if !report.AllFieldsZeroed {
		t.Error("AllFieldsZeroed = false")
	}
	if !report.PositiveEnergyMaintained {
		t.Error("PositiveEnergyMaintained = false")
	}
	if !report.CausalityPreserved {
		t.Error("CausalityPreserved = false")
	}
	if !report.SafeState {
		t.Error("SafeState = false")
	}
	if !report.WithinBudget {
		t.Errorf("WithinBudget = false, elapsed %v exceeds %v",
			report.Elapsed, safety.EmergencyResponseBudget)
	}
	if report.Elapsed > safety.EmergencyResponseBudget {
		t.Errorf("Elapsed = %v, budget is %v", report.Elapsed, safety.EmergencyResponseBudget)
	}

	if c.State() != StateEmergencyStopped {
		t.Errorf("State() = %v, want emergency_stopped", c.State())
	}
}

func TestEmergencyShutdownResetsMetrics(t *testing.T) {
	c := newTestController(t)
	_ = c.Start()

	cfg, _ := field.NewConfiguration(8)
	cfg.SetPoint(0, diagonalTensor(1e-17))
	_ = c.ApplyConfiguration(cfg)

	c.EmergencyShutdown("external")

	m := c.CurrentMetrics()
	if m.FieldStrength != 0 {
		t.Errorf("FieldStrength = %v after shutdown, want 0", m.FieldStrength)
	}
	if m.PositiveEnergyCompliance != 1.0 {
		t.Errorf("compliance = %v after shutdown, want 1.0", m.PositiveEnergyCompliance)
	}
	// The safe default keeps the readiness flag asserted.
	if !m.EmergencyResponseReady {
		t.Error("EmergencyResponseReady = false after shutdown")
	}
}

func TestEmergencyShutdownIdempotent(t *testing.T) {
	c := newTestController(t)
	_ = c.Start()

	first := c.EmergencyShutdown("first")
	second := c.EmergencyShutdown("second")

	if first != second {
		t.Error("second caller did not receive the first caller's report")
	}
	if second.Cause != "first" {
		t.Errorf("Cause = %q, want first caller's cause", second.Cause)
	}
}

func TestEmergencyShutdownConcurrent(t *testing.T) {
	c := newTestController(t)
	_ = c.Start()

	const callers = 16
	reports := make([]*ShutdownReport, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			reports[i] = c.EmergencyShutdown("concurrent")
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if reports[i] != reports[0] {
			t.Fatalf("caller %d received a different report", i)
		}
	}
}

func TestEmergencyShutdownFromStandby(t *testing.T) {
	c := newTestController(t)

	report := c.EmergencyShutdown("preemptive")
	if !report.SafeState {
		t.Error("SafeState = false for standby shutdown")
	}
	if c.State() != StateEmergencyStopped {
		t.Errorf("State() = %v, want emergency_stopped", c.State())
	}
}

func TestEmergencyShutdownRecordsTelemetry(t *testing.T) {
	collector := metrics.NewCollector(metrics.Config{Enabled: true}, nil)

	cfg := testConfig()
	cfg.Metrics = collector
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_ = c.Start()
	report := c.EmergencyShutdown("telemetry")
	if !report.SafeState {
		t.Error("SafeState = false")
	}

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "aegis_controller_shutdown_triggers_total" {
			found = true
		}
	}
	if !found {
		t.Error("shutdown trigger counter not registered")
	}

	// Monitors halt without Stop being called.
	done := make(chan struct{})
	go func() {
		c.tasks.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("monitor tasks still running after shutdown")
	}
}
