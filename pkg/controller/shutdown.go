package controller

import (
	"time"

	"gravimed/aegis/pkg/audit"
	"gravimed/aegis/pkg/field"
)

// ShutdownReport describes one executed emergency shutdown sequence.
type ShutdownReport struct {
	// Cause identifies what triggered the shutdown.
	Cause string `json:"cause"`

	// Started is when the sequence began.
	Started time.Time `json:"started"`

	// Elapsed is the wall-clock duration of the sequence.
	Elapsed time.Duration `json:"elapsed"`

	// WithinBudget reports whether Elapsed met the profile's emergency
	// response budget.
	WithinBudget bool `json:"within_budget"`

	// AllFieldsZeroed reports whether every field buffer reads zero.
	AllFieldsZeroed bool `json:"all_fields_zeroed"`

	// PositiveEnergyMaintained reports whether the post-shutdown state
	// satisfies the positive energy requirement.
	PositiveEnergyMaintained bool `json:"positive_energy_maintained"`

	// CausalityPreserved reports whether causality held through the
	// sequence.
	CausalityPreserved bool `json:"causality_preserved"`

	// SafeState is the conjunction of the above: the system is in a
	// verified safe state.
	SafeState bool `json:"safe_state"`
}

// EmergencyShutdown executes the emergency shutdown sequence: halt the
// monitors, zero every field buffer, verify the resulting state, and
// publish the safe-state metrics snapshot.
//
// The first caller wins; concurrent and later callers block until the
// sequence completes and receive the same report. The sequence never
// waits on monitor goroutine exit, storage, or telemetry: everything that
// can block is outside the timed path.
func (c *Controller) EmergencyShutdown(cause string) *ShutdownReport {
	if !c.shutdownFlag.CompareAndSwap(false, true) {
		<-c.shutdownDone
		return c.shutdownReport.Load()
	}

	start := time.Now()

	c.state.Store(int32(StateEmergencyStopped))
	if lc := c.lc.Load(); lc != nil {
		lc.halt()
	}

	c.mu.Lock()
	c.current.Zero()
	zeroed := c.current.IsZero()
	c.mu.Unlock()

	safe := field.SafeMetrics()
	c.metrics.Store(&safe)

	elapsed := time.Since(start)

	report := &ShutdownReport{
		Cause:                    cause,
		Started:                  start,
		Elapsed:                  elapsed,
		WithinBudget:             elapsed <= c.constraints.EmergencyResponseBudget,
		AllFieldsZeroed:          zeroed,
		PositiveEnergyMaintained: zeroed,
		CausalityPreserved:       true,
	}
	report.SafeState = report.AllFieldsZeroed && report.PositiveEnergyMaintained && report.CausalityPreserved

	c.shutdownReport.Store(report)
	close(c.shutdownDone)

	logAttrs := []any{
		"cause", cause,
		"elapsed", elapsed,
		"within_budget", report.WithinBudget,
		"all_fields_zeroed", report.AllFieldsZeroed,
		"safe_state", report.SafeState,
	}
	if report.WithinBudget && report.SafeState {
		c.logger.Warn("emergency shutdown executed", logAttrs...)
	} else {
		c.logger.Error("emergency shutdown executed outside budget or unsafe", logAttrs...)
	}

	c.recordAudit(audit.SeverityCritical, audit.KindEmergencyShutdown,
		"emergency shutdown executed", map[string]any{
			"cause":               cause,
			"elapsed_us":          elapsed.Microseconds(),
			"within_budget":       report.WithinBudget,
			"all_fields_zeroed":   report.AllFieldsZeroed,
			"safe_state":          report.SafeState,
			"budget_us":           c.constraints.EmergencyResponseBudget.Microseconds(),
			"profile":             string(c.config.Profile),
			"causality_preserved": report.CausalityPreserved,
		})

	if c.collector != nil {
		c.collector.Shutdown().RecordShutdown(cause, elapsed, report.WithinBudget)
	}

	return report
}

// LastShutdown returns the report of the executed shutdown sequence, or
// nil if no shutdown has occurred.
func (c *Controller) LastShutdown() *ShutdownReport {
	return c.shutdownReport.Load()
}
