package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gravimed/aegis/pkg/audit"
	"gravimed/aegis/pkg/enforcement"
	"gravimed/aegis/pkg/enhancement"
	"gravimed/aegis/pkg/field"
	"gravimed/aegis/pkg/safety"
	"gravimed/aegis/pkg/telemetry/metrics"
	"gravimed/aegis/pkg/validation"
)

// State is the controller lifecycle state.
type State int32

const (
	// StateStandby: constructed or stopped, monitors not running.
	StateStandby State = iota

	// StateActive: monitors running, field configurations accepted.
	StateActive

	// StateEmergencyStopped: emergency shutdown executed. Terminal; the
	// controller must be rebuilt after hardware inspection.
	StateEmergencyStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStandby:
		return "standby"
	case StateActive:
		return "active"
	case StateEmergencyStopped:
		return "emergency_stopped"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

var (
	// ErrNotActive is returned when an operation requires a running
	// controller.
	ErrNotActive = errors.New("controller is not active")

	// ErrAlreadyActive is returned by Start on a running controller.
	ErrAlreadyActive = errors.New("controller is already active")

	// ErrEmergencyStopped is returned after an emergency shutdown.
	ErrEmergencyStopped = errors.New("controller is emergency stopped")

	// ErrFieldRejected is returned when a field configuration fails
	// validation against the active safety envelope.
	ErrFieldRejected = errors.New("field configuration rejected")
)

// Config contains the controller construction parameters.
type Config struct {
	// Profile selects the biological safety envelope.
	Profile safety.Profile

	// GridResolution is the per-axis field grid resolution.
	GridResolution int

	// SafetyCheckInterval is the period of the constraint validation loop.
	SafetyCheckInterval time.Duration

	// MonitoringFrequency is the field quality sampling rate in Hz.
	MonitoringFrequency float64

	// EmergencyWatchInterval is the period of the critical-floor watch.
	EmergencyWatchInterval time.Duration

	// TaskJoinTimeout bounds how long Stop waits for monitor tasks.
	TaskJoinTimeout time.Duration

	// EmergencyProtocols enables the emergency shutdown path. When false
	// the critical watch still records violations but never shuts down.
	EmergencyProtocols bool

	// Enhancement carries the polymer enhancement parameters.
	Enhancement enhancement.Config

	// Strategy is the positive-energy correction strategy. Nil selects the
	// default attenuation strategy.
	Strategy enforcement.CorrectionStrategy

	// Logger is the structured logger. Nil selects slog.Default.
	Logger *slog.Logger

	// Metrics is the telemetry collector. Nil disables metric recording.
	Metrics *metrics.Collector

	// Audit is the audit recorder. Nil disables audit recording.
	Audit *audit.Recorder
}

// Controller enforces the safety envelope over a live graviton field. It
// owns the current field configuration, runs the three monitor tasks while
// active, and executes the emergency shutdown sequence when the envelope
// is violated.
type Controller struct {
	config      Config
	constraints safety.Constraints
	validator   *validation.Validator
	enforcer    *enforcement.Enforcer
	calculator  *enhancement.Calculator
	logger      *slog.Logger
	collector   *metrics.Collector
	audit       *audit.Recorder

	state atomic.Int32

	// mu guards current.
	mu      sync.RWMutex
	current *field.Configuration

	// published metrics snapshot, copy-on-update
	metrics atomic.Pointer[field.Metrics]

	// last critical-watch violations, copy-on-update
	lastCritical atomic.Pointer[criticalRecord]

	// set when the on-disk configuration diverges from the running envelope
	restartRequired atomic.Bool

	// shutdown exclusion: first CAS winner runs the sequence, later
	// callers wait on shutdownDone and read the same report
	shutdownFlag   atomic.Bool
	shutdownDone   chan struct{}
	shutdownReport atomic.Pointer[ShutdownReport]

	// monitor lifecycle. Start/Stop are serialized by lifecycleMu; the
	// active stop channel is published atomically so the shutdown path
	// can halt monitors without taking the lock.
	lifecycleMu sync.Mutex
	lc          atomic.Pointer[lifecycle]
	tasks       sync.WaitGroup
}

// lifecycle holds one Start..Stop span's stop channel. The once makes
// closing idempotent between Stop and the shutdown sequence.
type lifecycle struct {
	stopCh chan struct{}
	once   sync.Once
}

// halt closes the stop channel exactly once.
func (l *lifecycle) halt() {
	l.once.Do(func() { close(l.stopCh) })
}

type criticalRecord struct {
	Time       time.Time
	Violations []string
}

// New creates a controller for the given profile and grid shape. It fails
// fast on an unknown profile or invalid resolution: a misconfigured safety
// envelope must never reach a live field.
func New(cfg Config) (*Controller, error) {
	constraints, err := safety.ConstraintsFor(cfg.Profile)
	if err != nil {
		return nil, err
	}

	current, err := field.NewConfiguration(cfg.GridResolution)
	if err != nil {
		return nil, err
	}

	if cfg.SafetyCheckInterval <= 0 {
		cfg.SafetyCheckInterval = 50 * time.Microsecond
	}
	if cfg.MonitoringFrequency <= 0 {
		cfg.MonitoringFrequency = 20000
	}
	if cfg.EmergencyWatchInterval <= 0 {
		cfg.EmergencyWatchInterval = time.Millisecond
	}
	if cfg.TaskJoinTimeout <= 0 {
		cfg.TaskJoinTimeout = 250 * time.Millisecond
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "controller")

	cfg.Enhancement.Logger = logger

	c := &Controller{
		config:       cfg,
		constraints:  constraints,
		validator:    validation.NewValidator(constraints),
		enforcer:     enforcement.NewEnforcer(enforcement.Config{Strategy: cfg.Strategy, Logger: logger}),
		calculator:   enhancement.NewCalculator(cfg.Enhancement),
		logger:       logger,
		collector:    cfg.Metrics,
		audit:        cfg.Audit,
		current:      current,
		shutdownDone: make(chan struct{}),
	}

	c.state.Store(int32(StateStandby))
	safe := field.SafeMetrics()
	c.metrics.Store(&safe)

	logger.Info("safety controller initialized",
		"profile", cfg.Profile,
		"grid_resolution", cfg.GridResolution,
		"max_field_strength_tesla", constraints.MaxFieldStrength,
		"emergency_budget", constraints.EmergencyResponseBudget,
		"emergency_protocols", cfg.EmergencyProtocols,
	)

	return c, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Profile returns the active safety profile.
func (c *Controller) Profile() safety.Profile {
	return c.config.Profile
}

// Constraints returns the active safety constraints.
func (c *Controller) Constraints() safety.Constraints {
	return c.constraints
}

// Start transitions the controller to Active and launches the monitor
// tasks. It returns ErrAlreadyActive if already running and
// ErrEmergencyStopped after an emergency shutdown.
func (c *Controller) Start() error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	switch c.State() {
	case StateActive:
		return ErrAlreadyActive
	case StateEmergencyStopped:
		return ErrEmergencyStopped
	}

	lc := &lifecycle{stopCh: make(chan struct{})}
	c.lc.Store(lc)
	c.state.Store(int32(StateActive))

	c.tasks.Add(3)
	go c.runSafetyCheck(lc.stopCh)
	go c.runFieldQuality(lc.stopCh)
	go c.runEmergencyWatch(lc.stopCh)

	c.logger.Info("safety monitoring started",
		"safety_check_interval", c.config.SafetyCheckInterval,
		"monitoring_frequency_hz", c.config.MonitoringFrequency,
		"emergency_watch_interval", c.config.EmergencyWatchInterval,
	)
	c.recordAudit(audit.SeverityInfo, audit.KindStateChange, "controller started", map[string]any{
		"profile": string(c.config.Profile),
	})

	return nil
}

// Stop transitions an active controller back to Standby. Monitor tasks
// are joined with a bounded timeout; a task that fails to exit in time is
// logged and abandoned. An emergency-stopped controller stays stopped.
func (c *Controller) Stop() error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.State() != StateActive {
		return nil
	}

	c.state.Store(int32(StateStandby))
	if lc := c.lc.Load(); lc != nil {
		lc.halt()
	}

	if !c.joinTasks() {
		c.logger.Error("monitor tasks did not exit within join timeout",
			"timeout", c.config.TaskJoinTimeout,
		)
	}

	c.logger.Info("safety monitoring stopped")
	c.recordAudit(audit.SeverityInfo, audit.KindStateChange, "controller stopped", nil)

	return nil
}

// joinTasks waits for the monitor tasks with a bounded timeout.
func (c *Controller) joinTasks() bool {
	done := make(chan struct{})
	go func() {
		c.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(c.config.TaskJoinTimeout):
		return false
	}
}

// ApplyConfiguration validates a proposed field configuration and, if it
// satisfies the envelope, installs a private copy as the live field. The
// caller's configuration is never retained or mutated.
//
// Positive energy enforcement runs before validation, so a configuration
// with correctable negative-energy points is corrected rather than
// rejected. A configuration that still violates the envelope after
// correction is rejected, and if it demands an emergency response the
// shutdown sequence fires.
func (c *Controller) ApplyConfiguration(proposed *field.Configuration) error {
	switch c.State() {
	case StateEmergencyStopped:
		return ErrEmergencyStopped
	case StateStandby:
		return ErrNotActive
	}

	candidate := proposed.Clone()

	enforced, enfMetrics := c.enforcer.Enforce(candidate)
	c.recordEnforcement(enfMetrics)

	m := c.measure(enforced)
	result := c.validator.Validate(m)

	if !result.Safe {
		c.recordValidation(result)

		if result.EmergencyRequired && c.config.EmergencyProtocols {
			c.EmergencyShutdown("apply_configuration")
		}

		return fmt.Errorf("%w: %v", ErrFieldRejected, result.Violations)
	}

	c.mu.Lock()
	c.current = enforced
	c.mu.Unlock()
	c.publishMetrics(m)

	c.logger.Debug("field configuration applied",
		"field_strength_tesla", m.FieldStrength,
		"compliance", m.PositiveEnergyCompliance,
		"corrected_points", enfMetrics.CorrectedPoints,
	)

	return nil
}

// Enforce runs positive energy enforcement on a configuration without
// installing it. The input is not mutated.
func (c *Controller) Enforce(cfg *field.Configuration) (*field.Configuration, enforcement.Metrics) {
	enforced, m := c.enforcer.Enforce(cfg)
	c.recordEnforcement(m)
	return enforced, m
}

// Enhance applies polymer enhancement to a classical configuration
// without installing it. The input is not mutated.
func (c *Controller) Enhance(classical *field.Configuration) (*field.Configuration, enhancement.Metrics) {
	return c.calculator.Enhance(classical)
}

// FlagRestartRequired marks that the on-disk configuration diverged from
// the running envelope. Limits are immutable per controller instance, so
// the divergence is only surfaced through Status.
func (c *Controller) FlagRestartRequired() {
	c.restartRequired.Store(true)
}

// CurrentMetrics returns the latest published field metrics snapshot.
func (c *Controller) CurrentMetrics() field.Metrics {
	return *c.metrics.Load()
}

// measure computes a metrics snapshot from a configuration under the
// active envelope.
func (c *Controller) measure(cfg *field.Configuration) field.Metrics {
	strength := cfg.FieldStrength()

	// The safety factor tightens as the field approaches the profile
	// limit; an idle field reports the full protection factor.
	bioFactor := c.constraints.BiologicalProtectionFactor
	if strength > 0 {
		bioFactor = math.Min(c.constraints.MaxFieldStrength/strength, bioFactor)
	}

	m := field.Metrics{
		FieldStrength:            strength,
		EnergyDensity:            cfg.TotalEnergyDensity(),
		StressSample:             cfg.StressSample(),
		Curvature:                0,
		CausalityPreservation:    1.0,
		PositiveEnergyCompliance: cfg.ComplianceRatio(),
		BiologicalSafetyFactor:   bioFactor,
		Stability:                cfg.Stability(),
		EmergencyResponseReady:   c.config.EmergencyProtocols,
	}

	if strength > 0 {
		m.EnhancementFactor = c.calculator.NominalReduction()
	} else {
		m.EnhancementFactor = 1.0
	}

	return m
}

// publishMetrics installs a metrics snapshot and mirrors it to telemetry.
func (c *Controller) publishMetrics(m field.Metrics) {
	snapshot := m
	c.metrics.Store(&snapshot)

	if c.collector != nil {
		result := c.validator.Validate(m)
		c.collector.Safety().UpdateField(
			m.FieldStrength,
			m.EnergyDensity,
			m.PositiveEnergyCompliance,
			m.CausalityPreservation,
			result.Margins.Overall,
		)
		c.collector.Monitor().UpdateStability(m.Stability)
	}
}

// recordEnforcement mirrors enforcement results to audit and telemetry.
func (c *Controller) recordEnforcement(m enforcement.Metrics) {
	if m.CorrectedPoints == 0 && m.ViolationPoints == 0 {
		return
	}

	severity := audit.SeverityWarning
	if !m.Satisfied() {
		severity = audit.SeverityCritical
	}

	c.recordAudit(severity, audit.KindViolation, "positive energy enforcement applied", map[string]any{
		"corrected_points": m.CorrectedPoints,
		"violation_points": m.ViolationPoints,
		"total_points":     m.TotalPoints,
		"compliance_ratio": m.ComplianceRatio,
	})

	if c.collector != nil {
		c.collector.Safety().RecordViolation("positive_energy", string(severity))
	}
}

// recordValidation mirrors a failed validation to audit and telemetry.
func (c *Controller) recordValidation(result validation.Result) {
	severity := audit.SeverityWarning
	if result.EmergencyRequired {
		severity = audit.SeverityCritical
	}

	c.recordAudit(severity, audit.KindViolation, "safety validation failed", map[string]any{
		"violations":         result.Violations,
		"emergency_required": result.EmergencyRequired,
		"overall_margin":     result.Margins.Overall,
	})

	if c.collector != nil {
		for _, v := range result.Violations {
			c.collector.Safety().RecordViolation(checkName(v), string(severity))
		}
	}
}

// checkName maps a violation message to a metric label.
func checkName(violation string) string {
	lower := strings.ToLower(violation)
	switch {
	case strings.Contains(lower, "field strength"):
		return "field_strength"
	case strings.Contains(lower, "energy density"):
		return "energy_density"
	case strings.Contains(lower, "positive energy"), strings.Contains(lower, "compliance"):
		return "positive_energy"
	case strings.Contains(lower, "causality"):
		return "causality"
	default:
		return "other"
	}
}

// recordAudit writes an event if an audit recorder is attached.
func (c *Controller) recordAudit(severity audit.Severity, kind audit.Kind, message string, details map[string]any) {
	if c.audit == nil {
		return
	}
	c.audit.Record(severity, kind, message, details)
}
