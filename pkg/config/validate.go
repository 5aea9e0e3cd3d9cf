package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"gravimed/aegis/pkg/field"
	"gravimed/aegis/pkg/safety"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "safety.profile").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides access to
// all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any rules fail. All errors are collected and returned
// together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateSafety(&cfg.Safety)...)
	errs = append(errs, validateMonitor(&cfg.Monitor)...)
	errs = append(errs, validateEnhancement(&cfg.Enhancement)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateAdmin(&cfg.Admin)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateSafety validates the safety envelope selection.
func validateSafety(cfg *SafetyConfig) []FieldError {
	var errs []FieldError

	if _, err := safety.ParseProfile(cfg.Profile); err != nil {
		known := make([]string, 0, len(safety.Profiles()))
		for _, p := range safety.Profiles() {
			known = append(known, string(p))
		}
		errs = append(errs, FieldError{
			Field:   "safety.profile",
			Message: fmt.Sprintf("unknown profile %q (known: %s)", cfg.Profile, strings.Join(known, ", ")),
		})
	}

	if cfg.GridResolution < 2 || cfg.GridResolution > field.MaxResolution {
		errs = append(errs, FieldError{
			Field:   "safety.grid_resolution",
			Message: fmt.Sprintf("grid resolution must be in [2, %d]", field.MaxResolution),
		})
	}

	return errs
}

// validateMonitor validates the monitor cadences.
func validateMonitor(cfg *MonitorConfig) []FieldError {
	var errs []FieldError

	if cfg.SafetyCheckInterval <= 0 {
		errs = append(errs, FieldError{
			Field:   "monitor.safety_check_interval",
			Message: "safety check interval must be positive",
		})
	}
	if cfg.SafetyCheckInterval > safety.EmergencyResponseBudget {
		errs = append(errs, FieldError{
			Field:   "monitor.safety_check_interval",
			Message: fmt.Sprintf("safety check interval must not exceed the emergency response budget (%s)", safety.EmergencyResponseBudget),
		})
	}
	if cfg.MonitoringFrequency <= 0 {
		errs = append(errs, FieldError{
			Field:   "monitor.monitoring_frequency",
			Message: "monitoring frequency must be positive",
		})
	}
	if cfg.EmergencyWatchInterval <= 0 {
		errs = append(errs, FieldError{
			Field:   "monitor.emergency_watch_interval",
			Message: "emergency watch interval must be positive",
		})
	}
	if cfg.TaskJoinTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "monitor.task_join_timeout",
			Message: "task join timeout must be positive",
		})
	}

	return errs
}

// validateEnhancement validates the polymer enhancement parameters.
func validateEnhancement(cfg *EnhancementConfig) []FieldError {
	var errs []FieldError

	if cfg.PolymerScale <= 0 || cfg.PolymerScale >= 1 {
		errs = append(errs, FieldError{
			Field:   "enhancement.polymer_scale",
			Message: "polymer scale must be in (0, 1)",
		})
	}
	if cfg.ImmirziParameter <= 0 {
		errs = append(errs, FieldError{
			Field:   "enhancement.immirzi_parameter",
			Message: "Immirzi parameter must be positive",
		})
	}
	if cfg.NominalReduction < 1 {
		errs = append(errs, FieldError{
			Field:   "enhancement.nominal_reduction",
			Message: "nominal reduction must be at least 1",
		})
	}

	return errs
}

// validateAudit validates the audit trail configuration.
func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "sqlite", "memory":
	default:
		errs = append(errs, FieldError{
			Field:   "audit.backend",
			Message: fmt.Sprintf("unknown backend %q (known: sqlite, memory)", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.SQLitePath == "" {
		errs = append(errs, FieldError{
			Field:   "audit.sqlite_path",
			Message: "sqlite path is required for the sqlite backend",
		})
	}

	if cfg.AsyncBuffer < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.async_buffer",
			Message: "async buffer must be non-negative",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.write_timeout",
			Message: "write timeout must be non-negative",
		})
	}

	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.retention.days",
			Message: "retention days must be non-negative",
		})
	}
	if cfg.Retention.MaxEvents < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.retention.max_events",
			Message: "max events must be non-negative",
		})
	}
	if cfg.Retention.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "audit.retention.schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

// validateTelemetry validates logging and metrics configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (known: debug, info, warn, error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (known: json, text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Path != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}

// validateAdmin validates the admin endpoint configuration.
func validateAdmin(cfg *AdminConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "admin.listen_address",
			Message: "listen address is required when the admin endpoint is enabled",
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "admin.read_timeout",
			Message: "read timeout must be non-negative",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "admin.write_timeout",
			Message: "write timeout must be non-negative",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "admin.shutdown_timeout",
			Message: "shutdown timeout must be non-negative",
		})
	}

	return errs
}
