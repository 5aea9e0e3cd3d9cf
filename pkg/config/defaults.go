package config

import "time"

// Default values for configuration fields that are zero after parsing.
const (
	DefaultProfile        = "tissue_standard"
	DefaultGridResolution = 64

	DefaultSafetyCheckInterval    = 50 * time.Microsecond
	DefaultMonitoringFrequency    = 20000.0
	DefaultEmergencyWatchInterval = time.Millisecond
	DefaultTaskJoinTimeout        = 250 * time.Millisecond

	DefaultPolymerScale     = 0.15
	DefaultImmirziParameter = 0.2375
	DefaultNominalReduction = 242e6

	DefaultAuditBackend      = "sqlite"
	DefaultAuditSQLitePath   = "data/audit.db"
	DefaultAuditAsyncBuffer  = 1000
	DefaultAuditWriteTimeout = 5 * time.Second

	DefaultRetentionDays     = 365
	DefaultRetentionSchedule = "0 3 * * *"

	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultMetricsPath = "/metrics"

	DefaultAdminListenAddress   = "127.0.0.1:9465"
	DefaultAdminReadTimeout     = 10 * time.Second
	DefaultAdminWriteTimeout    = 10 * time.Second
	DefaultAdminShutdownTimeout = 10 * time.Second
)

// DefaultConfig returns a fully populated configuration with default
// values. Boolean fields that default to true are set here; ApplyDefaults
// cannot distinguish false from unset.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Safety.EmergencyProtocols = true
	cfg.Audit.Enabled = true
	cfg.Telemetry.Metrics.Enabled = true
	cfg.Admin.Enabled = true
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults. Boolean fields are
// left as parsed: YAML `false` and absent are indistinguishable here, so
// enabling flags defaults are handled by DefaultConfig for programmatic
// construction and documented per field for file-based configuration.
func ApplyDefaults(cfg *Config) {
	// Safety
	if cfg.Safety.Profile == "" {
		cfg.Safety.Profile = DefaultProfile
	}
	if cfg.Safety.GridResolution == 0 {
		cfg.Safety.GridResolution = DefaultGridResolution
	}

	// Monitor
	if cfg.Monitor.SafetyCheckInterval == 0 {
		cfg.Monitor.SafetyCheckInterval = DefaultSafetyCheckInterval
	}
	if cfg.Monitor.MonitoringFrequency == 0 {
		cfg.Monitor.MonitoringFrequency = DefaultMonitoringFrequency
	}
	if cfg.Monitor.EmergencyWatchInterval == 0 {
		cfg.Monitor.EmergencyWatchInterval = DefaultEmergencyWatchInterval
	}
	if cfg.Monitor.TaskJoinTimeout == 0 {
		cfg.Monitor.TaskJoinTimeout = DefaultTaskJoinTimeout
	}

	// Enhancement
	if cfg.Enhancement.PolymerScale == 0 {
		cfg.Enhancement.PolymerScale = DefaultPolymerScale
	}
	if cfg.Enhancement.ImmirziParameter == 0 {
		cfg.Enhancement.ImmirziParameter = DefaultImmirziParameter
	}
	if cfg.Enhancement.NominalReduction == 0 {
		cfg.Enhancement.NominalReduction = DefaultNominalReduction
	}

	// Audit
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLitePath == "" {
		cfg.Audit.SQLitePath = DefaultAuditSQLitePath
	}
	if cfg.Audit.AsyncBuffer == 0 {
		cfg.Audit.AsyncBuffer = DefaultAuditAsyncBuffer
	}
	if cfg.Audit.WriteTimeout == 0 {
		cfg.Audit.WriteTimeout = DefaultAuditWriteTimeout
	}
	if cfg.Audit.Retention.Days == 0 {
		cfg.Audit.Retention.Days = DefaultRetentionDays
	}
	if cfg.Audit.Retention.Schedule == "" {
		cfg.Audit.Retention.Schedule = DefaultRetentionSchedule
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}

	// Admin
	if cfg.Admin.ListenAddress == "" {
		cfg.Admin.ListenAddress = DefaultAdminListenAddress
	}
	if cfg.Admin.ReadTimeout == 0 {
		cfg.Admin.ReadTimeout = DefaultAdminReadTimeout
	}
	if cfg.Admin.WriteTimeout == 0 {
		cfg.Admin.WriteTimeout = DefaultAdminWriteTimeout
	}
	if cfg.Admin.ShutdownTimeout == 0 {
		cfg.Admin.ShutdownTimeout = DefaultAdminShutdownTimeout
	}
}
