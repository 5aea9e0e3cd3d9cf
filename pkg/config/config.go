package config

import "time"

// Config is the root configuration structure for the Aegis safety
// controller. It contains all sections: safety envelope selection, monitor
// cadences, enhancement parameters, audit trail, telemetry, and the admin
// endpoint.
type Config struct {
	// Safety selects the biological safety profile and field grid shape.
	Safety SafetyConfig `yaml:"safety"`

	// Monitor sets the cadences of the periodic safety tasks.
	Monitor MonitorConfig `yaml:"monitor"`

	// Enhancement sets the polymer enhancement parameters.
	Enhancement EnhancementConfig `yaml:"enhancement"`

	// Audit configures the safety audit trail.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Admin configures the admin HTTP endpoint (status, metrics, probes).
	Admin AdminConfig `yaml:"admin"`

	// Watch enables reloading on configuration file changes. Changes to
	// the safety profile or grid shape require a controller restart and
	// are only logged.
	Watch bool `yaml:"watch"`
}

// SafetyConfig selects the safety envelope the controller enforces.
type SafetyConfig struct {
	// Profile is the biological safety profile name.
	// One of: neural_ultra_safe, vascular_safe, cellular_safe,
	// tissue_standard, organ_level, surgical_tools.
	// Default: "tissue_standard"
	Profile string `yaml:"profile"`

	// GridResolution is the per-axis resolution of the field sample grid.
	// The grid holds GridResolution^3 stress-energy sample points.
	// Default: 64
	GridResolution int `yaml:"grid_resolution"`

	// EmergencyProtocols enables the emergency shutdown path. Disabling it
	// is only sensible for offline analysis of recorded fields.
	// Default: true
	EmergencyProtocols bool `yaml:"emergency_protocols"`
}

// MonitorConfig sets the cadences of the periodic monitor tasks.
type MonitorConfig struct {
	// SafetyCheckInterval is the period of the full constraint validation
	// loop.
	// Default: 50us
	SafetyCheckInterval time.Duration `yaml:"safety_check_interval"`

	// MonitoringFrequency is the field quality sampling rate in Hz.
	// Default: 20000
	MonitoringFrequency float64 `yaml:"monitoring_frequency"`

	// EmergencyWatchInterval is the period of the critical-floor watch
	// loop.
	// Default: 1ms
	EmergencyWatchInterval time.Duration `yaml:"emergency_watch_interval"`

	// TaskJoinTimeout bounds how long Stop waits for monitor tasks to
	// exit.
	// Default: 250ms
	TaskJoinTimeout time.Duration `yaml:"task_join_timeout"`
}

// EnhancementConfig sets the polymer enhancement parameters.
type EnhancementConfig struct {
	// PolymerScale is the polymer quantization scale mu.
	// Default: 0.15
	PolymerScale float64 `yaml:"polymer_scale"`

	// ImmirziParameter is the Barbero-Immirzi parameter gamma.
	// Default: 0.2375
	ImmirziParameter float64 `yaml:"immirzi_parameter"`

	// NominalReduction is the nominal classical-to-enhanced energy
	// reduction factor the hardware is rated for.
	// Default: 242e6
	NominalReduction float64 `yaml:"nominal_reduction"`
}

// AuditConfig configures the safety audit trail.
type AuditConfig struct {
	// Enabled enables audit event recording.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/audit.db"
	SQLitePath string `yaml:"sqlite_path"`

	// AsyncBuffer is the size of the recorder's async write buffer.
	// Default: 1000
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout is the timeout for writing an event to storage.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Retention configures trail pruning.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig configures audit trail pruning.
type RetentionConfig struct {
	// Days is the number of days to retain events. 0 keeps events forever.
	// Default: 365
	Days int `yaml:"days"`

	// Schedule is a cron expression for scheduled pruning. Empty disables
	// scheduled pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`

	// MaxEvents is the maximum number of events to keep. 0 is unlimited.
	// Default: 0
	MaxEvents int64 `yaml:"max_events"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: json or text.
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes source file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled enables metric recording and the /metrics endpoint.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path on the admin server.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// AdminConfig configures the admin HTTP endpoint.
type AdminConfig struct {
	// Enabled enables the admin HTTP server.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address and port for the admin server.
	// Default: "127.0.0.1:9465"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown of the admin server.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}
