package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention AEGIS_SECTION_FIELD (e.g., AEGIS_SAFETY_PROFILE) and always
// take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Safety overrides
	if val := os.Getenv("AEGIS_SAFETY_PROFILE"); val != "" {
		cfg.Safety.Profile = val
	}
	if val := os.Getenv("AEGIS_SAFETY_GRID_RESOLUTION"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Safety.GridResolution = i
		}
	}
	if val := os.Getenv("AEGIS_SAFETY_EMERGENCY_PROTOCOLS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Safety.EmergencyProtocols = b
		}
	}

	// Monitor overrides
	if val := os.Getenv("AEGIS_MONITOR_SAFETY_CHECK_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Monitor.SafetyCheckInterval = d
		}
	}
	if val := os.Getenv("AEGIS_MONITOR_MONITORING_FREQUENCY"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Monitor.MonitoringFrequency = f
		}
	}
	if val := os.Getenv("AEGIS_MONITOR_EMERGENCY_WATCH_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Monitor.EmergencyWatchInterval = d
		}
	}
	if val := os.Getenv("AEGIS_MONITOR_TASK_JOIN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Monitor.TaskJoinTimeout = d
		}
	}

	// Enhancement overrides
	if val := os.Getenv("AEGIS_ENHANCEMENT_POLYMER_SCALE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Enhancement.PolymerScale = f
		}
	}
	if val := os.Getenv("AEGIS_ENHANCEMENT_IMMIRZI_PARAMETER"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Enhancement.ImmirziParameter = f
		}
	}
	if val := os.Getenv("AEGIS_ENHANCEMENT_NOMINAL_REDUCTION"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Enhancement.NominalReduction = f
		}
	}

	// Audit overrides
	if val := os.Getenv("AEGIS_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("AEGIS_AUDIT_BACKEND"); val != "" {
		cfg.Audit.Backend = val
	}
	if val := os.Getenv("AEGIS_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLitePath = val
	}
	if val := os.Getenv("AEGIS_AUDIT_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.Retention.Days = i
		}
	}
	if val := os.Getenv("AEGIS_AUDIT_RETENTION_SCHEDULE"); val != "" {
		cfg.Audit.Retention.Schedule = val
	}
	if val := os.Getenv("AEGIS_AUDIT_RETENTION_MAX_EVENTS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Audit.Retention.MaxEvents = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv("AEGIS_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("AEGIS_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("AEGIS_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("AEGIS_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}

	// Admin overrides
	if val := os.Getenv("AEGIS_ADMIN_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Admin.Enabled = b
		}
	}
	if val := os.Getenv("AEGIS_ADMIN_LISTEN_ADDRESS"); val != "" {
		cfg.Admin.ListenAddress = val
	}
	if val := os.Getenv("AEGIS_ADMIN_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Admin.ShutdownTimeout = d
		}
	}
}
