// Package config defines the configuration for the Aegis safety
// controller and its loading, validation, and live-reload machinery.
//
// # Overview
//
// Configuration is read from a YAML file, filled with defaults, overridden
// by AEGIS_* environment variables, and validated as a whole: every rule
// violation is collected into a single ValidationError so operators see
// all problems at once rather than one per run.
//
// The FileWatcher reloads the file on change with debouncing. A reload
// that fails validation is logged and discarded. Safety-critical fields
// (profile, grid resolution) require a controller restart; the watcher
// only delivers the new configuration, it is the caller's decision which
// fields to apply live.
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("aegis.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
