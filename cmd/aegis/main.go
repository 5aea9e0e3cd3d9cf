// Aegis is a real-time safety controller for medical graviton field
// generators.
//
// It enforces a biological safety envelope over a live field:
//   - Per-profile field strength and energy density limits
//   - Positive energy enforcement (no exotic matter)
//   - Continuous safety monitoring at microsecond cadence
//   - Sub-50ms emergency shutdown with a verified safe state
//   - Persistent audit trail for compliance review
//
// Usage:
//
//	# Start the controller with default configuration
//	aegis run
//
//	# Start with a custom configuration file
//	aegis run --config /etc/aegis/config.yaml
//
//	# Validate a configuration file and print the resolved envelope
//	aegis validate
//
//	# Query the audit trail
//	aegis audit query --time-range "2026-08-23T00:00:00Z/2026-08-24T00:00:00Z"
//
//	# Show version information
//	aegis version
package main

func main() {
	Execute()
}
