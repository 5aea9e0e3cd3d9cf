// Package controller is the core of the Aegis field-safety subsystem. It
// owns the live graviton field configuration, runs the periodic monitor
// tasks, and executes the emergency shutdown sequence.
//
// # Overview
//
// A Controller is built for one safety profile and grid shape, both fixed
// for its lifetime. Its lifecycle is Standby -> Active -> Standby (via
// Start/Stop) with a terminal EmergencyStopped state reachable from
// anywhere via EmergencyShutdown.
//
// While active, three monitor tasks run:
//
//   - safety_check: full envelope validation of the live field, escalating
//     to shutdown when validation demands an emergency response
//   - field_quality: stability sampling at the monitoring frequency
//   - emergency_watch: strict critical-floor predicates at millisecond
//     cadence, firing the shutdown sequence on the first trip
//
// A panicking monitor task is treated as an operational fault and brings
// the field down: an unwatched field is an unsafe field.
//
// # Shutdown semantics
//
// EmergencyShutdown is first-caller-wins. The winning caller halts the
// monitors, zeroes every field buffer, verifies the result, and publishes
// the safe-state snapshot; concurrent callers block until the sequence
// completes and receive the identical report. Nothing on the timed path
// waits on goroutine joins, storage, or telemetry.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use. Metric snapshots are
// published copy-on-update, so readers never observe a partially written
// snapshot.
package controller
