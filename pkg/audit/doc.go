// Package audit provides the safety audit trail: every violation,
// critical-watch trip, emergency shutdown, state transition, and
// operational fault is recorded as an Event.
//
// # Overview
//
// The package defines the Event and Query types and the Storage interface.
// Backends live in the storage subpackage (SQLite for durable trails,
// in-memory for tests). The Recorder wraps a Storage with an async
// channel worker so that event recording never blocks the safety monitor
// loops: a full buffer drops the event and increments a counter rather
// than stalling the caller.
//
// The retention subpackage enforces age and count limits on the trail on
// a cron schedule.
//
// # Usage
//
//	store, err := storage.NewSQLiteStorage(nil, logger)
//	if err != nil { ... }
//	recorder := audit.NewRecorder(store, nil, logger)
//	defer recorder.Close()
//
//	recorder.Record(audit.SeverityCritical, audit.KindEmergencyShutdown,
//		"emergency shutdown executed", map[string]any{
//			"elapsed_ms":    report.Elapsed.Milliseconds(),
//			"within_budget": report.WithinBudget,
//		})
//
// # Thread Safety
//
// Recorder is safe for concurrent use. Close drains pending events and is
// idempotent.
package audit
