// Package retention enforces age and count limits on the audit trail.
//
// A Pruner deletes events older than the configured retention period and
// trims the trail to a maximum event count. The Scheduler runs the pruner
// on a cron schedule (standard five-field syntax).
package retention
