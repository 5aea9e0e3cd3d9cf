// Package storage provides audit trail storage backends.
//
// SQLiteStorage persists events to a SQLite database with WAL mode and a
// periodic checkpoint loop. MemoryStorage keeps events in a slice and is
// used by tests and by deployments that do not need durability.
//
// Both backends are safe for concurrent use.
package storage
