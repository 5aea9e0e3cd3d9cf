// Package health provides liveness and readiness probes for the admin
// endpoint.
//
// # Overview
//
// A Checker holds named component checks (controller state, audit store)
// and runs them concurrently with a per-check timeout. Liveness never runs
// component checks; readiness runs all of them and degrades the overall
// status when any check fails.
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("audit_store", store.Ping)
//	health.Mount(mux, checker, version, commit, buildTime)
//
// # Thread Safety
//
// Checker is safe for concurrent use. Checks may be registered and
// unregistered while probes are being served.
package health
