// Package cli provides shared helpers for the aegis command line: typed
// command errors and shutdown signal handling.
package cli
