// Package logging provides the structured logger used across the
// controller.
//
// It wraps log/slog with level and format parsing so the log surface is
// driven entirely by configuration. Components derive child loggers with
// With("component", ...) and log violations at Warn, emergencies at Error,
// and lifecycle transitions at Info.
package logging
