package audit

import (
	"context"
	"time"
)

// Severity classifies how serious an audit event is.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Kind identifies what class of event was recorded.
type Kind string

const (
	// KindViolation is a safety limit violation detected by validation.
	KindViolation Kind = "violation"

	// KindCriticalViolation is a violation of the critical watch floors.
	KindCriticalViolation Kind = "critical_violation"

	// KindEmergencyShutdown is an executed emergency shutdown sequence.
	KindEmergencyShutdown Kind = "emergency_shutdown"

	// KindStateChange is a controller state transition.
	KindStateChange Kind = "state_change"

	// KindOperationalFault is a recovered panic or internal fault in a
	// monitor task.
	KindOperationalFault Kind = "operational_fault"
)

// Event is a single entry in the safety audit trail.
type Event struct {
	// ID is a UUID v4 assigned at record time.
	ID string `json:"id"`

	// Time is when the event occurred.
	Time time.Time `json:"time"`

	// Severity is the event severity.
	Severity Severity `json:"severity"`

	// Kind is the event class.
	Kind Kind `json:"kind"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details carries structured event context (field metrics, margins,
	// shutdown timings). Values must be JSON-serializable.
	Details map[string]any `json:"details,omitempty"`
}

// Query defines filter parameters for querying audit events.
type Query struct {
	// Start is the inclusive lower time bound.
	Start *time.Time `json:"start,omitempty"`

	// End is the inclusive upper time bound.
	End *time.Time `json:"end,omitempty"`

	// Severity filters by exact severity when non-empty.
	Severity string `json:"severity,omitempty"`

	// Kind filters by exact event kind when non-empty.
	Kind string `json:"kind,omitempty"`

	// Limit caps the number of returned events. 0 means the backend
	// default (100).
	Limit int `json:"limit,omitempty"`

	// Offset skips N events for pagination.
	Offset int `json:"offset,omitempty"`
}

// Storage defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists an audit event.
	Store(ctx context.Context, event *Event) error

	// Query retrieves events matching the filters, newest first.
	// Returns an empty slice if nothing matches.
	Query(ctx context.Context, query *Query) ([]*Event, error)

	// Count returns the number of events matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes events matching the filters and returns the number
	// deleted. Used for retention enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases backend resources.
	Close() error
}
