package storage

import (
	"context"
	"sort"
	"sync"

	"gravimed/aegis/pkg/audit"
)

// MemoryStorage implements the audit Storage interface in memory.
// It is intended for tests and for deployments that do not need a durable
// audit trail.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []*audit.Event
	closed bool
}

// NewMemoryStorage creates an empty in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		events: []*audit.Event{},
	}
}

// Store persists an audit event.
func (m *MemoryStorage) Store(ctx context.Context, event *audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return audit.NewStorageError("memory", "store", context.Canceled)
	}

	copied := *event
	m.events = append(m.events, &copied)
	return nil
}

// Query retrieves events matching the filters, newest first.
func (m *MemoryStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := []*audit.Event{}
	for _, event := range m.events {
		if matches(event, query) {
			matched = append(matched, event)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Time.After(matched[j].Time)
	})

	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			return []*audit.Event{}, nil
		}
		matched = matched[query.Offset:]
	}

	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

// Count returns the number of events matching the filters.
func (m *MemoryStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, event := range m.events {
		if matches(event, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes events matching the filters.
func (m *MemoryStorage) Delete(ctx context.Context, query *audit.Query) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.events[:0]
	var deleted int64
	for _, event := range m.events {
		if matches(event, query) {
			deleted++
			continue
		}
		kept = append(kept, event)
	}
	m.events = kept

	return deleted, nil
}

// Close marks the storage as closed.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// matches reports whether an event satisfies the query filters.
func matches(event *audit.Event, query *audit.Query) bool {
	if query.Start != nil && event.Time.Before(*query.Start) {
		return false
	}
	if query.End != nil && event.Time.After(*query.End) {
		return false
	}
	if query.Severity != "" && string(event.Severity) != query.Severity {
		return false
	}
	if query.Kind != "" && string(event.Kind) != query.Kind {
		return false
	}
	return true
}
