package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// blockingStorage lets tests control when Store returns.
type blockingStorage struct {
	mu      sync.Mutex
	stored  []*Event
	release chan struct{}
	failAll bool
}

func newBlockingStorage() *blockingStorage {
	return &blockingStorage{release: make(chan struct{})}
}

func (b *blockingStorage) Store(ctx context.Context, event *Event) error {
	<-b.release
	if b.failAll {
		return errors.New("store failed")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stored = append(b.stored, event)
	return nil
}

func (b *blockingStorage) Query(ctx context.Context, q *Query) ([]*Event, error) { return nil, nil }
func (b *blockingStorage) Count(ctx context.Context, q *Query) (int64, error)   { return 0, nil }
func (b *blockingStorage) Delete(ctx context.Context, q *Query) (int64, error)  { return 0, nil }
func (b *blockingStorage) Close() error                                         { return nil }

func (b *blockingStorage) storedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.stored)
}

func TestRecordAssignsIdentity(t *testing.T) {
	storage := newBlockingStorage()
	close(storage.release)

	recorder := NewRecorder(storage, nil, nil)
	defer recorder.Close()

	recorder.Record(SeverityWarning, KindViolation, "field strength exceeded", map[string]any{
		"ratio": 1.4,
	})

	deadline := time.Now().Add(2 * time.Second)
	for storage.storedCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if storage.storedCount() != 1 {
		t.Fatalf("stored %d events, want 1", storage.storedCount())
	}

	event := storage.stored[0]
	if event.ID == "" {
		t.Error("event ID not assigned")
	}
	if event.Time.IsZero() {
		t.Error("event time not assigned")
	}
	if event.Kind != KindViolation || event.Severity != SeverityWarning {
		t.Errorf("event = %+v", event)
	}
}

func TestRecordNeverBlocks(t *testing.T) {
	storage := newBlockingStorage()

	recorder := NewRecorder(storage, &RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  2,
		WriteTimeout: time.Second,
	}, nil)

	// Storage is blocked; worker takes one event, buffer holds two more.
	// Everything past that must be dropped without blocking.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			recorder.Record(SeverityInfo, KindStateChange, "transition", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on full buffer")
	}

	if recorder.Dropped() == 0 {
		t.Error("Dropped() = 0, want > 0")
	}

	close(storage.release)
	recorder.Close()
}

func TestCloseDrainsPendingEvents(t *testing.T) {
	storage := newBlockingStorage()

	recorder := NewRecorder(storage, &RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  16,
		WriteTimeout: time.Second,
	}, nil)

	for i := 0; i < 5; i++ {
		recorder.Record(SeverityInfo, KindStateChange, "transition", nil)
	}

	close(storage.release)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := storage.storedCount(); got != 5 {
		t.Errorf("stored %d events after Close, want 5", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	storage := newBlockingStorage()
	close(storage.release)

	recorder := NewRecorder(storage, nil, nil)

	if err := recorder.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestDisabledRecorder(t *testing.T) {
	storage := newBlockingStorage()
	close(storage.release)

	recorder := NewRecorder(storage, &RecorderConfig{
		Enabled:      false,
		AsyncBuffer:  16,
		WriteTimeout: time.Second,
	}, nil)
	defer recorder.Close()

	recorder.Record(SeverityCritical, KindEmergencyShutdown, "shutdown", nil)

	time.Sleep(10 * time.Millisecond)
	if got := storage.storedCount(); got != 0 {
		t.Errorf("stored %d events while disabled, want 0", got)
	}
}
