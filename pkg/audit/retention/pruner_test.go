package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gravimed/aegis/pkg/audit"
	"gravimed/aegis/pkg/audit/storage"
)

func seedAgedEvents(t *testing.T, store audit.Storage, n int, ageDays int) {
	t.Helper()

	base := time.Now().AddDate(0, 0, -ageDays)
	for i := 0; i < n; i++ {
		err := store.Store(context.Background(), &audit.Event{
			ID:       fmt.Sprintf("aged-%d-%03d", ageDays, i),
			Time:     base.Add(time.Duration(i) * time.Second),
			Severity: audit.SeverityInfo,
			Kind:     audit.KindStateChange,
			Message:  "event",
		})
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}
}

func TestPruneByAge(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	seedAgedEvents(t, store, 5, 400)
	seedAgedEvents(t, store, 3, 10)

	pruner := NewPruner(store, &Config{RetentionDays: 365}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 5 {
		t.Errorf("Prune() deleted %d, want 5", deleted)
	}

	count, _ := store.Count(context.Background(), &audit.Query{})
	if count != 3 {
		t.Errorf("remaining count = %d, want 3", count)
	}
}

func TestPruneByCount(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	seedAgedEvents(t, store, 10, 1)

	pruner := NewPruner(store, &Config{RetentionDays: 0, MaxEvents: 4}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 6 {
		t.Errorf("Prune() deleted %d, want 6", deleted)
	}

	// The newest events survive.
	events, _ := store.Query(context.Background(), &audit.Query{})
	if len(events) != 4 {
		t.Fatalf("remaining %d events, want 4", len(events))
	}
	if events[0].ID != "aged-1-009" {
		t.Errorf("newest survivor = %s, want aged-1-009", events[0].ID)
	}
}

func TestPruneNothingToDo(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	seedAgedEvents(t, store, 3, 1)

	pruner := NewPruner(store, &Config{RetentionDays: 30, MaxEvents: 100}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() deleted %d, want 0", deleted)
	}
}

func TestSchedulerEmptySchedule(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	pruner := NewPruner(store, &Config{PruneSchedule: ""}, nil)

	if err := pruner.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler running with empty schedule")
	}
}

func TestSchedulerInvalidSchedule(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	pruner := NewPruner(store, &Config{PruneSchedule: "not a cron"}, nil)

	if err := pruner.Start(context.Background()); err == nil {
		t.Error("Start() accepted invalid cron expression")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	pruner := NewPruner(store, &Config{RetentionDays: 30, PruneSchedule: "0 3 * * *"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !pruner.scheduler.IsRunning() {
		t.Error("scheduler not running after Start")
	}
	if pruner.NextPruning() == nil {
		t.Error("NextPruning() = nil while running")
	}

	pruner.Stop()
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler still running after Stop")
	}
}
