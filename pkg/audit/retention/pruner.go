package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gravimed/aegis/pkg/audit"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain audit events.
	// 0 means keep events forever (no age-based pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables scheduling.
	PruneSchedule string

	// MaxEvents is the maximum number of events to keep.
	// 0 means unlimited.
	MaxEvents int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 365,
		PruneSchedule: "0 3 * * *",
		MaxEvents:     0,
	}
}

// Pruner enforces retention policy on the audit trail.
type Pruner struct {
	storage   audit.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
}

// NewPruner creates a retention pruner.
func NewPruner(storage audit.Storage, config *Config, logger *slog.Logger) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	pruner := &Pruner{
		storage: storage,
		config:  config,
		logger:  logger.With("component", "audit.retention"),
	}

	pruner.scheduler = NewScheduler(pruner, logger)

	return pruner
}

// Prune deletes events older than the retention period, then trims the
// trail to MaxEvents if configured. Returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
	}

	if p.config.MaxEvents > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
	}

	if totalDeleted > 0 {
		p.logger.Info("audit pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_events", p.config.MaxEvents,
		)
	} else {
		p.logger.Debug("no audit events pruned",
			"retention_days", p.config.RetentionDays,
			"max_events", p.config.MaxEvents,
		)
	}

	return totalDeleted, nil
}

// pruneByAge deletes events older than the retention period.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)

	deleted, err := p.storage.Delete(ctx, &audit.Query{End: &cutoff})
	if err != nil {
		return 0, audit.NewRetentionError(p.config.RetentionDays, err)
	}

	if deleted > 0 {
		p.logger.Info("pruned audit events by age",
			"deleted_count", deleted,
			"cutoff_time", cutoff,
		)
	}

	return deleted, nil
}

// pruneByCount deletes the oldest events when the trail exceeds MaxEvents.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &audit.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}

	if count <= p.config.MaxEvents {
		return 0, nil
	}

	// Events come back newest first; the cutoff is the time of the newest
	// event that must go.
	toDelete := count - p.config.MaxEvents
	overflow, err := p.storage.Query(ctx, &audit.Query{
		Limit:  int(toDelete),
		Offset: int(p.config.MaxEvents),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query overflow events: %w", err)
	}
	if len(overflow) == 0 {
		return 0, nil
	}

	cutoff := overflow[0].Time

	deleted, err := p.storage.Delete(ctx, &audit.Query{End: &cutoff})
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	if deleted > 0 {
		p.logger.Info("pruned audit events by count",
			"deleted_count", deleted,
			"max_events", p.config.MaxEvents,
		)
	}

	return deleted, nil
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
