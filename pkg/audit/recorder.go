package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// RecorderConfig contains configuration for the audit recorder.
type RecorderConfig struct {
	// Enabled enables event recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for writing an event to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder writes audit events to storage asynchronously. Record never
// blocks the caller: when the buffer is full the event is dropped and
// counted. The monitor loops run at microsecond cadence and must not wait
// on storage.
type Recorder struct {
	storage   Storage
	config    *RecorderConfig
	eventChan chan *Event
	wg        sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Int64
	logger    *slog.Logger
}

// NewRecorder creates an audit recorder backed by the given storage.
func NewRecorder(storage Storage, config *RecorderConfig, logger *slog.Logger) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = 1000
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage:   storage,
		config:    config,
		eventChan: make(chan *Event, config.AsyncBuffer),
		done:      make(chan struct{}),
		logger:    logger.With("component", "audit.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("audit recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Record creates an event and enqueues it for async writing. It assigns
// the event ID and timestamp and returns immediately.
func (r *Recorder) Record(severity Severity, kind Kind, message string, details map[string]any) {
	if !r.config.Enabled {
		return
	}

	event := &Event{
		ID:       uuid.New().String(),
		Time:     time.Now(),
		Severity: severity,
		Kind:     kind,
		Message:  message,
		Details:  details,
	}

	select {
	case r.eventChan <- event:
	default:
		dropped := r.dropped.Add(1)
		r.logger.Error("audit event channel full, dropping event",
			"event_id", event.ID,
			"kind", event.Kind,
			"dropped_total", dropped,
		)
	}
}

// Dropped returns the number of events dropped due to a full buffer.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close drains the channel and waits for pending writes to complete.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.logger.Info("shutting down audit recorder")

		close(r.done)
		r.wg.Wait()

		r.logger.Info("audit recorder shut down complete")
	})
	return nil
}

// worker drains the event channel and writes events to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case event := <-r.eventChan:
			r.writeEvent(event)

		case <-r.done:
			r.logger.Info("draining audit channel before shutdown",
				"pending_count", len(r.eventChan),
			)

			for {
				select {
				case event := <-r.eventChan:
					r.writeEvent(event)
				default:
					r.logger.Info("audit channel drained")
					return
				}
			}
		}
	}
}

// writeEvent writes a single event to storage.
func (r *Recorder) writeEvent(event *Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()

	if err := r.storage.Store(ctx, event); err != nil {
		r.logger.Error("failed to store audit event",
			"event_id", event.ID,
			"kind", event.Kind,
			"error", err,
		)
		return
	}

	duration := time.Since(start)

	r.logger.Debug("audit event recorded",
		"event_id", event.ID,
		"kind", event.Kind,
		"severity", event.Severity,
		"duration_ms", duration.Milliseconds(),
	)

	if duration > r.config.WriteTimeout/2 {
		r.logger.Warn("slow audit write",
			"event_id", event.ID,
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", (r.config.WriteTimeout / 2).Milliseconds(),
		)
	}
}
