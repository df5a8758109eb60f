package worker

import (
	"context"
	"log/slog"
	"time"

	"shoppinglist/internal/events"
	"shoppinglist/internal/metrics"
	"shoppinglist/internal/repositories"

	"github.com/google/uuid"
)

// RetentionPeriod is how long a product stays on the list before cleanup
// removes it.
const RetentionPeriod = 30 * 24 * time.Hour

// Result is the outcome of a single cleanup run.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Report describes a finished cleanup run.
type Report struct {
	RunID   string    `json:"run_id"`
	Result  Result    `json:"result"`
	Cutoff  time.Time `json:"cutoff"`
	Deleted int64     `json:"deleted"`
	Error   string    `json:"error,omitempty"`
}

// CleanupWorker periodically deletes products older than RetentionPeriod.
type CleanupWorker struct {
	repo     repositories.ProductRepository
	notifier *events.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
}

// NewCleanupWorker creates a CleanupWorker. notifier and m may be nil.
func NewCleanupWorker(
	repo repositories.ProductRepository,
	notifier *events.Notifier,
	m *metrics.Metrics,
	logger *slog.Logger,
	interval time.Duration,
) *CleanupWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanupWorker{
		repo:     repo,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With("component", "cleanup"),
		interval: interval,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (w *CleanupWorker) SetClock(now func() time.Time) {
	w.now = now
}

// Start runs the cleanup every interval until ctx is cancelled. With
// runImmediately set, the first run happens before waiting a full interval.
func (w *CleanupWorker) Start(ctx context.Context, runImmediately bool) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("cleanup worker started", "interval", w.interval, "retention", RetentionPeriod)
	if runImmediately {
		w.Run(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.Run(ctx)
		}
	}
}

// Run deletes every product added strictly before now minus RetentionPeriod.
// A store error yields ResultFailure; there is no retry.
func (w *CleanupWorker) Run(ctx context.Context) Report {
	now := w.now()
	report := Report{
		RunID:  uuid.NewString(),
		Cutoff: now.Add(-RetentionPeriod).UTC(),
	}

	deleted, err := w.repo.DeleteOlderThan(ctx, report.Cutoff)
	if err != nil {
		report.Result = ResultFailure
		report.Error = err.Error()
		w.logger.Error("cleanup failed", "run_id", report.RunID, "cutoff", report.Cutoff, "error", err)
		w.metrics.ObserveCleanup(string(report.Result), 0, now)
		return report
	}

	report.Result = ResultSuccess
	report.Deleted = deleted
	w.logger.Info("cleanup finished", "run_id", report.RunID, "cutoff", report.Cutoff, "deleted", deleted)
	w.metrics.ObserveCleanup(string(report.Result), deleted, now)
	if deleted > 0 {
		w.notifier.Publish(events.ChangeEvent{
			EventID: report.RunID,
			Entity:  events.EntityProduct,
			Action:  events.ActionPurged,
			Count:   deleted,
		})
	}
	return report
}
