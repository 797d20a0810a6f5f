package daemon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/centavo-app/centavo/internal/app/recurring"
	"github.com/centavo-app/centavo/internal/domain"
)

// ─── Periodic Recurrence Trigger ────────────────────────────────────────────
// The expansion engine is invoked once per day at the configured local
// time. The engine itself is idempotent, so a missed or doubled cycle is
// harmless; the scheduler only has to keep calling it.

// Scheduler drives the expansion engine on a daily cycle.
type Scheduler struct {
	expander *recurring.Expander
	cfg      RecurringConfig
	logger   *slog.Logger
}

// NewScheduler creates the periodic trigger.
func NewScheduler(expander *recurring.Expander, cfg RecurringConfig, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		expander: expander,
		cfg:      cfg,
		logger:   logger.With("component", "scheduler"),
	}
}

// Run blocks, firing one expansion cycle at each configured instant,
// until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	hour, minute, err := ParseRunAt(s.cfg.RunAt)
	if err != nil {
		return err
	}
	s.logger.Info("recurrence trigger scheduled", "run_at", s.cfg.RunAt)

	for {
		wait := time.Until(NextRunTime(time.Now(), hour, minute))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		s.RunOnce(ctx)
	}
}

// RunOnce fires a single cycle, retrying transient store failures a
// bounded number of times. Overlapping-run rejections are not retried;
// the engine is already doing the work.
func (s *Scheduler) RunOnce(ctx context.Context) {
	var report domain.ExpansionReport
	err := retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var runErr error
			report, runErr = s.expander.Run(ctx, time.Now())
			return runErr
		},
		retry.Attempts(max(s.cfg.RetryAttempts, 1)),
		retry.Delay(s.cfg.RetryDelayDuration()),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, domain.ErrRunInProgress) && !errors.Is(err, context.Canceled)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.logger.Error("recurrence cycle failed", "error", err)
		return
	}
	s.logger.Info("recurrence cycle complete",
		"considered", report.TemplatesConsidered,
		"processed", report.TemplatesProcessed,
		"created", report.InstancesCreated,
		"failed", report.TemplatesFailed,
	)
}

// NextRunTime returns the next local instant at hour:minute strictly
// after now.
func NextRunTime(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
