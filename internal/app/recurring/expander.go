// Package recurring implements the recurring-transaction expansion engine.
//
// The engine:
//  1. Lists every active template not yet past its end date
//  2. Advances each template period by period until it is caught up to now
//  3. Materializes one concrete transaction per period, atomically with
//     the checkpoint advance, so a crash can never duplicate an occurrence
//  4. Isolates per-template failures: one bad template never aborts a run
package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/centavo-app/centavo/internal/domain"
	"github.com/centavo-app/centavo/internal/infra/observability"
)

// Config controls expansion behavior.
type Config struct {
	// MaxCatchUp bounds how many missed periods a single run emits for
	// one template. A template further behind finishes on later runs.
	MaxCatchUp int
}

// DefaultConfig returns safe expansion defaults. 1000 periods covers
// nearly three years of a daily template in one run.
func DefaultConfig() Config {
	return Config{MaxCatchUp: 1000}
}

// Expander materializes due occurrences of recurring templates.
// Stateless apart from the store; one Run may be in flight at a time.
type Expander struct {
	mu     sync.Mutex
	config Config
	store  domain.TemplateStore
	logger *slog.Logger
}

// New creates an expansion engine over the given store.
func New(cfg Config, store domain.TemplateStore, logger *slog.Logger) *Expander {
	if cfg.MaxCatchUp <= 0 {
		cfg.MaxCatchUp = DefaultConfig().MaxCatchUp
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{
		config: cfg,
		store:  store,
		logger: logger.With("component", "recurring"),
	}
}

// Run expands every due template up to now. Re-running at the same or a
// later now never re-emits an already-created occurrence: the checkpoint
// only advances with the instance, in the same store transaction.
//
// Per-template store errors are logged and counted in TemplatesFailed;
// the run continues and the template retries next cycle from its
// unchanged checkpoint. The returned error is non-nil only when the
// store cannot be listed at all or the run is aborted by ctx.
func (e *Expander) Run(ctx context.Context, now time.Time) (domain.ExpansionReport, error) {
	if !e.mu.TryLock() {
		observability.ExpansionRuns.WithLabelValues("busy").Inc()
		return domain.ExpansionReport{}, domain.ErrRunInProgress
	}
	defer e.mu.Unlock()

	timer := prometheus.NewTimer(observability.ExpansionDuration)
	defer timer.ObserveDuration()

	today := domain.DateOf(now)
	var report domain.ExpansionReport

	templates, err := e.store.ListDueTemplates(ctx, today)
	if err != nil {
		observability.ExpansionRuns.WithLabelValues("error").Inc()
		return report, fmt.Errorf("list due templates: %w", err)
	}

	for _, tpl := range templates {
		report.TemplatesConsidered++
		observability.TemplatesConsidered.Inc()

		created, err := e.expandTemplate(ctx, tpl, today)
		report.InstancesCreated += created
		if created > 0 {
			report.TemplatesProcessed++
		}
		if err != nil {
			if ctx.Err() != nil {
				// Shutdown mid-run: everything materialized so far is
				// consistent; the rest catches up next cycle.
				observability.ExpansionRuns.WithLabelValues("error").Inc()
				return report, ctx.Err()
			}
			report.TemplatesFailed++
			observability.TemplatesFailed.Inc()
			e.logger.Warn("template skipped",
				"template_id", tpl.ID,
				"owner_id", tpl.OwnerID,
				"error", err,
			)
		}
	}

	observability.InstancesCreated.Add(float64(report.InstancesCreated))
	observability.ExpansionRuns.WithLabelValues("ok").Inc()
	e.logger.Info("expansion run complete",
		"considered", report.TemplatesConsidered,
		"processed", report.TemplatesProcessed,
		"created", report.InstancesCreated,
		"failed", report.TemplatesFailed,
	)
	return report, nil
}

// expandTemplate loops one template to full catch-up: one materialized
// instance per missed period, each atomically advancing the checkpoint,
// stopping once the next occurrence is in the future or past the end
// date. Returns how many instances it created.
func (e *Expander) expandTemplate(ctx context.Context, tpl domain.Template, today time.Time) (int, error) {
	if _, err := domain.ParseFrequency(string(tpl.Frequency)); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrTemplateMalformed, err)
	}

	created := 0
	last := tpl.LastProcessed
	for created < e.config.MaxCatchUp {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		next, err := domain.NextOccurrence(last, tpl.Frequency)
		if err != nil {
			return created, err
		}
		if next.After(today) {
			break
		}
		if tpl.EndDate != nil && next.After(*tpl.EndDate) {
			break
		}

		if _, err := e.store.MaterializeOccurrence(ctx, tpl, next); err != nil {
			return created, fmt.Errorf("materialize %s: %w", domain.FormatDate(next), err)
		}
		created++
		last = next
	}
	return created, nil
}

// Running reports whether a run is currently in flight.
func (e *Expander) Running() bool {
	if e.mu.TryLock() {
		e.mu.Unlock()
		return false
	}
	return true
}

// IsBusy reports whether err is the overlapping-run rejection.
func IsBusy(err error) bool {
	return errors.Is(err, domain.ErrRunInProgress)
}
