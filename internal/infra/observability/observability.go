// Package observability holds the Prometheus metrics for the bookkeeping
// core: recurrence expansion runs and category suggestion requests.
// Metrics are promauto-registered on the default registry; the API server
// mounts /metrics when enabled.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Recurrence Expansion Metrics ───────────────────────────────────────────

var (
	ExpansionRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centavo_expansion_runs_total",
		Help: "Expansion engine runs by outcome (ok, error, busy).",
	}, []string{"outcome"})

	ExpansionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "centavo_expansion_run_seconds",
		Help:    "Wall time of one expansion run.",
		Buckets: prometheus.DefBuckets,
	})

	TemplatesConsidered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centavo_expansion_templates_considered_total",
		Help: "Recurring templates examined across all runs.",
	})

	TemplatesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centavo_expansion_templates_failed_total",
		Help: "Templates skipped due to store errors or malformed records.",
	})

	InstancesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centavo_expansion_instances_created_total",
		Help: "Concrete transactions materialized from recurring templates.",
	})
)

// ─── Category Suggestion Metrics ────────────────────────────────────────────

var (
	SuggestRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centavo_suggest_requests_total",
		Help: "Category suggestion requests by result (hit, miss).",
	}, []string{"result"})

	SuggestScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "centavo_suggest_score",
		Help:    "Confidence score of returned suggestions.",
		Buckets: []float64{50, 60, 70, 80, 90, 100},
	})
)
