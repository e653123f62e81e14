package worker

import (
	"govnews/internal/usecase/ingest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Item outcome labels for ingest_items_total.
const (
	OutcomeCreated       = "created"
	OutcomeUpdated       = "updated"
	OutcomeSkippedNoDate = "skipped_nodate"
	OutcomeSkippedTime   = "skipped_time"
	OutcomeError         = "error"
)

// Metrics exposes the Prometheus metrics of the scheduled runner. Metrics
// are registered on creation via promauto.
type Metrics struct {
	// RunsTotal counts ingestion runs by status (success/failure).
	RunsTotal *prometheus.CounterVec

	// RunDurationSeconds measures run duration.
	RunDurationSeconds prometheus.Histogram

	// ItemsTotal counts candidate items by final outcome.
	ItemsTotal *prometheus.CounterVec

	// LastSuccessTimestamp is the Unix time of the last successful run.
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates and registers the worker metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_runs_total",
			Help: "Total number of ingestion runs by status (success/failure)",
		}, []string{"status"}),

		RunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ingest_run_duration_seconds",
			Help:    "Duration of ingestion runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		ItemsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_items_total",
			Help: "Total number of candidate items by outcome",
		}, []string{"outcome"}),

		LastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ingest_last_success_timestamp",
			Help: "Unix timestamp of the last successful ingestion run",
		}),
	}
}

// RecordRun records the outcome and duration of one run.
func (m *Metrics) RecordRun(status string, seconds float64) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDurationSeconds.Observe(seconds)
	if status == "success" {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}

// RecordStats folds one run's item counters into the outcome metric.
func (m *Metrics) RecordStats(stats *ingest.RunStats) {
	m.ItemsTotal.WithLabelValues(OutcomeCreated).Add(float64(stats.Created))
	m.ItemsTotal.WithLabelValues(OutcomeUpdated).Add(float64(stats.Updated))
	m.ItemsTotal.WithLabelValues(OutcomeSkippedNoDate).Add(float64(stats.SkippedNoDate))
	m.ItemsTotal.WithLabelValues(OutcomeSkippedTime).Add(float64(stats.SkippedTime))
	m.ItemsTotal.WithLabelValues(OutcomeError).Add(float64(stats.Errors))
}
