package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	LookupByDate = "by_date"
	LookupLatest = "latest"

	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the collectors of the synchronizer and the rate lookups.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	SyncRunsTotal      *prometheus.CounterVec
	SyncTablesCreated  prometheus.Counter
	SyncRatesCreated   prometheus.Counter
	SyncDuration       *prometheus.HistogramVec
	RateLookupsTotal   *prometheus.CounterVec
	SourceFetchesTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SyncRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_sync_runs_total",
				Help: "Synchronization runs by outcome",
			},
			[]string{"status"},
		),
		SyncTablesCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "currency_sync_tables_created_total",
				Help: "Exchange tables inserted by synchronization",
			},
		),
		SyncRatesCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "currency_sync_rates_created_total",
				Help: "Currency rates inserted by synchronization",
			},
		),
		SyncDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "currency_sync_duration_seconds",
				Help:    "Duration of synchronization runs",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"status"},
		),
		RateLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_rate_lookups_total",
				Help: "Rate lookups by kind and result",
			},
			[]string{"kind", "result"},
		),
		SourceFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_source_fetches_total",
				Help: "Source table fetches by table and outcome",
			},
			[]string{"table", "status"},
		),
	}
}

// RecordSyncRun records one finished run.
func (m *Metrics) RecordSyncRun(status string, duration time.Duration, tablesCreated, ratesCreated int) {
	if m == nil {
		return
	}
	m.SyncRunsTotal.WithLabelValues(status).Inc()
	m.SyncDuration.WithLabelValues(status).Observe(duration.Seconds())
	m.SyncTablesCreated.Add(float64(tablesCreated))
	m.SyncRatesCreated.Add(float64(ratesCreated))
}

// RecordLookup records one rate lookup.
func (m *Metrics) RecordLookup(kind, result string) {
	if m == nil {
		return
	}
	m.RateLookupsTotal.WithLabelValues(kind, result).Inc()
}

// RecordSourceFetch records one fetch of a source table stream.
func (m *Metrics) RecordSourceFetch(table, status string) {
	if m == nil {
		return
	}
	m.SourceFetchesTotal.WithLabelValues(table, status).Inc()
}
