package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttempts counts adapter attempts by instrument, source and outcome.
	FetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olgacolor_rate_fetch_attempts_total",
			Help: "Quote fetch attempts partitioned by instrument, source and outcome.",
		},
		[]string{"instrument", "source", "outcome"},
	)

	// IngestionRuns counts completed ingestion runs per instrument and result.
	IngestionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olgacolor_rate_ingestion_runs_total",
			Help: "Ingestion runs partitioned by instrument and result.",
		},
		[]string{"instrument", "result"},
	)
)

// RecordFetchAttempt tracks one adapter attempt.
func RecordFetchAttempt(instrument, source string, ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	FetchAttempts.WithLabelValues(instrument, source, outcome).Inc()
}

// RecordIngestionRun tracks one completed per-instrument ingestion.
func RecordIngestionRun(instrument string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	IngestionRuns.WithLabelValues(instrument, result).Inc()
}
