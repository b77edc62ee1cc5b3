package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine run counters exposed on /metrics.
var (
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_runs_total",
		Help: "Number of engine batch runs processed",
	})

	PredictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Number of fixture predictions produced",
	})

	ExcludedFixturesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "excluded_fixtures_total",
		Help: "Number of fixtures excluded for insufficient data",
	})

	ParlayCandidatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parlay_candidates_total",
		Help: "Number of parlay candidates composed",
	})

	CacheFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_failures_total",
		Help: "Number of cache write failures (non-fatal)",
	})
)
