package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rankTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_rank_total",
		Help: "Suggestion requests served, by transport and cache hit.",
	}, []string{"source", "cached"})

	rankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_rank_duration_seconds",
		Help:    "Wall time of uncached narrow+rank runs.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 9),
	})

	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_sessions_created_total",
		Help: "Solver sessions created.",
	})
)
