package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	warmUpSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Name:      "warmup_submitted_total",
			Help:      "Warm-up jobs accepted by the executor.",
		},
		[]string{"job"},
	)

	warmUpRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Name:      "warmup_rejected_total",
			Help:      "Warm-up jobs the executor refused (queue full, closed, canceled).",
		},
		[]string{"job"},
	)

	insightsInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Name:      "insights_invalidations_total",
			Help:      "Cached insights dropped after an entry mutation.",
		},
		[]string{"reason"},
	)
)
