package daycache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by resource and result (hit, miss, bypass).",
		},
		[]string{"resource", "result"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Swallowed cache storage failures by operation.",
		},
		[]string{"op"},
	)
)
