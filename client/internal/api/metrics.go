package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Backend requests by method and status class (or error).",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "capydiary_client",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of backend requests that got a response.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
