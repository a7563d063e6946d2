package shardqueue

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// queueDepth is only written by the owning worker goroutine.
var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Subsystem: "warmup",
			Name:      "submissions_total",
			Help:      "Jobs accepted for execution.",
		},
		[]string{"shard"},
	)

	queueFullTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Subsystem: "warmup",
			Name:      "queue_full_total",
			Help:      "Submissions rejected because the shard queue stayed full.",
		},
		[]string{"shard"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Subsystem: "warmup",
			Name:      "retries_total",
			Help:      "Job attempts scheduled after a recoverable failure.",
		},
		[]string{"shard"},
	)

	outcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capydiary_client",
			Subsystem: "warmup",
			Name:      "jobs_total",
			Help:      "Finished jobs by outcome (ok, failed, canceled).",
		},
		[]string{"outcome"},
	)

	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "capydiary_client",
			Subsystem: "warmup",
			Name:      "run_duration_seconds",
			Help:      "Latency of a single job attempt.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"shard"},
	)

	queueDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "capydiary_client",
			Subsystem: "warmup",
			Name:      "queue_depth",
			Help:      "Jobs waiting in each shard queue.",
		},
		[]string{"shard"},
	)
)

func labelFor(i int) string { return strconv.Itoa(i) }
