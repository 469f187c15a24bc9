// Package metrics registers the Prometheus collectors of the simulator.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "credit"

var (
	// SchedulesComputed counts schedules by mode, system and outcome.
	SchedulesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_computed_total",
			Help:      "Number of amortization schedules computed.",
		},
		[]string{"mode", "system", "status"},
	)

	// UnknownBankLookups counts requests naming a bank that is not in the catalog.
	UnknownBankLookups = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_bank_lookups_total",
			Help:      "Bank requests whose id is not in the catalog.",
		},
	)

	// ComputeDuration observes how long a schedule takes to compute.
	ComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_compute_seconds",
			Help:      "Time spent computing a schedule.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"mode"},
	)

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP API requests by route and status code.",
		},
		[]string{"route", "code"},
	)
)

// ObserveSchedule records one schedule computation.
func ObserveSchedule(mode, system, status string, elapsed time.Duration) {
	SchedulesComputed.WithLabelValues(mode, system, status).Inc()
	ComputeDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}
