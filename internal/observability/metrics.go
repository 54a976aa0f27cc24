package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "movewell"

var (
	streakUpdateFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "streak_update_failures_total",
		Help:      "Streak updates that failed after a ledger write succeeded.",
	}, []string{"kind"})
	ledgerWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "writes_total",
		Help:      "Ledger writes by activity kind and outcome (recorded, duplicate).",
	}, []string{"kind", "outcome"})
	lastActivityGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "last_activity_recorded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent recorded activity.",
	})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template, method and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
	rateLimitedRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected with 429 by the per-user limiter.",
	})
)

func init() {
	prometheus.MustRegister(
		streakUpdateFailures,
		ledgerWrites,
		lastActivityGauge,
		httpRequestDuration,
		rateLimitedRequests,
	)
}

func RecordStreakUpdateFailure(kind string) {
	streakUpdateFailures.WithLabelValues(kind).Inc()
}

// RecordLedgerWrite counts a completion or steps write; duplicate writes do
// not move the activity watermark.
func RecordLedgerWrite(kind string, duplicate bool, at time.Time) {
	outcome := "recorded"
	if duplicate {
		outcome = "duplicate"
	}
	ledgerWrites.WithLabelValues(kind, outcome).Inc()
	if !duplicate && !at.IsZero() {
		lastActivityGauge.Set(float64(at.Unix()))
	}
}

func ObserveHTTPRequest(route string, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func RecordRateLimited() {
	rateLimitedRequests.Inc()
}
