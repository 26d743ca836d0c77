package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio_dashboard"

var (
	// BackendRequestsTotal counts backend calls by endpoint and outcome.
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend API requests by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	WalletBalanceFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_balance_failures_total",
			Help:      "Wallet balance fetches that failed, by kind.",
		},
		[]string{"kind"},
	)

	PortfolioRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_refresh_total",
			Help:      "Dashboard snapshot rebuilds by result.",
		},
		[]string{"result"},
	)

	HistoryRecordFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_record_failures_total",
			Help:      "Portfolio history points the backend refused or never received.",
		},
	)

	LiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Dashboard snapshots currently cached.",
		},
	)
)

var registerOnce sync.Once

// MustRegisterMetrics registers every collector with the default registry.
// Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			BackendRequestsTotal,
			BackendRequestDuration,
			WalletBalanceFailuresTotal,
			PortfolioRefreshTotal,
			HistoryRecordFailuresTotal,
			LiveSessions,
		)
	})
}

// ObserveBackendRequest records one backend call.
func ObserveBackendRequest(endpoint, status string, started time.Time) {
	BackendRequestsTotal.WithLabelValues(endpoint, status).Inc()
	BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}
