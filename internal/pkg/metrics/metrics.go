// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// APIRequestsTotal counts vaults API calls by endpoint and HTTP status ("error" for transport failures).
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault_reporter",
			Name:      "api_requests_total",
			Help:      "Number of requests sent to the vaults API.",
		},
		[]string{"endpoint", "status"},
	)

	// APIRequestDuration tracks vaults API latency by endpoint.
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vault_reporter",
			Name:      "api_request_duration_seconds",
			Help:      "Latency of requests sent to the vaults API.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// ReportsRenderedTotal counts built reports; outcome is "table" or "message".
	ReportsRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vault_reporter",
			Name:      "reports_rendered_total",
			Help:      "Number of reports built, by report and outcome.",
		},
		[]string{"report", "outcome"},
	)

	registerOnce sync.Once
)

// MustRegisterMetrics registers the collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(APIRequestsTotal, APIRequestDuration, ReportsRenderedTotal)
	})
}

// ObserveAPIRequest records one finished API call. A zero status means the request never got a response.
func ObserveAPIRequest(endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	APIRequestsTotal.WithLabelValues(endpoint, label).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveReport records a built report.
func ObserveReport(report string, hasTable bool) {
	outcome := "message"
	if hasTable {
		outcome = "table"
	}
	ReportsRenderedTotal.WithLabelValues(report, outcome).Inc()
}
