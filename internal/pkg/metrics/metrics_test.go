package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("positions", "200"))
	ObserveAPIRequest("positions", 200, 40*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("positions", "200")))

	beforeErr := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("positions", "error"))
	ObserveAPIRequest("positions", 0, time.Millisecond)
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("positions", "error")))
}

func TestObserveReport(t *testing.T) {
	tables := testutil.ToFloat64(ReportsRenderedTotal.WithLabelValues("balances", "table"))
	messages := testutil.ToFloat64(ReportsRenderedTotal.WithLabelValues("balances", "message"))

	ObserveReport("balances", true)
	ObserveReport("balances", false)
	ObserveReport("balances", false)
	assert.Equal(t, tables+1, testutil.ToFloat64(ReportsRenderedTotal.WithLabelValues("balances", "table")))
	assert.Equal(t, messages+2, testutil.ToFloat64(ReportsRenderedTotal.WithLabelValues("balances", "message")))
}

func TestMustRegisterMetricsIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		MustRegisterMetrics()
		MustRegisterMetrics()
	})
}
