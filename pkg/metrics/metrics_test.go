package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer(reg, "hall-booking")

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 15*time.Millisecond)
	m.IncBookingDecision("通夜", "turnover_too_soon")
	m.IncBookingDecision("通夜", "turnover_too_soon")
	m.IncCache("turnover_config", "hit")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/bookings", "201")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingDecisions.WithLabelValues("通夜", "turnover_too_soon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("turnover_config", "hit")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Second)
		m.IncBookingDecision("葬儀", "allowed")
		m.IncTxRetry("retried")
		m.SetDBPoolStats("postgres", 1, 1, 0, 0, 0)
	})
}
