package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics prometheus collectors of the service
type Metrics struct {
	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// DB connection pool
	dbOpenConnections  *prometheus.GaugeVec
	dbInUseConnections *prometheus.GaugeVec
	dbIdleConnections  *prometheus.GaugeVec
	dbWaitCount        *prometheus.GaugeVec
	dbWaitDuration     *prometheus.GaugeVec

	// DB queries
	dbQueryDuration *prometheus.HistogramVec
	dbTxRetries     *prometheus.CounterVec

	// Booking decisions
	bookingDecisions *prometheus.CounterVec

	// Cache
	cacheRequests *prometheus.CounterVec
}

// New registers collectors in the default prometheus registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer registers collectors in reg
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections.",
			ConstLabels: labels,
		}, []string{"db"}),
		dbInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: labels,
		}, []string{"db"}),
		dbIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections.",
			ConstLabels: labels,
		}, []string{"db"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: labels,
		}, []string{"db"}),
		dbWaitDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds",
			Help:        "Total time blocked waiting for a new connection.",
			ConstLabels: labels,
		}, []string{"db"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Duration of SQL statements.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbTxRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a serialization failure.",
			ConstLabels: labels,
		}, []string{"outcome"}),

		bookingDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "hall_booking_decisions_total",
			Help:        "Booking feasibility decisions by slot type and result.",
			ConstLabels: labels,
		}, []string{"slot_type", "result"}),

		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_requests_total",
			Help:        "Cache lookups by kind and result.",
			ConstLabels: labels,
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbOpenConnections,
		m.dbInUseConnections,
		m.dbIdleConnections,
		m.dbWaitCount,
		m.dbWaitDuration,
		m.dbQueryDuration,
		m.dbTxRetries,
		m.bookingDecisions,
		m.cacheRequests,
	)

	return m
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SetDBPoolStats updates connection pool gauges
func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(db).Set(float64(open))
	m.dbInUseConnections.WithLabelValues(db).Set(float64(inUse))
	m.dbIdleConnections.WithLabelValues(db).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(waitCount))
	m.dbWaitDuration.WithLabelValues(db).Set(waitDuration.Seconds())
}

// ObserveDBQuery records the duration of one SQL statement
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncTxRetry counts a serializable transaction retry; outcome is "retried" or "exhausted"
func (m *Metrics) IncTxRetry(outcome string) {
	if m == nil {
		return
	}
	m.dbTxRetries.WithLabelValues(outcome).Inc()
}

// IncBookingDecision counts a feasibility decision; result is "allowed" or a rejection code
func (m *Metrics) IncBookingDecision(slotType, result string) {
	if m == nil {
		return
	}
	m.bookingDecisions.WithLabelValues(slotType, result).Inc()
}

// IncCache counts a cache lookup; result is "hit", "miss" or "error"
func (m *Metrics) IncCache(kind, result string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(kind, result).Inc()
}
