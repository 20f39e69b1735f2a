package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service's prometheus collectors.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	logins          *prometheus.CounterVec
	verifications   *prometheus.CounterVec
	errors          *prometheus.CounterVec
}

// NewMetrics registers collectors on the given registerer. Tests pass
// a fresh registry so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_auth_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"path", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_auth_request_duration_seconds",
			Help:    "Time spent handling HTTP requests",
			Buckets: prometheus.ExponentialBuckets(0.001, 2.0, 12),
		}, []string{"path", "method"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_auth_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_auth_session_resolutions_total",
			Help: "Session resolutions by outcome",
		}, []string{"outcome"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_auth_errors_total",
			Help: "Request errors by code",
		}, []string{"path", "method", "code"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordLogin increments the login counter for the outcome.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// RecordSessionResolution counts session lookups by outcome.
func (m *Metrics) RecordSessionResolution(outcome string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(outcome).Inc()
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}
