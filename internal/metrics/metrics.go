// Package metrics collects Prometheus metrics for session transitions and
// outbound API calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is implemented by [Collector] and [Nop]. The session manager and
// the HTTP adapter depend on it instead of on Prometheus directly.
type Recorder interface {
	RecordSessionTransition(from, to string)
	RecordAPIRequest(method string, status int, duration time.Duration)
}

// Collector records metrics into Prometheus collectors.
type Collector struct {
	sessionTransitions *prometheus.CounterVec
	apiRequests        *prometheus.CounterVec
	apiLatency         prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "session_transitions_total",
			Help: "Committed session state transitions.",
		}, []string{"from", "to"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Outbound API requests by method and response status (0 = transport failure).",
		}, []string{"method", "status"}),
		apiLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Outbound API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.sessionTransitions,
		c.apiRequests,
		c.apiLatency,
	)

	return c
}

// RecordSessionTransition counts a committed transition between two statuses.
func (c *Collector) RecordSessionTransition(from, to string) {
	c.sessionTransitions.WithLabelValues(from, to).Inc()
}

// RecordAPIRequest counts a finished request and observes its latency.
func (c *Collector) RecordAPIRequest(method string, status int, duration time.Duration) {
	c.apiRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.apiLatency.Observe(duration.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordSessionTransition(string, string) {}

func (Nop) RecordAPIRequest(string, int, time.Duration) {}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NewRouter serves gatherer on GET /metrics.
func NewRouter(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", Handler(gatherer))
	return r
}
