package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus instruments for the API.
type metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	scoreRunsTotal  *prometheus.CounterVec
	resumesScored   prometheus.Counter
	feedbackTotal   *prometheus.CounterVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "talent_intel_http_requests_total",
			Help: "HTTP requests by method, path pattern, and status code.",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talent_intel_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		scoreRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "talent_intel_score_runs_total",
			Help: "Score runs by final status.",
		}, []string{"status"}),
		resumesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "talent_intel_resumes_scored_total",
			Help: "Total resumes scored across all runs.",
		}),
		feedbackTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "talent_intel_feedback_total",
			Help: "Feedback events by direction.",
		}, []string{"direction"}),
	}
}

// handler serves the /metrics endpoint for this registry.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with request counting and latency tracking.
// pattern is the registered route pattern, not the raw URL, to keep label
// cardinality bounded.
func (m *metrics) instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.requestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}

func (m *metrics) recordRun(status string, resumes int) {
	m.scoreRunsTotal.WithLabelValues(status).Inc()
	m.resumesScored.Add(float64(resumes))
}

func (m *metrics) recordFeedback(approve bool) {
	direction := "reject"
	if approve {
		direction = "approve"
	}
	m.feedbackTotal.WithLabelValues(direction).Inc()
}
