// Package metrics holds the Prometheus collectors for HTTP traffic and
// document generation. Label sets are kept small: routes use the registered
// pattern, never the raw URL.
package metrics

import (
	"strconv"
	"time"

	"funeral-docs-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// DocumentOutcomes counts composed documents by type and outcome kind.
	DocumentOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_composed_total",
			Help: "Documents composed, by type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	// LLMLatency observes LLM round trips; timed out calls are labelled "timeout".
	LLMLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of LLM calls in seconds.",
			Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"operation", "result"},
	)

	// RenderLatency observes PDF renders by backend.
	RenderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "render_duration_seconds",
			Help:    "Duration of document renders in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"renderer", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, DocumentOutcomes, LLMLatency, RenderLatency)
}

// Middleware instruments every request. Errors returned down the chain are
// mapped to the status the error handler will send.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = apperror.StatusOf(err)
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpReqs.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Since observes d against h with the given labels.
func Since(h *prometheus.HistogramVec, start time.Time, labels ...string) {
	h.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}
