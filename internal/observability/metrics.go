// Package observability exposes Prometheus metrics for payments and HTTP traffic.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payment-gateway/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the gateway's collectors on its own registry
type Metrics struct {
	registry            *prometheus.Registry
	paymentsTotal       *prometheus.CounterVec
	paymentReplaysTotal *prometheus.CounterVec
	refundsTotal        *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewMetrics(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, registry))

	return &Metrics{
		registry: registry,
		paymentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_total",
				Help: "Payment attempts settled, by method and outcome.",
			},
			[]string{"method", "status"},
		),
		paymentReplaysTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_replays_total",
				Help: "Payment calls answered from a stored idempotent outcome.",
			},
			[]string{"method"},
		),
		refundsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refunds_total",
				Help: "Refund calls, by outcome.",
			},
			[]string{"status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) PaymentProcessed(method string, status shared.Status) {
	m.paymentsTotal.WithLabelValues(method, string(status)).Inc()
}

func (m *Metrics) PaymentReplayed(method string) {
	m.paymentReplaysTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) RefundProcessed(status shared.Status) {
	m.refundsTotal.WithLabelValues(string(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency. Paths are labelled by
// route template so ids do not explode label cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
