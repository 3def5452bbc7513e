// Package metrics exposes prometheus instruments for the HTTP layer and
// the billing core.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics carries domain-level counters.
type Metrics struct {
	paymentsRecorded *prometheus.CounterVec
	invoicesIssued   prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		paymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taller_payments_recorded_total",
			Help: "Payments recorded against invoices, by payment method.",
		}, []string{"method"}),
		invoicesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taller_invoices_issued_total",
			Help: "Invoices created.",
		}),
	}
	prometheus.MustRegister(m.paymentsRecorded, m.invoicesIssued)
	return m
}

func (m *Metrics) RecordPayment(method string) {
	if m == nil {
		return
	}
	m.paymentsRecorded.WithLabelValues(strings.ToLower(strings.TrimSpace(method))).Inc()
}

func (m *Metrics) RecordInvoiceIssued() {
	if m == nil {
		return
	}
	m.invoicesIssued.Inc()
}

// HTTPMetrics carries per-request instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	h := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taller_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taller_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	prometheus.MustRegister(h.requests, h.duration)
	return h
}

// GinMiddleware records request counts and latencies.
func GinMiddleware(h *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		h.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		h.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
