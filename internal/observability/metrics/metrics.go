// Package metrics exposes prometheus instruments for the HTTP surface
// and the billing document generators.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics instruments inbound requests.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Metrics exposes application-level instruments.
type Metrics struct {
	DocumentsGenerated *prometheus.CounterVec
	BarcodeRepairs     prometheus.Counter
	PixPayloads        prometheus.Counter
}

func NewHTTPMetrics(reg prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lfnm_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lfnm_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		DocumentsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lfnm_billing_documents_generated_total",
			Help: "Generated billing documents by kind.",
		}, []string{"kind"}),
		BarcodeRepairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lfnm_billing_barcode_repairs_total",
			Help: "Stored boleto lines regenerated after failing validation.",
		}),
		PixPayloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lfnm_billing_pix_payloads_total",
			Help: "Pix BR Code payloads built.",
		}),
	}
	for _, c := range []prometheus.Collector{m.DocumentsGenerated, m.BarcodeRepairs, m.PixPayloads} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
