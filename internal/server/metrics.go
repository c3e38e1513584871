package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Metrics holds the prometheus instruments of the HTTP surface and the
// reporting engine.
type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	reportsGenerated *prometheus.CounterVec
	unbalancedSheets prometheus.Counter
}

// NewMetricsWith registers the instruments on the given registerer.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fincore_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fincore_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fincore_reports_generated_total",
			Help: "Generated financial reports by kind.",
		}, []string{"kind"}),
		unbalancedSheets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fincore_unbalanced_balance_sheets_total",
			Help: "Balance sheets generated with is_balanced=false.",
		}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.reportsGenerated, m.unbalancedSheets)
	return m
}

// NewMetrics registers the instruments on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// ReportGenerated counts one generated report of the given kind.
func (m *Metrics) ReportGenerated(kind string) {
	m.reportsGenerated.WithLabelValues(kind).Inc()
}

// UnbalancedSheet counts a balance sheet that failed the cross-check.
func (m *Metrics) UnbalancedSheet() {
	m.unbalancedSheets.Inc()
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
