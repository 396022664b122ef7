package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vegandiet"

// Collector holds the service's Prometheus metrics on its own registry
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	completionsTotal   *prometheus.CounterVec
	completionDuration prometheus.Histogram
	mealFallbacksTotal *prometheus.CounterVec
	menusGenerated     *prometheus.CounterVec
	rateLimited        prometheus.Counter
}

// NewCollector registers all metrics plus the Go and process collectors
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		completionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completions_total",
				Help:      "Chat completion calls by outcome",
			},
			[]string{"outcome"},
		),
		completionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "completion_duration_seconds",
				Help:      "Chat completion latency in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 6, 8, 10},
			},
		),
		mealFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "meal_fallbacks_total",
				Help:      "Meals served from the fallback template",
			},
			[]string{"meal_type", "kind"},
		),
		menusGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "menus_generated_total",
				Help:      "Menu generation requests by mode",
			},
			[]string{"mode"},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Generation requests rejected by the rate limiter",
			},
		),
	}
}

// HTTPMiddleware records request counts and latency per route
func (m *Collector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Completion records one chat completion call
func (m *Collector) Completion(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.completionsTotal.WithLabelValues(outcome).Inc()
	m.completionDuration.Observe(d.Seconds())
}

// MealFallback records a meal slot served from the fallback template
func (m *Collector) MealFallback(mealType, kind string) {
	if m == nil {
		return
	}
	m.mealFallbacksTotal.WithLabelValues(mealType, kind).Inc()
}

// MenuGenerated records a generation request, mode is "meal" or "week"
func (m *Collector) MenuGenerated(mode string) {
	if m == nil {
		return
	}
	m.menusGenerated.WithLabelValues(mode).Inc()
}

func (m *Collector) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// Registry exposes the underlying registry, mainly for tests
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus scrape handler for this collector
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
