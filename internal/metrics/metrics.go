package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/examsched/internal/scheduler"
)

// Metrics owns a private registry with the engine and HTTP collectors.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	runs            prometheus.Counter
	groups          *prometheus.CounterVec
	sections        *prometheus.CounterVec
	coverage        prometheus.Gauge
	unscheduled     prometheus.Gauge
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "examsched_runs_total",
		Help: "Completed scheduling runs",
	})

	groups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "examsched_groups_total",
		Help: "Subject groups tried, by phase and outcome",
	}, []string{"phase", "outcome"})

	sections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "examsched_sections_total",
		Help: "Sections placed or deferred, by phase and outcome",
	}, []string{"phase", "outcome"})

	coverage := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "examsched_last_run_coverage_percent",
		Help: "Coverage of the most recent run",
	})

	unscheduled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "examsched_last_run_unscheduled",
		Help: "Sections left unscheduled by the most recent run",
	})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	registry.MustRegister(runs, groups, sections, coverage, unscheduled, requestDuration, requestTotal)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runs:            runs,
		groups:          groups,
		sections:        sections,
		coverage:        coverage,
		unscheduled:     unscheduled,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Observe implements scheduler.EventSink.
func (m *Metrics) Observe(e scheduler.Event) {
	switch e.Kind {
	case scheduler.EventGroupPlaced:
		m.groups.WithLabelValues(e.Phase, "placed").Inc()
		m.sections.WithLabelValues(e.Phase, "placed").Add(float64(e.Scheduled))
	case scheduler.EventGroupDeferred:
		m.groups.WithLabelValues(e.Phase, "deferred").Inc()
		m.sections.WithLabelValues(e.Phase, "deferred").Add(float64(e.Deferred))
	case scheduler.EventRunCompleted:
		m.runs.Inc()
		m.coverage.Set(e.Coverage)
		m.unscheduled.Set(float64(e.Deferred))
	}
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
