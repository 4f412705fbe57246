package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mathcheck/internal/mathcheck"
)

// Metrics holds the Prometheus collectors of one Server. Each Server gets
// its own registry so tests can build several servers in one process.
type Metrics struct {
	registry    *prometheus.Registry
	summaryVec  *prometheus.SummaryVec
	counterVec  *prometheus.CounterVec
	comparisons *prometheus.CounterVec
}

// NewMetrics registers the HTTP and comparison collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		summaryVec: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		counterVec: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		comparisons: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathcheck_comparisons_total",
				Help: "Answer comparisons served, by accepting strategy",
			},
			[]string{"strategy"},
		),
	}
}

// Middleware records the duration and count of every request. The path
// label is the route template so that IDs in URLs do not explode the
// label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := wrapStatus(w)

		next.ServeHTTP(sw, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		status := strconv.Itoa(sw.status)

		m.summaryVec.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		m.counterVec.WithLabelValues(r.Method, path, status).Inc()
	})
}

// ObserveComparison counts one served comparison.
func (m *Metrics) ObserveComparison(s mathcheck.Strategy) {
	m.comparisons.WithLabelValues(string(s)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
