package web

// metrics.go wires Prometheus instrumentation for the HTTP surface and the
// upstream aggregation loop. A private registry keeps the exposition limited
// to what this service registers.

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	upstreamPages   prometheus.Counter
	upstreamErrors  prometheus.Counter
	recordsFetched  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_dashboard_http_requests_total",
			Help: "HTTP requests served, by route pattern, method, and status.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "risk_dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency, by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		upstreamPages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "risk_dashboard_upstream_pages_total",
			Help: "Risk-register pages fetched from the upstream API.",
		}),
		upstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "risk_dashboard_upstream_errors_total",
			Help: "Aggregation sessions aborted by an upstream failure.",
		}),
		recordsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "risk_dashboard_upstream_records_total",
			Help: "Raw risk records accumulated across all fetch sessions.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.upstreamPages,
		m.upstreamErrors,
		m.recordsFetched,
	)
	return m
}

// handler serves the exposition endpoint.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// middleware records count and latency per routed request.
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
