package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carbocation/variantatlas/loader"
)

// metrics are registered on their own registry so that more than one
// Global can exist in a process, as in tests.
type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	renders  *prometheus.CounterVec
	loads    *prometheus.CounterVec
	rows     prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "variantatlas_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "variantatlas_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "variantatlas_renders_total",
				Help: "Images and spreadsheets rendered, by kind",
			},
			[]string{"kind"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "variantatlas_loads_total",
				Help: "Attempts to load the variant table, by result",
			},
			[]string{"result"},
		),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "variantatlas_rows_loaded",
			Help: "Rows in the currently loaded variant table",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.renders,
		m.loads,
		m.rows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeLoad(rows int, err error) {
	switch {
	case err == nil:
		m.loads.WithLabelValues("ok").Inc()
		m.rows.Set(float64(rows))
	case errors.Is(err, loader.ErrMissingDataFile):
		m.loads.WithLabelValues("missing").Inc()
	default:
		m.loads.WithLabelValues("parse").Inc()
	}
}

// instrument is mux middleware; it runs after route matching so the route
// name is known.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := routeName(r)
		m.requests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(started).Seconds())
	})
}

func routeName(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	if name := route.GetName(); name != "" {
		return name
	}
	if tpl, err := route.GetPathTemplate(); err == nil {
		return tpl
	}

	return "unnamed"
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
