package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geofoundry/internal/foundry"
)

// Metrics exposes foundry and request metrics for Prometheus scraping.
type Metrics struct {
	registry *prometheus.Registry

	arrays      prometheus.Gauge
	nodes       prometheus.Gauge
	boundaries  prometheus.Gauge
	loadSeconds prometheus.Gauge
	requests    *prometheus.CounterVec
}

// NewMetrics registers the metrics on a private registry.
func NewMetrics(prefix string) *Metrics {
	if prefix == "" {
		prefix = "geofoundry"
	}
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		arrays: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_arrays_loaded",
			Help: "Number of arrays in the loaded foundry.",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_node_records",
			Help: "Number of CSG node records.",
		}),
		boundaries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_boundary_names",
			Help: "Number of boundary names.",
		}),
		loadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_load_duration_seconds",
			Help: "Time taken to load the foundry directory.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "API requests by route and status code.",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(m.arrays, m.nodes, m.boundaries, m.loadSeconds, m.requests)
	reg.MustRegister(prometheus.NewGoCollector())
	return m
}

// ObserveLoad records the shape of a freshly loaded foundry.
func (m *Metrics) ObserveLoad(f *foundry.Foundry, elapsed time.Duration) {
	m.arrays.Set(float64(len(f.Stems())))
	if node, err := f.Node(); err == nil && node.NDim() > 0 {
		m.nodes.Set(float64(node.Shape()[0]))
	}
	m.boundaries.Set(float64(f.BoundaryNames().Len()))
	m.loadSeconds.Set(elapsed.Seconds())
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests per route template and final status.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			code := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
			}
			m.requests.WithLabelValues(c.Path(), strconv.Itoa(code)).Inc()
			return err
		}
	}
}
