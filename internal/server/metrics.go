package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/schemaview/pkg/observability"
)

// Metrics holds the server's prometheus collectors. It implements the
// observability hook interfaces so engine events feed the same registry.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sessions        prometheus.Gauge

	layouts        *prometheus.CounterVec
	layoutDuration *prometheus.HistogramVec
	edgesRouted    prometheus.Counter
	routeMemoHits  prometheus.Counter
	intersections  prometheus.Counter
	cacheEvents    *prometheus.CounterVec
	cacheBytes     prometheus.Counter
}

var (
	_ observability.LayoutHooks = (*Metrics)(nil)
	_ observability.RouteHooks  = (*Metrics)(nil)
	_ observability.CacheHooks  = (*Metrics)(nil)
)

// NewMetrics creates the collectors on a private registry that also
// carries the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemaview_http_requests_total",
				Help: "HTTP requests by route pattern, method and status",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schemaview_http_request_duration_seconds",
				Help:    "HTTP request latency by route pattern",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schemaview_sessions",
			Help: "Open diagram sessions",
		}),
		layouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemaview_layouts_total",
				Help: "Auto layouts computed by engine and outcome",
			},
			[]string{"engine", "outcome"},
		),
		layoutDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schemaview_layout_duration_seconds",
				Help:    "Auto layout latency by engine",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"engine"},
		),
		edgesRouted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaview_edges_routed_total",
			Help: "Edges routed, including memo hits",
		}),
		routeMemoHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaview_route_memo_hits_total",
			Help: "Edges served from the route memo",
		}),
		intersections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaview_route_intersections_total",
			Help: "Obstacle intersections left on chosen routes",
		}),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemaview_cache_events_total",
				Help: "Layout cache hits, misses and writes",
			},
			[]string{"kind", "event"},
		),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schemaview_cache_written_bytes_total",
			Help: "Bytes written to the layout cache",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.requestDuration, m.sessions,
		m.layouts, m.layoutDuration,
		m.edgesRouted, m.routeMemoHits, m.intersections,
		m.cacheEvents, m.cacheBytes,
	)
	return m
}

// Install registers m as the process-wide engine hooks.
func (m *Metrics) Install() {
	observability.SetLayoutHooks(m)
	observability.SetRouteHooks(m)
	observability.SetCacheHooks(m)
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(route, method string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// OnLayoutStart implements observability.LayoutHooks.
func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

// OnLayoutComplete implements observability.LayoutHooks.
func (m *Metrics) OnLayoutComplete(_ context.Context, engine string, _ int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.layouts.WithLabelValues(engine, outcome).Inc()
	m.layoutDuration.WithLabelValues(engine).Observe(d.Seconds())
}

// OnEdgeRouted implements observability.RouteHooks.
func (m *Metrics) OnEdgeRouted(_ string, _ int, intersections int, hit bool) {
	m.edgesRouted.Inc()
	if hit {
		m.routeMemoHits.Inc()
	}
	m.intersections.Add(float64(intersections))
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.cacheEvents.WithLabelValues(kind, "set").Inc()
	m.cacheBytes.Add(float64(size))
}
