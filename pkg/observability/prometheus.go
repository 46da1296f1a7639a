package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ecolayout"

// PrometheusHooks implements every hook interface on a private Prometheus
// registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	LayoutsTotal   *prometheus.CounterVec
	LayoutDuration *prometheus.HistogramVec
	LayoutNodes    prometheus.Histogram
	RendersTotal   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	PreparedNodes  prometheus.Histogram
	ModulesFound   prometheus.Histogram

	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	CacheBytes  *prometheus.CounterVec

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

// NewPrometheusHooks creates hooks backed by a fresh registry that also
// carries the Go runtime and process collectors.
func NewPrometheusHooks() *PrometheusHooks {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	sizeBuckets := prometheus.ExponentialBuckets(1, 4, 8)

	return &PrometheusHooks{
		registry: reg,

		LayoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "layouts_total",
			Help:      "Layout computations by mode and result",
		}, []string{"mode", "result"}),
		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "layout_duration_seconds",
			Help:      "Layout computation latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		LayoutNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "layout_nodes",
			Help:      "Number of nodes per layout computation",
			Buckets:   sizeBuckets,
		}),
		RendersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "renders_total",
			Help:      "Rendered artifacts by format and result",
		}, []string{"format", "result"}),
		RenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Render stage latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		PreparedNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "prepared_nodes",
			Help:      "Number of nodes left after filtering",
			Buckets:   sizeBuckets,
		}),
		ModulesFound: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "modules",
			Help:      "Number of distinct modules per prepared network",
			Buckets:   prometheus.LinearBuckets(1, 5, 10),
		}),

		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by key type",
		}, []string{"type"}),
		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by key type",
		}, []string{"type"}),
		CacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"type"}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		}),
	}
}

// Install registers h as the global pipeline, cache and HTTP hooks.
func (h *PrometheusHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

// Registry returns the underlying Prometheus registry.
func (h *PrometheusHooks) Registry() *prometheus.Registry {
	return h.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (h *PrometheusHooks) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}

func (h *PrometheusHooks) OnPrepareComplete(_ context.Context, nodeCount, _, moduleCount int, _ time.Duration) {
	h.PreparedNodes.Observe(float64(nodeCount))
	h.ModulesFound.Observe(float64(moduleCount))
}

func (h *PrometheusHooks) OnLayoutStart(_ context.Context, _ string, nodeCount int) {
	h.LayoutNodes.Observe(float64(nodeCount))
}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, mode string, d time.Duration, err error) {
	h.LayoutsTotal.WithLabelValues(mode, result(err)).Inc()
	h.LayoutDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	for _, f := range formats {
		h.RendersTotal.WithLabelValues(f, result(err)).Inc()
	}
	h.RenderDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, kind string) {
	h.CacheHits.WithLabelValues(kind).Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, kind string) {
	h.CacheMisses.WithLabelValues(kind).Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.CacheBytes.WithLabelValues(kind).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {
	h.HTTPRequestsInFlight.Inc()
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.HTTPRequestsInFlight.Dec()
	h.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
