package observability

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func TestPrometheusLayoutHooks(t *testing.T) {
	h := NewPrometheusHooks()
	ctx := context.Background()

	h.OnLayoutStart(ctx, "organic", 30)
	h.OnLayoutComplete(ctx, "organic", 10*time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "organic", 10*time.Millisecond, nil)
	h.OnLayoutComplete(ctx, "force", time.Millisecond, errors.New("boom"))

	if v := counterValue(t, h.LayoutsTotal, "organic", "success"); v != 2 {
		t.Errorf("organic success = %v, want 2", v)
	}
	if v := counterValue(t, h.LayoutsTotal, "force", "error"); v != 1 {
		t.Errorf("force error = %v, want 1", v)
	}
}

func TestPrometheusRenderHooks(t *testing.T) {
	h := NewPrometheusHooks()
	h.OnRenderComplete(context.Background(), []string{"svg", "png"}, time.Millisecond, nil)

	if v := counterValue(t, h.RendersTotal, "svg", "success"); v != 1 {
		t.Errorf("svg renders = %v, want 1", v)
	}
	if v := counterValue(t, h.RendersTotal, "png", "success"); v != 1 {
		t.Errorf("png renders = %v, want 1", v)
	}
}

func TestPrometheusCacheHooks(t *testing.T) {
	h := NewPrometheusHooks()
	ctx := context.Background()

	h.OnCacheHit(ctx, "layout")
	h.OnCacheMiss(ctx, "layout")
	h.OnCacheMiss(ctx, "layout")
	h.OnCacheSet(ctx, "artifact", 512)

	if v := counterValue(t, h.CacheHits, "layout"); v != 1 {
		t.Errorf("hits = %v, want 1", v)
	}
	if v := counterValue(t, h.CacheMisses, "layout"); v != 2 {
		t.Errorf("misses = %v, want 2", v)
	}
	if v := counterValue(t, h.CacheBytes, "artifact"); v != 512 {
		t.Errorf("bytes = %v, want 512", v)
	}
}

func TestPrometheusHTTPHooks(t *testing.T) {
	h := NewPrometheusHooks()
	ctx := context.Background()

	h.OnRequest(ctx, "POST", "/v1/layout")
	h.OnResponse(ctx, "POST", "/v1/layout", 200, 5*time.Millisecond)

	if v := counterValue(t, h.HTTPRequestsTotal, "POST", "/v1/layout", "200"); v != 1 {
		t.Errorf("requests = %v, want 1", v)
	}
	var m dto.Metric
	if err := h.HTTPRequestsInFlight.Write(&m); err != nil {
		t.Fatal(err)
	}
	if m.Gauge.GetValue() != 0 {
		t.Errorf("in flight = %v, want 0", m.Gauge.GetValue())
	}
}

func TestPrometheusHandler(t *testing.T) {
	h := NewPrometheusHooks()
	h.OnLayoutComplete(context.Background(), "circle", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `ecolayout_layouts_total{mode="circle",result="success"} 1`) {
		t.Errorf("metrics output missing layout counter:\n%s", body)
	}
}

func TestPrometheusInstall(t *testing.T) {
	defer Reset()
	h := NewPrometheusHooks()
	h.Install()

	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("Install should register all hook kinds")
	}
}
