package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ecolayout/pkg/cache"
	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/observability"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv := New(Config{}, runner, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		observability.Reset()
	})
	return ts
}

func sampleNetwork() map[string]any {
	return map[string]any{
		"nodes": []map[string]any{
			{"id": "A", "degree": 3, "module": 0, "phylum": "Firmicutes"},
			{"id": "B", "degree": 1, "module": 0, "phylum": "Firmicutes"},
			{"id": "C", "degree": 1, "module": 1, "phylum": "Bacteroidetes"},
			{"id": "D", "degree": 1, "module": 1, "phylum": "Bacteroidetes"},
		},
		"edges": []map[string]any{
			{"source": "A", "target": "B", "correlation": 0.5},
			{"source": "A", "target": "C", "correlation": -0.3},
			{"source": "A", "target": "D", "correlation": 0.2},
		},
	}
}

func post(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "response should carry a UUID request id")
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := setupTestServer(t)
	id := uuid.NewString()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))
}

func TestLayoutRadial(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/layout", map[string]any{
		"mode":    "radial",
		"network": sampleNetwork(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get(CacheHeader))

	var l graph.Layout
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&l))
	require.Len(t, l.Nodes, 4)
	assert.Equal(t, "radial", l.Mode.String())
	assert.NotEmpty(t, l.NetworkHash)

	assert.Equal(t, "A", l.Nodes[0].ID)
	assert.InDelta(t, 0, l.Nodes[0].X, 1e-9)
	assert.InDelta(t, 0, l.Nodes[0].Y, 1e-9)

	angles := []float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3}
	for i, p := range l.Nodes[1:] {
		assert.InDelta(t, 1.5*math.Cos(angles[i]), p.X, 1e-9, "node %s x", p.ID)
		assert.InDelta(t, 1.5*math.Sin(angles[i]), p.Y, 1e-9, "node %s y", p.ID)
	}
}

func TestLayoutDefaultsToForce(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/layout", map[string]any{"network": sampleNetwork()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var l graph.Layout
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&l))
	assert.Equal(t, "force", l.Mode.String())
}

func TestLayoutEmptyNetwork(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/layout", map[string]any{
		"mode":    "organic",
		"network": map[string]any{"nodes": []any{}, "edges": []any{}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var l graph.Layout
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&l))
	assert.Empty(t, l.Nodes)
}

func TestLayoutDanglingEdgeAccepted(t *testing.T) {
	ts := setupTestServer(t)

	net := sampleNetwork()
	net["edges"] = append(net["edges"].([]map[string]any),
		map[string]any{"source": "A", "target": "ghost", "correlation": 0.9})

	resp := post(t, ts, "/v1/layout", map[string]any{"mode": "organic", "network": net})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLayoutFilter(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/layout", map[string]any{
		"mode":    "circle",
		"network": sampleNetwork(),
		"filter":  map[string]any{"min_correlation": 0.25, "drop_isolated": true},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var l graph.Layout
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&l))

	ids := make([]string, len(l.Nodes))
	for i, p := range l.Nodes {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	badCorr := sampleNetwork()
	badCorr["edges"] = []map[string]any{{"source": "A", "target": "B", "correlation": 1.5}}

	dupIDs := map[string]any{
		"nodes": []map[string]any{{"id": "A"}, {"id": "A"}},
		"edges": []any{},
	}

	missingID := map[string]any{
		"nodes": []map[string]any{{"degree": 1}},
		"edges": []any{},
	}

	tests := []struct {
		name     string
		path     string
		body     any
		wantCode string
	}{
		{"unknown mode", "/v1/layout", map[string]any{"mode": "bogus", "network": sampleNetwork()}, "INVALID_MODE"},
		{"mode is case sensitive", "/v1/layout", map[string]any{"mode": "CIRCLE", "network": sampleNetwork()}, "INVALID_MODE"},
		{"unknown color mode", "/v1/render", map[string]any{"color_mode": "rainbow", "network": sampleNetwork()}, "INVALID_COLOR_MODE"},
		{"unknown format", "/v1/render", map[string]any{"format": "pdf", "network": sampleNetwork()}, "INVALID_FORMAT"},
		{"correlation out of range", "/v1/layout", map[string]any{"network": badCorr}, "INVALID_INPUT"},
		{"missing node id", "/v1/modules", map[string]any{"network": missingID}, "INVALID_INPUT"},
		{"duplicate node id", "/v1/layout", map[string]any{"network": dupIDs}, "INVALID_NETWORK"},
		{"negative highlight", "/v1/render", map[string]any{"highlight": -1, "network": sampleNetwork()}, "INVALID_INPUT"},
		{"filter out of range", "/v1/layout", map[string]any{"network": sampleNetwork(), "filter": map[string]any{"min_correlation": 2}}, "INVALID_INPUT"},
		{"unknown field", "/v1/layout", map[string]any{"layout": "circle", "network": sampleNetwork()}, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			e := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, e.Code)
			assert.NotEmpty(t, e.Message)
			assert.NotEmpty(t, e.RequestID)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/layout", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRenderSVG(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/render", map[string]any{
		"mode":       "circle",
		"color_mode": "module",
		"highlight":  0,
		"network":    sampleNetwork(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<svg")
	assert.Contains(t, string(body), "</svg>")
}

func TestRenderJSON(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/render", map[string]any{
		"mode":       "radial",
		"color_mode": "taxonomy",
		"format":     "json",
		"network":    sampleNetwork(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var scene map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&scene))
	assert.Contains(t, scene, "nodes")
	assert.Contains(t, scene, "edges")
}

func TestRenderDOT(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/render", map[string]any{
		"mode":    "circle",
		"format":  "dot",
		"network": sampleNetwork(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "graph")
	assert.Contains(t, string(body), "pos=")
}

func TestModules(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/modules", map[string]any{"network": sampleNetwork()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got ModulesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 4, got.Nodes)
	assert.Equal(t, 3, got.Edges)
	require.Len(t, got.Modules, 2)
	assert.Equal(t, 0, got.Modules[0].ID)
	assert.Equal(t, 2, got.Modules[0].Size)
	assert.Equal(t, "Firmicutes", got.Modules[0].DominantPhylum)
	assert.Equal(t, "Bacteroidetes", got.Modules[1].DominantPhylum)
}

func TestMetrics(t *testing.T) {
	ts := setupTestServer(t)

	resp := post(t, ts, "/v1/layout", map[string]any{"mode": "circle", "network": sampleNetwork()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mresp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	require.Equal(t, http.StatusOK, mresp.StatusCode)

	body, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ecolayout_http_requests_total")
	assert.Contains(t, string(body), `route="/v1/layout"`)
	assert.Contains(t, string(body), "ecolayout_layouts_total")
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", formatValidationError(validate.Struct(&LayoutRequest{Mode: "x"})), http.StatusBadRequest},
		{"plain error", io.ErrUnexpectedEOF, http.StatusInternalServerError},
		{"unsupported", errors.New(errors.ErrCodeUnsupported, "png"), http.StatusNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Status(tt.err))
		})
	}
}

func TestRespondErrorLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		wantLog string
		notLog  string
	}{
		{"input error", errors.New(errors.ErrCodeInvalidMode, "bad mode"), http.StatusBadRequest, "rejected request", "request failed"},
		{"internal error", io.ErrUnexpectedEOF, http.StatusInternalServerError, "request failed", "rejected request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
			srv := New(Config{}, pipeline.NewRunner(cache.NewNullCache(), nil, logger), logger)
			t.Cleanup(func() {
				srv.Close()
				observability.Reset()
			})

			rec := httptest.NewRecorder()
			srv.respondError(rec, httptest.NewRequest(http.MethodPost, "/v1/layout", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, buf.String(), tt.wantLog)
			assert.NotContains(t, buf.String(), tt.notLog)
		})
	}
}
