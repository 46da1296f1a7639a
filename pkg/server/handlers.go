package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/network"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Cache"

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

// ModulesResponse is the body of a POST /v1/modules response.
type ModulesResponse struct {
	Nodes   int              `json:"nodes"`
	Edges   int              `json:"edges"`
	Modules []network.Module `json:"modules"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	n, err := decodeRequest(r, &req, &req.Network)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := req.Options()
	opts.Logger = s.logger
	if err := opts.ValidateForLayout(); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := r.Context()
	work := s.runner.Prepare(ctx, n, opts)
	l, hit, err := s.runner.Layout(ctx, work, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set(CacheHeader, cacheStatus(hit))
	s.respondJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	n, err := decodeRequest(r, &req, &req.Network)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := req.Options()
	opts.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), n, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	format := pipeline.FormatSVG
	if req.Format != "" {
		format = req.Format
	}
	data, ok := result.Artifacts[format]
	if !ok {
		s.respondError(w, r, errors.New(errors.ErrCodeInternal, "no %s artifact produced", format))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(CacheHeader, cacheStatus(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("write artifact", "error", err)
	}
}

func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	var req ModulesRequest
	n, err := decodeRequest(r, &req, &req.Network)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := req.Options()
	opts.Logger = s.logger
	modules, err := s.runner.Modules(r.Context(), n, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if modules == nil {
		modules = []network.Module{}
	}

	s.respondJSON(w, http.StatusOK, ModulesResponse{
		Nodes:   len(n.Nodes),
		Edges:   len(n.Edges),
		Modules: modules,
	})
}

// decodeRequest decodes the JSON body into req, validates it, and converts
// its network payload.
func decodeRequest(r *http.Request, req any, payload *NetworkPayload) (*network.Network, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return payload.ToNetwork()
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
