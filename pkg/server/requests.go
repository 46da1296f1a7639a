package server

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/network"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
)

// validate is shared by all handlers; validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// NodePayload is a node as accepted on the wire.
type NodePayload struct {
	ID                 string   `json:"id" validate:"required,max=256"`
	Degree             int      `json:"degree" validate:"gte=0"`
	Module             int      `json:"module" validate:"gte=0"`
	Phylum             string   `json:"phylum,omitempty"`
	Family             string   `json:"family,omitempty"`
	Species            string   `json:"species,omitempty"`
	Color              string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	EnrichedClass      *int     `json:"enriched_class,omitempty" validate:"omitempty,oneof=0 1"`
	OverlayCoefficient *float64 `json:"overlay_coefficient,omitempty"`
}

// EdgePayload is an edge as accepted on the wire. Endpoints are not
// checked against the node list; dangling edges are dropped downstream.
type EdgePayload struct {
	Source      string  `json:"source" validate:"required"`
	Target      string  `json:"target" validate:"required"`
	Correlation float64 `json:"correlation" validate:"gte=-1,lte=1"`
}

// NetworkPayload carries the network of a request.
type NetworkPayload struct {
	Nodes []NodePayload `json:"nodes" validate:"dive"`
	Edges []EdgePayload `json:"edges" validate:"dive"`
}

// FilterPayload mirrors the threshold controls applied before layout.
type FilterPayload struct {
	MinCorrelation float64 `json:"min_correlation" validate:"gte=0,lte=1"`
	DropIsolated   bool    `json:"drop_isolated"`
	DetectModules  bool    `json:"detect_modules"`
}

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Mode    string         `json:"mode" validate:"omitempty,oneof=circle radial organic force"`
	Network NetworkPayload `json:"network"`
	Filter  *FilterPayload `json:"filter,omitempty"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Mode      string         `json:"mode" validate:"omitempty,oneof=circle radial organic force"`
	ColorMode string         `json:"color_mode" validate:"omitempty,oneof=taxonomy module enrichment"`
	Highlight *int           `json:"highlight,omitempty" validate:"omitempty,gte=0"`
	Format    string         `json:"format" validate:"omitempty,oneof=svg dot png json"`
	Overlay   bool           `json:"overlay"`
	Labels    bool           `json:"labels"`
	NoLegend  bool           `json:"no_legend"`
	Title     string         `json:"title" validate:"max=200"`
	Width     float64        `json:"width" validate:"gte=0,lte=10000"`
	Height    float64        `json:"height" validate:"gte=0,lte=10000"`
	Palette   []string       `json:"palette,omitempty" validate:"omitempty,dive,hexcolor"`
	Network   NetworkPayload `json:"network"`
	Filter    *FilterPayload `json:"filter,omitempty"`
}

// ModulesRequest is the body of POST /v1/modules.
type ModulesRequest struct {
	Network NetworkPayload `json:"network"`
	Filter  *FilterPayload `json:"filter,omitempty"`
}

// ToNetwork converts the payload and checks id uniqueness.
func (p NetworkPayload) ToNetwork() (*network.Network, error) {
	n := &network.Network{
		Nodes: make([]network.Node, len(p.Nodes)),
		Edges: make([]network.Edge, len(p.Edges)),
	}
	for i, node := range p.Nodes {
		n.Nodes[i] = network.Node{
			ID:                 node.ID,
			Degree:             node.Degree,
			Module:             node.Module,
			Phylum:             node.Phylum,
			Family:             node.Family,
			Species:            node.Species,
			Color:              node.Color,
			EnrichedClass:      node.EnrichedClass,
			OverlayCoefficient: node.OverlayCoefficient,
		}
	}
	for i, e := range p.Edges {
		n.Edges[i] = network.Edge{Source: e.Source, Target: e.Target, Correlation: e.Correlation}
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (f *FilterPayload) apply(opts *pipeline.Options) {
	if f == nil {
		return
	}
	opts.MinCorrelation = f.MinCorrelation
	opts.DropIsolated = f.DropIsolated
	opts.DetectModules = f.DetectModules
}

// Options builds pipeline options for a layout request.
func (r *LayoutRequest) Options() pipeline.Options {
	opts := pipeline.Options{Mode: r.Mode}
	r.Filter.apply(&opts)
	return opts
}

// Options builds pipeline options for a render request.
func (r *RenderRequest) Options() pipeline.Options {
	opts := pipeline.Options{
		Mode:      r.Mode,
		ColorMode: r.ColorMode,
		Highlight: r.Highlight,
		Overlay:   r.Overlay,
		Labels:    r.Labels,
		NoLegend:  r.NoLegend,
		Title:     r.Title,
		Width:     r.Width,
		Height:    r.Height,
		Palette:   r.Palette,
	}
	if r.Format != "" {
		opts.Formats = []string{r.Format}
	}
	r.Filter.apply(&opts)
	return opts
}

// Options builds pipeline options for a modules request.
func (r *ModulesRequest) Options() pipeline.Options {
	opts := pipeline.Options{}
	r.Filter.apply(&opts)
	return opts
}

// validateRequest runs struct-tag validation and reports the first failure
// as an INVALID_INPUT error.
func validateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request")
	}

	e := verrs[0]
	field := e.Namespace()
	var msg string
	switch e.Tag() {
	case "required":
		msg = "field is required"
	case "oneof":
		msg = fmt.Sprintf("must be one of: %s", e.Param())
	case "gte":
		msg = fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		msg = fmt.Sprintf("must not exceed %s", e.Param())
	case "max":
		msg = fmt.Sprintf("must not exceed length %s", e.Param())
	case "hexcolor":
		msg = "must be a hex color"
	default:
		msg = fmt.Sprintf("validation failed (%s)", e.Tag())
	}

	code := errors.ErrCodeInvalidInput
	switch e.Field() {
	case "Mode":
		code = errors.ErrCodeInvalidMode
	case "ColorMode":
		code = errors.ErrCodeInvalidColorMode
	case "Format":
		code = errors.ErrCodeInvalidFormat
	}
	return errors.New(code, "%s: %s", field, msg)
}
