package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/network"
	"github.com/matzehuels/ecolayout/pkg/render"
	"github.com/matzehuels/ecolayout/pkg/style"
)

// =============================================================================
// Styling
// =============================================================================

// Style assembles the drawable scene for a network and a layout computed
// for it. Nodes are matched to positions by id.
func Style(n *network.Network, l graph.Layout, opts Options) style.Scene {
	coords := graph.ToCoordinates(l, n)
	return style.Assemble(n.Nodes, n.Edges, coords, opts.StyleOptions())
}

// =============================================================================
// Rendering
// =============================================================================

// RenderScene renders a scene to every requested format.
func RenderScene(ctx context.Context, scene style.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = render.RenderSVG(scene, svgOptions(opts)...)
		case FormatDOT:
			if dot == "" {
				dot = render.ToDOT(scene, dotOptions(opts))
			}
			artifacts[format] = []byte(dot)
		case FormatPNG:
			if dot == "" {
				dot = render.ToDOT(scene, dotOptions(opts))
			}
			data, err := render.RenderGraphviz(ctx, dot, render.FormatPNG)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data
		case FormatJSON:
			data, err := render.RenderJSON(scene)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data
		default:
			return nil, ValidateFormats([]string{format})
		}
	}
	return artifacts, nil
}

func svgOptions(opts Options) []render.SVGOption {
	svgOpts := []render.SVGOption{render.WithSize(opts.Width, opts.Height)}
	if opts.Labels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, render.WithTitle(opts.Title))
	}
	if opts.NoLegend {
		svgOpts = append(svgOpts, render.WithoutLegend())
	}
	return svgOpts
}

func dotOptions(opts Options) render.DOTOptions {
	return render.DOTOptions{Labels: opts.Labels, Scale: render.DefaultDOTScale}
}
