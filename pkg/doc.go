// Package pkg provides the core libraries for ecolayout, a layout and
// drawing engine for microbial co-abundance networks.
//
// # Overview
//
// A co-abundance network has one node per feature (an OTU or species) and
// one edge per significant pairwise correlation. ecolayout places the
// nodes in the plane and turns the result into a styled scene that can be
// drawn as SVG, DOT, PNG or handed to a chart library as JSON.
//
// The pkg directory is organized into these areas:
//
//  1. [network] - Nodes, signed edges, filtering and module detection
//  2. [layout] - Positioning: circle, radial, organic and force
//  3. [style] - Colors, sizes, symbols and dimming into a [style.Scene]
//  4. [render] - SVG, Graphviz and JSON output of a scene
//  5. [pipeline] - Orchestration (prepare → layout → style → render) with caching
//  6. [graph] - Network and layout file formats
//  7. [server] - HTTP API over the pipeline
//
// Supporting packages: [cache] (file, Redis and null caches), [config]
// (TOML settings), [errors] (coded errors), [observability] (hooks and
// Prometheus metrics) and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	network.json / network.yaml
//	         ↓
//	    [graph] package (read and validate)
//	         ↓
//	    [network] package (filter, detect modules)
//	         ↓
//	    [layout] package (coordinates)
//	         ↓
//	    [style] package (scene)
//	         ↓
//	    [render] package (SVG/DOT/PNG/JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/ecolayout/pkg/graph"
//	    "github.com/matzehuels/ecolayout/pkg/layout"
//	    "github.com/matzehuels/ecolayout/pkg/render"
//	    "github.com/matzehuels/ecolayout/pkg/style"
//	)
//
//	n, _ := graph.ReadNetworkFile("gut.yaml")
//	coords := layout.ComputeNetwork(layout.ModeForce, n)
//	scene := style.Assemble(n.Nodes, n.Edges, coords, style.Options{
//	    ColorMode: style.Module,
//	})
//	svg := render.RenderSVG(scene)
//
// Layouts are deterministic: the organic and force modes draw their
// initial positions from a fixed-seed generator, so the same network and
// mode always yield the same coordinates.
//
// For caching, configuration and multi-format output use [pipeline.Runner]
// instead of calling the stages directly.
package pkg
