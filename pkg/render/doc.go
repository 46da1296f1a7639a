// Package render turns a styled scene into output artifacts.
//
// # Overview
//
// A [style.Scene] carries positioned, colored glyphs. This package only
// draws them; it never moves a node or changes a color.
//
//   - [RenderSVG]: self-contained SVG drawn directly from the scene
//   - [ToDOT]: Graphviz DOT with every node pinned to its layout position
//   - [RenderGraphviz]: DOT to SVG or PNG through go-graphviz (neato)
//   - [RenderJSON]: the scene itself, for external charting libraries
//
// # SVG
//
// Scene coordinates are scaled uniformly into the frame, leaving padding on
// every side, with the y axis pointing up:
//
//	svg := render.RenderSVG(scene, render.WithSize(800, 600), render.WithLabels())
//
// # Graphviz
//
// Positions in the DOT output carry a trailing "!" so neato keeps them fixed:
//
//	dot := render.ToDOT(scene, render.DOTOptions{Labels: true})
//	png, err := render.RenderGraphviz(ctx, dot, render.FormatPNG)
//
// [style.Scene]: github.com/matzehuels/ecolayout/pkg/style.Scene
package render

// Format names an output artifact type.
type Format = string

// Supported output formats.
const (
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)
