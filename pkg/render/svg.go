package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/ecolayout/pkg/style"
)

// Frame defaults in pixels.
const (
	DefaultWidth   = 800.0
	DefaultHeight  = 600.0
	DefaultPadding = 40.0

	labelFontSize  = 10.0
	legendFontSize = 11.0
	legendSwatch   = 10.0
	legendLineH    = 16.0
	titleFontSize  = 16.0
	dashPattern    = "4 3"
	fontFamily     = "Helvetica, Arial, sans-serif"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	padding       float64
	labels        bool
	legend        bool
	title         string
}

// WithSize sets the frame size. Non-positive values keep the default.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithLabels draws node ids next to their glyphs.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithoutLegend omits the module legend.
func WithoutLegend() SVGOption { return func(r *svgRenderer) { r.legend = false } }

// WithTitle draws title above the network.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(scene style.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{
		width:   DefaultWidth,
		height:  DefaultHeight,
		padding: DefaultPadding,
		legend:  true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	// Padding may not swallow the frame.
	r.padding = min(r.padding, r.width/2-1, r.height/2-1)
	r.padding = max(r.padding, 0)

	proj := newProjection(&scene, r.width, r.height, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", r.width, r.height)

	buf.WriteString(`  <g class="edges">` + "\n")
	for _, e := range scene.Edges {
		renderEdge(&buf, e, proj)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range scene.Nodes {
		renderNode(&buf, n, proj)
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		buf.WriteString(`  <g class="labels">` + "\n")
		for _, n := range scene.Nodes {
			x, y := proj.apply(n.X, n.Y)
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" text-anchor="middle" fill="#333333" opacity="%.2f">%s</text>`+"\n",
				x, y+n.Size/2+labelFontSize, fontFamily, labelFontSize, n.Opacity, escapeXML(n.Label))
		}
		buf.WriteString("  </g>\n")
	}

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" font-weight="bold" text-anchor="middle" fill="#222222">%s</text>`+"\n",
			r.width/2, titleFontSize+4, fontFamily, titleFontSize, escapeXML(r.title))
	}

	if r.legend && len(scene.Legend) > 0 {
		renderLegend(&buf, scene.Legend)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEdge(buf *bytes.Buffer, e style.EdgeGlyph, p projection) {
	x1, y1 := p.apply(e.X1, e.Y1)
	x2, y2 := p.apply(e.X2, e.Y2)
	dash := ""
	if e.Dash == style.DashDashed {
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, dashPattern)
	}
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.2f"%s/>`+"\n",
		x1, y1, x2, y2, e.Color, e.Width, e.Opacity, dash)
}

func renderNode(buf *bytes.Buffer, n style.NodeGlyph, p projection) {
	x, y := p.apply(n.X, n.Y)
	paint := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%.2f" opacity="%.2f"`,
		n.Color, n.BorderColor, n.BorderWidth, n.Opacity)
	r := n.Size / 2

	fmt.Fprintf(buf, `    <g id="node-%s">`, escapeXML(n.ID))
	switch n.Symbol {
	case style.SymbolDiamond:
		fmt.Fprintf(buf, `<path d="M %.2f %.2f L %.2f %.2f L %.2f %.2f L %.2f %.2f Z" %s/>`,
			x, y-r, x+r, y, x, y+r, x-r, y, paint)
	case style.SymbolTriangleUp:
		fmt.Fprintf(buf, `<path d="M %.2f %.2f L %.2f %.2f L %.2f %.2f Z" %s/>`,
			x, y-r, x+r, y+r, x-r, y+r, paint)
	case style.SymbolTriangleDown:
		fmt.Fprintf(buf, `<path d="M %.2f %.2f L %.2f %.2f L %.2f %.2f Z" %s/>`,
			x, y+r, x+r, y-r, x-r, y-r, paint)
	default:
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`, x, y, r, paint)
	}
	fmt.Fprintf(buf, `<title>%s</title></g>`+"\n", escapeXML(n.Label))
}

func renderLegend(buf *bytes.Buffer, entries []style.LegendEntry) {
	const x0, y0 = 10.0, 10.0
	buf.WriteString(`  <g class="legend">` + "\n")
	for i, e := range entries {
		y := y0 + float64(i)*legendLineH
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
			x0, y, legendSwatch, legendSwatch, e.Color)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="#333333">%s</text>`+"\n",
			x0+legendSwatch+6, y+legendSwatch-1, fontFamily, legendFontSize, escapeXML(e.Label))
	}
	buf.WriteString("  </g>\n")
}

// =============================================================================
// Projection
// =============================================================================

// projection maps scene coordinates into the frame with a uniform scale,
// centering the drawing and flipping y so positive values point up.
type projection struct {
	scale      float64
	cx, cy     float64
	midX, midY float64
}

func newProjection(s *style.Scene, width, height, padding float64) projection {
	minX, minY, maxX, maxY := s.Bounds()
	p := projection{
		cx:   (minX + maxX) / 2,
		cy:   (minY + maxY) / 2,
		midX: width / 2,
		midY: height / 2,
	}
	spanX, spanY := maxX-minX, maxY-minY
	availX, availY := width-2*padding, height-2*padding
	switch {
	case spanX == 0 && spanY == 0:
		p.scale = 1
	case spanX == 0:
		p.scale = availY / spanY
	case spanY == 0:
		p.scale = availX / spanX
	default:
		p.scale = math.Min(availX/spanX, availY/spanY)
	}
	return p
}

func (p projection) apply(x, y float64) (float64, float64) {
	return p.midX + (x-p.cx)*p.scale, p.midY - (y-p.cy)*p.scale
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
