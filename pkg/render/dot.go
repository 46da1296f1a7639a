package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ecolayout/pkg/errors"
	"github.com/matzehuels/ecolayout/pkg/style"
)

// DefaultDOTScale converts layout units to Graphviz points.
const DefaultDOTScale = 72.0

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Labels attaches node labels outside the glyph.
	Labels bool

	// Scale multiplies layout coordinates. Zero means DefaultDOTScale.
	Scale float64
}

// ToDOT converts a scene to an undirected Graphviz graph. Every node is
// pinned at its layout position, so neato only draws.
func ToDOT(scene style.Scene, opts DOTOptions) string {
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultDOTScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [style=filled, fixedsize=true, fontsize=10, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, n := range scene.Nodes {
		attrs := nodeAttrs(n, scale, opts.Labels)
		fmt.Fprintf(&buf, "  %s [%s];\n", dotQuote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range scene.Edges {
		fmt.Fprintf(&buf, "  %s -- %s [%s];\n", dotQuote(e.Source), dotQuote(e.Target), strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n style.NodeGlyph, scale float64, labels bool) []string {
	attrs := []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(n.X*scale), fmtFloat(n.Y*scale)),
		fmt.Sprintf("shape=%s", dotShape(n.Symbol)),
		fmt.Sprintf("width=%s", fmtFloat(n.Size/DefaultDOTScale)),
		"fillcolor=" + dotQuote(withAlpha(n.Color, n.Opacity)),
		"color=" + dotQuote(withAlpha(n.BorderColor, n.Opacity)),
		fmt.Sprintf("penwidth=%s", fmtFloat(n.BorderWidth)),
		`label=""`,
		"tooltip=" + dotQuote(n.Label),
	}
	if labels {
		attrs = append(attrs, "xlabel=" + dotQuote(n.Label))
	}
	return attrs
}

func edgeAttrs(e style.EdgeGlyph) []string {
	attrs := []string{
		"color=" + dotQuote(withAlpha(e.Color, e.Opacity)),
		fmt.Sprintf("penwidth=%s", fmtFloat(e.Width)),
	}
	if e.Dash == style.DashDashed {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

func dotShape(s style.Symbol) string {
	switch s {
	case style.SymbolDiamond:
		return "diamond"
	case style.SymbolTriangleUp:
		return "triangle"
	case style.SymbolTriangleDown:
		return "invtriangle"
	default:
		return "circle"
	}
}

// withAlpha appends an alpha channel to a #rgb or #rrggbb color. Opaque
// colors and anything that is not hex pass through unchanged.
func withAlpha(color string, opacity float64) string {
	if opacity >= 1 || !strings.HasPrefix(color, "#") {
		return color
	}
	hex := color[1:]
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return color
	}
	a := int(math.Round(max(0, opacity) * 255))
	return fmt.Sprintf("#%s%02x", hex, a)
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote returns s as a DOT double-quoted string. Only the quote and the
// backslash are escaped; other characters, UTF-8 included, pass through.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// =============================================================================
// Graphviz Rendering
// =============================================================================

// RenderGraphviz renders DOT source to SVG or PNG with the neato engine.
func RenderGraphviz(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element, which carries point
// units and a transform, with one sized in plain pixels.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
