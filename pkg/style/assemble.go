package style

import (
	"fmt"
	"math"
	"sort"

	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/network"
)

// Default encoding ranges.
const (
	DefaultMinSize = 8.0
	DefaultMaxSize = 30.0

	overlayBorderWidth = 2.5
	defaultBorderWidth = 0.5

	edgeBaseWidth  = 0.5
	edgeWidthScale = 3.0

	edgeOpacity       = 0.6
	edgeDimmedOpacity = 0.08
	nodeDimmedOpacity = 0.15
)

// Options controls [Assemble].
type Options struct {
	ColorMode ColorMode

	// Highlight dims every node outside this module, and every edge that
	// does not have both endpoints inside it.
	Highlight *int

	// MinSize and MaxSize bound the degree-scaled node size. Zero values
	// fall back to 8 and 30.
	MinSize float64
	MaxSize float64

	// Overlay switches node symbols from enrichment class to overlay sign.
	Overlay bool

	// Palette overrides DefaultPalette for module and taxonomy colors.
	Palette Palette
}

func (o Options) withDefaults() Options {
	if o.MinSize == 0 {
		o.MinSize = DefaultMinSize
	}
	if o.MaxSize == 0 {
		o.MaxSize = DefaultMaxSize
	}
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	return o
}

// Assemble derives the drawable scene for nodes placed at coords.
// Edges with unknown endpoints are dropped. coords must be index-aligned
// with nodes; missing positions default to the origin.
func Assemble(nodes []network.Node, edges []network.Edge, coords layout.Coordinates, opts Options) Scene {
	opts = opts.withDefaults()

	scene := Scene{
		ColorMode: opts.ColorMode,
		Highlight: opts.Highlight,
		Nodes:     make([]NodeGlyph, len(nodes)),
		Edges:     []EdgeGlyph{},
	}

	phyla := phylumRanks(nodes)
	minDeg, maxDeg := degreeRange(nodes)

	for i, n := range nodes {
		var x, y float64
		if i < coords.Len() {
			x, y = coords.At(i)
		}
		width, border := nodeBorder(n)
		scene.Nodes[i] = NodeGlyph{
			ID:          n.ID,
			Label:       nodeLabel(n),
			X:           x,
			Y:           y,
			Module:      n.Module,
			Color:       nodeColor(n, opts, phyla),
			Size:        nodeSize(n.Degree, minDeg, maxDeg, opts.MinSize, opts.MaxSize),
			BorderWidth: width,
			BorderColor: border,
			Symbol:      nodeSymbol(n, opts.Overlay),
			Opacity:     nodeOpacity(n, opts.Highlight),
		}
	}

	for _, e := range network.Resolve(nodes, edges) {
		src, dst := scene.Nodes[e.Source], scene.Nodes[e.Target]
		scene.Edges = append(scene.Edges, EdgeGlyph{
			Source:      src.ID,
			Target:      dst.ID,
			X1:          src.X,
			Y1:          src.Y,
			X2:          dst.X,
			Y2:          dst.Y,
			Correlation: e.Correlation,
			Color:       edgeColor(e.Correlation),
			Width:       EdgeWidth(e.Correlation),
			Dash:        EdgeDash(e.Correlation),
			Opacity:     edgeOpacityFor(nodes[e.Source], nodes[e.Target], opts.Highlight),
		})
	}

	scene.Legend = legend(nodes, opts, phyla)
	return scene
}

// =============================================================================
// Node Encodings
// =============================================================================

func nodeLabel(n network.Node) string {
	if n.Species != "" {
		return n.Species
	}
	return n.ID
}

func nodeColor(n network.Node, opts Options, phyla map[string]int) string {
	switch opts.ColorMode {
	case Taxonomy:
		if n.Color != "" {
			return n.Color
		}
		if rank, ok := phyla[n.Phylum]; ok {
			return opts.Palette.At(rank)
		}
		return colorUnknown
	case Module:
		return opts.Palette.At(n.Module)
	case Enrichment:
		return EnrichmentColor(n.EnrichedClass)
	default:
		return colorUnknown
	}
}

// EnrichmentColor returns the fill for an enriched class; nil means the
// feature is not enriched in either class.
func EnrichmentColor(class *int) string {
	if class == nil {
		return colorUnknown
	}
	switch *class {
	case 0:
		return colorClass0
	case 1:
		return colorClass1
	default:
		return colorUnknown
	}
}

// nodeSize maps degree linearly from [minDeg, maxDeg] onto [lo, hi]. When
// every node has the same degree the midpoint is used.
func nodeSize(degree, minDeg, maxDeg int, lo, hi float64) float64 {
	if maxDeg == minDeg {
		return (lo + hi) / 2
	}
	t := float64(degree-minDeg) / float64(maxDeg-minDeg)
	return lo + t*(hi-lo)
}

func degreeRange(nodes []network.Node) (lo, hi int) {
	for i, n := range nodes {
		if i == 0 || n.Degree < lo {
			lo = n.Degree
		}
		if i == 0 || n.Degree > hi {
			hi = n.Degree
		}
	}
	return lo, hi
}

func nodeBorder(n network.Node) (float64, string) {
	if c := n.OverlayCoefficient; c != nil && *c != 0 {
		if *c > 0 {
			return overlayBorderWidth, colorPositive
		}
		return overlayBorderWidth, colorNegative
	}
	return defaultBorderWidth, colorBorderDefault
}

func nodeSymbol(n network.Node, overlay bool) Symbol {
	if overlay {
		switch c := n.OverlayCoefficient; {
		case c != nil && *c > 0:
			return SymbolTriangleUp
		case c != nil && *c < 0:
			return SymbolTriangleDown
		default:
			return SymbolCircle
		}
	}
	if n.EnrichedClass != nil && *n.EnrichedClass == 1 {
		return SymbolDiamond
	}
	return SymbolCircle
}

func nodeOpacity(n network.Node, highlight *int) float64 {
	if highlight != nil && n.Module != *highlight {
		return nodeDimmedOpacity
	}
	return 1
}

// phylumRanks assigns each distinct non-empty phylum its rank in sorted order.
func phylumRanks(nodes []network.Node) map[string]int {
	var names []string
	seen := make(map[string]bool)
	for _, n := range nodes {
		if n.Phylum != "" && !seen[n.Phylum] {
			seen[n.Phylum] = true
			names = append(names, n.Phylum)
		}
	}
	sort.Strings(names)
	ranks := make(map[string]int, len(names))
	for i, name := range names {
		ranks[name] = i
	}
	return ranks
}

// =============================================================================
// Edge Encodings
// =============================================================================

// EdgeWidth returns the stroke width for a correlation: 0.5 + 3|c|.
func EdgeWidth(corr float64) float64 {
	return edgeBaseWidth + math.Abs(corr)*edgeWidthScale
}

// EdgeDash returns solid for non-negative and dashed for negative correlation.
func EdgeDash(corr float64) Dash {
	if corr < 0 {
		return DashDashed
	}
	return DashSolid
}

func edgeColor(corr float64) string {
	if corr < 0 {
		return colorEdgeNegative
	}
	return colorEdgePositive
}

func edgeOpacityFor(src, dst network.Node, highlight *int) float64 {
	if highlight != nil && (src.Module != *highlight || dst.Module != *highlight) {
		return edgeDimmedOpacity
	}
	return edgeOpacity
}

// =============================================================================
// Legend
// =============================================================================

func legend(nodes []network.Node, opts Options, phyla map[string]int) []LegendEntry {
	switch opts.ColorMode {
	case Taxonomy:
		names := make([]string, len(phyla))
		for name, rank := range phyla {
			names[rank] = name
		}
		custom := make(map[string]string)
		for _, n := range nodes {
			if n.Color != "" && n.Phylum != "" {
				if _, ok := custom[n.Phylum]; !ok {
					custom[n.Phylum] = n.Color
				}
			}
		}
		out := make([]LegendEntry, 0, len(names))
		for i, name := range names {
			color := opts.Palette.At(i)
			if c, ok := custom[name]; ok {
				color = c
			}
			out = append(out, LegendEntry{Label: name, Color: color})
		}
		return out
	case Module:
		mods := network.Summarize(&network.Network{Nodes: nodes}, opts.Palette)
		out := make([]LegendEntry, 0, len(mods))
		for _, m := range mods {
			label := fmt.Sprintf("Module %d (%d)", m.ID, m.Size)
			if m.DominantPhylum != "" {
				label = fmt.Sprintf("Module %d: %s (%d)", m.ID, m.DominantPhylum, m.Size)
			}
			out = append(out, LegendEntry{Label: label, Color: opts.Palette.At(m.ID)})
		}
		return out
	case Enrichment:
		zero, one := 0, 1
		return []LegendEntry{
			{Label: "Enriched in class 0", Color: EnrichmentColor(&zero)},
			{Label: "Enriched in class 1", Color: EnrichmentColor(&one)},
			{Label: "Not enriched", Color: EnrichmentColor(nil)},
		}
	default:
		return []LegendEntry{}
	}
}
