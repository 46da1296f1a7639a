package style

import (
	"math"
	"testing"

	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/network"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleNodes() []network.Node {
	return []network.Node{
		{ID: "A", Degree: 3, Module: 0, Phylum: "Firmicutes", EnrichedClass: intPtr(1), OverlayCoefficient: floatPtr(0.8)},
		{ID: "B", Degree: 1, Module: 0, Phylum: "Bacteroidetes", EnrichedClass: intPtr(0), OverlayCoefficient: floatPtr(-0.2)},
		{ID: "C", Degree: 1, Module: 1, Phylum: "Firmicutes", Color: "#123456", OverlayCoefficient: floatPtr(0)},
		{ID: "D", Degree: 2, Module: 12, Species: "E. coli"},
	}
}

func sampleEdges() []network.Edge {
	return []network.Edge{
		{Source: "A", Target: "B", Correlation: 0.5},
		{Source: "A", Target: "C", Correlation: -0.3},
		{Source: "A", Target: "D", Correlation: 0},
		{Source: "A", Target: "ghost", Correlation: 0.9},
	}
}

func assembleSample(opts Options) Scene {
	nodes := sampleNodes()
	coords := layout.Compute(layout.ModeCircle, nodes, nil)
	return Assemble(nodes, sampleEdges(), coords, opts)
}

func TestAssembleModuleColors(t *testing.T) {
	s := assembleSample(Options{ColorMode: Module})

	want := []string{DefaultPalette[0], DefaultPalette[0], DefaultPalette[1], DefaultPalette[2]}
	for i, w := range want {
		if s.Nodes[i].Color != w {
			t.Errorf("node %s color = %s, want %s", s.Nodes[i].ID, s.Nodes[i].Color, w)
		}
	}
}

func TestAssembleTaxonomyColors(t *testing.T) {
	s := assembleSample(Options{ColorMode: Taxonomy})

	// Sorted phyla: Bacteroidetes=0, Firmicutes=1.
	want := map[string]string{
		"A": DefaultPalette[1],
		"B": DefaultPalette[0],
		"C": "#123456",
		"D": colorUnknown,
	}
	for _, n := range s.Nodes {
		if n.Color != want[n.ID] {
			t.Errorf("node %s color = %s, want %s", n.ID, n.Color, want[n.ID])
		}
	}
	if len(s.Legend) != 2 || s.Legend[0].Label != "Bacteroidetes" || s.Legend[1].Label != "Firmicutes" {
		t.Errorf("legend = %+v", s.Legend)
	}
	if s.Legend[1].Color != "#123456" {
		t.Errorf("legend Firmicutes color = %s, want node-provided #123456", s.Legend[1].Color)
	}
}

func TestAssembleEnrichmentColors(t *testing.T) {
	s := assembleSample(Options{ColorMode: Enrichment})

	want := []string{colorClass1, colorClass0, colorUnknown, colorUnknown}
	for i, w := range want {
		if s.Nodes[i].Color != w {
			t.Errorf("node %s color = %s, want %s", s.Nodes[i].ID, s.Nodes[i].Color, w)
		}
	}
	if len(s.Legend) != 3 {
		t.Errorf("legend len = %d, want 3", len(s.Legend))
	}
}

func TestAssembleSizes(t *testing.T) {
	s := assembleSample(Options{})

	want := []float64{30, 8, 8, 19}
	for i, w := range want {
		if math.Abs(s.Nodes[i].Size-w) > 1e-9 {
			t.Errorf("node %s size = %v, want %v", s.Nodes[i].ID, s.Nodes[i].Size, w)
		}
	}
}

func TestAssembleUniformDegreeUsesMidpoint(t *testing.T) {
	nodes := []network.Node{{ID: "a", Degree: 4}, {ID: "b", Degree: 4}}
	s := Assemble(nodes, nil, layout.Compute(layout.ModeCircle, nodes, nil), Options{MinSize: 10, MaxSize: 20})
	for _, n := range s.Nodes {
		if n.Size != 15 {
			t.Errorf("node %s size = %v, want 15", n.ID, n.Size)
		}
	}
}

func TestAssembleBorders(t *testing.T) {
	s := assembleSample(Options{})

	tests := []struct {
		id    string
		width float64
		color string
	}{
		{"A", overlayBorderWidth, colorPositive},
		{"B", overlayBorderWidth, colorNegative},
		{"C", defaultBorderWidth, colorBorderDefault}, // zero coefficient
		{"D", defaultBorderWidth, colorBorderDefault}, // no coefficient
	}
	for i, tt := range tests {
		n := s.Nodes[i]
		if n.BorderWidth != tt.width || n.BorderColor != tt.color {
			t.Errorf("node %s border = %v %s, want %v %s", tt.id, n.BorderWidth, n.BorderColor, tt.width, tt.color)
		}
	}
}

func TestAssembleSymbols(t *testing.T) {
	tests := []struct {
		name    string
		overlay bool
		want    []Symbol
	}{
		{"enrichment", false, []Symbol{SymbolDiamond, SymbolCircle, SymbolCircle, SymbolCircle}},
		{"overlay", true, []Symbol{SymbolTriangleUp, SymbolTriangleDown, SymbolCircle, SymbolCircle}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := assembleSample(Options{Overlay: tt.overlay})
			for i, w := range tt.want {
				if s.Nodes[i].Symbol != w {
					t.Errorf("node %s symbol = %s, want %s", s.Nodes[i].ID, s.Nodes[i].Symbol, w)
				}
			}
		})
	}
}

func TestAssembleEdges(t *testing.T) {
	s := assembleSample(Options{})

	if len(s.Edges) != 3 {
		t.Fatalf("edges = %d, want 3 (dangling dropped)", len(s.Edges))
	}

	tests := []struct {
		dash  Dash
		width float64
		color string
	}{
		{DashSolid, 2.0, colorEdgePositive},
		{DashDashed, 1.4, colorEdgeNegative},
		{DashSolid, 0.5, colorEdgePositive},
	}
	for i, tt := range tests {
		e := s.Edges[i]
		if e.Dash != tt.dash {
			t.Errorf("edge %d dash = %s, want %s", i, e.Dash, tt.dash)
		}
		if math.Abs(e.Width-tt.width) > 1e-9 {
			t.Errorf("edge %d width = %v, want %v", i, e.Width, tt.width)
		}
		if e.Color != tt.color {
			t.Errorf("edge %d color = %s, want %s", i, e.Color, tt.color)
		}
		if e.Opacity != edgeOpacity {
			t.Errorf("edge %d opacity = %v, want %v", i, e.Opacity, edgeOpacity)
		}
	}

	a, b := s.Nodes[0], s.Nodes[1]
	if e := s.Edges[0]; e.X1 != a.X || e.Y1 != a.Y || e.X2 != b.X || e.Y2 != b.Y {
		t.Errorf("edge 0 endpoints = (%v,%v)-(%v,%v), want node positions", e.X1, e.Y1, e.X2, e.Y2)
	}
}

func TestAssembleHighlight(t *testing.T) {
	s := assembleSample(Options{Highlight: intPtr(0)})

	wantNode := []float64{1, 1, nodeDimmedOpacity, nodeDimmedOpacity}
	for i, w := range wantNode {
		if s.Nodes[i].Opacity != w {
			t.Errorf("node %s opacity = %v, want %v", s.Nodes[i].ID, s.Nodes[i].Opacity, w)
		}
	}

	// A-B is inside module 0; A-C and A-D leave it.
	wantEdge := []float64{edgeOpacity, edgeDimmedOpacity, edgeDimmedOpacity}
	for i, w := range wantEdge {
		if s.Edges[i].Opacity != w {
			t.Errorf("edge %d opacity = %v, want %v", i, s.Edges[i].Opacity, w)
		}
	}
}

func TestAssembleHighlightDoesNotMoveNodes(t *testing.T) {
	plain := assembleSample(Options{})
	lit := assembleSample(Options{Highlight: intPtr(1)})
	for i := range plain.Nodes {
		if plain.Nodes[i].X != lit.Nodes[i].X || plain.Nodes[i].Y != lit.Nodes[i].Y {
			t.Errorf("highlight moved node %s", plain.Nodes[i].ID)
		}
	}
}

func TestAssembleEmpty(t *testing.T) {
	s := Assemble(nil, nil, layout.Compute(layout.ModeForce, nil, nil), Options{})
	if s.Nodes == nil || s.Edges == nil || s.Legend == nil {
		t.Error("empty scene should have non-nil slices")
	}
	if len(s.Nodes) != 0 || len(s.Edges) != 0 {
		t.Errorf("empty scene = %d nodes, %d edges", len(s.Nodes), len(s.Edges))
	}
}

func TestAssembleLabels(t *testing.T) {
	s := assembleSample(Options{})
	if s.Nodes[0].Label != "A" {
		t.Errorf("label = %q, want id fallback", s.Nodes[0].Label)
	}
	if s.Nodes[3].Label != "E. coli" {
		t.Errorf("label = %q, want species", s.Nodes[3].Label)
	}
}

func TestSceneBounds(t *testing.T) {
	s := Scene{Nodes: []NodeGlyph{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 0}}}
	minX, minY, maxX, maxY := s.Bounds()
	if minX != -1 || minY != -4 || maxX != 3 || maxY != 2 {
		t.Errorf("Bounds() = %v %v %v %v", minX, minY, maxX, maxY)
	}

	empty := Scene{}
	if a, b, c, d := empty.Bounds(); a != 0 || b != 0 || c != 0 || d != 0 {
		t.Error("empty Bounds() should be zero")
	}
}
