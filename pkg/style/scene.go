package style

// Symbol is a node marker shape.
type Symbol string

// Node symbols.
const (
	SymbolCircle       Symbol = "circle"
	SymbolDiamond      Symbol = "diamond"
	SymbolTriangleUp   Symbol = "triangle-up"
	SymbolTriangleDown Symbol = "triangle-down"
)

// Dash is an edge line style.
type Dash string

// Edge dash styles.
const (
	DashSolid  Dash = "solid"
	DashDashed Dash = "dashed"
)

// NodeGlyph is a positioned, styled node.
type NodeGlyph struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Module      int     `json:"module"`
	Color       string  `json:"color"`
	Size        float64 `json:"size"`
	BorderWidth float64 `json:"border_width"`
	BorderColor string  `json:"border_color"`
	Symbol      Symbol  `json:"symbol"`
	Opacity     float64 `json:"opacity"`
}

// EdgeGlyph is a positioned, styled edge between two node glyphs.
type EdgeGlyph struct {
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	Correlation float64 `json:"correlation"`
	Color       string  `json:"color"`
	Width       float64 `json:"width"`
	Dash        Dash    `json:"dash"`
	Opacity     float64 `json:"opacity"`
}

// LegendEntry maps a label to the color it is drawn with.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Scene is everything a drawing backend needs to render a network.
type Scene struct {
	ColorMode ColorMode     `json:"color_mode"`
	Highlight *int          `json:"highlight,omitempty"`
	Nodes     []NodeGlyph   `json:"nodes"`
	Edges     []EdgeGlyph   `json:"edges"`
	Legend    []LegendEntry `json:"legend"`
}

// Bounds returns the bounding box of node positions. An empty scene
// reports a zero box.
func (s *Scene) Bounds() (minX, minY, maxX, maxY float64) {
	for i, n := range s.Nodes {
		if i == 0 {
			minX, maxX, minY, maxY = n.X, n.X, n.Y, n.Y
			continue
		}
		minX = min(minX, n.X)
		maxX = max(maxX, n.X)
		minY = min(minY, n.Y)
		maxY = max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}
