package layout

import (
	"github.com/matzehuels/ecolayout/pkg/network"
)

// Coordinates holds per-node positions index-aligned with the input nodes.
type Coordinates struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of positioned nodes.
func (c Coordinates) Len() int { return len(c.X) }

// At returns the position of node i.
func (c Coordinates) At(i int) (float64, float64) { return c.X[i], c.Y[i] }

func newCoordinates(n int) Coordinates {
	return Coordinates{X: make([]float64, n), Y: make([]float64, n)}
}

// Strategy computes a layout for nodes connected by resolved edges.
// Implementations must return slices of length len(nodes).
type Strategy interface {
	Mode() Mode
	Layout(nodes []network.Node, edges []network.ResolvedEdge) Coordinates
}

// StrategyFor returns the strategy for mode, falling back to force for
// unknown modes.
func StrategyFor(mode Mode) Strategy {
	switch mode {
	case ModeCircle:
		return Circle{}
	case ModeRadial:
		return Radial{}
	case ModeOrganic:
		return Organic{}
	default:
		return Force{}
	}
}

// Compute lays out nodes with the strategy named by mode. Edges whose
// endpoints are missing from nodes are ignored. An unknown mode is treated
// as [ModeForce]; an empty node list yields empty, non-nil slices.
func Compute(mode Mode, nodes []network.Node, edges []network.Edge) Coordinates {
	if len(nodes) == 0 {
		return newCoordinates(0)
	}
	return StrategyFor(mode).Layout(nodes, network.Resolve(nodes, edges))
}

// ComputeNetwork is Compute over a [network.Network].
func ComputeNetwork(mode Mode, n *network.Network) Coordinates {
	return Compute(mode, n.Nodes, n.Edges)
}
