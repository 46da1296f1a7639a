package layout

import (
	"math"

	"github.com/matzehuels/ecolayout/pkg/network"
)

// Circle places node i at angle 2πi/n on the unit circle. Edges are ignored.
type Circle struct{}

// Mode returns [ModeCircle].
func (Circle) Mode() Mode { return ModeCircle }

// Layout implements [Strategy].
func (Circle) Layout(nodes []network.Node, _ []network.ResolvedEdge) Coordinates {
	n := len(nodes)
	c := newCoordinates(n)
	for i := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		c.X[i] = math.Cos(angle)
		c.Y[i] = math.Sin(angle)
	}
	return c
}
