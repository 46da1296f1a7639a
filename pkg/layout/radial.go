package layout

import (
	"math"
	"sort"

	"github.com/matzehuels/ecolayout/pkg/network"
)

// Radial ring geometry.
const (
	ringSpacing     = 1.5
	ringNodeSpacing = 0.8
	ringMinCapacity = 6
)

// Radial places the highest-degree node at the origin and fills rings of
// radius 1.5r outward in descending degree order. Ties keep input order.
type Radial struct{}

// Mode returns [ModeRadial].
func (Radial) Mode() Mode { return ModeRadial }

type point struct{ x, y float64 }

// Layout implements [Strategy].
func (Radial) Layout(nodes []network.Node, _ []network.ResolvedEdge) Coordinates {
	n := len(nodes)
	c := newCoordinates(n)
	if n == 0 {
		return c
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return nodes[order[a]].Degree > nodes[order[b]].Degree
	})

	pos := make(map[string]point, n)
	pos[nodes[order[0]].ID] = point{}

	placed := 1
	for ring := 1; placed < n; ring++ {
		radius := ringSpacing * float64(ring)
		count := min(ringCapacity(radius), n-placed)
		for j := 0; j < count; j++ {
			angle := 2 * math.Pi * float64(j) / float64(count)
			pos[nodes[order[placed+j]].ID] = point{radius * math.Cos(angle), radius * math.Sin(angle)}
		}
		placed += count
	}

	for i, node := range nodes {
		p := pos[node.ID] // missing ids stay at the origin
		c.X[i], c.Y[i] = p.x, p.y
	}
	return c
}

func ringCapacity(radius float64) int {
	return max(ringMinCapacity, int(math.Floor(2*math.Pi*radius/ringNodeSpacing)))
}
