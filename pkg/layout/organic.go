package layout

import (
	"math"

	"github.com/matzehuels/ecolayout/pkg/network"
)

// Organic layout parameters.
const (
	organicRounds      = 200
	organicAreaPerNode = 8.0
	organicMinDist     = 0.01
	organicGravity     = 0.02
	organicStartTemp   = 0.2 // fraction of spread
	organicCooling     = 0.95
)

// Organic is Fruchterman-Reingold with simulated annealing. Every round
// applies pairwise repulsion k²/d, edge attraction (d²/k)·(0.5+0.5|c|) and
// a weak pull toward the origin; the net displacement of each node is
// capped by a temperature that decays geometrically.
type Organic struct{}

// Mode returns [ModeOrganic].
func (Organic) Mode() Mode { return ModeOrganic }

// Layout implements [Strategy].
func (Organic) Layout(nodes []network.Node, edges []network.ResolvedEdge) Coordinates {
	n := len(nodes)
	if n == 0 {
		return newCoordinates(0)
	}

	spread := initialSpread(n)
	c := scatter(NewRNG(OrganicSeed), n, spread)

	k := math.Sqrt(float64(n) * organicAreaPerNode / float64(n))
	k2 := k * k
	temperature := spread * organicStartTemp

	disp := make([]force, n)
	for round := 0; round < organicRounds; round++ {
		clear(disp)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := c.X[i] - c.X[j]
				dy := c.Y[i] - c.Y[j]
				dist := math.Max(math.Hypot(dx, dy), organicMinDist)
				f := k2 / dist
				fx, fy := dx/dist*f, dy/dist*f
				disp[i].fx += fx
				disp[i].fy += fy
				disp[j].fx -= fx
				disp[j].fy -= fy
			}
		}

		for _, e := range edges {
			dx := c.X[e.Source] - c.X[e.Target]
			dy := c.Y[e.Source] - c.Y[e.Target]
			dist := math.Max(math.Hypot(dx, dy), organicMinDist)
			f := dist * dist / k * (0.5 + 0.5*math.Abs(e.Correlation))
			fx, fy := dx/dist*f, dy/dist*f
			disp[e.Source].fx -= fx
			disp[e.Source].fy -= fy
			disp[e.Target].fx += fx
			disp[e.Target].fy += fy
		}

		for i := 0; i < n; i++ {
			disp[i].fx -= c.X[i] * organicGravity
			disp[i].fy -= c.Y[i] * organicGravity

			mag := math.Hypot(disp[i].fx, disp[i].fy)
			if mag == 0 {
				continue
			}
			step := math.Min(mag, temperature) / mag
			c.X[i] += disp[i].fx * step
			c.Y[i] += disp[i].fy * step
		}

		temperature *= organicCooling
	}
	return c
}

// force is an accumulated 2D force or displacement.
type force struct {
	fx, fy float64
}

// initialSpread is the side of the square the initial scatter is drawn from.
func initialSpread(n int) float64 {
	return math.Sqrt(float64(n)) * 2
}

// scatter draws x then y for each node, uniformly in [-spread/2, spread/2).
func scatter(rng *RNG, n int, spread float64) Coordinates {
	c := newCoordinates(n)
	for i := 0; i < n; i++ {
		c.X[i] = (rng.Next() - 0.5) * spread
		c.Y[i] = (rng.Next() - 0.5) * spread
	}
	return c
}
