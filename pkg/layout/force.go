package layout

import (
	"math"

	"github.com/matzehuels/ecolayout/pkg/network"
)

// Force layout parameters.
const (
	forceIterations = 120
	forceRepulsion  = 400.0
	forceMinDist    = 0.3
	forceSpring     = 0.15
	forceGravity    = 0.01
	forceDamping    = 0.7
	forceDampDecay  = 0.04

	// forceNegativeScale turns a negative correlation into a mild push
	// instead of a full repulsion. Possibly an arbitrary tuning choice;
	// do not change it without confirming intent.
	forceNegativeScale = -0.3
)

// Force is a simpler force-directed model: inverse-square repulsion,
// linear springs whose sign follows the edge correlation, weak gravity and
// a damping factor that decays with the iteration count. There is no
// temperature cap, so clusters come out tighter and less evenly spaced
// than with [Organic].
type Force struct{}

// Mode returns [ModeForce].
func (Force) Mode() Mode { return ModeForce }

// Layout implements [Strategy].
func (Force) Layout(nodes []network.Node, edges []network.ResolvedEdge) Coordinates {
	n := len(nodes)
	if n == 0 {
		return newCoordinates(0)
	}

	c := scatter(NewRNG(ForceSeed), n, initialSpread(n))

	acc := make([]force, n)
	for iter := 0; iter < forceIterations; iter++ {
		clear(acc)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := c.X[i] - c.X[j]
				dy := c.Y[i] - c.Y[j]
				dist := math.Max(math.Hypot(dx, dy), forceMinDist)
				f := forceRepulsion / (dist * dist)
				fx, fy := dx/dist*f, dy/dist*f
				acc[i].fx += fx
				acc[i].fy += fy
				acc[j].fx -= fx
				acc[j].fy -= fy
			}
		}

		for _, e := range edges {
			strength := springStrength(e.Correlation)
			dx := c.X[e.Target] - c.X[e.Source]
			dy := c.Y[e.Target] - c.Y[e.Source]
			acc[e.Source].fx += dx * strength
			acc[e.Source].fy += dy * strength
			acc[e.Target].fx -= dx * strength
			acc[e.Target].fy -= dy * strength
		}

		damping := forceDamping / (1 + float64(iter)*forceDampDecay)
		for i := 0; i < n; i++ {
			acc[i].fx -= c.X[i] * forceGravity
			acc[i].fy -= c.Y[i] * forceGravity
			c.X[i] += acc[i].fx * damping
			c.Y[i] += acc[i].fy * damping
		}
	}
	return c
}

// springStrength maps a correlation to a spring constant: positive
// correlations attract with 0.15|c|, negative ones push apart slightly.
func springStrength(corr float64) float64 {
	mag := math.Abs(corr)
	if corr < 0 {
		return forceNegativeScale * mag * forceSpring
	}
	return forceSpring * mag
}
