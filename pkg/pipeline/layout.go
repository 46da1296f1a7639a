package pipeline

import (
	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/layout"
	"github.com/matzehuels/ecolayout/pkg/network"
)

// =============================================================================
// Preparation
// =============================================================================

// Prepare applies edge filtering and module detection to a copy of n.
// The input network is never modified.
func Prepare(n *network.Network, opts Options) *network.Network {
	work := n
	if opts.needsFilter() {
		work = network.Filter(n, opts.FilterOptions())
	}
	if opts.DetectModules {
		work = network.DetectModules(work, network.DefaultDetectIterations)
	}
	if work == n {
		work = n.Clone()
	}
	return work
}

// =============================================================================
// Layout
// =============================================================================

// ComputeLayout places every node of n using the options' layout mode and
// returns the serializable result. The network hash is left empty; the
// runner fills it in.
func ComputeLayout(n *network.Network, opts Options) graph.Layout {
	mode := opts.LayoutMode()
	coords := layout.ComputeNetwork(mode, n)
	return graph.FromCoordinates(mode, n, coords)
}
