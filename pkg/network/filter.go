package network

import "math"

// FilterOptions controls which edges and nodes survive [Filter].
type FilterOptions struct {
	// MinAbsCorrelation drops edges with |correlation| below the threshold.
	MinAbsCorrelation float64

	// DropIsolated removes nodes left without any edge.
	DropIsolated bool
}

// Filter returns a new network keeping edges with |correlation| at or above
// the threshold. Dangling edges are always removed and node degrees are
// recomputed from the surviving edges. The input is not modified.
func Filter(n *Network, opts FilterOptions) *Network {
	out := n.Clone()
	idx := out.Index()
	degree := make([]int, len(out.Nodes))

	kept := out.Edges[:0]
	for _, e := range out.Edges {
		s, okS := idx[e.Source]
		t, okT := idx[e.Target]
		if !okS || !okT {
			continue
		}
		if math.Abs(e.Correlation) < opts.MinAbsCorrelation {
			continue
		}
		kept = append(kept, e)
		degree[s]++
		if t != s {
			degree[t]++
		}
	}
	out.Edges = kept

	for i := range out.Nodes {
		out.Nodes[i].Degree = degree[i]
	}

	if opts.DropIsolated {
		nodes := out.Nodes[:0]
		for _, node := range out.Nodes {
			if node.Degree > 0 {
				nodes = append(nodes, node)
			}
		}
		out.Nodes = nodes
	}
	return out
}
