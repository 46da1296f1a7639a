package network

import (
	"github.com/matzehuels/ecolayout/pkg/errors"
)

// Node is one biological feature in a co-abundance network.
type Node struct {
	ID      string `json:"id" yaml:"id"`
	Degree  int    `json:"degree" yaml:"degree"`
	Module  int    `json:"module" yaml:"module"`
	Phylum  string `json:"phylum,omitempty" yaml:"phylum,omitempty"`
	Family  string `json:"family,omitempty" yaml:"family,omitempty"`
	Species string `json:"species,omitempty" yaml:"species,omitempty"`

	// Color is an optional taxonomy color assigned upstream.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`

	// EnrichedClass is the sample class the feature is enriched in (0 or 1),
	// or nil when the feature is not significantly enriched.
	EnrichedClass *int `json:"enriched_class,omitempty" yaml:"enriched_class,omitempty"`

	// OverlayCoefficient is the feature's signed coefficient in an overlaid
	// reference model, or nil when no overlay is loaded.
	OverlayCoefficient *float64 `json:"overlay_coefficient,omitempty" yaml:"overlay_coefficient,omitempty"`
}

// Edge is a co-abundance relationship between two nodes.
type Edge struct {
	Source      string  `json:"source" yaml:"source"`
	Target      string  `json:"target" yaml:"target"`
	Correlation float64 `json:"correlation" yaml:"correlation"`
}

// Network is a node list with its edges.
type Network struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// ResolvedEdge is an edge whose endpoints have been mapped to node indices.
type ResolvedEdge struct {
	Source, Target int
	Correlation    float64
}

// Index maps node ids to their position in nodes. For duplicate ids the
// first occurrence wins.
func Index(nodes []Node) map[string]int {
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := idx[n.ID]; !dup {
			idx[n.ID] = i
		}
	}
	return idx
}

// Resolve maps edges onto node indices, dropping edges that reference
// unknown ids. Input order is preserved.
func Resolve(nodes []Node, edges []Edge) []ResolvedEdge {
	idx := Index(nodes)
	out := make([]ResolvedEdge, 0, len(edges))
	for _, e := range edges {
		s, ok := idx[e.Source]
		if !ok {
			continue
		}
		t, ok := idx[e.Target]
		if !ok {
			continue
		}
		out = append(out, ResolvedEdge{Source: s, Target: t, Correlation: e.Correlation})
	}
	return out
}

// Index maps node ids to their position in n.Nodes.
func (n *Network) Index() map[string]int { return Index(n.Nodes) }

// ResolvedEdges returns the edges of n whose endpoints both exist.
func (n *Network) ResolvedEdges() []ResolvedEdge { return Resolve(n.Nodes, n.Edges) }

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.Nodes) }

// EdgeCount returns the number of edges, including dangling ones.
func (n *Network) EdgeCount() int { return len(n.Edges) }

// Validate checks node ids, module ids, colors and correlation ranges.
// Dangling edges are not an error.
func (n *Network) Validate() error {
	seen := make(map[string]struct{}, len(n.Nodes))
	for _, node := range n.Nodes {
		if err := errors.ValidateNodeID(node.ID); err != nil {
			return err
		}
		if _, dup := seen[node.ID]; dup {
			return errors.New(errors.ErrCodeInvalidNetwork, "duplicate node id %q", node.ID)
		}
		seen[node.ID] = struct{}{}
		if node.Module < 0 {
			return errors.New(errors.ErrCodeInvalidNetwork, "node %q has negative module %d", node.ID, node.Module)
		}
		if node.Degree < 0 {
			return errors.New(errors.ErrCodeInvalidNetwork, "node %q has negative degree %d", node.ID, node.Degree)
		}
		if node.Color != "" {
			if err := errors.ValidateColor(node.Color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidNetwork, err, "node %q", node.ID)
			}
		}
	}
	for _, e := range n.Edges {
		if err := errors.ValidateCorrelation(e.Correlation); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidNetwork, err, "edge %s-%s", e.Source, e.Target)
		}
	}
	return nil
}

// Clone returns a deep copy of n.
func (n *Network) Clone() *Network {
	out := &Network{
		Nodes: make([]Node, len(n.Nodes)),
		Edges: make([]Edge, len(n.Edges)),
	}
	copy(out.Edges, n.Edges)
	for i, node := range n.Nodes {
		if node.EnrichedClass != nil {
			c := *node.EnrichedClass
			node.EnrichedClass = &c
		}
		if node.OverlayCoefficient != nil {
			c := *node.OverlayCoefficient
			node.OverlayCoefficient = &c
		}
		out.Nodes[i] = node
	}
	return out
}
