package network

import (
	"testing"

	"github.com/matzehuels/ecolayout/pkg/errors"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleNetwork() *Network {
	return &Network{
		Nodes: []Node{
			{ID: "A", Degree: 3, Module: 0, Phylum: "Firmicutes"},
			{ID: "B", Degree: 1, Module: 0, Phylum: "Firmicutes"},
			{ID: "C", Degree: 1, Module: 1, Phylum: "Bacteroidetes"},
			{ID: "D", Degree: 1, Module: 1, Phylum: "Proteobacteria"},
		},
		Edges: []Edge{
			{Source: "A", Target: "B", Correlation: 0.5},
			{Source: "A", Target: "C", Correlation: -0.3},
			{Source: "A", Target: "D", Correlation: 0.2},
		},
	}
}

func TestResolveDropsDanglingEdges(t *testing.T) {
	n := sampleNetwork()
	n.Edges = append(n.Edges,
		Edge{Source: "A", Target: "ghost", Correlation: 0.9},
		Edge{Source: "ghost", Target: "B", Correlation: 0.9},
	)

	got := n.ResolvedEdges()
	if len(got) != 3 {
		t.Fatalf("ResolvedEdges() len = %d, want 3", len(got))
	}
	want := []ResolvedEdge{{0, 1, 0.5}, {0, 2, -0.3}, {0, 3, 0.2}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ResolvedEdges()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIndexFirstOccurrenceWins(t *testing.T) {
	idx := Index([]Node{{ID: "x"}, {ID: "y"}, {ID: "x"}})
	if idx["x"] != 0 {
		t.Errorf("Index()[x] = %d, want 0", idx["x"])
	}
	if idx["y"] != 1 {
		t.Errorf("Index()[y] = %d, want 1", idx["y"])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Network)
		wantErr bool
	}{
		{"valid", func(*Network) {}, false},
		{"dangling edge is fine", func(n *Network) {
			n.Edges = append(n.Edges, Edge{Source: "A", Target: "zzz", Correlation: 0.1})
		}, false},
		{"duplicate id", func(n *Network) { n.Nodes[1].ID = "A" }, true},
		{"empty id", func(n *Network) { n.Nodes[0].ID = "" }, true},
		{"negative module", func(n *Network) { n.Nodes[0].Module = -1 }, true},
		{"negative degree", func(n *Network) { n.Nodes[0].Degree = -2 }, true},
		{"bad color", func(n *Network) { n.Nodes[0].Color = "teal" }, true},
		{"good color", func(n *Network) { n.Nodes[0].Color = "#008080" }, false},
		{"correlation out of range", func(n *Network) { n.Edges[0].Correlation = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := sampleNetwork()
			tt.mutate(n)
			err := n.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidNetwork) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidNetwork)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	n := sampleNetwork()
	n.Nodes[0].EnrichedClass = intPtr(1)
	n.Nodes[0].OverlayCoefficient = floatPtr(0.4)

	c := n.Clone()
	*c.Nodes[0].EnrichedClass = 0
	*c.Nodes[0].OverlayCoefficient = -1
	c.Nodes[1].ID = "changed"
	c.Edges[0].Correlation = 0

	if *n.Nodes[0].EnrichedClass != 1 {
		t.Error("Clone() shares EnrichedClass pointer")
	}
	if *n.Nodes[0].OverlayCoefficient != 0.4 {
		t.Error("Clone() shares OverlayCoefficient pointer")
	}
	if n.Nodes[1].ID != "B" {
		t.Error("Clone() shares node slice")
	}
	if n.Edges[0].Correlation != 0.5 {
		t.Error("Clone() shares edge slice")
	}
}
