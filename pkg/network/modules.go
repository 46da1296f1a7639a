package network

import (
	"slices"
	"sort"
)

// Module is a read-only summary of one community in a network.
type Module struct {
	ID             int    `json:"id"`
	Size           int    `json:"size"`
	DominantPhylum string `json:"dominant_phylum,omitempty"`
	Color          string `json:"color"`
}

// Summarize groups nodes by module id and returns one summary per module in
// ascending id order. The dominant phylum is the most frequent non-empty
// phylum, ties broken lexicographically. Colors come from palette indexed
// modulo its length; an empty palette leaves Color unset.
func Summarize(n *Network, palette []string) []Module {
	type acc struct {
		size   int
		phylum map[string]int
	}
	byID := make(map[int]*acc)
	for _, node := range n.Nodes {
		a, ok := byID[node.Module]
		if !ok {
			a = &acc{phylum: make(map[string]int)}
			byID[node.Module] = a
		}
		a.size++
		if node.Phylum != "" {
			a.phylum[node.Phylum]++
		}
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Module, 0, len(ids))
	for _, id := range ids {
		a := byID[id]
		m := Module{ID: id, Size: a.size, DominantPhylum: dominant(a.phylum)}
		if len(palette) > 0 {
			m.Color = palette[((id%len(palette))+len(palette))%len(palette)]
		}
		out = append(out, m)
	}
	return out
}

func dominant(counts map[string]int) string {
	best, bestCount := "", 0
	for name, c := range counts {
		if c > bestCount || (c == bestCount && name < best) {
			best, bestCount = name, c
		}
	}
	return best
}

// DefaultDetectIterations bounds label propagation rounds.
const DefaultDetectIterations = 50

// DetectModules assigns module ids with label propagation over positively
// correlated edges and returns a copy of n with Module rewritten.
//
// Each node starts with its own label. On every round nodes are visited in
// input order and adopt the most frequent label among their neighbors; ties
// go to the smallest label. Iteration stops on convergence or after maxIter
// rounds. Labels are then renumbered densely from 0 in order of first
// appearance, so the result is deterministic for a given input order.
func DetectModules(n *Network, maxIter int) *Network {
	if maxIter <= 0 {
		maxIter = DefaultDetectIterations
	}
	out := n.Clone()
	size := len(out.Nodes)

	adj := make([][]int, size)
	for _, e := range Resolve(out.Nodes, out.Edges) {
		if e.Correlation <= 0 || e.Source == e.Target {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	labels := make([]int, size)
	for i := range labels {
		labels[i] = i
	}

	counts := make(map[int]int)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i := range out.Nodes {
			if len(adj[i]) == 0 {
				continue
			}
			clear(counts)
			for _, j := range adj[i] {
				counts[labels[j]]++
			}
			best, bestCount := labels[i], 0
			for label, c := range counts {
				if c > bestCount || (c == bestCount && label < best) {
					best, bestCount = label, c
				}
			}
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	dense := make(map[int]int)
	for i, label := range labels {
		id, ok := dense[label]
		if !ok {
			id = len(dense)
			dense[label] = id
		}
		out.Nodes[i].Module = id
	}
	return out
}

// ModuleIDs returns the distinct module ids of n in ascending order.
func ModuleIDs(n *Network) []int {
	var ids []int
	for _, node := range n.Nodes {
		if !slices.Contains(ids, node.Module) {
			ids = append(ids, node.Module)
		}
	}
	slices.Sort(ids)
	return ids
}
