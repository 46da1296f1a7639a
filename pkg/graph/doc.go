// Package graph provides the file and wire formats for networks and layouts.
//
// This package sits at the serialization boundary between the in-memory
// types of pkg/network and pkg/layout and everything outside the process:
// files on disk, API request bodies, and cache entries.
//
// # Network Files
//
// Networks are read from JSON or YAML; the format is picked from the file
// extension. Both encodings share the same field names:
//
//	{
//	  "nodes": [
//	    {"id": "Bacteroides", "degree": 2, "module": 0, "phylum": "Bacteroidetes"},
//	    {"id": "Roseburia", "degree": 1, "module": 1, "enriched_class": 1}
//	  ],
//	  "edges": [
//	    {"source": "Bacteroides", "target": "Roseburia", "correlation": -0.42}
//	  ]
//	}
//
// Every loaded network is validated. Edges referring to unknown node ids are
// kept; layout and styling drop them.
//
//	net, _ := graph.ReadNetworkFile("network.yaml")
//	graph.WriteNetworkFile(net, "network.json")
//
// # Layout Files
//
// A [Layout] stores computed positions keyed by node id together with the
// mode that produced them and the content hash of the source network:
//
//	coords := layout.ComputeNetwork(layout.ModeOrganic, net)
//	l := graph.FromCoordinates(layout.ModeOrganic, net, coords)
//	graph.WriteLayoutFile(l, "network.layout.json")
//
// [ToCoordinates] realigns a stored layout to a network's node order, so a
// layout can be reused after nodes were reordered.
package graph
