// Package layout computes 2D coordinates for co-abundance networks.
//
// Four strategies are available, selected by [Mode]:
//
//   - [ModeCircle]: nodes evenly spaced on the unit circle in input order
//   - [ModeRadial]: highest-degree node at the origin, the rest on
//     concentric rings in descending degree order
//   - [ModeOrganic]: Fruchterman-Reingold with simulated annealing
//   - [ModeForce]: inverse-square repulsion with correlation-signed springs
//
// [Compute] is the entry point. It is a pure function of (mode, nodes,
// edges): the result holds X and Y slices index-aligned with nodes, and
// repeated calls with the same input are bit-identical because each
// force-directed strategy reseeds its own [RNG] with a fixed constant.
//
// Nothing in this package returns an error. An empty node list yields
// empty slices, edges that reference unknown ids are dropped before any
// force is computed, and an unknown mode falls back to [ModeForce].
// Callers that want to reject unknown modes should use [ParseMode].
//
// # Cost
//
// Both force-directed strategies compute all-pairs repulsion, so a call
// costs O(rounds·n²): 200 rounds for organic, 120 for force. This is
// fine for networks of a few hundred nodes. No spatial partitioning is
// done, so very large networks will be slow.
//
// # Concurrency
//
// Strategies hold no state between calls. Independent calls may run in
// parallel; a single call is sequential round to round.
package layout
