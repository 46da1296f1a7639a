// Package network defines the co-abundance network data model.
//
// A [Network] is a list of [Node] values (biological features such as
// microbial taxa) and a list of [Edge] values carrying a signed correlation
// in [-1, 1]. Node ids are unique within one network; module ids are small
// non-negative integers assigned by community detection.
//
// The package also carries the upstream steps that prepare a network for
// layout:
//
//   - [Filter] drops weak edges by absolute correlation and recomputes degrees
//   - [DetectModules] assigns module ids by label propagation
//   - [Summarize] derives the read-only [Module] summaries used in legends
//
// Edges whose endpoints are not in the node list are tolerated everywhere:
// [Network.ResolvedEdges] silently drops them. Only [Network.Validate], which
// loaders call, reports structural problems.
package network
