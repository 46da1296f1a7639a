// Package style derives visual encodings for a laid-out network.
//
// [Assemble] turns nodes, edges and layout coordinates into a [Scene]:
// positioned node glyphs with fill, size, border, symbol and opacity, and
// edge glyphs with dash, width, color and opacity. It is a pure function
// with no iteration state, so switching color modes or highlighting a
// module never requires recomputing the layout.
//
// Fill color depends on the [ColorMode]:
//
//   - Taxonomy: the node's own Color, or a palette color by phylum rank
//   - Module: palette color indexed by module id, wrapping modulo the palette
//   - Enrichment: one color per enriched class, gray when not enriched
//
// Node size scales linearly with degree into [MinSize, MaxSize]. Edges are
// solid for non-negative and dashed for negative correlation, with width
// 0.5+3|c|. When a module is highlighted, every other node and every edge
// not fully inside that module is dimmed.
package style
