// Package pipeline runs a co-abundance network through four stages and is
// shared by the CLI and the HTTP server:
//
//  1. Prepare: filter weak edges, drop isolated nodes, detect modules
//  2. Layout: compute node positions for the selected mode
//  3. Style: derive colors, sizes, symbols and opacity into a scene
//  4. Render: draw the scene as SVG, DOT, PNG or JSON
//
// A [Runner] caches layouts and rendered artifacts by content hash, so a
// repeated request for the same network and options does no work:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, net, pipeline.Options{
//	    Mode:      "organic",
//	    ColorMode: "module",
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Highlighting a module is a render option only: it changes opacities in the
// scene and never invalidates a cached layout.
package pipeline

import (
	"time"

	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/network"
)

// Result is everything one [Runner.Execute] call produced.
type Result struct {
	// Network is the prepared network the layout was computed for.
	Network     *network.Network
	NetworkHash string
	Layout      graph.Layout
	Modules     []network.Module

	// Artifacts maps each requested format to its rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds sizes and per-stage timings.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	ModuleCount int
	PrepareTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo records which stages were served from the cache. RenderHit is
// set only when every requested format was cached.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}
