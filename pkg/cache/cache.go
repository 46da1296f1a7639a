// Package cache provides content-addressed caching for layouts and rendered
// artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys come from a [Keyer]. Every key embeds the sha256 of the content it
// was derived from, so a cached layout is only ever served for the
// byte-identical network and options.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with TTLs.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes. Layouts are pure functions of their inputs, so
// they only expire to bound disk and memory use.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// =============================================================================
// Keyer - Cache Key Generation
// =============================================================================

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies computed positions for a network.
	LayoutKey(networkHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes computed positions.
type LayoutKeyOpts struct {
	Mode           string  `json:"mode"`
	MinCorrelation float64 `json:"min_correlation"`
	DropIsolated   bool    `json:"drop_isolated"`
	DetectModules  bool    `json:"detect_modules"`
}

// ArtifactKeyOpts holds every option that changes rendered output.
type ArtifactKeyOpts struct {
	Format    string   `json:"format"`
	ColorMode string   `json:"color_mode"`
	Highlight *int     `json:"highlight"`
	MinSize   float64  `json:"min_size"`
	MaxSize   float64  `json:"max_size"`
	Overlay   bool     `json:"overlay"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Labels    bool     `json:"labels"`
	NoLegend  bool     `json:"no_legend"`
	Title     string   `json:"title"`
	Palette   []string `json:"palette"`
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(networkHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", networkHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
