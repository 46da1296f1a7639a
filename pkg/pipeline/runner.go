package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ecolayout/pkg/cache"
	"github.com/matzehuels/ecolayout/pkg/graph"
	"github.com/matzehuels/ecolayout/pkg/network"
	"github.com/matzehuels/ecolayout/pkg/observability"
	"github.com/matzehuels/ecolayout/pkg/style"
)

// Runner executes the pipeline stages against a cache. It keeps no
// per-call state, so one Runner serves concurrent CLI or HTTP calls with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. Nil arguments fall back to a [cache.NullCache],
// the [cache.DefaultKeyer] and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute validates opts and runs prepare, layout, style and render.
func (r *Runner) Execute(ctx context.Context, n *network.Network, opts Options) (*Result, error) {
	if err := r.validate(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{}

	t := time.Now()
	res.Network = r.Prepare(ctx, n, opts)
	res.Modules = network.Summarize(res.Network, r.palette(opts))
	res.Stats.PrepareTime = time.Since(t)
	res.Stats.NodeCount = res.Network.NodeCount()
	res.Stats.EdgeCount = res.Network.EdgeCount()
	res.Stats.ModuleCount = len(res.Modules)

	t = time.Now()
	l, hit, err := r.Layout(ctx, res.Network, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Layout, res.NetworkHash = l, l.NetworkHash
	res.Stats.LayoutTime = time.Since(t)
	res.CacheInfo.LayoutHit = hit
	r.Logger.Info("computed layout", "mode", l.Mode, "nodes", len(l.Nodes),
		"cached", hit, "duration", res.Stats.LayoutTime)

	t = time.Now()
	artifacts, hit, err := r.Render(ctx, res.Network, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(t)
	res.CacheInfo.RenderHit = hit
	r.Logger.Info("rendered outputs", "formats", opts.Formats,
		"cached", hit, "duration", res.Stats.RenderTime)

	return res, nil
}

// Prepare filters n and assigns modules as configured. It never fails;
// thresholds that remove every edge yield an edgeless network.
func (r *Runner) Prepare(ctx context.Context, n *network.Network, opts Options) *network.Network {
	t := time.Now()
	work := Prepare(n, opts)
	modules := len(network.ModuleIDs(work))
	elapsed := time.Since(t)

	observability.Pipeline().OnPrepareComplete(ctx, work.NodeCount(), work.EdgeCount(), modules, elapsed)
	r.Logger.Debug("prepared network", "nodes", work.NodeCount(), "edges", work.EdgeCount(),
		"dropped_edges", n.EdgeCount()-work.EdgeCount(), "modules", modules, "duration", elapsed)
	return work
}

// Layout returns the coordinates of a prepared network and whether they
// came from the cache. Cached layouts whose node count disagrees with n
// are recomputed.
func (r *Runner) Layout(ctx context.Context, n *network.Network, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	networkHash, err := contentHash(n)
	if err != nil {
		return graph.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(networkHash, opts.LayoutKeyOpts())

	if data, ok := r.lookup(ctx, key); ok {
		if l, err := graph.UnmarshalLayout(data); err == nil && len(l.Nodes) == n.NodeCount() {
			observability.Cache().OnCacheHit(ctx, observability.CacheLayout)
			return l, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, observability.CacheLayout)

	mode := opts.LayoutMode().String()
	observability.Pipeline().OnLayoutStart(ctx, mode, n.NodeCount())
	t := time.Now()
	l := ComputeLayout(n, opts)
	l.NetworkHash = networkHash
	observability.Pipeline().OnLayoutComplete(ctx, mode, time.Since(t), nil)

	if data, err := graph.MarshalLayout(l); err == nil {
		r.store(ctx, opts.Logger, observability.CacheLayout, key, data, cache.TTLLayout)
	}
	return l, false, nil
}

// Style validates the styling options and assembles the scene.
func (r *Runner) Style(n *network.Network, l graph.Layout, opts Options) (style.Scene, error) {
	if err := opts.ValidateForRender(); err != nil {
		return style.Scene{}, err
	}
	return Style(n, l, opts), nil
}

// Render styles l and renders every requested format. It reports a hit
// only when all formats were cached; otherwise everything is rendered
// from one scene so the outputs stay consistent.
func (r *Runner) Render(ctx context.Context, n *network.Network, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	keys, err := r.artifactKeys(n, l, opts)
	if err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, ok := r.lookup(ctx, key)
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(keys) {
		observability.Cache().OnCacheHit(ctx, observability.CacheArtifact)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, observability.CacheArtifact)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	t := time.Now()
	rendered, err := RenderScene(ctx, Style(n, l, opts), opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(t), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, opts.Logger, observability.CacheArtifact, keys[format], data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Modules prepares n and summarizes its modules without computing a layout.
func (r *Runner) Modules(ctx context.Context, n *network.Network, opts Options) ([]network.Module, error) {
	if err := r.validate(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return network.Summarize(r.Prepare(ctx, n, opts), r.palette(opts)), nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// artifactKeys derives one cache key per requested format. Styling reads
// module and taxonomy attributes, so the hash covers both the layout and
// the network it belongs to.
func (r *Runner) artifactKeys(n *network.Network, l graph.Layout, opts Options) (map[string]string, error) {
	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, fmt.Errorf("hash layout: %w", err)
	}
	networkData, err := graph.MarshalNetwork(n)
	if err != nil {
		return nil, fmt.Errorf("hash network: %w", err)
	}
	hash := cache.Hash(append(layoutData, networkData...))

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	}
	return keys, nil
}

// lookup treats backend errors as misses; a broken cache only costs
// recomputation.
func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache get", "key", key, "error", err)
		return nil, false
	}
	return data, hit
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache "+kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func (r *Runner) validate(opts *Options) error {
	r.applyLogger(opts)
	return opts.ValidateAndSetDefaults()
}

func (r *Runner) palette(opts Options) []string {
	if len(opts.Palette) > 0 {
		return opts.Palette
	}
	return style.DefaultPalette
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// contentHash is the sha256 of the canonical JSON encoding of n.
func contentHash(n *network.Network) (string, error) {
	data, err := graph.MarshalNetwork(n)
	if err != nil {
		return "", fmt.Errorf("hash network: %w", err)
	}
	return cache.Hash(data), nil
}
