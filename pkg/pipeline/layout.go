package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/schemaview/pkg/cache"
	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/geom"
	"github.com/matzehuels/schemaview/pkg/layout"
	"github.com/matzehuels/schemaview/pkg/observability"
	"github.com/matzehuels/schemaview/pkg/view"
)

// layoutParams are the constants besides the engine that change positions.
type layoutParams struct {
	Sizing diagram.Sizing `json:"sizing"`
	Layout layout.Options `json:"layout"`
}

// LayoutKey returns the cache key of v's layout under opts.
func (r *Runner) LayoutKey(hash string, opts Options) string {
	return r.Keyer.LayoutKey(hash, cache.LayoutKeyOpts{
		Engine: opts.View.Engine,
		Params: layoutParams{Sizing: opts.View.Sizing, Layout: opts.View.Layout},
	})
}

// LayoutWithCacheInfo positions every node of v, reusing positions cached
// for the same snapshot hash and layout constants. It reports whether the
// cache supplied them. Cache failures are logged and fall back to computing
// the layout.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, v *view.View, hash string, opts Options) (bool, error) {
	r.applyLogger(&opts)
	if opts.NoCache {
		return false, v.AutoLayout(ctx)
	}

	hooks := observability.Cache()
	key := r.LayoutKey(hash, opts)
	if !opts.Refresh {
		if pos, ok := r.cachedPositions(ctx, key, v.Graph(), opts); ok {
			hooks.OnCacheHit(ctx, "layout")
			v.ApplyPositions(pos)
			return true, nil
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	if err := v.AutoLayout(ctx); err != nil {
		return false, err
	}

	data, err := json.Marshal(v.Graph().Positions())
	if err != nil {
		opts.Logger.Warn("encode layout for cache", "error", err)
		return false, nil
	}
	if err := r.Cache.Set(ctx, key, data, cache.LayoutTTL); err != nil {
		opts.Logger.Warn("cache layout", "error", err)
		return false, nil
	}
	hooks.OnCacheSet(ctx, "layout", len(data))
	return false, nil
}

// cachedPositions loads positions from the cache. An entry that does not
// cover every node of g is treated as a miss.
func (r *Runner) cachedPositions(ctx context.Context, key string, g *diagram.Graph, opts Options) (map[string]geom.Point, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("read cached layout", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var pos map[string]geom.Point
	if err := json.Unmarshal(data, &pos); err != nil {
		opts.Logger.Warn("decode cached layout", "error", err)
		return nil, false
	}
	for _, n := range g.Nodes {
		if _, ok := pos[n.ID]; !ok {
			opts.Logger.Debug("cached layout is stale", "missing", n.ID)
			return nil, false
		}
	}
	return pos, true
}
