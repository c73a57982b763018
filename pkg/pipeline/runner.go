package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaview/pkg/cache"
	"github.com/matzehuels/schemaview/pkg/schema"
	"github.com/matzehuels/schemaview/pkg/view"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the layout cache is consulted the same way.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options; each Execute
// builds its own view.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, output is discarded.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → frame pipeline with caching.
func (r *Runner) Execute(ctx context.Context, snap *schema.Snapshot, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Load
	v, err := r.Load(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	hash, err := SnapshotHash(snap)
	if err != nil {
		return nil, err
	}
	built := v.Stats()
	result := &Result{
		SnapshotHash: hash,
		Stats: Stats{
			Nodes:      built.Tables,
			Edges:      built.Edges,
			Dropped:    built.Dropped,
			Duplicates: built.Duplicates,
		},
	}
	if built.Dropped > 0 {
		opts.Logger.Warn("dropped dangling foreign keys", "count", built.Dropped)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	hit, err := r.LayoutWithCacheInfo(ctx, v, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.CacheHit = hit
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Info("computed layout",
		"engine", v.Engine(),
		"nodes", result.Stats.Nodes,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Frame
	routeStart := time.Now()
	frame, err := r.Frame(v, opts)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	result.Frame = frame
	result.Stats.RouteTime = time.Since(routeStart)

	opts.Logger.Info("routed edges",
		"edges", result.Stats.Edges,
		"duration", result.Stats.RouteTime)

	return result, nil
}

// Load builds a fresh view of snap with the options' engine constants.
func (r *Runner) Load(ctx context.Context, snap *schema.Snapshot, opts Options) (*view.View, error) {
	if snap == nil {
		snap = &schema.Snapshot{}
	}
	v, err := view.New(opts.View, opts.Logger)
	if err != nil {
		return nil, err
	}
	if _, err := v.Load(ctx, snap); err != nil {
		return nil, err
	}
	return v, nil
}

// SnapshotHash returns the content hash of a normalized snapshot. Identical
// schemas hash identically regardless of how their columns were supplied.
func SnapshotHash(snap *schema.Snapshot) (string, error) {
	if snap == nil {
		snap = &schema.Snapshot{}
	}
	var buf bytes.Buffer
	if err := schema.Write(snap.Clone().Normalize(), &buf); err != nil {
		return "", fmt.Errorf("hash snapshot: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
