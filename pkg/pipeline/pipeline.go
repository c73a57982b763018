// Package pipeline provides the snapshot → frame pipeline for schemaview.
//
// The CLI and the HTTP API both turn a schema snapshot into a renderable
// frame. This package does it in one place so that the two entry points
// produce identical output and share the layout cache.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Normalize the snapshot and build the diagram model
//  2. Layout: Compute node positions, or reuse positions cached for the
//     same snapshot and layout constants
//  3. Frame: Apply hover and camera fit, route every edge and render paths
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, snap, pipeline.Options{
//	    Width:  1280,
//	    Height: 800,
//	    Hover:  "orders.customer_id",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	graph.WriteFrameFile(result.Frame, "orders.frame.json")
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/graph"
	"github.com/matzehuels/schemaview/pkg/layout"
	"github.com/matzehuels/schemaview/pkg/view"
)

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 1280.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 800.0
)

// Options configures a pipeline run.
type Options struct {
	// View holds the constants of every engine stage. A zero value selects
	// view.DefaultOptions.
	View view.Options `json:"-"`

	// Viewport size the camera is fitted to. Zero selects the defaults;
	// NoFit skips the fit entirely.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	NoFit  bool    `json:"no_fit,omitempty"`

	// Hover is either "table.column" or an edge ID. Empty means no hover.
	Hover string `json:"hover,omitempty"`

	// NoCache skips the layout cache; Refresh recomputes and overwrites it.
	NoCache bool `json:"no_cache,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Logger defaults to the runner's logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills zero values and rejects invalid settings.
func (o *Options) ValidateAndSetDefaults() error {
	if o.View == (view.Options{}) {
		o.View = view.DefaultOptions()
	}
	if o.View.Engine == "" {
		o.View.Engine = layout.EngineNative
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport size %gx%g is negative", o.Width, o.Height)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Hover != "" {
		if _, err := ParseHover(o.Hover); err != nil {
			return err
		}
	}
	return nil
}

// HoverTarget is a parsed Options.Hover value.
type HoverTarget struct {
	Table  string
	Column string
	Edge   string
}

// ParseHover splits a hover argument. Values containing "->" are edge IDs;
// anything else is "table.column", split at the last dot so that
// schema-qualified table names keep their prefix.
func ParseHover(s string) (HoverTarget, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "->") {
		return HoverTarget{Edge: s}, nil
	}
	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return HoverTarget{}, errors.New(errors.ErrCodeInvalidInput, "hover %q is not table.column or an edge id", s)
	}
	return HoverTarget{Table: s[:i], Column: s[i+1:]}, nil
}

// Result holds everything produced by a pipeline run.
type Result struct {
	Frame        graph.Frame
	SnapshotHash string
	CacheHit     bool
	Stats        Stats
}

// Stats contains timing and size information.
type Stats struct {
	Nodes      int
	Edges      int
	Dropped    int // Foreign keys whose endpoints are missing
	Duplicates int // Foreign keys collapsed onto an existing edge
	LayoutTime time.Duration
	RouteTime  time.Duration
}
