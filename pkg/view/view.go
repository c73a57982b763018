package view

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/geom"
	"github.com/matzehuels/schemaview/pkg/graph"
	"github.com/matzehuels/schemaview/pkg/highlight"
	"github.com/matzehuels/schemaview/pkg/layout"
	"github.com/matzehuels/schemaview/pkg/observability"
	"github.com/matzehuels/schemaview/pkg/route"
	"github.com/matzehuels/schemaview/pkg/schema"
	"github.com/matzehuels/schemaview/pkg/viewport"
)

// View owns a diagram and its interactive state.
type View struct {
	opts   Options
	logger *log.Logger
	engine layout.Engine
	router *route.Router

	graph  *diagram.Graph
	stats  diagram.BuildStats
	hl     *highlight.Indexer
	src    RectSource
	fitter *viewport.Fitter
	fit    *graph.Viewport
}

// New returns an empty view. It fails with INVALID_ENGINE when opts names an
// unknown layout engine. A nil logger discards output.
func New(opts Options, logger *log.Logger) (*View, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	engine, err := layout.New(opts.Engine, opts.Layout, logger)
	if err != nil {
		return nil, err
	}
	g, _, _ := diagram.Build(&schema.Snapshot{}, opts.Sizing)
	hl := highlight.New(nil)
	hl.Styles = opts.Styles
	return &View{
		opts:   opts,
		logger: logger,
		engine: engine,
		router: route.NewRouter(opts.Route),
		graph:  g,
		hl:     hl,
		fitter: viewport.NewFitter(opts.Viewport),
	}, nil
}

// Load rebuilds the diagram from a normalized copy of s; s itself is not
// modified. Every node starts at
// the origin; the hover state is kept so stable edge IDs stay highlighted
// across refreshes. The previous camera fit is discarded.
func (v *View) Load(ctx context.Context, s *schema.Snapshot) (diagram.BuildStats, error) {
	if err := ctx.Err(); err != nil {
		return diagram.BuildStats{}, err
	}
	g, stats, err := diagram.Build(s.Clone().Normalize(), v.opts.Sizing)
	if err != nil {
		return stats, err
	}
	v.graph, v.stats, v.fit = g, stats, nil
	v.hl.SetEdges(g.Edges)
	v.logger.Debug("diagram loaded",
		"tables", stats.Tables,
		"edges", stats.Edges,
		"dropped", stats.Dropped,
		"duplicates", stats.Duplicates)
	return stats, nil
}

// Graph returns the diagram model.
func (v *View) Graph() *diagram.Graph { return v.graph }

// Stats returns what the last Load built.
func (v *View) Stats() diagram.BuildStats { return v.stats }

// Engine returns the layout engine name.
func (v *View) Engine() string { return v.engine.Name() }

// Highlight returns the hover indexer.
func (v *View) Highlight() *highlight.Indexer { return v.hl }

// Router returns the edge router.
func (v *View) Router() *route.Router { return v.router }

// AutoLayout recomputes every node position with the layout engine.
func (v *View) AutoLayout(ctx context.Context) error {
	hooks := observability.Layout()
	name, count := v.engine.Name(), len(v.graph.Nodes)
	hooks.OnLayoutStart(ctx, name, count)
	start := time.Now()

	boxes, links := layout.FromGraph(v.graph)
	pos, err := v.engine.Layout(ctx, boxes, links)
	elapsed := time.Since(start)
	hooks.OnLayoutComplete(ctx, name, count, elapsed, err)
	if err != nil {
		return err
	}
	v.graph.SetPositions(pos)
	v.logger.Debug("auto layout", "engine", name, "nodes", count, "duration", elapsed)
	return nil
}

// Drag moves a node by (dx, dy). Unknown tables yield UNKNOWN_TABLE.
func (v *View) Drag(id string, dx, dy float64) error {
	return v.graph.Move(id, dx, dy)
}

// ApplyPositions sets node positions, typically from a cached layout.
func (v *View) ApplyPositions(pos map[string]geom.Point) {
	v.graph.SetPositions(pos)
}

// SetGeometry makes routing use measured node rectangles. A nil source
// returns to the model's own geometry.
func (v *View) SetGeometry(src RectSource) { v.src = src }

// Geometry returns the geometry routing currently runs against.
func (v *View) Geometry() route.Geometry {
	if v.src == nil {
		return v.graph
	}
	return liveGeometry{g: v.graph, src: v.src}
}

// HoverField hovers a table column. Unknown tables yield UNKNOWN_TABLE and
// unknown columns NOT_FOUND.
func (v *View) HoverField(table, column string) error {
	n, ok := v.graph.Node(table)
	if !ok {
		return errors.NotFound(errors.ErrCodeUnknownTable, "table", table, v.graph.NodeIDs())
	}
	if n.Column(column) < 0 {
		names := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			names[i] = c.Name
		}
		return errors.NotFound(errors.ErrCodeNotFound, "column", column, names)
	}
	v.hl.HoverField(table, column)
	return nil
}

// HoverEdge hovers a relationship. Unknown IDs yield UNKNOWN_EDGE.
func (v *View) HoverEdge(id string) error {
	if _, ok := v.graph.Edge(id); !ok {
		return errors.NotFound(errors.ErrCodeUnknownEdge, "edge", id, v.graph.EdgeIDs())
	}
	v.hl.HoverEdge(id)
	return nil
}

// LeaveField ends a field hover.
func (v *View) LeaveField(table, column string) { v.hl.LeaveField(table, column) }

// LeaveEdge ends an edge hover.
func (v *View) LeaveEdge(id string) { v.hl.LeaveEdge(id) }

// RestoreHover carries a hover state over from another view of the same
// session. Targets missing from this diagram stay hovered but highlight
// nothing.
func (v *View) RestoreHover(s highlight.State) { v.hl.Restore(s) }

// ClearHover drops any hover state.
func (v *View) ClearHover() { v.hl.Clear() }

// BeginFit starts framing the view: it returns the animated focus move.
func (v *View) BeginFit(size viewport.Size) viewport.Move {
	return v.fitter.Begin(viewport.FromGraph(v.graph), size)
}

// SettleFit finishes a fit once the animation has landed on current.
func (v *View) SettleFit(current viewport.Camera) viewport.Move {
	return v.fitter.Settle(current)
}

// Fit frames the diagram in one call, assuming the focus animation settles
// where it was aimed, and records the result for subsequent frames.
func (v *View) Fit(size viewport.Size) graph.Viewport {
	focus := v.BeginFit(size)
	final := v.SettleFit(focus.Camera)
	v.fit = &graph.Viewport{Size: size, Focus: focus, Final: final.Camera}
	v.logger.Debug("viewport fit", "focus_zoom", focus.Camera.Zoom, "zoom", final.Camera.Zoom)
	return *v.fit
}
