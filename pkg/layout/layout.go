package layout

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/geom"
)

// Engine names.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// Box is a node to be placed.
type Box struct {
	ID     string
	Width  float64
	Height float64
}

// Link is a directed relationship between two boxes. Links referencing
// unknown boxes are ignored.
type Link struct {
	From string
	To   string
}

// Engine computes top-left positions for every box.
type Engine interface {
	Name() string
	Layout(ctx context.Context, boxes []Box, links []Link) (map[string]geom.Point, error)
}

// Options holds the separation constants shared by the engines.
type Options struct {
	NodeSep          float64 `toml:"node_sep"`
	RankSep          float64 `toml:"rank_sep"`
	GridColumns      int     `toml:"grid_columns"`
	GridGap          float64 `toml:"grid_gap"`
	IsolatedGap      float64 `toml:"isolated_gap"`
	OrderIterations  int     `toml:"order_iterations"`
	CoordinateRounds int     `toml:"coordinate_rounds"`
}

// DefaultOptions returns the standard separations.
func DefaultOptions() Options {
	return Options{
		NodeSep:          48,
		RankSep:          140,
		GridColumns:      3,
		GridGap:          48,
		IsolatedGap:      120,
		OrderIterations:  12,
		CoordinateRounds: 4,
	}
}

// New returns the engine with the given name.
func New(name string, opts Options, logger *log.Logger) (Engine, error) {
	switch strings.ToLower(name) {
	case "", EngineNative:
		return &Native{Options: opts}, nil
	case EngineGraphviz:
		return &Graphviz{Options: opts, Logger: logger}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidEngine, "unknown layout engine %q", name).
		WithHint("use %q or %q", EngineNative, EngineGraphviz)
}

// FromGraph extracts the boxes and links of a diagram. Links point from the
// table holding the foreign key to the referenced table.
func FromGraph(g *diagram.Graph) ([]Box, []Link) {
	boxes := make([]Box, len(g.Nodes))
	for i, n := range g.Nodes {
		boxes[i] = Box{ID: n.ID, Width: n.Width, Height: n.Height}
	}
	links := make([]Link, len(g.Edges))
	for i, e := range g.Edges {
		links[i] = Link{From: e.SourceTable, To: e.TargetTable}
	}
	return boxes, links
}

// Partition splits boxes into those taking part in at least one link (self
// references included) and isolated ones, both in input order. Links with an
// unknown endpoint are dropped from the returned slice.
func Partition(boxes []Box, links []Link) (connected, isolated []Box, valid []Link) {
	known := make(map[string]bool, len(boxes))
	for _, b := range boxes {
		known[b.ID] = true
	}
	linked := make(map[string]bool, len(boxes))
	for _, l := range links {
		if !known[l.From] || !known[l.To] {
			continue
		}
		valid = append(valid, l)
		linked[l.From] = true
		linked[l.To] = true
	}
	for _, b := range boxes {
		if linked[b.ID] {
			connected = append(connected, b)
		} else {
			isolated = append(isolated, b)
		}
	}
	return connected, isolated, valid
}

// connectedLayout places the connected boxes with the top-left of their
// bounding box at the origin.
type connectedLayout func(ctx context.Context, boxes []Box, links []Link) (map[string]geom.Point, error)

func arrange(ctx context.Context, opts Options, boxes []Box, links []Link, place connectedLayout) (map[string]geom.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	connected, isolated, valid := Partition(boxes, links)

	pos := make(map[string]geom.Point, len(boxes))
	bottom := 0.0
	if len(connected) > 0 {
		placed, err := place(ctx, connected, valid)
		if err != nil {
			return nil, err
		}
		for _, b := range connected {
			p := placed[b.ID]
			pos[b.ID] = p
			bottom = max(bottom, p.Y+b.Height)
		}
	}

	for id, p := range PlaceGrid(isolated, bottom+opts.IsolatedGap, opts) {
		pos[id] = p
	}
	return pos, nil
}

// PlaceGrid packs boxes row-major into opts.GridColumns columns starting at
// y = top. Column pitch is the widest box plus GridGap; each row is as tall
// as its tallest box plus GridGap.
func PlaceGrid(boxes []Box, top float64, opts Options) map[string]geom.Point {
	pos := make(map[string]geom.Point, len(boxes))
	if len(boxes) == 0 {
		return pos
	}
	cols := max(opts.GridColumns, 1)

	widest := 0.0
	for _, b := range boxes {
		widest = max(widest, b.Width)
	}
	pitch := widest + opts.GridGap

	y := top
	for start := 0; start < len(boxes); start += cols {
		row := boxes[start:min(start+cols, len(boxes))]
		tallest := 0.0
		for i, b := range row {
			pos[b.ID] = geom.Point{X: float64(i) * pitch, Y: y}
			tallest = max(tallest, b.Height)
		}
		y += tallest + opts.GridGap
	}
	return pos
}

// normalize shifts positions so the bounding box of boxes starts at (0,0).
func normalize(boxes []Box, pos map[string]geom.Point) {
	if len(boxes) == 0 {
		return
	}
	minX, minY := pos[boxes[0].ID].X, pos[boxes[0].ID].Y
	for _, b := range boxes[1:] {
		p := pos[b.ID]
		minX, minY = min(minX, p.X), min(minY, p.Y)
	}
	for _, b := range boxes {
		p := pos[b.ID]
		pos[b.ID] = geom.Point{X: p.X - minX, Y: p.Y - minY}
	}
}
