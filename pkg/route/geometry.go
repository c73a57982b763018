package route

import (
	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/geom"
)

// Geometry reports where nodes currently are. The diagram graph implements
// it from its own positions; a renderer can supply measured rectangles
// instead.
type Geometry interface {
	NodeIDs() []string
	NodeRect(id string) (geom.Rect, bool)
	ColumnY(table, column string) float64
}

// Sides picks the borders an edge leaves and enters through. Nodes that
// overlap horizontally, self references included, both use the right border
// so the line loops outside; otherwise the borders facing each other are
// used.
func Sides(src, tgt geom.Rect) (Side, Side) {
	if src.OverlapsX(tgt) || src == tgt {
		return SideRight, SideRight
	}
	if tgt.Center().X > src.Center().X {
		return SideRight, SideLeft
	}
	return SideLeft, SideRight
}

func anchorX(r geom.Rect, s Side) float64 {
	if s == SideLeft {
		return r.X
	}
	return r.Right()
}

// Build derives the routing request of an edge from the current geometry.
// It returns false when either endpoint is unknown to g.
func Build(e diagram.Edge, g Geometry, bias float64, opts Options) (Request, bool) {
	srcRect, okS := g.NodeRect(e.SourceTable)
	tgtRect, okT := g.NodeRect(e.TargetTable)
	if !okS || !okT {
		return Request{}, false
	}

	srcSide, tgtSide := Sides(srcRect, tgtRect)
	req := Request{
		Source: Anchor{Point: geom.Point{X: anchorX(srcRect, srcSide), Y: g.ColumnY(e.SourceTable, e.SourceColumn)}, Side: srcSide},
		Target: Anchor{Point: geom.Point{X: anchorX(tgtRect, tgtSide), Y: g.ColumnY(e.TargetTable, e.TargetColumn)}, Side: tgtSide},
		Bias:   bias,
	}
	req.Obstacles = Obstacles(g, e.SourceTable, e.TargetTable, req.Source.Stub(opts.Stub), req.Target.Stub(opts.Stub), opts)
	return req, true
}

// Obstacles returns the padded rectangles of every node except the edge's
// own endpoints, limited to those reaching into the corridor between the two
// stub ends.
func Obstacles(g Geometry, source, target string, s, t geom.Point, opts Options) []geom.Rect {
	corridor := geom.RectFromPoints(s.Sanitize(), t.Sanitize()).Expand(opts.CorridorMargin)
	var out []geom.Rect
	for _, id := range g.NodeIDs() {
		if id == source || id == target {
			continue
		}
		r, ok := g.NodeRect(id)
		if !ok {
			continue
		}
		if r = r.Expand(opts.ObstaclePadding); r.Overlaps(corridor) {
			out = append(out, r)
		}
	}
	return out
}
