package view

import (
	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/geom"
)

// RectSource reports node rectangles as a renderer measured them.
type RectSource interface {
	NodeRect(id string) (geom.Rect, bool)
}

// Rects is a RectSource backed by a map.
type Rects map[string]geom.Rect

// NodeRect implements RectSource.
func (r Rects) NodeRect(id string) (geom.Rect, bool) {
	rect, ok := r[id]
	return rect, ok
}

// liveGeometry answers routing queries from measured rectangles, falling
// back to the model for nodes the source does not know. Column anchors are
// placed on the measured box using the model's row metrics.
type liveGeometry struct {
	g   *diagram.Graph
	src RectSource
}

func (l liveGeometry) NodeIDs() []string { return l.g.NodeIDs() }

func (l liveGeometry) NodeRect(id string) (geom.Rect, bool) {
	if r, ok := l.src.NodeRect(id); ok {
		return r, true
	}
	return l.g.NodeRect(id)
}

func (l liveGeometry) ColumnY(table, column string) float64 {
	r, ok := l.NodeRect(table)
	if !ok {
		return 0
	}
	if n, ok := l.g.Node(table); ok {
		if i := n.Column(column); i >= 0 {
			return r.Y + l.g.Sizing().RowCenter(i)
		}
	}
	return r.Center().Y
}
