package graph

import (
	"fmt"

	"github.com/matzehuels/schemaview/pkg/geom"
	"github.com/matzehuels/schemaview/pkg/highlight"
	"github.com/matzehuels/schemaview/pkg/viewport"
)

// Frame is the canonical serialization of a rendered diagram.
type Frame struct {
	Engine   string    `json:"engine,omitempty"`
	Bounds   geom.Rect `json:"bounds"`
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
	Hover    *Hover    `json:"hover,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Node is a positioned table.
type Node struct {
	ID      string   `json:"id"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Columns []Column `json:"columns"`
}

// Rect returns the node's bounding box.
func (n Node) Rect() geom.Rect {
	return geom.Rect{X: n.X, Y: n.Y, W: n.Width, H: n.Height}
}

// Column is a table row as drawn.
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// Endpoint is one end of a relationship.
type Endpoint struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// Edge is a routed relationship ready to draw.
type Edge struct {
	ID          string             `json:"id"`
	Source      Endpoint           `json:"source"`
	Target      Endpoint           `json:"target"`
	Constraint  string             `json:"constraint,omitempty"`
	Label       string             `json:"label"`
	Path        string             `json:"path"`             // SVG path data
	LabelAnchor geom.Point         `json:"label_anchor"`     // Label center
	Points      []geom.Point       `json:"points,omitempty"` // Merged polyline
	Highlighted bool               `json:"highlighted"`
	Emphasis    highlight.Emphasis `json:"emphasis"`
}

// Hover describes the hover target and what it highlights. Exactly one of
// Field and Edge is set.
type Hover struct {
	Field  *highlight.Field  `json:"field,omitempty"`
	Edge   string            `json:"edge,omitempty"`
	Edges  []string          `json:"edges"`
	Fields []highlight.Field `json:"fields"`
}

// Viewport is the camera framing of a frame: the animated focus move and
// the camera after the legibility check.
type Viewport struct {
	Size  viewport.Size   `json:"size"`
	Focus viewport.Move   `json:"focus"`
	Final viewport.Camera `json:"final"`
}

// Node returns the node with the given ID.
func (f *Frame) Node(id string) (Node, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given ID.
func (f *Frame) Edge(id string) (Edge, bool) {
	for _, e := range f.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// Positions returns the top-left corner of every node.
func (f *Frame) Positions() map[string]geom.Point {
	out := make(map[string]geom.Point, len(f.Nodes))
	for _, n := range f.Nodes {
		out[n.ID] = geom.Point{X: n.X, Y: n.Y}
	}
	return out
}

// Validate checks that node IDs are unique and edges reference known nodes.
func (f *Frame) Validate() error {
	seen := make(map[string]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.ID == "" {
			return ErrEmptyNodeID
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range f.Edges {
		if !seen[e.Source.Table] || !seen[e.Target.Table] {
			return fmt.Errorf("%w: %s", ErrDanglingEdge, e.ID)
		}
	}
	return nil
}
