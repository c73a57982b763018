package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/schemaview/pkg/errors"
	"github.com/matzehuels/schemaview/pkg/geom"
	"github.com/matzehuels/schemaview/pkg/schema"
)

// Column is a column as drawn in a table box.
type Column struct {
	Name    string
	Type    string
	Primary bool
}

// Node is a table box.
type Node struct {
	ID       string
	Columns  []Column
	Width    float64
	Height   float64
	Position geom.Point
}

// Rect returns the node's bounding box at its current position.
func (n *Node) Rect() geom.Rect {
	return geom.Rect{X: n.Position.X, Y: n.Position.Y, W: n.Width, H: n.Height}
}

// Column returns the index of the named column, or -1.
func (n *Node) Column(name string) int {
	for i, c := range n.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Edge is a foreign-key relationship from SourceTable.SourceColumn to
// TargetTable.TargetColumn.
type Edge struct {
	ID           string
	SourceTable  string
	SourceColumn string
	TargetTable  string
	TargetColumn string
	Constraint   string
	Label        string
}

// BuildStats summarizes what [Build] did with the snapshot.
type BuildStats struct {
	Tables     int
	Edges      int
	Dropped    int // foreign keys referencing a table outside the snapshot
	Duplicates int // foreign keys collapsed onto an existing edge ID
}

// Graph is the diagram model: sized table nodes in snapshot order and the
// relationships between them.
type Graph struct {
	Nodes  []*Node
	Edges  []Edge
	sizing Sizing
	nodes  map[string]*Node
	edges  map[string]int
}

// Build creates the diagram graph for a snapshot. Foreign keys whose table or
// referenced table is missing are dropped; foreign keys that map to an
// existing edge ID are collapsed onto the first one. Snapshots with empty or
// duplicate table names are rejected with INVALID_SNAPSHOT.
func Build(s *schema.Snapshot, sz Sizing) (*Graph, BuildStats, error) {
	if err := s.Validate(); err != nil {
		return nil, BuildStats{}, err
	}

	g := &Graph{
		Nodes:  make([]*Node, 0, len(s.Tables)),
		sizing: sz,
		nodes:  make(map[string]*Node, len(s.Tables)),
		edges:  make(map[string]int, len(s.ForeignKeys)),
	}

	for _, t := range s.Tables {
		w, h := sz.Measure(t)
		n := &Node{ID: t.Name, Width: w, Height: h, Columns: make([]Column, len(t.Columns))}
		for i, c := range t.Columns {
			n.Columns[i] = Column{Name: c.Name, Type: c.Type, Primary: c.Key.IsPrimary()}
		}
		g.Nodes = append(g.Nodes, n)
		g.nodes[n.ID] = n
	}

	var stats BuildStats
	for _, fk := range s.ForeignKeys {
		if g.nodes[fk.Table] == nil || g.nodes[fk.RefTable] == nil {
			stats.Dropped++
			continue
		}
		id := EdgeID(fk)
		if _, dup := g.edges[id]; dup {
			stats.Duplicates++
			continue
		}
		g.edges[id] = len(g.Edges)
		g.Edges = append(g.Edges, Edge{
			ID:           id,
			SourceTable:  fk.Table,
			SourceColumn: fk.Column,
			TargetTable:  fk.RefTable,
			TargetColumn: fk.RefColumn,
			Constraint:   fk.Constraint,
			Label:        label(fk),
		})
	}

	stats.Tables = len(g.Nodes)
	stats.Edges = len(g.Edges)
	return g, stats, nil
}

// EdgeID returns the stable identity of a foreign key:
//
//	{table}.{column}->{refTable}.{refColumn}::{constraint or "fk"}
//
// Column names are escaped with [EncodeComponent].
func EdgeID(fk schema.ForeignKey) string {
	c := fk.Constraint
	if c == "" {
		c = "fk"
	}
	return fmt.Sprintf("%s.%s->%s.%s::%s",
		fk.Table, EncodeComponent(fk.Column), fk.RefTable, EncodeComponent(fk.RefColumn), c)
}

func label(fk schema.ForeignKey) string {
	if fk.Constraint != "" {
		return fk.Constraint
	}
	return fk.Table + "." + fk.Column + " → " + fk.RefTable + "." + fk.RefColumn
}

// EncodeComponent percent-encodes s the way URI components are encoded in
// browsers: letters, digits and -_.!~*'() are kept, everything else becomes
// %XX per UTF-8 byte.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Sizing returns the metrics the graph was built with.
func (g *Graph) Sizing() Sizing { return g.sizing }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID.
func (g *Graph) Edge(id string) (Edge, bool) {
	i, ok := g.edges[id]
	if !ok {
		return Edge{}, false
	}
	return g.Edges[i], true
}

// NodeIDs returns node IDs in snapshot order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// EdgeIDs returns edge IDs in snapshot order.
func (g *Graph) EdgeIDs() []string {
	ids := make([]string, len(g.Edges))
	for i, e := range g.Edges {
		ids[i] = e.ID
	}
	return ids
}

// NodeRect returns the current bounding box of a node.
func (g *Graph) NodeRect(id string) (geom.Rect, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return geom.Rect{}, false
	}
	return n.Rect(), true
}

// ColumnY returns the y coordinate of a column's row center. Unknown columns
// anchor at the vertical center of the node.
func (g *Graph) ColumnY(table, column string) float64 {
	n, ok := g.nodes[table]
	if !ok {
		return 0
	}
	if i := n.Column(column); i >= 0 {
		return n.Position.Y + g.sizing.RowCenter(i)
	}
	return n.Position.Y + n.Height/2
}

// Positions returns the current top-left position of every node.
func (g *Graph) Positions() map[string]geom.Point {
	out := make(map[string]geom.Point, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n.Position
	}
	return out
}

// SetPositions moves the given nodes. IDs not in the graph are ignored and
// nodes missing from the map keep their position.
func (g *Graph) SetPositions(pos map[string]geom.Point) {
	for id, p := range pos {
		if n, ok := g.nodes[id]; ok {
			n.Position = p.Sanitize()
		}
	}
}

// Move translates a node by (dx, dy). Unknown IDs yield UNKNOWN_TABLE.
func (g *Graph) Move(id string, dx, dy float64) error {
	n, ok := g.nodes[id]
	if !ok {
		return errors.NotFound(errors.ErrCodeUnknownTable, "table", id, g.NodeIDs())
	}
	n.Position = n.Position.Add(dx, dy).Sanitize()
	return nil
}

// Degrees returns the number of relationships each node takes part in.
// Self references count once per end.
func (g *Graph) Degrees() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		deg[e.SourceTable]++
		deg[e.TargetTable]++
	}
	return deg
}

// Bounds returns the bounding box of the given nodes, or of all nodes when
// ids is empty.
func (g *Graph) Bounds(ids ...string) geom.Rect {
	var rects []geom.Rect
	if len(ids) == 0 {
		for _, n := range g.Nodes {
			rects = append(rects, n.Rect())
		}
	} else {
		for _, id := range ids {
			if n, ok := g.nodes[id]; ok {
				rects = append(rects, n.Rect())
			}
		}
	}
	return geom.Bounds(rects)
}
