package transform

import "github.com/matzehuels/schemaview/pkg/dag"

// Stats reports what [Normalize] changed.
type Stats struct {
	Reversed int // edges reversed or self loops dropped to break cycles
	Dummies  int // lane holders inserted for long edges
}

// Normalize prepares a raw relationship graph for coordinate assignment:
// cycles are broken, nodes are ranked by longest path and long edges are
// subdivided so every edge connects consecutive ranks.
func Normalize(g *dag.DAG) Stats {
	var s Stats
	s.Reversed = BreakCycles(g)
	AssignLayers(g)
	s.Dummies = Subdivide(g)
	return s
}
