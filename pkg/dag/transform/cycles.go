package transform

import "github.com/matzehuels/schemaview/pkg/dag"

// BreakCycles makes g acyclic by reversing back edges and returns how many
// edges were reversed. Self loops cannot be ranked and are removed; they
// count towards the result.
//
// The depth-first search starts from sources in insertion order and then
// visits any remaining node in insertion order, so the same graph always
// loses the same edges. Reversed edges carry [dag.Edge.Reversed]; the
// relationship they stand for is still drawn in its original direction.
func BreakCycles(g *dag.DAG) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges [][2]string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, next := range g.Successors(id) {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				backEdges = append(backEdges, [2]string{id, next})
			}
		}
		color[id] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	reversed := 0
	for _, e := range backEdges {
		if e[0] == e[1] {
			if _, ok := g.RemoveEdge(e[0], e[1]); ok {
				reversed++
			}
			continue
		}
		if g.ReverseEdge(e[0], e[1]) {
			reversed++
		}
	}
	return reversed
}
