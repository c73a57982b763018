package transform

import "github.com/matzehuels/schemaview/pkg/dag"

// AssignLayers ranks nodes by longest path from the sources.
//
// A topological traversal (Kahn's algorithm) places every source at rank 0
// and every other node one past its deepest predecessor, so each edge points
// strictly rightwards. The queue is seeded in insertion order. Existing ranks
// are overwritten.
//
// AssignLayers assumes the graph is acyclic; run [BreakCycles] first. Nodes on
// a cycle never reach zero in-degree and stay at rank 0.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		ranks[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, next := range g.Successors(curr) {
			if r := ranks[curr] + 1; r > ranks[next] {
				ranks[next] = r
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	g.SetRanks(ranks)
}
