package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given
// rank orderings, summed over each pair of consecutive ranks. Ranks missing
// from orders are treated as empty.
func CountCrossings(g *DAG, orders map[int][]string) int {
	ranks := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i < len(ranks)-1; i++ {
		r := ranks[i]
		crossings += CountLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// CountLayerCrossings counts crossings between two adjacent ranks using a
// Fenwick tree in O(E log V).
//
// Edges (u1,v1) and (u2,v2) cross iff pos(u1) < pos(u2) and pos(v1) > pos(v2),
// so the count equals the number of inversions among target positions once
// edges are sorted by source position.
func CountLayerCrossings(g *DAG, left, right []string) int {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	rightPos := PosMap(right)

	type edge struct{ left, right int }
	edges := make([]edge, 0, len(left)*2)
	for i, id := range left {
		for _, next := range g.Successors(id) {
			if pos, ok := rightPos[next]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.left != b.left {
			return a.left - b.left
		}
		return a.right - b.right
	})

	fenwick := make([]int, len(right)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.right + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.right + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// CountPairCrossings counts the crossings between the edges of two nodes
// when a is placed before b in their rank. If usePredecessors is true the
// edges to the previous rank are considered, otherwise those to the next.
// adjPos maps the adjacent rank's node IDs to their positions.
func CountPairCrossings(g *DAG, a, b string, adjPos map[string]int, usePredecessors bool) int {
	var an, bn []string
	if usePredecessors {
		an, bn = g.Predecessors(a), g.Predecessors(b)
	} else {
		an, bn = g.Successors(a), g.Successors(b)
	}

	crossings := 0
	for _, x := range an {
		xp, ok := adjPos[x]
		if !ok {
			continue
		}
		for _, y := range bn {
			if yp, ok := adjPos[y]; ok && xp > yp {
				crossings++
			}
		}
	}
	return crossings
}
