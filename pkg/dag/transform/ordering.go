package transform

import (
	"maps"
	"slices"

	"github.com/matzehuels/schemaview/pkg/dag"
)

// DefaultOrderIterations is the number of barycenter sweeps [OrderRanks]
// runs when called with a non-positive iteration count.
const DefaultOrderIterations = 12

// OrderRanks computes a crossing-reduced vertical order for every rank.
//
// It starts from insertion order and alternates forward sweeps (each rank
// sorted by the barycenter of its predecessors) with backward sweeps (by the
// barycenter of its successors), followed by an adjacent-swap pass. Every
// candidate is scored with [dag.CountCrossings] and the best one seen is
// returned; ties keep the earlier ordering. Nodes without neighbors in the
// reference rank keep their current position as barycenter, and all sorts are
// stable, so the result is deterministic.
func OrderRanks(g *dag.DAG, iterations int) map[int][]string {
	if iterations <= 0 {
		iterations = DefaultOrderIterations
	}

	ranks := g.RankIDs()
	orders := make(map[int][]string, len(ranks))
	for _, r := range ranks {
		orders[r] = dag.NodeIDs(g.NodesInRank(r))
	}

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)

	for i := 0; i < iterations && bestCrossings > 0; i++ {
		if i%2 == 0 {
			for _, r := range ranks[1:] {
				orders[r] = sortByBarycenter(g, orders[r], orders[r-1], true)
			}
		} else {
			for j := len(ranks) - 2; j >= 0; j-- {
				r := ranks[j]
				orders[r] = sortByBarycenter(g, orders[r], orders[r+1], false)
			}
		}
		transpose(g, orders, ranks)

		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			best, bestCrossings = cloneOrders(orders), c
		}
	}
	return best
}

func sortByBarycenter(g *dag.DAG, ids, ref []string, usePredecessors bool) []string {
	refPos := dag.PosMap(ref)
	type entry struct {
		id   string
		bary float64
	}
	entries := make([]entry, len(ids))
	for i, id := range ids {
		neighbors := g.Successors(id)
		if usePredecessors {
			neighbors = g.Predecessors(id)
		}
		sum, n := 0.0, 0
		for _, nb := range neighbors {
			if p, ok := refPos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		bary := float64(i)
		if n > 0 {
			bary = sum / float64(n)
		}
		entries[i] = entry{id, bary}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		switch {
		case a.bary < b.bary:
			return -1
		case a.bary > b.bary:
			return 1
		}
		return 0
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}

// transpose swaps adjacent nodes while doing so strictly lowers the local
// crossing count against both neighboring ranks.
func transpose(g *dag.DAG, orders map[int][]string, ranks []int) {
	for improved, pass := true, 0; improved && pass < len(ranks)+1; pass++ {
		improved = false
		for _, r := range ranks {
			row := orders[r]
			prevPos := dag.PosMap(orders[r-1])
			nextPos := dag.PosMap(orders[r+1])
			for k := 0; k+1 < len(row); k++ {
				a, b := row[k], row[k+1]
				keep := dag.CountPairCrossings(g, a, b, prevPos, true) + dag.CountPairCrossings(g, a, b, nextPos, false)
				swap := dag.CountPairCrossings(g, b, a, prevPos, true) + dag.CountPairCrossings(g, b, a, nextPos, false)
				if swap < keep {
					row[k], row[k+1] = b, a
					improved = true
				}
			}
		}
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for _, r := range slices.Sorted(maps.Keys(orders)) {
		out[r] = slices.Clone(orders[r])
	}
	return out
}
