package transform

import (
	"fmt"

	"github.com/matzehuels/schemaview/pkg/dag"
)

// Subdivide replaces every edge spanning more than one rank with a chain of
// zero-size [dag.NodeKindDummy] nodes, one per intermediate rank, and returns
// the number of dummies added.
//
//	Before: order_items (rank 0) → customers (rank 2)
//	After:  order_items → order_items->customers#1 → customers
//
// Dummies record the original edge in Origin and every segment keeps the
// edge's Reversed flag. Generated IDs never collide with existing nodes; a
// numeric suffix is appended when needed.
func Subdivide(g *dag.DAG) int {
	gen := newIDGen(g.Nodes())
	added := 0

	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Rank <= src.Rank+1 {
			continue
		}

		g.RemoveEdge(e.From, e.To)
		prev := src.ID
		for r := src.Rank + 1; r < dst.Rank; r++ {
			id := gen.next(e.Key(), r)
			if err := g.AddNode(dag.Node{ID: id, Rank: r, Kind: dag.NodeKindDummy, Origin: e.Key()}); err != nil {
				panic(err)
			}
			if err := g.AddEdge(dag.Edge{From: prev, To: id, Reversed: e.Reversed}); err != nil {
				panic(err)
			}
			prev = id
			added++
		}
		if err := g.AddEdge(dag.Edge{From: prev, To: dst.ID, Reversed: e.Reversed}); err != nil {
			panic(err)
		}
	}
	return added
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, rank int) string {
	prefix := fmt.Sprintf("%s#%d", base, rank)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
