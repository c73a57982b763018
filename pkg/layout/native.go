package layout

import (
	"context"

	"github.com/matzehuels/schemaview/pkg/dag"
	"github.com/matzehuels/schemaview/pkg/dag/transform"
	"github.com/matzehuels/schemaview/pkg/geom"
)

// Native is the built-in layered layout engine. It is deterministic and keeps
// no state between calls.
type Native struct {
	Options Options
}

// Name returns "native".
func (n *Native) Name() string { return EngineNative }

// Layout positions all boxes.
func (n *Native) Layout(ctx context.Context, boxes []Box, links []Link) (map[string]geom.Point, error) {
	return arrange(ctx, n.Options, boxes, links, n.layered)
}

func (n *Native) layered(_ context.Context, boxes []Box, links []Link) (map[string]geom.Point, error) {
	g := dag.New()
	for _, b := range boxes {
		if err := g.AddNode(dag.Node{ID: b.ID, Width: b.Width, Height: b.Height}); err != nil {
			return nil, err
		}
	}
	for _, l := range links {
		if l.From == l.To || g.HasEdge(l.From, l.To) {
			continue
		}
		if err := g.AddEdge(dag.Edge{From: l.From, To: l.To}); err != nil {
			return nil, err
		}
	}

	transform.Normalize(g)
	orders := transform.OrderRanks(g, n.Options.OrderIterations)

	centers := n.assignY(g, orders)
	xs := n.assignX(g, orders)

	pos := make(map[string]geom.Point, len(boxes))
	for _, b := range boxes {
		pos[b.ID] = geom.Point{X: xs[b.ID], Y: centers[b.ID] - b.Height/2}
	}
	normalize(boxes, pos)
	return pos, nil
}

// assignX gives every rank a column as wide as its widest node, columns
// separated by RankSep, and centers each node in its column.
func (n *Native) assignX(g *dag.DAG, orders map[int][]string) map[string]float64 {
	xs := make(map[string]float64, g.NodeCount())
	x := 0.0
	for _, r := range g.RankIDs() {
		width := 0.0
		for _, id := range orders[r] {
			node, _ := g.Node(id)
			width = max(width, node.Width)
		}
		for _, id := range orders[r] {
			node, _ := g.Node(id)
			xs[id] = x + (width-node.Width)/2
		}
		x += width + n.Options.RankSep
	}
	return xs
}

// assignY computes vertical centers. Each rank starts stacked in order; then
// every round moves nodes towards the mean center of their neighbors and
// restores the minimum gaps by averaging a forward (push down) and a
// backward (push up) resolution, which keeps order and separation.
func (n *Native) assignY(g *dag.DAG, orders map[int][]string) map[string]float64 {
	ranks := g.RankIDs()
	centers := make(map[string]float64, g.NodeCount())
	for _, r := range ranks {
		y := 0.0
		for i, id := range orders[r] {
			node, _ := g.Node(id)
			if i > 0 {
				prev, _ := g.Node(orders[r][i-1])
				y += n.gap(prev, node)
			}
			centers[id] = y
		}
	}

	rounds := n.Options.CoordinateRounds
	for round := 0; round < rounds; round++ {
		seq := ranks
		if round%2 == 1 {
			seq = reversed(ranks)
		}
		for _, r := range seq {
			n.placeRank(g, orders[r], centers)
		}
	}
	return centers
}

func (n *Native) placeRank(g *dag.DAG, ids []string, centers map[string]float64) {
	if len(ids) == 0 {
		return
	}
	desired := make([]float64, len(ids))
	nodes := make([]*dag.Node, len(ids))
	for i, id := range ids {
		nodes[i], _ = g.Node(id)
		sum, cnt := 0.0, 0
		for _, nb := range g.Predecessors(id) {
			sum += centers[nb]
			cnt++
		}
		for _, nb := range g.Successors(id) {
			sum += centers[nb]
			cnt++
		}
		desired[i] = centers[id]
		if cnt > 0 {
			desired[i] = sum / float64(cnt)
		}
	}

	down := make([]float64, len(ids))
	down[0] = desired[0]
	for i := 1; i < len(ids); i++ {
		down[i] = max(desired[i], down[i-1]+n.gap(nodes[i-1], nodes[i]))
	}
	up := make([]float64, len(ids))
	last := len(ids) - 1
	up[last] = desired[last]
	for i := last - 1; i >= 0; i-- {
		up[i] = min(desired[i], up[i+1]-n.gap(nodes[i], nodes[i+1]))
	}
	for i, id := range ids {
		centers[id] = (down[i] + up[i]) / 2
	}
}

// gap is the minimum distance between the centers of two stacked nodes.
// Dummies contribute half a separation on each side so that two tables with
// lane holders between them are still NodeSep apart.
func (n *Native) gap(a, b *dag.Node) float64 {
	sep := n.Options.NodeSep
	if a.IsDummy() || b.IsDummy() {
		sep /= 2
	}
	return a.Height/2 + b.Height/2 + sep
}

func reversed(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
