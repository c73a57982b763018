package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonConsecutiveRanks is returned by [DAG.Validate] when an edge
	// connects nodes that are not in adjacent ranks (From.Rank+1 != To.Rank).
	ErrNonConsecutiveRanks = errors.New("edges must connect consecutive ranks")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a directed cycle
	// is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// NodeKind distinguishes table nodes from synthetic lane holders.
type NodeKind int

const (
	// NodeKindTable is a node that stands for a table box in the diagram.
	NodeKindTable NodeKind = iota
	// NodeKindDummy is a zero-size node inserted by subdivision so that a
	// relationship spanning several ranks occupies one slot per rank.
	NodeKindDummy
)

// Node is a vertex of the rank graph.
//
// Width and Height carry the box size of table nodes; dummies are zero-size.
// Origin is set on dummies to the "from->to" key of the edge they subdivide.
type Node struct {
	ID     string
	Rank   int
	Kind   NodeKind
	Width  float64
	Height float64
	Origin string
}

// IsDummy reports whether the node was inserted by subdivision.
func (n Node) IsDummy() bool { return n.Kind == NodeKindDummy }

// Edge is a directed connection used for ranking. Reversed is set when the
// direction was flipped to break a cycle; the drawn relationship keeps its
// original direction.
type Edge struct {
	From     string
	To       string
	Reversed bool
}

// Key returns the "from->to" identity of the edge.
func (e Edge) Key() string { return e.From + "->" + e.To }

// DAG is a directed graph organized into ranks for layered layout. Nodes
// iterate in insertion order everywhere, which keeps every algorithm built on
// top of it deterministic.
//
// The zero value is not usable; create instances with [New].
// DAG is not safe for concurrent use.
type DAG struct {
	nodes    map[string]*Node
	order    []*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
	ranks    map[int][]*Node
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		ranks:    make(map[int][]*Node),
	}
}

// AddNode appends a node and indexes it by rank.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node)
	d.ranks[node.Rank] = append(d.ranks[node.Rank], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Parallel edges are
// allowed; use [DAG.HasEdge] to collapse them.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether an edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	return slices.Contains(d.outgoing[from], to)
}

// RemoveEdge removes the first edge from→to and returns it.
// It returns false if no such edge exists.
func (d *DAG) RemoveEdge(from, to string) (Edge, bool) {
	i := slices.IndexFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	if i < 0 {
		return Edge{}, false
	}
	e := d.edges[i]
	d.edges = slices.Delete(d.edges, i, i+1)
	if j := slices.Index(d.outgoing[from], to); j >= 0 {
		d.outgoing[from] = slices.Delete(d.outgoing[from], j, j+1)
	}
	if j := slices.Index(d.incoming[to], from); j >= 0 {
		d.incoming[to] = slices.Delete(d.incoming[to], j, j+1)
	}
	return e, true
}

// ReverseEdge flips the first edge from→to in place of removing it. If the
// opposite edge already exists the two are merged. It returns false if no
// edge from→to exists.
func (d *DAG) ReverseEdge(from, to string) bool {
	e, ok := d.RemoveEdge(from, to)
	if !ok {
		return false
	}
	if d.HasEdge(to, from) {
		return true
	}
	_ = d.AddEdge(Edge{From: to, To: from, Reversed: !e.Reversed})
	return true
}

// SetRanks updates the rank of the given nodes and rebuilds the rank index.
// Nodes missing from the map keep their rank. Within a rank, nodes stay in
// insertion order.
func (d *DAG) SetRanks(ranks map[string]int) {
	d.ranks = make(map[int][]*Node)
	for _, n := range d.order {
		if r, ok := ranks[n.ID]; ok {
			n.Rank = r
		}
		d.ranks[n.Rank] = append(d.ranks[n.Rank], n)
	}
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return len(d.order) }

// EdgeCount returns the number of edges.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Successors returns the targets of edges leaving id. The slice is a
// read-only view.
func (d *DAG) Successors(id string) []string { return d.outgoing[id] }

// Predecessors returns the sources of edges entering id. The slice is a
// read-only view.
func (d *DAG) Predecessors(id string) []string { return d.incoming[id] }

// OutDegree returns the number of edges leaving id.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of edges entering id.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// NodesInRank returns the nodes of a rank in insertion order.
func (d *DAG) NodesInRank(rank int) []*Node { return d.ranks[rank] }

// RankIDs returns all occupied ranks in ascending order.
func (d *DAG) RankIDs() []int { return slices.Sorted(maps.Keys(d.ranks)) }

// MaxRank returns the highest rank, or 0 for an empty graph.
func (d *DAG) MaxRank() int {
	ids := d.RankIDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Sources returns nodes without incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.order {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Validate checks that every edge connects existing nodes in consecutive
// ranks and that the graph is acyclic.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		src, okS := d.nodes[e.From]
		dst, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
		if dst.Rank != src.Rank+1 {
			return ErrNonConsecutiveRanks
		}
	}
	if d.HasCycle() {
		return ErrGraphHasCycle
	}
	return nil
}

// HasCycle reports whether the graph contains a directed cycle.
func (d *DAG) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.order))
	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		for _, next := range d.outgoing[id] {
			switch color[next] {
			case white:
				if dfs(next) {
					return true
				}
			case gray:
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, n := range d.order {
		if color[n.ID] == white && dfs(n.ID) {
			return true
		}
	}
	return false
}

// PosMap maps each ID to its index in ids.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID of each node, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
