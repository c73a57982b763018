package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(dup) = %v, want %v", err, ErrDuplicateNodeID)
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"ok", Edge{From: "a", To: "b"}, nil},
		{"unknown source", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() = %v, want %v", err, tt.want)
			}
		})
	}
	if !g.HasEdge("a", "b") || g.HasEdge("b", "a") {
		t.Error("HasEdge() mismatch")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	if _, ok := g.RemoveEdge("a", "b"); !ok {
		t.Fatal("RemoveEdge() = false, want true")
	}
	if g.EdgeCount() != 1 || g.OutDegree("a") != 1 || g.InDegree("b") != 1 {
		t.Errorf("parallel edge not kept: edges=%d out=%d in=%d", g.EdgeCount(), g.OutDegree("a"), g.InDegree("b"))
	}
	if _, ok := g.RemoveEdge("b", "a"); ok {
		t.Error("RemoveEdge(missing) = true, want false")
	}
}

func TestReverseEdgeMergesOpposite(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "a"})

	if !g.ReverseEdge("b", "a") {
		t.Fatal("ReverseEdge() = false")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.HasCycle() {
		t.Error("HasCycle() = true after reversal")
	}
}

func TestSetRanksKeepsInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c", "a", "b"} {
		_ = g.AddNode(Node{ID: id})
	}
	g.SetRanks(map[string]int{"c": 1, "b": 1})

	if got := NodeIDs(g.NodesInRank(1)); !slices.Equal(got, []string{"c", "b"}) {
		t.Errorf("NodesInRank(1) = %v, want [c b]", got)
	}
	if got := NodeIDs(g.NodesInRank(0)); !slices.Equal(got, []string{"a"}) {
		t.Errorf("NodesInRank(0) = %v, want [a]", got)
	}
	if g.MaxRank() != 1 {
		t.Errorf("MaxRank() = %d, want 1", g.MaxRank())
	}
}

func TestValidate(t *testing.T) {
	build := func(ranks map[string]int, edges ...[2]string) *DAG {
		g := New()
		for _, id := range []string{"a", "b", "c"} {
			_ = g.AddNode(Node{ID: id, Rank: ranks[id]})
		}
		for _, e := range edges {
			_ = g.AddEdge(Edge{From: e[0], To: e[1]})
		}
		return g
	}

	tests := []struct {
		name string
		g    *DAG
		want error
	}{
		{"chain", build(map[string]int{"b": 1, "c": 2}, [2]string{"a", "b"}, [2]string{"b", "c"}), nil},
		{"skip", build(map[string]int{"b": 1, "c": 2}, [2]string{"a", "c"}), ErrNonConsecutiveRanks},
		{"cycle", build(map[string]int{}, [2]string{"a", "b"}, [2]string{"b", "a"}), ErrNonConsecutiveRanks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHasCycle(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "c"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})
	if g.HasCycle() {
		t.Error("HasCycle() = true for chain")
	}
	_ = g.AddEdge(Edge{From: "c", To: "a"})
	if !g.HasCycle() {
		t.Error("HasCycle() = false for triangle")
	}
}

func TestCountCrossings(t *testing.T) {
	g := New()
	for _, n := range []Node{{ID: "a"}, {ID: "b"}, {ID: "x", Rank: 1}, {ID: "y", Rank: 1}, {ID: "p", Rank: 2}, {ID: "q", Rank: 2}} {
		_ = g.AddNode(n)
	}
	for _, e := range [][2]string{{"a", "y"}, {"b", "x"}, {"x", "q"}, {"y", "p"}} {
		_ = g.AddEdge(Edge{From: e[0], To: e[1]})
	}

	orders := map[int][]string{0: {"a", "b"}, 1: {"x", "y"}, 2: {"p", "q"}}
	if got := CountCrossings(g, orders); got != 2 {
		t.Errorf("CountCrossings() = %d, want 2", got)
	}
	orders[0] = []string{"b", "a"}
	orders[2] = []string{"q", "p"}
	if got := CountCrossings(g, orders); got != 0 {
		t.Errorf("CountCrossings() = %d, want 0", got)
	}
}

func TestCountPairCrossings(t *testing.T) {
	g := New()
	for _, n := range []Node{{ID: "a"}, {ID: "b"}, {ID: "x", Rank: 1}, {ID: "y", Rank: 1}} {
		_ = g.AddNode(n)
	}
	_ = g.AddEdge(Edge{From: "a", To: "y"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})

	pos := PosMap([]string{"x", "y"})
	if got := CountPairCrossings(g, "a", "b", pos, false); got != 1 {
		t.Errorf("CountPairCrossings(a,b) = %d, want 1", got)
	}
	if got := CountPairCrossings(g, "b", "a", pos, false); got != 0 {
		t.Errorf("CountPairCrossings(b,a) = %d, want 0", got)
	}
	up := PosMap([]string{"a", "b"})
	if got := CountPairCrossings(g, "x", "y", up, true); got != 1 {
		t.Errorf("CountPairCrossings(x,y,pred) = %d, want 1", got)
	}
}
