package route

import (
	"slices"
	"testing"

	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/geom"
	"github.com/matzehuels/schemaview/pkg/observability"
)

func request(x float64) Request {
	return Request{
		Source: Anchor{Point: geom.Point{X: x, Y: 0}, Side: SideRight},
		Target: Anchor{Point: geom.Point{X: x + 300, Y: 80}, Side: SideLeft},
	}
}

func TestMemo(t *testing.T) {
	opts := DefaultOptions()
	m := NewMemo(2)

	first, hit := m.Route(request(0), opts)
	if hit {
		t.Error("first Route() hit")
	}
	again, hit := m.Route(request(0), opts)
	if !hit || !slices.Equal(again.Points, first.Points) {
		t.Errorf("second Route() hit=%v points=%v", hit, again.Points)
	}

	m.Route(request(10), opts)
	m.Route(request(20), opts) // evicts request(0)
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if _, hit := m.Route(request(0), opts); hit {
		t.Error("evicted request still cached")
	}
	hits, misses := m.Stats()
	if hits != 1 || misses != 4 {
		t.Errorf("Stats() = %d/%d, want 1/4", hits, misses)
	}
}

func TestMemo_Nil(t *testing.T) {
	var m *Memo
	if NewMemo(0) != nil {
		t.Error("NewMemo(0) should be nil")
	}
	res, hit := m.Route(request(0), DefaultOptions())
	if hit || len(res.Points) == 0 {
		t.Errorf("nil memo Route() = %v, %v", res, hit)
	}
	if m.Len() != 0 {
		t.Error("nil memo Len() != 0")
	}
}

type countingHooks struct{ routed, hits int }

func (c *countingHooks) OnEdgeRouted(_ string, _, _ int, hit bool) {
	c.routed++
	if hit {
		c.hits++
	}
}

func TestRouter_RouteEdges(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetRouteHooks(hooks)
	defer observability.Reset()

	g := newFakeGeometry().
		add("orders", geom.Rect{X: 0, Y: 0, W: 220, H: 108}).
		add("customers", geom.Rect{X: 360, Y: 0, W: 220, H: 108})
	edges := []diagram.Edge{
		{ID: "e1", SourceTable: "orders", TargetTable: "customers"},
		{ID: "ghost", SourceTable: "orders", TargetTable: "missing"},
	}

	r := NewRouter(DefaultOptions())
	routes := r.RouteEdges(edges, g)
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	r.RouteEdges(edges, g)
	if hooks.routed != 2 || hooks.hits != 1 {
		t.Errorf("hooks routed=%d hits=%d, want 2/1", hooks.routed, hooks.hits)
	}
}
