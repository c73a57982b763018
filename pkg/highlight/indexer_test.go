package highlight

import (
	"slices"
	"testing"

	"github.com/matzehuels/schemaview/pkg/diagram"
)

var shopEdges = []diagram.Edge{
	{ID: "Orders.customer_id->Customers.id::fk_orders_customers", SourceTable: "Orders", SourceColumn: "customer_id", TargetTable: "Customers", TargetColumn: "id"},
	{ID: "Items.order_id->Orders.id::fk", SourceTable: "Items", SourceColumn: "order_id", TargetTable: "Orders", TargetColumn: "id"},
	{ID: "Invoices.customer_id->Customers.id::fk", SourceTable: "Invoices", SourceColumn: "customer_id", TargetTable: "Customers", TargetColumn: "id"},
}

func TestHoverField(t *testing.T) {
	ix := New(shopEdges)
	ix.HoverField("Orders", "customer_id")

	if got, want := ix.Edges(), []string{shopEdges[0].ID}; !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	want := []Field{{"Orders", "customer_id"}, {"Customers", "id"}}
	if got := ix.Fields(); !slices.Equal(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestHoverField_Referenced(t *testing.T) {
	ix := New(shopEdges)
	ix.HoverField("Customers", "id")

	want := []string{shopEdges[0].ID, shopEdges[2].ID}
	if got := ix.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	for _, f := range []Field{{"Customers", "id"}, {"Orders", "customer_id"}, {"Invoices", "customer_id"}} {
		if !ix.FieldHighlighted(f.Table, f.Column) {
			t.Errorf("FieldHighlighted(%s) = false", f)
		}
	}
	if ix.FieldHighlighted("Orders", "id") {
		t.Error("Orders.id should not be highlighted")
	}
}

func TestHoverField_Unrelated(t *testing.T) {
	ix := New(shopEdges)
	ix.HoverField("Customers", "name")

	if len(ix.Edges()) != 0 {
		t.Errorf("Edges() = %v, want empty", ix.Edges())
	}
	if got, want := ix.Fields(), []Field{{"Customers", "name"}}; !slices.Equal(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestHoverEdge(t *testing.T) {
	ix := New(shopEdges)
	ix.HoverField("Customers", "id")
	ix.HoverEdge(shopEdges[1].ID)

	if _, ok := ix.State().(HoveredEdge); !ok {
		t.Fatalf("State() = %T, want HoveredEdge", ix.State())
	}
	if got := ix.Edges(); !slices.Equal(got, []string{shopEdges[1].ID}) {
		t.Errorf("Edges() = %v", got)
	}
	want := []Field{{"Items", "order_id"}, {"Orders", "id"}}
	if got := ix.Fields(); !slices.Equal(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}

	ix.HoverEdge("missing")
	if len(ix.Edges()) != 0 || len(ix.Fields()) != 0 {
		t.Errorf("unknown edge highlighted %v / %v", ix.Edges(), ix.Fields())
	}
}

func TestLeave(t *testing.T) {
	tests := []struct {
		name  string
		hover func(*Indexer)
		leave func(*Indexer)
		want  State
	}{
		{"matching field", func(ix *Indexer) { ix.HoverField("Orders", "customer_id") }, func(ix *Indexer) { ix.LeaveField("Orders", "customer_id") }, None{}},
		{"other field", func(ix *Indexer) { ix.HoverField("Orders", "customer_id") }, func(ix *Indexer) { ix.LeaveField("Orders", "id") }, HoveredField{"Orders", "customer_id"}},
		{"edge after field", func(ix *Indexer) { ix.HoverEdge("e") }, func(ix *Indexer) { ix.LeaveField("Orders", "customer_id") }, HoveredEdge{"e"}},
		{"matching edge", func(ix *Indexer) { ix.HoverEdge("e") }, func(ix *Indexer) { ix.LeaveEdge("e") }, None{}},
		{"other edge", func(ix *Indexer) { ix.HoverEdge("e") }, func(ix *Indexer) { ix.LeaveEdge("f") }, HoveredEdge{"e"}},
		{"clear", func(ix *Indexer) { ix.HoverEdge("e") }, func(ix *Indexer) { ix.Clear() }, None{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := New(shopEdges)
			tt.hover(ix)
			tt.leave(ix)
			if ix.State() != tt.want {
				t.Errorf("State() = %#v, want %#v", ix.State(), tt.want)
			}
		})
	}
}

func TestSetEdges_KeepsState(t *testing.T) {
	ix := New(shopEdges)
	ix.HoverEdge(shopEdges[0].ID)

	rebuilt := slices.Clone(shopEdges)
	slices.Reverse(rebuilt)
	ix.SetEdges(rebuilt)
	if !ix.EdgeHighlighted(shopEdges[0].ID) {
		t.Error("hovered edge lost across refresh")
	}

	ix.SetEdges(shopEdges[1:])
	if ix.EdgeHighlighted(shopEdges[0].ID) {
		t.Error("removed edge still highlighted")
	}
	if ix.State() != (HoveredEdge{ID: shopEdges[0].ID}) {
		t.Errorf("State() = %#v, want state kept", ix.State())
	}
}

func TestRestore(t *testing.T) {
	prev := New(shopEdges)
	prev.HoverEdge(shopEdges[1].ID)

	ix := New(shopEdges[:2])
	ix.Restore(prev.State())
	if got, want := ix.Edges(), []string{shopEdges[1].ID}; !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}

	ix.Restore(nil)
	if _, ok := ix.State().(None); !ok || ix.Active() {
		t.Errorf("Restore(nil) state = %v, want None", ix.State())
	}
}

func TestEmphasis(t *testing.T) {
	ix := New(shopEdges)
	s := DefaultStyles()
	if got := ix.Emphasis(shopEdges[0].ID); got != s.Normal {
		t.Errorf("idle Emphasis() = %+v, want normal", got)
	}
	ix.HoverField("Orders", "customer_id")
	if got := ix.Emphasis(shopEdges[0].ID); got != s.Highlighted {
		t.Errorf("Emphasis(hovered) = %+v, want highlighted", got)
	}
	if got := ix.Emphasis(shopEdges[1].ID); got != s.Dimmed {
		t.Errorf("Emphasis(other) = %+v, want dimmed", got)
	}
}
