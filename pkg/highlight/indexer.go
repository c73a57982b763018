package highlight

import "github.com/matzehuels/schemaview/pkg/diagram"

// Indexer holds the hover state of one diagram and the sets derived from it.
// It is not safe for concurrent use.
type Indexer struct {
	Styles Styles

	state  State
	edges  []diagram.Edge
	known  map[string]bool
	hiEdge map[string]bool
	hiList []string
	hiFld  map[Field]bool
	fields []Field
}

// New returns an indexer over edges with nothing hovered.
func New(edges []diagram.Edge) *Indexer {
	ix := &Indexer{Styles: DefaultStyles(), state: None{}}
	ix.SetEdges(edges)
	return ix
}

// State returns the current hover state.
func (ix *Indexer) State() State { return ix.state }

// HoverField makes the given column the hover target, replacing any hovered
// edge.
func (ix *Indexer) HoverField(table, column string) {
	ix.set(HoveredField{Table: table, Column: column})
}

// HoverEdge makes the given edge the hover target, replacing any hovered
// field.
func (ix *Indexer) HoverEdge(id string) {
	ix.set(HoveredEdge{ID: id})
}

// LeaveField clears the state if the given column is the hover target.
// Leaving anything else is a no-op.
func (ix *Indexer) LeaveField(table, column string) {
	if ix.state == (HoveredField{Table: table, Column: column}) {
		ix.set(None{})
	}
}

// LeaveEdge clears the state if the given edge is the hover target.
func (ix *Indexer) LeaveEdge(id string) {
	if ix.state == (HoveredEdge{ID: id}) {
		ix.set(None{})
	}
}

// Restore sets the state directly, e.g. one taken from another indexer.
// A nil state is None.
func (ix *Indexer) Restore(s State) {
	if s == nil {
		s = None{}
	}
	ix.set(s)
}

// Clear resets the state to None.
func (ix *Indexer) Clear() { ix.set(None{}) }

// SetEdges replaces the edge list after a graph refresh. The hover state is
// kept; because edge IDs are stable across rebuilds, a hovered edge stays
// highlighted when it still exists.
func (ix *Indexer) SetEdges(edges []diagram.Edge) {
	ix.edges = edges
	ix.known = make(map[string]bool, len(edges))
	for _, e := range edges {
		ix.known[e.ID] = true
	}
	ix.derive()
}

func (ix *Indexer) set(s State) {
	ix.state = s
	ix.derive()
}

func (ix *Indexer) derive() {
	ix.hiEdge = make(map[string]bool)
	ix.hiFld = make(map[Field]bool)
	ix.hiList, ix.fields = nil, nil

	addField := func(f Field) {
		if !ix.hiFld[f] {
			ix.hiFld[f] = true
			ix.fields = append(ix.fields, f)
		}
	}

	var hovered Field
	switch s := ix.state.(type) {
	case HoveredField:
		hovered = Field(s)
		addField(hovered)
	case HoveredEdge:
		if !ix.known[s.ID] {
			return
		}
	default:
		return
	}

	for _, e := range ix.edges {
		src := Field{Table: e.SourceTable, Column: e.SourceColumn}
		tgt := Field{Table: e.TargetTable, Column: e.TargetColumn}
		var match bool
		switch s := ix.state.(type) {
		case HoveredField:
			match = src == hovered || tgt == hovered
		case HoveredEdge:
			match = e.ID == s.ID
		}
		if !match || ix.hiEdge[e.ID] {
			continue
		}
		ix.hiEdge[e.ID] = true
		ix.hiList = append(ix.hiList, e.ID)
		addField(src)
		addField(tgt)
	}
}

// Active reports whether anything is hovered.
func (ix *Indexer) Active() bool {
	_, none := ix.state.(None)
	return !none
}

// Edges returns the highlighted edge IDs in edge-list order.
func (ix *Indexer) Edges() []string { return ix.hiList }

// Fields returns the highlighted fields, the hovered field first, then
// edge endpoints in edge-list order.
func (ix *Indexer) Fields() []Field { return ix.fields }

// EdgeHighlighted reports whether the edge is in the highlighted set.
func (ix *Indexer) EdgeHighlighted(id string) bool { return ix.hiEdge[id] }

// FieldHighlighted reports whether the column is in the highlighted set.
func (ix *Indexer) FieldHighlighted(table, column string) bool {
	return ix.hiFld[Field{Table: table, Column: column}]
}
