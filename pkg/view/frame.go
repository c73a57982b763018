package view

import (
	"github.com/matzehuels/schemaview/pkg/graph"
	"github.com/matzehuels/schemaview/pkg/highlight"
	"github.com/matzehuels/schemaview/pkg/render"
)

// Frame routes every edge against the current geometry and returns the
// renderable diagram.
func (v *View) Frame() graph.Frame {
	g := v.graph
	f := graph.Frame{
		Engine:   v.engine.Name(),
		Bounds:   g.Bounds(),
		Nodes:    make([]graph.Node, 0, len(g.Nodes)),
		Edges:    make([]graph.Edge, 0, len(g.Edges)),
		Viewport: v.fit,
	}

	for _, n := range g.Nodes {
		cols := make([]graph.Column, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = graph.Column{
				Name:        c.Name,
				Type:        c.Type,
				Primary:     c.Primary,
				Highlighted: v.hl.FieldHighlighted(n.ID, c.Name),
			}
		}
		f.Nodes = append(f.Nodes, graph.Node{
			ID:      n.ID,
			X:       n.Position.X,
			Y:       n.Position.Y,
			Width:   n.Width,
			Height:  n.Height,
			Columns: cols,
		})
	}

	routes := v.router.RouteEdges(g.Edges, v.Geometry())
	for _, e := range g.Edges {
		res, ok := routes[e.ID]
		if !ok {
			continue
		}
		p := render.Render(res.Points, v.opts.Render)
		f.Edges = append(f.Edges, graph.Edge{
			ID:          e.ID,
			Source:      graph.Endpoint{Table: e.SourceTable, Column: e.SourceColumn},
			Target:      graph.Endpoint{Table: e.TargetTable, Column: e.TargetColumn},
			Constraint:  e.Constraint,
			Label:       e.Label,
			Path:        p.D,
			LabelAnchor: p.LabelAnchor,
			Points:      p.Points,
			Highlighted: v.hl.EdgeHighlighted(e.ID),
			Emphasis:    v.hl.Emphasis(e.ID),
		})
	}

	f.Hover = hover(v.hl)
	return f
}

func hover(hl *highlight.Indexer) *graph.Hover {
	h := &graph.Hover{Edges: hl.Edges(), Fields: hl.Fields()}
	switch s := hl.State().(type) {
	case highlight.HoveredField:
		field := highlight.Field(s)
		h.Field = &field
	case highlight.HoveredEdge:
		h.Edge = s.ID
	default:
		return nil
	}
	if h.Edges == nil {
		h.Edges = []string{}
	}
	return h
}
