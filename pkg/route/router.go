package route

import (
	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/observability"
)

// Router routes every edge of a diagram against the current geometry.
type Router struct {
	Options Options
	memo    *Memo
}

// NewRouter returns a router with a memo of opts.MemoSize entries.
func NewRouter(opts Options) *Router {
	return &Router{Options: opts, memo: NewMemo(opts.MemoSize)}
}

// Memo returns the router's memo, which may be nil.
func (r *Router) Memo() *Memo { return r.memo }

// RouteEdges routes edges in order. Edges whose endpoints g does not know
// are skipped.
func (r *Router) RouteEdges(edges []diagram.Edge, g Geometry) map[string]Result {
	hooks := observability.Route()
	lanes := Lanes(edges, g, r.Options)
	out := make(map[string]Result, len(edges))
	for _, e := range edges {
		req, ok := Build(e, g, lanes[e.ID], r.Options)
		if !ok {
			continue
		}
		res, hit := r.memo.Route(req, r.Options)
		hooks.OnEdgeRouted(e.ID, len(res.Candidates), res.Intersections(), hit)
		out[e.ID] = res
	}
	return out
}
