package route

import (
	"math"

	"github.com/matzehuels/schemaview/pkg/geom"
)

// Side is the node border an anchor sits on.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// dir is the x direction pointing away from the node.
func (s Side) dir() float64 {
	if s == SideLeft {
		return -1
	}
	return 1
}

// Options holds the routing constants.
type Options struct {
	Stub               float64 `toml:"stub"`
	ObstaclePadding    float64 `toml:"obstacle_padding"`
	CorridorMargin     float64 `toml:"corridor_margin"`
	DetourMargin       float64 `toml:"detour_margin"`
	LaneSpacing        float64 `toml:"lane_spacing"`
	Jitter             float64 `toml:"jitter"`
	IntersectionWeight float64 `toml:"intersection_weight"`
	BendWeight         float64 `toml:"bend_weight"`
	MemoSize           int     `toml:"memo_size"`
}

// DefaultOptions returns the standard routing constants.
func DefaultOptions() Options {
	return Options{
		Stub:               24,
		ObstaclePadding:    12,
		CorridorMargin:     160,
		DetourMargin:       24,
		LaneSpacing:        14,
		Jitter:             1.5,
		IntersectionWeight: 7000,
		BendWeight:         22,
		MemoSize:           1024,
	}
}

// Anchor is a route endpoint on a node border.
type Anchor struct {
	Point geom.Point
	Side  Side
}

// Stub returns the end of the perpendicular stub leaving the anchor.
func (a Anchor) Stub(length float64) geom.Point {
	return geom.Point{X: a.Point.X + a.Side.dir()*length, Y: a.Point.Y}
}

// Request is everything a single route depends on.
type Request struct {
	Source    Anchor
	Target    Anchor
	Obstacles []geom.Rect
	Bias      float64
}

// Candidate is one scored polyline.
type Candidate struct {
	Points        []geom.Point
	Intersections int
	Length        float64
	Bends         int
	Score         float64
}

// Result is the chosen polyline and every candidate that was scored. Chosen
// indexes Candidates, or is -1 when the anchors coincide and no candidates
// were generated.
type Result struct {
	Points     []geom.Point
	Candidates []Candidate
	Chosen     int
}

// Intersections returns the obstacle intersections of the chosen candidate.
func (r Result) Intersections() int {
	if r.Chosen < 0 {
		return 0
	}
	return r.Candidates[r.Chosen].Intersections
}

// Route computes the polyline for req. Non-finite coordinates are treated as
// zero; coincident anchors collapse to the anchor and its stub.
func Route(req Request, opts Options) Result {
	req.Source.Point = req.Source.Point.Sanitize()
	req.Target.Point = req.Target.Point.Sanitize()
	if math.IsNaN(req.Bias) || math.IsInf(req.Bias, 0) {
		req.Bias = 0
	}

	if req.Source.Point == req.Target.Point {
		return Result{
			Points: geom.Simplify([]geom.Point{req.Source.Point, req.Source.Stub(opts.Stub)}),
			Chosen: -1,
		}
	}

	cands := candidates(req, opts)
	best := 0
	for i := range cands {
		score(&cands[i], req.Obstacles, opts)
		if cands[i].Score < cands[best].Score {
			best = i
		}
	}
	return Result{Points: cands[best].Points, Candidates: cands, Chosen: best}
}

// candidates generates the eight polylines in a fixed order: horizontal
// mid-split, vertical mid-split, both again shifted by the bias, then the
// left, right, top and bottom detours.
func candidates(req Request, opts Options) []Candidate {
	src, tgt := req.Source.Point, req.Target.Point
	s := req.Source.Stub(opts.Stub)
	t := req.Target.Stub(opts.Stub)

	// Facing sides split halfway; same-facing sides turn at the outer stub.
	midX := (s.X + t.X) / 2
	if req.Source.Side == req.Target.Side {
		if req.Source.Side == SideRight {
			midX = math.Max(s.X, t.X)
		} else {
			midX = math.Min(s.X, t.X)
		}
	}
	midY := (s.Y + t.Y) / 2

	area := geom.RectFromPoints(s, t)
	for _, o := range req.Obstacles {
		area = area.Union(o)
	}
	left := area.X - opts.DetourMargin
	right := area.Right() + opts.DetourMargin
	top := area.Y - opts.DetourMargin
	bottom := area.Bottom() + opts.DetourMargin

	hSplit := func(x float64) []geom.Point {
		return []geom.Point{src, s, {X: x, Y: s.Y}, {X: x, Y: t.Y}, t, tgt}
	}
	vSplit := func(y float64) []geom.Point {
		return []geom.Point{src, s, {X: s.X, Y: y}, {X: t.X, Y: y}, t, tgt}
	}

	paths := [][]geom.Point{
		hSplit(midX),
		vSplit(midY),
		hSplit(midX + req.Bias),
		vSplit(midY + req.Bias),
		hSplit(left),
		hSplit(right),
		vSplit(top),
		vSplit(bottom),
	}

	out := make([]Candidate, len(paths))
	for i, p := range paths {
		out[i] = Candidate{Points: geom.Simplify(p)}
	}
	return out
}

func score(c *Candidate, obstacles []geom.Rect, opts Options) {
	c.Intersections, c.Length = 0, 0
	for i := 1; i < len(c.Points); i++ {
		a, b := c.Points[i-1], c.Points[i]
		c.Length += geom.Manhattan(a, b)
		for _, o := range obstacles {
			if geom.SegmentIntersects(a, b, o) {
				c.Intersections++
				break
			}
		}
	}
	c.Bends = max(len(c.Points)-2, 0)
	c.Score = opts.IntersectionWeight*float64(c.Intersections) + c.Length + opts.BendWeight*float64(c.Bends)
}
