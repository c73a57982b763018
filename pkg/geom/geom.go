// Package geom holds the small amount of plane geometry shared by layout,
// routing and viewport fitting: points, axis-aligned rectangles and
// orthogonal segments. Coordinates are screen-like: x grows right, y grows
// down.
package geom

import "math"

// Point is a position in diagram space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Sanitize replaces non-finite coordinates with 0.
func (p Point) Sanitize() Point {
	return Point{finite(p.X), finite(p.Y)}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Manhattan returns |dx| + |dy| between p and q.
func Manhattan(p, q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// RectFromPoints returns the bounding box of the given points.
func RectFromPoints(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Right returns the x coordinate of the right border.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom border.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x, y := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	return Rect{X: x, Y: y, W: math.Max(r.Right(), o.Right()) - x, H: math.Max(r.Bottom(), o.Bottom()) - y}
}

// Overlaps reports whether the interiors of r and o intersect. Rectangles
// that only share a border do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// OverlapsX reports whether the horizontal extents of r and o intersect.
func (r Rect) OverlapsX(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right()
}

// Bounds returns the union of all rects, or the zero Rect when empty.
func Bounds(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	b := rects[0]
	for _, r := range rects[1:] {
		b = b.Union(r)
	}
	return b
}

// SegmentIntersects reports whether the axis-aligned segment a–b passes
// through the interior of r. Touching the border does not count.
func SegmentIntersects(a, b Point, r Rect) bool {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return minX < r.Right() && maxX > r.X && minY < r.Bottom() && maxY > r.Y
}

// Simplify drops repeated points and interior points that continue the
// direction of the previous segment. Reversals are kept.
func Simplify(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
next:
	for _, p := range pts {
		for {
			n := len(out)
			switch {
			case n > 0 && out[n-1] == p:
				continue next
			case n >= 2 && continues(out[n-2], out[n-1], p):
				out = out[:n-1]
			default:
				out = append(out, p)
				continue next
			}
		}
	}
	return out
}

// continues reports whether b-c extends a-b along the same axis and
// direction.
func continues(a, b, c Point) bool {
	if a.X == b.X && b.X == c.X {
		return (b.Y-a.Y)*(c.Y-b.Y) > 0
	}
	if a.Y == b.Y && b.Y == c.Y {
		return (b.X-a.X)*(c.X-b.X) > 0
	}
	return false
}
