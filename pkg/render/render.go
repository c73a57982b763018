package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/schemaview/pkg/geom"
)

// Options controls path rendering.
type Options struct {
	CornerRadius float64 `toml:"corner_radius"`
}

// DefaultOptions returns a corner radius of 10.
func DefaultOptions() Options {
	return Options{CornerRadius: 10}
}

// Path is the drawable form of a route.
type Path struct {
	D           string       // SVG path data
	LabelAnchor geom.Point   // Midpoint by length
	Points      []geom.Point // Merged polyline
}

// Render merges pts, rounds its corners and computes the label anchor.
func Render(pts []geom.Point, opts Options) Path {
	merged := geom.Simplify(pts)
	return Path{
		D:           PathData(merged, opts.CornerRadius),
		LabelAnchor: LabelAnchor(merged),
		Points:      merged,
	}
}

// PathData formats pts as "M x y" followed by "L" segments, with each
// interior corner drawn as "Q corner exit". The radius at a corner is at
// most half of either adjacent segment.
func PathData(pts []geom.Point, radius float64) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, pts[0])
	for i := 1; i < len(pts)-1; i++ {
		prev, p, next := pts[i-1], pts[i], pts[i+1]
		in, out := length(prev, p), length(p, next)
		r := math.Max(0, math.Min(radius, math.Min(in, out)/2))
		if r == 0 {
			b.WriteString(" L ")
			writePoint(&b, p)
			continue
		}
		entry := lerp(p, prev, r/in)
		exit := lerp(p, next, r/out)
		b.WriteString(" L ")
		writePoint(&b, entry)
		b.WriteString(" Q ")
		writePoint(&b, p)
		b.WriteByte(' ')
		writePoint(&b, exit)
	}
	if len(pts) > 1 {
		b.WriteString(" L ")
		writePoint(&b, pts[len(pts)-1])
	}
	return b.String()
}

// LabelAnchor walks the polyline and returns the point at half its
// Manhattan length. It returns the only point of a single-point polyline
// and the zero point of an empty one.
func LabelAnchor(pts []geom.Point) geom.Point {
	switch len(pts) {
	case 0:
		return geom.Point{}
	case 1:
		return pts[0]
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += geom.Manhattan(pts[i-1], pts[i])
	}
	half := total / 2
	var walked float64
	for i := 1; i < len(pts); i++ {
		seg := geom.Manhattan(pts[i-1], pts[i])
		if seg > 0 && walked+seg >= half {
			return lerp(pts[i-1], pts[i], (half-walked)/seg)
		}
		walked += seg
	}
	return pts[len(pts)-1]
}

func length(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// lerp returns the point a fraction t of the way from a to b.
func lerp(a, b geom.Point, t float64) geom.Point {
	return geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func writePoint(b *strings.Builder, p geom.Point) {
	b.WriteString(Number(p.X))
	b.WriteByte(' ')
	b.WriteString(Number(p.Y))
}

// Number formats v with two decimals. Negative zero prints as 0.00.
func Number(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
