// Package render turns routed polylines into drawable edge geometry.
//
// # Overview
//
// A route from [route] is a list of axis-aligned points. Render merges
// collinear runs, rounds every corner with a quadratic curve and formats the
// result as an SVG path string:
//
//	p := render.Render(points, render.DefaultOptions())
//	fmt.Println(p.D) // M 100.00 50.00 L 190.00 50.00 Q 200.00 50.00 200.00 60.00 ...
//
// The corner radius is clamped to half of the shorter adjacent segment so
// that two consecutive curves never overlap on short segments.
//
// # Labels
//
// [LabelAnchor] returns the point halfway along the polyline, measured by
// Manhattan length. Edge labels are drawn centered on it.
//
// [route]: github.com/matzehuels/schemaview/pkg/route
package render
