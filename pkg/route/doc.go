// Package route draws relationships as orthogonal polylines that avoid the
// table boxes they pass.
//
// [Route] is a pure function of a [Request]: two anchors on node borders,
// the obstacles around them and a lane bias. It generates exactly eight
// candidates (two mid-splits, the same two shifted by the bias, and four
// detours around the obstacles) and keeps the one with the lowest score:
//
//	IntersectionWeight × crossing segments + Manhattan length + BendWeight × bends
//
// Routing never fails: in a congested diagram the least bad candidate wins.
//
// [Build] turns a diagram edge into a Request using a [Geometry] that reports
// the current node rectangles, [Lanes] spreads edges leaving the same table
// over parallel lanes, and [Memo] caches results for unchanged requests.
package route
