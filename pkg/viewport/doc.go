// Package viewport frames the camera on a laid-out diagram.
//
// A [Fitter] runs a two-state machine per invocation:
//
//  1. FramingFocus: choose the focus nodes (every node for small or
//     edgeless diagrams, otherwise the best-connected table and its direct
//     neighbors) and fit their bounding box into the view, animated.
//  2. CheckingLegibility: once that fit has settled, if the zoom ended up
//     below the comfortable zoom, drop it and center the full diagram at
//     exactly the comfortable zoom instead.
//
// Cameras map diagram coordinates to the screen as screen = p*Zoom + (X, Y).
package viewport
