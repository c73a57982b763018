// Package layout positions table boxes: relationships are laid out left to
// right in ranks, and tables without relationships are packed into a grid
// below them.
//
// Two engines implement [Engine]:
//
//   - [Native]: a deterministic Sugiyama-style layered layout built on
//     pkg/dag and pkg/dag/transform (cycle breaking, longest-path ranking,
//     dummy subdivision, barycenter ordering, then coordinate assignment)
//   - [Graphviz]: delegates the connected part to Graphviz dot with
//     rankdir=LR and reads the positions back
//
// Both return top-left positions keyed by box ID. Connected boxes never
// overlap, grid boxes never overlap, and the grid starts below the connected
// bounding box.
package layout
