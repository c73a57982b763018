// Package dag provides the rank graph used by the layered layout engine.
//
// # Overview
//
// Schema diagrams are drawn left to right: a table holding a foreign key sits
// in an earlier rank than the table it references. This package provides the
// data structure that organizes table nodes into ranks, with helpers to check
// that edges only connect consecutive ranks once long edges are subdivided.
//
// Unlike a map-backed graph, [DAG] remembers insertion order. [DAG.Nodes],
// [DAG.Sources] and [DAG.NodesInRank] all iterate in the order nodes were
// added, so identical input always produces identical layouts.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "orders", Width: 220, Height: 136})
//	g.AddNode(dag.Node{ID: "customers", Width: 220, Height: 108})
//	g.AddEdge(dag.Edge{From: "orders", To: "customers"})
//
// # Node Types
//
//   - [NodeKindTable]: a table box with a width and height
//   - [NodeKindDummy]: a zero-size lane holder created when an edge spans
//     more than one rank
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings between adjacent
// ranks with a Fenwick tree in O(E log V), which keeps the barycenter sweeps
// in the transform package cheap to score. [CountPairCrossings] scores a
// single adjacent swap.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
//
// The [transform] subpackage provides cycle breaking, ranking, subdivision
// and crossing-reduction ordering.
//
// [transform]: github.com/matzehuels/schemaview/pkg/dag/transform
package dag
