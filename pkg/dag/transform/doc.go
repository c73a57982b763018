// Package transform prepares a relationship graph for layered layout.
//
// # Overview
//
// Foreign keys form arbitrary directed graphs: schemas contain cycles
// (employees.manager_id → employees, mutual references between two tables)
// and relationships that skip several ranks. Coordinate assignment needs a
// graph where:
//
//   - There are no directed cycles
//   - Every node has a rank, and every edge points to the next rank
//   - Each rank has an order that keeps crossings low
//
// [Normalize] applies cycle breaking, ranking and subdivision in order;
// [OrderRanks] computes the per-rank order afterwards.
//
// # Cycle Breaking
//
// [BreakCycles] reverses back edges found by a depth-first search. Unlike
// dropping edges, reversal keeps every relationship in the ranking so mutual
// references still end up in neighboring ranks.
//
// # Ranking
//
// [AssignLayers] computes longest-path ranks with Kahn's algorithm: tables
// that hold foreign keys are placed left of the tables they reference.
//
// # Subdivision
//
// [Subdivide] breaks edges spanning several ranks into chains of zero-size
// dummy nodes. Dummies reserve vertical room in the ranks they cross, which
// keeps long relationships from being drawn through unrelated tables.
//
// # Ordering
//
// [OrderRanks] runs barycenter sweeps with an adjacent-swap refinement and
// keeps the ordering with the fewest crossings.
//
// # Usage
//
//	stats := transform.Normalize(g)
//	orders := transform.OrderRanks(g, transform.DefaultOrderIterations)
package transform
