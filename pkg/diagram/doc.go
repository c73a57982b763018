// Package diagram turns a schema snapshot into the unpositioned node/edge
// graph every later stage works on.
//
// [Build] sizes one [Node] per table and one [Edge] per foreign key whose
// tables are both present. Node sizes depend only on the table name and its
// columns, and edge IDs only on the foreign key, so rebuilding from the same
// snapshot yields the same graph:
//
//	orders.customer_id->customers.id::fk_orders_customer
//
// Positions start at (0,0) and are owned by the [Graph] afterwards: layout
// engines write them with [Graph.SetPositions], drags move single nodes with
// [Graph.Move].
package diagram
