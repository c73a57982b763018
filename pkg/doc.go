// Package pkg provides the core libraries of schemaview, which draws
// relational schemas as diagrams.
//
// # Overview
//
// A schema snapshot (tables, ordered columns and foreign keys) becomes a
// diagram of table boxes joined by orthogonal relationship lines. The pkg
// directory is organized by pipeline stage:
//
//  1. [schema] - Snapshot input model, JSON/TOML readers and validation
//  2. [diagram] - Table nodes, relationship edges and their stable IDs
//  3. [dag], [layout] - Layered placement of connected tables, grid packing
//     of isolated ones
//  4. [route], [render] - Orthogonal routing and SVG path rendering
//  5. [highlight], [viewport] - Hover state and camera framing
//  6. [view], [pipeline] - The interactive view model and the
//     snapshot-to-frame runner with layout caching
//  7. [graph] - The Frame wire format consumed by rendering clients
//
// # Architecture
//
// The data flow through schemaview:
//
//	schema.Snapshot
//	      ↓
//	diagram.Build      (nodes sized from columns, edges keyed by ID)
//	      ↓
//	layout.Engine      (native Sugiyama or graphviz)
//	      ↓
//	route.Router       (8 candidates per edge, scored and memoized)
//	      ↓
//	render.Render      (merged polyline, rounded corners, label anchor)
//	      ↓
//	graph.Frame        (+ highlight emphasis and viewport camera)
//
// # Quick Start
//
//	snap, _ := schema.ReadFile("shop.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, snap, pipeline.Options{Hover: "orders.customer_id"})
//	_ = graph.WriteFrameFile(res.Frame, "shop.frame.json")
//
// Supporting packages: [cache] stores computed layouts, [observability]
// exposes hooks for metrics, [errors] defines the coded errors every
// package returns and [geom] holds the shared geometry types.
//
// [schema]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/schema
// [diagram]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/diagram
// [dag]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/dag
// [layout]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/layout
// [route]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/route
// [render]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/render
// [highlight]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/highlight
// [viewport]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/viewport
// [view]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/view
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/pipeline
// [graph]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/errors
// [geom]: https://pkg.go.dev/github.com/matzehuels/schemaview/pkg/geom
package pkg
