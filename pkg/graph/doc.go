// Package graph provides the wire format for rendered schema diagrams.
//
// This package defines the canonical serialization of a diagram [Frame]:
// everything a rendering collaborator needs to draw the diagram without
// running any layout or routing itself. It is used for the CLI's
// .frame.json output, HTTP API responses and golden files.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and
// its consumers:
//
//   - [Frame], [Node], [Edge]: Serialization types (this package)
//   - pkg/diagram.Graph: Internal node/edge model with live positions
//   - pkg/view.View: Produces frames from the model, routes and overlays
//
// # Frame Format
//
//	{
//	  "engine": "native",
//	  "bounds": {"x": 0, "y": 0, "width": 580, "height": 108},
//	  "nodes": [
//	    {"id": "Orders", "x": 0, "y": 0, "width": 220, "height": 108,
//	     "columns": [{"name": "id", "type": "int", "primary": true}]}
//	  ],
//	  "edges": [
//	    {"id": "Orders.customer_id->Customers.id::fk",
//	     "source": {"table": "Orders", "column": "customer_id"},
//	     "target": {"table": "Customers", "column": "id"},
//	     "label": "fk", "path": "M 220.00 82.00 L 360.00 82.00",
//	     "label_anchor": {"x": 290, "y": 82}, "highlighted": false,
//	     "emphasis": {"color": "#94a3b8", "width": 1.5}}
//	  ]
//	}
//
// Common operations:
//
//	f, _ := graph.ReadFrameFile("shop.frame.json")  // File → Frame
//	graph.WriteFrameFile(f, "out.frame.json")        // Frame → File
//	data, _ := graph.MarshalFrame(f)                 // Frame → []byte
//	parsed, _ := graph.UnmarshalFrame(data)          // []byte → Frame
//
// Decoding validates referential integrity: node IDs are unique and every
// edge endpoint names a node of the frame.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
