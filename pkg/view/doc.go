// Package view is the diagram view model.
//
// A [View] owns one diagram: the table graph with its live positions, the
// router and its memo, the hover state and the last camera fit. It reacts
// to the events a diagram UI produces and renders a [graph.Frame] on
// demand:
//
//	v, _ := view.New(view.DefaultOptions(), logger)
//	v.Load(ctx, snapshot)
//	v.AutoLayout(ctx)
//	v.HoverField("Orders", "customer_id")
//	v.Fit(viewport.Size{Width: 1280, Height: 800})
//	frame := v.Frame()
//
// Routes are recomputed from the current geometry on every [View.Frame]
// call. Identical requests hit the router's bounded memo, so repeated
// frames during a drag stay cheap.
//
// A View is not safe for concurrent use. Servers guard each view with its
// own lock.
//
// [graph.Frame]: github.com/matzehuels/schemaview/pkg/graph#Frame
package view
