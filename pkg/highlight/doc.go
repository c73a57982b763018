// Package highlight derives hover emphasis for a diagram.
//
// The hover state is a closed sum type: [None], [HoveredField] or
// [HoveredEdge]. Exactly one is current at any time, so a hovered field and
// a hovered edge can never coexist.
//
// An [Indexer] recomputes two derived sets on every state change:
//
//   - highlighted edges: every edge whose source or target field is the
//     hovered field, plus the hovered edge itself
//   - highlighted fields: the hovered field plus both endpoints of every
//     highlighted edge
//
// Highlighting is presentation only. Layout and routing never consult it.
package highlight
