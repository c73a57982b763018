package pipeline

import (
	"github.com/matzehuels/schemaview/pkg/graph"
	"github.com/matzehuels/schemaview/pkg/view"
	"github.com/matzehuels/schemaview/pkg/viewport"
)

// Frame applies the hover and camera settings of opts to a positioned view
// and returns its frame. Unknown hover targets are reported with the view's
// UNKNOWN_TABLE, NOT_FOUND or UNKNOWN_EDGE errors.
func (r *Runner) Frame(v *view.View, opts Options) (graph.Frame, error) {
	if opts.Hover != "" {
		target, err := ParseHover(opts.Hover)
		if err != nil {
			return graph.Frame{}, err
		}
		if target.Edge != "" {
			err = v.HoverEdge(target.Edge)
		} else {
			err = v.HoverField(target.Table, target.Column)
		}
		if err != nil {
			return graph.Frame{}, err
		}
	}
	if !opts.NoFit {
		v.Fit(viewport.Size{Width: opts.Width, Height: opts.Height})
	}
	return v.Frame(), nil
}
