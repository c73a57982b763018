package view

import (
	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/highlight"
	"github.com/matzehuels/schemaview/pkg/layout"
	"github.com/matzehuels/schemaview/pkg/render"
	"github.com/matzehuels/schemaview/pkg/route"
	"github.com/matzehuels/schemaview/pkg/viewport"
)

// Options gathers the constants of every stage.
type Options struct {
	Engine   string
	Sizing   diagram.Sizing
	Layout   layout.Options
	Route    route.Options
	Render   render.Options
	Viewport viewport.Options
	Styles   highlight.Styles
}

// DefaultOptions returns the native engine with default constants.
func DefaultOptions() Options {
	return Options{
		Engine:   layout.EngineNative,
		Sizing:   diagram.DefaultSizing(),
		Layout:   layout.DefaultOptions(),
		Route:    route.DefaultOptions(),
		Render:   render.DefaultOptions(),
		Viewport: viewport.DefaultOptions(),
		Styles:   highlight.DefaultStyles(),
	}
}
