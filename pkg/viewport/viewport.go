package viewport

import (
	"math"
	"time"

	"github.com/matzehuels/schemaview/pkg/diagram"
	"github.com/matzehuels/schemaview/pkg/geom"
)

// State is the fitter's position in its state machine.
type State int

const (
	Idle State = iota
	FramingFocus
	CheckingLegibility
)

func (s State) String() string {
	switch s {
	case FramingFocus:
		return "framing-focus"
	case CheckingLegibility:
		return "checking-legibility"
	default:
		return "idle"
	}
}

// Size is the visible area in screen pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Camera is a pan and zoom.
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Move is a camera change, applied over Duration when Animated.
type Move struct {
	Camera   Camera        `json:"camera"`
	Animated bool          `json:"animated"`
	Duration time.Duration `json:"duration"`
}

// Options are the framing constants.
type Options struct {
	Padding        float64       `toml:"padding"`                         // Fraction of the focus box added around it
	Duration       time.Duration `toml:"duration"`                        // Animation length of the focus fit
	MinZoom        float64       `toml:"min_zoom"`
	MaxZoom        float64       `toml:"max_zoom"`
	ComfortZoom    float64       `toml:"comfort_zoom" env:"COMFORT_ZOOM"` // Smallest zoom at which text stays legible
	FocusThreshold int           `toml:"focus_threshold"`                 // Diagrams up to this size are framed whole
}

// DefaultOptions returns the standard framing constants.
func DefaultOptions() Options {
	return Options{
		Padding:        0.2,
		Duration:       400 * time.Millisecond,
		MinZoom:        0.1,
		MaxZoom:        1.5,
		ComfortZoom:    0.72,
		FocusThreshold: 8,
	}
}

// Scene is the geometry a fit works on. Links are (source, target) node
// pairs in edge-list order.
type Scene struct {
	IDs   []string
	Rects map[string]geom.Rect
	Links [][2]string
}

// FromGraph returns the scene of a positioned diagram.
func FromGraph(g *diagram.Graph) Scene {
	s := Scene{IDs: g.NodeIDs(), Rects: make(map[string]geom.Rect, len(g.Nodes))}
	for _, id := range s.IDs {
		s.Rects[id], _ = g.NodeRect(id)
	}
	for _, e := range g.Edges {
		s.Links = append(s.Links, [2]string{e.SourceTable, e.TargetTable})
	}
	return s
}

// Bounds returns the bounding box of the given nodes, or of every node when
// ids is empty.
func (s Scene) Bounds(ids ...string) geom.Rect {
	if len(ids) == 0 {
		ids = s.IDs
	}
	rects := make([]geom.Rect, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.Rects[id]; ok {
			rects = append(rects, r)
		}
	}
	return geom.Bounds(rects)
}

// Focus returns the nodes to frame first, in scene order.
func Focus(s Scene, threshold int) []string {
	if len(s.IDs) <= threshold || len(s.Links) == 0 {
		return s.IDs
	}
	hub := Hub(s.Links)
	keep := map[string]bool{hub: true}
	for _, l := range s.Links {
		switch hub {
		case l[0]:
			keep[l[1]] = true
		case l[1]:
			keep[l[0]] = true
		}
	}
	var out []string
	for _, id := range s.IDs {
		if keep[id] {
			out = append(out, id)
		}
	}
	return out
}

// Hub returns the node with the most link endpoints. Ties go to the node
// seen first when walking the links in order.
func Hub(links [][2]string) string {
	degree := make(map[string]int)
	var seen []string
	for _, l := range links {
		for _, id := range l {
			if _, ok := degree[id]; !ok {
				seen = append(seen, id)
			}
			degree[id]++
		}
	}
	var hub string
	best := 0
	for _, id := range seen {
		if degree[id] > best {
			hub, best = id, degree[id]
		}
	}
	return hub
}

// FitRect returns the camera that centers r in the view with the given
// fractional padding, zoom clamped to [lo, hi].
func FitRect(r geom.Rect, size Size, padding, lo, hi float64) Camera {
	zoom := hi
	if r.W > 0 || r.H > 0 {
		zx := size.Width / (r.W * (1 + padding))
		zy := size.Height / (r.H * (1 + padding))
		zoom = math.Min(zx, zy)
	}
	if math.IsNaN(zoom) {
		zoom = hi
	}
	zoom = math.Max(lo, math.Min(hi, zoom))
	return Center(r.Center(), size, zoom)
}

// Center returns the camera that shows c in the middle of the view at zoom.
func Center(c geom.Point, size Size, zoom float64) Camera {
	return Camera{X: size.Width/2 - c.X*zoom, Y: size.Height/2 - c.Y*zoom, Zoom: zoom}
}
