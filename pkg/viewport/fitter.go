package viewport

// Fitter frames a scene in two steps. Call Begin when the diagram is loaded
// or the user resets the view, then Settle with the camera the animation
// ended on.
type Fitter struct {
	Options Options

	state State
	scene Scene
	size  Size
}

// NewFitter returns an idle fitter.
func NewFitter(opts Options) *Fitter {
	return &Fitter{Options: opts}
}

// State returns the current state.
func (f *Fitter) State() State { return f.state }

// Begin enters FramingFocus and returns the animated fit of the focus nodes.
func (f *Fitter) Begin(s Scene, size Size) Move {
	f.state, f.scene, f.size = FramingFocus, s, size
	o := f.Options
	box := s.Bounds(Focus(s, o.FocusThreshold)...)
	return Move{
		Camera:   FitRect(box, size, o.Padding, o.MinZoom, o.MaxZoom),
		Animated: true,
		Duration: o.Duration,
	}
}

// Settle enters CheckingLegibility. When the settled zoom is below the
// comfortable zoom, it returns a direct move centering the whole scene at
// exactly that zoom; otherwise current is kept. Settle before Begin returns
// current unchanged.
func (f *Fitter) Settle(current Camera) Move {
	if f.state == Idle {
		return Move{Camera: current}
	}
	f.state = CheckingLegibility
	if current.Zoom >= f.Options.ComfortZoom {
		return Move{Camera: current}
	}
	return Move{Camera: Center(f.scene.Bounds().Center(), f.size, f.Options.ComfortZoom)}
}

// Fit runs both steps assuming the animation settles where it was aimed.
// It returns the focus move and the final camera.
func Fit(s Scene, size Size, opts Options) (Move, Camera) {
	f := NewFitter(opts)
	first := f.Begin(s, size)
	return first, f.Settle(first.Camera).Camera
}
