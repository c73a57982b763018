package highlight

// Emphasis is the stroke used to draw an edge.
type Emphasis struct {
	Color string  `json:"color" toml:"color"`
	Width float64 `json:"width" toml:"width"`
	Dash  string  `json:"dash,omitempty" toml:"dash"`
}

// Styles holds the three edge strokes.
type Styles struct {
	Normal      Emphasis `toml:"normal"`      // Nothing hovered
	Highlighted Emphasis `toml:"highlighted"` // In the highlighted set
	Dimmed      Emphasis `toml:"dimmed"`      // Something else is hovered
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Normal:      Emphasis{Color: "#94a3b8", Width: 1.5},
		Highlighted: Emphasis{Color: "#2563eb", Width: 2.5},
		Dimmed:      Emphasis{Color: "#cbd5e1", Width: 1, Dash: "4 4"},
	}
}

// Emphasis returns the stroke for the edge with the given ID.
func (ix *Indexer) Emphasis(id string) Emphasis {
	switch {
	case ix.hiEdge[id]:
		return ix.Styles.Highlighted
	case ix.Active():
		return ix.Styles.Dimmed
	default:
		return ix.Styles.Normal
	}
}
