package highlight

// State is the current hover target. It is implemented only by [None],
// [HoveredField] and [HoveredEdge].
type State interface {
	state()
}

// None means nothing is hovered.
type None struct{}

// HoveredField is a hovered table column.
type HoveredField struct {
	Table  string
	Column string
}

// HoveredEdge is a hovered relationship line.
type HoveredEdge struct {
	ID string
}

func (None) state()         {}
func (HoveredField) state() {}
func (HoveredEdge) state()  {}

// Field identifies a column of a table.
type Field struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// String returns "table.column".
func (f Field) String() string { return f.Table + "." + f.Column }
