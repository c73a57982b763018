package diagram

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/schemaview/pkg/schema"
)

// Sizing holds the constants node boxes are measured with.
type Sizing struct {
	MinWidth  float64 `toml:"min_width"`
	CharWidth float64 `toml:"char_width"`
	HPadding  float64 `toml:"h_padding"`
	PKBonus   int     `toml:"pk_bonus"`
	Header    float64 `toml:"header"`
	RowHeight float64 `toml:"row_height"`
	VPadding  float64 `toml:"v_padding"`
}

// DefaultSizing returns the standard box metrics.
func DefaultSizing() Sizing {
	return Sizing{
		MinWidth:  220,
		CharWidth: 7.2,
		HPadding:  48,
		PKBonus:   3,
		Header:    40,
		RowHeight: 28,
		VPadding:  12,
	}
}

// Measure returns the width and height of a table box. The result does not
// depend on column order.
func (s Sizing) Measure(t schema.Table) (w, h float64) {
	longest := utf8.RuneCountInString(t.Name)
	for _, c := range t.Columns {
		n := utf8.RuneCountInString(c.Name) + utf8.RuneCountInString(c.Type)
		if c.Key.IsPrimary() {
			n += s.PKBonus
		}
		longest = max(longest, n)
	}
	w = math.Max(s.MinWidth, float64(longest)*s.CharWidth+s.HPadding)
	h = s.Header + float64(len(t.Columns))*s.RowHeight + s.VPadding
	return w, h
}

// RowCenter returns the offset from a box's top to the vertical center of
// column row i.
func (s Sizing) RowCenter(i int) float64 {
	return s.Header + float64(i)*s.RowHeight + s.RowHeight/2
}
