package route

import (
	"cmp"
	"hash/fnv"
	"math"
	"slices"

	"github.com/matzehuels/schemaview/pkg/diagram"
)

// Lanes returns the bias of every edge. Edges leaving the same table are
// sorted by the vertical center of their target (ties by ID) and spread over
// symmetric integer offsets times LaneSpacing; a jitter derived from the
// edge ID separates otherwise identical candidates.
func Lanes(edges []diagram.Edge, g Geometry, opts Options) map[string]float64 {
	groups := make(map[string][]diagram.Edge)
	var order []string
	for _, e := range edges {
		if _, ok := groups[e.SourceTable]; !ok {
			order = append(order, e.SourceTable)
		}
		groups[e.SourceTable] = append(groups[e.SourceTable], e)
	}

	centerY := func(id string) float64 {
		r, _ := g.NodeRect(id)
		return r.Center().Y
	}

	bias := make(map[string]float64, len(edges))
	for _, src := range order {
		group := groups[src]
		slices.SortStableFunc(group, func(a, b diagram.Edge) int {
			if c := cmp.Compare(centerY(a.TargetTable), centerY(b.TargetTable)); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		offsets := LaneOffsets(len(group))
		for i, e := range group {
			bias[e.ID] = float64(offsets[i])*opts.LaneSpacing + Jitter(e.ID, opts.Jitter)
		}
	}
	return bias
}

// LaneOffsets returns n symmetric integer offsets around zero: -k..k for odd
// n and -n/2..-1, 1..n/2 for even n.
func LaneOffsets(n int) []int {
	out := make([]int, n)
	half := n / 2
	for i := range out {
		switch {
		case n%2 == 1:
			out[i] = i - half
		case i < half:
			out[i] = i - half
		default:
			out[i] = i - half + 1
		}
	}
	return out
}

// Jitter maps an edge ID to a stable offset in [-amplitude, amplitude]
// using FNV-1a.
func Jitter(id string, amplitude float64) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	frac := float64(h.Sum32()) / math.MaxUint32
	return (frac*2 - 1) * amplitude
}
