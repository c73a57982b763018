package route

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"

	"github.com/matzehuels/schemaview/pkg/geom"
)

// Memo caches routing results by request. It holds at most Size entries and
// evicts the oldest first, so it never grows during long drags.
//
// Memo is not safe for concurrent use.
type Memo struct {
	size    int
	entries map[uint64]Result
	order   []uint64
	hits    int
	misses  int
}

// NewMemo returns a memo holding up to size results. A non-positive size
// returns nil; a nil *Memo routes without caching.
func NewMemo(size int) *Memo {
	if size <= 0 {
		return nil
	}
	return &Memo{size: size, entries: make(map[uint64]Result, size)}
}

// Route returns the memoized result for req or computes and stores it. The
// boolean reports a hit.
func (m *Memo) Route(req Request, opts Options) (Result, bool) {
	if m == nil {
		return Route(req, opts), false
	}
	key := requestKey(req, opts)
	if r, ok := m.entries[key]; ok {
		m.hits++
		return r, true
	}
	m.misses++
	r := Route(req, opts)
	if len(m.order) >= m.size {
		delete(m.entries, m.order[0])
		m.order = m.order[1:]
	}
	m.entries[key] = r
	m.order = append(m.order, key)
	return r, false
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Stats returns the hit and miss counts.
func (m *Memo) Stats() (hits, misses int) {
	if m == nil {
		return 0, 0
	}
	return m.hits, m.misses
}

func requestKey(req Request, opts Options) uint64 {
	h := fnv.New64a()
	writeFloats(h,
		req.Source.Point.X, req.Source.Point.Y, float64(req.Source.Side),
		req.Target.Point.X, req.Target.Point.Y, float64(req.Target.Side),
		req.Bias,
		opts.Stub, opts.DetourMargin, opts.IntersectionWeight, opts.BendWeight,
		float64(len(req.Obstacles)),
	)
	for _, o := range req.Obstacles {
		writeRect(h, o)
	}
	return h.Sum64()
}

func writeRect(h hash.Hash64, r geom.Rect) {
	writeFloats(h, r.X, r.Y, r.W, r.H)
}

func writeFloats(h hash.Hash64, vs ...float64) {
	var buf [8]byte
	for _, v := range vs {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
}
