package geom

import (
	"math"
	"slices"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"shared border", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"apart", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
		{"partial", Rect{X: 8, Y: 8, W: 5, H: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.o); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentIntersects(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 10, H: 10}
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"through", Point{0, 15}, Point{30, 15}, true},
		{"along border", Point{0, 10}, Point{30, 10}, false},
		{"short of", Point{0, 15}, Point{10, 15}, false},
		{"vertical through", Point{15, 0}, Point{15, 30}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentIntersects(tt.a, tt.b, r); got != tt.want {
				t.Errorf("SegmentIntersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsAndUnion(t *testing.T) {
	b := Bounds([]Rect{{X: 0, Y: 0, W: 10, H: 10}, {X: 20, Y: -5, W: 5, H: 5}})
	want := Rect{X: 0, Y: -5, W: 25, H: 15}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if Bounds(nil) != (Rect{}) {
		t.Error("Bounds(nil) not zero")
	}
}

func TestSanitize(t *testing.T) {
	p := Point{math.NaN(), math.Inf(1)}.Sanitize()
	if p != (Point{}) {
		t.Errorf("Sanitize() = %+v, want zero", p)
	}
}

func TestRectFromPoints(t *testing.T) {
	r := RectFromPoints(Point{5, 1}, Point{-1, 3})
	if r != (Rect{X: -1, Y: 1, W: 6, H: 2}) {
		t.Errorf("RectFromPoints() = %+v", r)
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		in   []Point
		want []Point
	}{
		{"duplicates", []Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		{"collinear", []Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}},
		{"reversal kept", []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 0}}, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 0}}},
		{"corner kept", []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}, []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simplify(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Simplify() = %v, want %v", got, tt.want)
			}
		})
	}
}
