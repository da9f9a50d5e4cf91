package tree

import "github.com/viant/vec/search"

// Point is a unit-length vector stored in the tree together with the
// position of the value it was inserted for.
type Point struct {
	index  int32
	Vector []float32
}

// Index returns the insertion position of the point's value.
func (p *Point) Index() int32 { return p.index }

// NewPoint returns a point holding v scaled to unit length. ok is false for
// a zero-magnitude vector, which has no direction and cannot be stored.
func NewPoint(v []float32) (point *Point, ok bool) {
	m := search.Float32s(v).Magnitude()
	if m == 0 {
		return nil, false
	}
	unit := make([]float32, len(v))
	for i, x := range v {
		unit[i] = x / m
	}
	return &Point{index: -1, Vector: unit}, true
}
