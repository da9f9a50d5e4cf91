package tree

import "github.com/viant/vec/search"

// Distance is the Euclidean distance between two unit points. For unit
// vectors it equals sqrt(2 - 2*cos), so ranking by it ranks by cosine while
// the triangle inequality needed for pruning still holds.
func Distance(p1, p2 *Point) float32 {
	return search.Float32s(p1.Vector).EuclideanDistance(p2.Vector)
}

// Cosine recovers cosine similarity from a unit-point distance.
func Cosine(d float32) float64 {
	dd := float64(d)
	return 1 - dd*dd/2
}
