package vector

import "math"

// Cosine returns dot(a,b) / (|a| * |b|) accumulated in float64.
//
// No guard is applied: a zero-magnitude operand yields NaN, which callers
// are expected to propagate into whatever metric consumes the score.
// Mismatched lengths are compared over the shorter prefix for the dot
// product while the norms cover each full vector.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (Magnitude(a) * Magnitude(b))
}

// Magnitude returns the Euclidean norm of v.
func Magnitude(v []float32) float64 {
	var s float64
	for _, x := range v {
		s += float64(x) * float64(x)
	}
	return math.Sqrt(s)
}
