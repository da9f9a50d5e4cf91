package vector

import (
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	c := []float32{1, 0}

	// Orthogonal vectors -> similarity 0
	if sim := Cosine(a, b); sim != 0 {
		t.Fatalf("Cosine(a,b) = %v, want 0", sim)
	}
	// Identical vectors -> similarity 1
	if sim := Cosine(a, c); sim != 1 {
		t.Fatalf("Cosine(a,c) = %v, want 1", sim)
	}
}

func TestCosine_Symmetric(t *testing.T) {
	vecs := [][]float32{
		{0.3, -1.2, 4.5},
		{7, 0.25, -0.5},
		{-2, -2, 1e-3},
		{1, 1, 1},
	}
	for i := range vecs {
		for j := range vecs {
			ab := Cosine(vecs[i], vecs[j])
			ba := Cosine(vecs[j], vecs[i])
			if ab != ba {
				t.Fatalf("Cosine(%d,%d)=%v != Cosine(%d,%d)=%v", i, j, ab, j, i, ba)
			}
		}
		if self := Cosine(vecs[i], vecs[i]); math.Abs(self-1) > 1e-12 {
			t.Fatalf("Cosine(v%d, v%d) = %v, want 1", i, i, self)
		}
	}
}

func TestCosine_ZeroMagnitudeIsNaN(t *testing.T) {
	if sim := Cosine([]float32{0, 0}, []float32{1, 0}); !math.IsNaN(sim) {
		t.Fatalf("Cosine(zero, x) = %v, want NaN", sim)
	}
}

func TestMagnitude(t *testing.T) {
	if m := Magnitude([]float32{3, 4}); m != 5 {
		t.Fatalf("Magnitude(3,4) = %v, want 5", m)
	}
}
