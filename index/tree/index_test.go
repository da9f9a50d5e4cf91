package tree

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/viant/embedbench/index/bruteforce"
)

func TestIndex_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	const n, dim, k = 200, 8, 5

	ids := make([]string, n)
	vecs := make([][]float32, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("d%03d", i)
		vecs[i] = make([]float32, dim)
		for j := range vecs[i] {
			vecs[i][j] = float32(rng.NormFloat64())
		}
	}
	ct := New(0)
	bf := bruteforce.New()
	for i := range ids {
		if err := ct.Add(ids[i:i+1], vecs[i:i+1]); err != nil {
			t.Fatalf("tree Add failed: %v", err)
		}
	}
	if err := bf.Add(ids, vecs); err != nil {
		t.Fatalf("bruteforce Add failed: %v", err)
	}

	for q := 0; q < n; q += 9 {
		got, scores, err := ct.Query(vecs[q], k)
		if err != nil {
			t.Fatalf("tree Query failed: %v", err)
		}
		want, wantScores, err := bf.Query(vecs[q], k)
		if err != nil {
			t.Fatalf("bruteforce Query failed: %v", err)
		}
		if len(got) != k || got[0] != ids[q] {
			t.Fatalf("query %s: got %v, want self first", ids[q], got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("query %s: got %v, want %v", ids[q], got, want)
			}
			if math.Abs(scores[i]-wantScores[i]) > 1e-4 {
				t.Fatalf("query %s: score[%d] = %v, want %v", ids[q], i, scores[i], wantScores[i])
			}
		}
	}
}

func TestIndex_ZeroVector(t *testing.T) {
	idx := New(0)
	if err := idx.Add([]string{"z", "a"}, [][]float32{{0, 0}, {0, 3}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}
	got, _, err := idx.Query([]float32{0, 1}, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("Query = %v, want [a]", got)
	}
	if got, _, _ := idx.Query([]float32{0, 0}, 0); got != nil {
		t.Fatalf("zero query = %v, want nil", got)
	}
}
