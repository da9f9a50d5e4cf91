package cover

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/viant/embedbench/index/bruteforce"
)

func randVec(rng *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = float32(rng.NormFloat64())
	}
	return v
}

// TestIndex_MatchesBruteForce checks the VP-tree returns the same ranking
// as an exhaustive scan.
func TestIndex_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const n, dim, k = 300, 16, 7

	ids := make([]string, n)
	vecs := make([][]float32, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("d%03d", i)
		vecs[i] = randVec(rng, dim)
	}

	vp := New()
	bf := bruteforce.New()
	// two batches exercise the lazy rebuild
	for _, r := range [][2]int{{0, n / 2}, {n / 2, n}} {
		if err := vp.Add(ids[r[0]:r[1]], vecs[r[0]:r[1]]); err != nil {
			t.Fatalf("cover Add failed: %v", err)
		}
		if err := bf.Add(ids[r[0]:r[1]], vecs[r[0]:r[1]]); err != nil {
			t.Fatalf("bruteforce Add failed: %v", err)
		}
	}

	for q := 0; q < 40; q++ {
		query := randVec(rng, dim)
		got, gotScores, err := vp.Query(query, k)
		if err != nil {
			t.Fatalf("cover Query failed: %v", err)
		}
		want, wantScores, err := bf.Query(query, k)
		if err != nil {
			t.Fatalf("bruteforce Query failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("query %d: got %d results, want %d", q, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("query %d: got %v, want %v", q, got, want)
			}
			if math.Abs(gotScores[i]-wantScores[i]) > 1e-9 {
				t.Fatalf("query %d: score[%d] = %v, want %v", q, i, gotScores[i], wantScores[i])
			}
		}
	}
}

func TestIndex_SelfQueryIsFirst(t *testing.T) {
	idx := New()
	ids := []string{"a", "b", "c", "d"}
	vecs := [][]float32{{1, 0, 0}, {0, 1, 0}, {0.5, 0.5, 0}, {0, 0, 1}}
	if err := idx.Add(ids, vecs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	for i, id := range ids {
		got, scores, err := idx.Query(vecs[i], 0)
		if err != nil {
			t.Fatalf("Query(%s) failed: %v", id, err)
		}
		if len(got) != len(ids) {
			t.Fatalf("Query(%s) returned %d ids, want %d", id, len(got), len(ids))
		}
		if got[0] != id || math.Abs(scores[0]-1) > 1e-9 {
			t.Fatalf("Query(%s) top = %s (%v), want self", id, got[0], scores[0])
		}
	}
}

func TestIndex_SkipsZeroMagnitude(t *testing.T) {
	idx := New()
	if err := idx.Add([]string{"zero", "x"}, [][]float32{{0, 0}, {1, 0}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got, _, err := idx.Query([]float32{1, 1}, 0)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("Query = %v, want [x]", got)
	}
}
