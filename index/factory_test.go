package index

import (
	"io"
	"path/filepath"
	"testing"
)

// TestNew_AllKindsAgree checks every backend returns the same ranking on a
// small, tie-free fixture.
func TestNew_AllKindsAgree(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	vecs := [][]float32{{1, 0, 0}, {0.9, 0.1, 0}, {0, 1, 0}, {-0.1, 0.2, 1}}
	want := []string{"a", "b", "c", "d"}

	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			idx, err := New(kind, Options{})
			if err != nil {
				t.Fatalf("New(%s) failed: %v", kind, err)
			}
			if c, ok := idx.(io.Closer); ok {
				defer c.Close()
			}
			if err := idx.Add(ids, vecs); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if idx.Len() != len(ids) {
				t.Fatalf("Len = %d, want %d", idx.Len(), len(ids))
			}
			got, scores, err := idx.Query([]float32{1, 0, 0}, 0)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("Query = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("Query = %v, want %v", got, want)
				}
			}
			for i := 1; i < len(scores); i++ {
				if scores[i] > scores[i-1] {
					t.Fatalf("scores not descending: %v", scores)
				}
			}
		})
	}
}

func TestNew_UnknownKind(t *testing.T) {
	if _, err := New("hnsw", Options{}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestNew_SQLiteFileStartsEmpty(t *testing.T) {
	opts := Options{DSN: filepath.Join(t.TempDir(), "bench.sqlite")}
	for run := 0; run < 2; run++ {
		idx, err := New(KindSQLite, opts)
		if err != nil {
			t.Fatalf("run %d: New failed: %v", run, err)
		}
		if idx.Len() != 0 {
			t.Fatalf("run %d: Len = %d, want 0", run, idx.Len())
		}
		if err := idx.Add([]string{"a", "b"}, [][]float32{{1, 0}, {0, 1}}); err != nil {
			t.Fatalf("run %d: Add failed: %v", run, err)
		}
		if err := idx.(io.Closer).Close(); err != nil {
			t.Fatalf("run %d: Close failed: %v", run, err)
		}
	}
}
