// Package tree adapts the internal cover tree to the index contract. Vectors
// are stored as unit points so the tree's Euclidean metric ranks by cosine.
package tree

import (
	"fmt"

	cover "github.com/viant/embedbench/internal/cover/tree"
)

// DefaultBase is the cover-tree expansion base.
const DefaultBase float32 = 1.3

// Index is an incrementally built cover-tree index.
type Index struct {
	tree *cover.Tree
	ids  []string // by tree insertion index
	dim  int
	n    int
}

// New returns an empty index with the given base (<= 1 selects DefaultBase).
func New(base float32) *Index {
	if base <= 1 {
		base = DefaultBase
	}
	return &Index{tree: cover.New(base)}
}

// Add inserts each vector into the tree. Zero-magnitude vectors are counted
// but not indexed.
func (i *Index) Add(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("tree: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	for j, v := range vectors {
		if i.dim == 0 {
			i.dim = len(v)
		}
		if len(v) != i.dim {
			return fmt.Errorf("tree: inconsistent vector dims for %q: %d vs %d", ids[j], len(v), i.dim)
		}
	}
	for j, v := range vectors {
		i.n++
		point, ok := cover.NewPoint(v)
		if !ok {
			continue
		}
		i.tree.Insert(point)
		i.ids = append(i.ids, ids[j])
	}
	return nil
}

// Len reports the number of added vectors, indexed or not.
func (i *Index) Len() int { return i.n }

// Query returns up to k ids by decreasing cosine similarity.
func (i *Index) Query(query []float32, k int) ([]string, []float64, error) {
	if i.tree.Len() == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("tree: query dim %d != index dim %d", len(query), i.dim)
	}
	point, ok := cover.NewPoint(query)
	if !ok {
		return nil, nil, nil
	}
	found := i.tree.KNearestNeighbors(point, k)
	ids := make([]string, len(found))
	scores := make([]float64, len(found))
	for n, nb := range found {
		ids[n] = i.ids[nb.Point.Index()]
		scores[n] = cover.Cosine(nb.Distance)
	}
	return ids, scores, nil
}
