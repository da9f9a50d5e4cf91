package index

// Index is a cosine-geometry nearest-neighbour index.
type Index interface {
	// Add inserts vectors under the given ids. ids and vectors must have the
	// same length. Entries are never updated or removed.
	Add(ids []string, vectors [][]float32) error

	// Query returns up to k ids ordered by decreasing cosine similarity to
	// query, together with their scores. k <= 0 returns every scorable entry.
	// An entry whose id matches the query's own domain is not filtered.
	Query(query []float32, k int) (ids []string, scores []float64, err error)

	// Len reports how many entries were added.
	Len() int
}
