package vector

import "context"

// Domain is one structural domain persisted in the store.
type Domain struct {
	// ID is the domain identifier derived from the embedding filename.
	ID string

	// Embedding is the domain's vector.
	Embedding []float32
}

// Match is a single similarity search hit.
type Match struct {
	ID    string
	Score float64
}

// Store is the persistence API for domain embeddings.
type Store interface {
	// AddDomains inserts domains; an ID already present is an error.
	AddDomains(ctx context.Context, domains []Domain) error

	// SimilaritySearch returns up to k domains ranked by decreasing cosine
	// similarity to queryEmbedding. k <= 0 returns all scorable domains.
	SimilaritySearch(ctx context.Context, queryEmbedding []float32, k int) ([]Match, error)

	// Count reports the number of stored domains.
	Count(ctx context.Context) (int, error)
}
