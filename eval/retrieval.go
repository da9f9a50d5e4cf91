package eval

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/viant/embedbench/index"
	"github.com/viant/embedbench/vector"
)

// DefaultTopK is the neighbour count used when RetrievalOptions.TopK is zero.
const DefaultTopK = 10

// Domains lists loaded domains and their embeddings.
type Domains interface {
	Vectors
	IDs() []string
}

// Classes resolves class labels and their populations.
type Classes interface {
	ClassOf(id string) (string, error)
	PopulationOf(class string) (int, error)
}

// RetrievalOptions controls Retrieval.
type RetrievalOptions struct {
	// TopK is the number of neighbours per query; zero selects DefaultTopK
	// and a negative value lists every scorable domain.
	TopK int
	// IncludeSelf keeps the query domain in its own neighbour list, always
	// in first position. When false the query is dropped and up to TopK
	// other domains are listed.
	IncludeSelf bool
}

// Neighbor is one retrieved domain.
type Neighbor struct {
	ID    string
	Class string
	Score float64
}

// RetrievalResult holds the neighbours of one query domain.
type RetrievalResult struct {
	Query      string
	Class      string
	Population int
	Neighbors  []Neighbor
}

// IDs returns the neighbour identifiers in rank order.
func (r *RetrievalResult) IDs() []string {
	out := make([]string, len(r.Neighbors))
	for i, n := range r.Neighbors {
		out[i] = n.ID
	}
	return out
}

// Classes returns the neighbour classes in rank order.
func (r *RetrievalResult) Classes() []string {
	out := make([]string, len(r.Neighbors))
	for i, n := range r.Neighbors {
		out[i] = n.Class
	}
	return out
}

// HitRate returns the fraction of neighbours other than the query that share
// its class, NaN when there are none.
func (r *RetrievalResult) HitRate() float64 {
	hits, total := 0, 0
	for _, n := range r.Neighbors {
		if n.ID == r.Query {
			continue
		}
		total++
		if n.Class == r.Class {
			hits++
		}
	}
	if total == 0 {
		return math.NaN()
	}
	return float64(hits) / float64(total)
}

func (r *RetrievalResult) firstHit() bool {
	for _, n := range r.Neighbors {
		if n.ID != r.Query {
			return n.Class == r.Class
		}
	}
	return false
}

// Retrieval queries idx with every domain's own embedding, in load order.
// Every returned neighbour and every query must have a class label.
func Retrieval(domains Domains, idx index.Index, classes Classes, opts RetrievalOptions) ([]RetrievalResult, error) {
	k := opts.TopK
	if k == 0 {
		k = DefaultTopK
	}
	ids := domains.IDs()
	results := make([]RetrievalResult, 0, len(ids))
	for _, id := range ids {
		res, err := retrieve(domains, idx, classes, id, k, opts.IncludeSelf)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	slog.Debug("retrieval done", "queries", len(results), "top_k", k, "include_self", opts.IncludeSelf)
	return results, nil
}

func retrieve(domains Domains, idx index.Index, classes Classes, id string, k int, includeSelf bool) (*RetrievalResult, error) {
	q, ok := domains.Vector(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingVector, id)
	}
	class, err := classes.ClassOf(id)
	if err != nil {
		return nil, fmt.Errorf("eval: query %q: %w", id, err)
	}
	population, err := classes.PopulationOf(class)
	if err != nil {
		return nil, fmt.Errorf("eval: query %q: %w", id, err)
	}

	// one extra result leaves room for the query itself
	limit := k
	if k > 0 {
		limit = k + 1
	}
	got, scores, err := idx.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("eval: query %q: %w", id, err)
	}

	var self *Neighbor
	neighbors := make([]Neighbor, 0, len(got)+1)
	for i, nid := range got {
		if nid == id {
			if self == nil {
				self = &Neighbor{ID: nid, Score: scores[i]}
			}
			continue
		}
		neighbors = append(neighbors, Neighbor{ID: nid, Score: scores[i]})
	}
	if includeSelf {
		if self == nil {
			self = &Neighbor{ID: id, Score: vector.Cosine(q, q)}
		}
		neighbors = append([]Neighbor{*self}, neighbors...)
	}
	if k > 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	for i := range neighbors {
		c, err := classes.ClassOf(neighbors[i].ID)
		if err != nil {
			return nil, fmt.Errorf("eval: neighbour of %q: %w", id, err)
		}
		neighbors[i].Class = c
	}
	return &RetrievalResult{Query: id, Class: class, Population: population, Neighbors: neighbors}, nil
}

// Summary aggregates retrieval results.
type Summary struct {
	Queries int
	// MeanHitRate averages HitRate over queries that had at least one
	// neighbour other than themselves; NaN when none did.
	MeanHitRate float64
	// TopHits counts queries whose nearest other domain shares their class.
	TopHits int
}

// Summarize aggregates per-query hit rates.
func Summarize(results []RetrievalResult) Summary {
	s := Summary{Queries: len(results)}
	rates := make([]float64, 0, len(results))
	for i := range results {
		if rate := results[i].HitRate(); !math.IsNaN(rate) {
			rates = append(rates, rate)
		}
		if results[i].firstHit() {
			s.TopHits++
		}
	}
	if len(rates) == 0 {
		s.MeanHitRate = math.NaN()
		return s
	}
	s.MeanHitRate = stat.Mean(rates, nil)
	return s
}
