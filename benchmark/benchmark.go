// Package benchmark enumerates labeled domain pairs with a binary same-class
// target. Pairs are produced lazily by Stream; Build materializes them.
package benchmark

// Labeler resolves domain classes.
type Labeler interface {
	Has(id string) bool
	ClassOf(id string) (string, error)
}

// Pair is one unordered pair of labeled domains.
type Pair struct {
	A, B string
	Same bool
}

// Label returns the binary target: 1 for same class, 0 otherwise.
func (p Pair) Label() int {
	if p.Same {
		return 1
	}
	return 0
}

// Source yields pairs until it returns false.
type Source interface {
	Next() (Pair, bool)
}

// Stream produces every labeled unordered pair of ids exactly once. The last
// remaining id is removed from the working list and paired with every id
// still in it, in order, until the list is empty. Pairs where either side
// has no label are skipped. A Stream is consumed once and cannot restart.
type Stream struct {
	labels Labeler
	ids    []string

	head      string
	headClass string
	rest      int // next position in ids to pair with head
	active    bool

	positives, negatives int
}

// NewStream returns a stream over ids. ids is copied.
func NewStream(ids []string, labels Labeler) *Stream {
	return &Stream{labels: labels, ids: append([]string(nil), ids...)}
}

// Next returns the next pair.
func (s *Stream) Next() (Pair, bool) {
	for {
		if !s.active {
			n := len(s.ids)
			if n == 0 {
				return Pair{}, false
			}
			s.head, s.ids = s.ids[n-1], s.ids[:n-1]
			s.rest, s.active = 0, true
			if !s.labels.Has(s.head) {
				s.rest = len(s.ids)
			} else {
				s.headClass, _ = s.labels.ClassOf(s.head)
			}
		}
		for s.rest < len(s.ids) {
			j := s.ids[s.rest]
			s.rest++
			if !s.labels.Has(j) {
				continue
			}
			class, _ := s.labels.ClassOf(j)
			p := Pair{A: s.head, B: j, Same: class == s.headClass}
			if p.Same {
				s.positives++
			} else {
				s.negatives++
			}
			return p, true
		}
		s.active = false
	}
}

// Positives reports the same-class pairs produced so far.
func (s *Stream) Positives() int { return s.positives }

// Negatives reports the different-class pairs produced so far.
func (s *Stream) Negatives() int { return s.negatives }

// Count reports the pairs produced so far.
func (s *Stream) Count() int { return s.positives + s.negatives }

// Benchmark is the materialized pair set. It is immutable.
type Benchmark struct {
	pairs                []Pair
	positives, negatives int
}

// Build drains a Stream over ids into a Benchmark.
func Build(ids []string, labels Labeler) *Benchmark {
	s := NewStream(ids, labels)
	b := &Benchmark{}
	for p, ok := s.Next(); ok; p, ok = s.Next() {
		b.pairs = append(b.pairs, p)
	}
	b.positives, b.negatives = s.Positives(), s.Negatives()
	return b
}

// Len reports the number of pairs.
func (b *Benchmark) Len() int { return len(b.pairs) }

// Positives reports the number of same-class pairs.
func (b *Benchmark) Positives() int { return b.positives }

// Negatives reports the number of different-class pairs.
func (b *Benchmark) Negatives() int { return b.negatives }

// Pairs returns a copy of the pairs in generation order.
func (b *Benchmark) Pairs() []Pair { return append([]Pair(nil), b.pairs...) }

// Source returns a fresh Source over the materialized pairs.
func (b *Benchmark) Source() Source { return &sliceSource{pairs: b.pairs} }

type sliceSource struct {
	pairs []Pair
	pos   int
}

func (s *sliceSource) Next() (Pair, bool) {
	if s.pos >= len(s.pairs) {
		return Pair{}, false
	}
	p := s.pairs[s.pos]
	s.pos++
	return p, true
}
