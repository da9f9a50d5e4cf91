package cover

import (
	"container/heap"
	"errors"
	"math"
	"sort"
)

// Index implements a cosine kNN index using a VP-tree to prune search.
// The tree is rebuilt lazily on the first Query after an Add.
type Index struct {
	ids   []string
	vecs  [][]float32
	mags  []float64
	dim   int
	root  *node
	dirty bool
}

type node struct {
	idx   int // index into ids/vecs
	thr   float64
	left  *node
	right *node
}

// New returns an empty index.
func New() *Index { return &Index{} }

// Add appends vectors and caches magnitudes.
func (i *Index) Add(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return errors.New("cover: ids/vectors length mismatch")
	}
	for j := range vectors {
		if i.dim == 0 {
			i.dim = len(vectors[j])
		}
		if len(vectors[j]) != i.dim {
			return errors.New("cover: inconsistent dims")
		}
	}
	for j := range vectors {
		i.mags = append(i.mags, magnitude(vectors[j]))
	}
	i.ids = append(i.ids, ids...)
	i.vecs = append(i.vecs, vectors...)
	i.dirty = len(ids) > 0 || i.dirty
	return nil
}

// Len reports the number of stored vectors.
func (i *Index) Len() int { return len(i.ids) }

func (i *Index) build() {
	idxs := make([]int, 0, len(i.vecs))
	for k := range i.vecs {
		if i.mags[k] > 0 {
			idxs = append(idxs, k)
		}
	}
	i.root = i.buildVP(idxs)
	i.dirty = false
}

func (i *Index) buildVP(idxs []int) *node {
	if len(idxs) == 0 {
		return nil
	}
	// last element is the vantage point, keeping builds deterministic
	vp := idxs[len(idxs)-1]
	idxs = idxs[:len(idxs)-1]
	if len(idxs) == 0 {
		return &node{idx: vp}
	}
	dists := make([]float64, len(idxs))
	for k, j := range idxs {
		dists[k] = angular(i.vecs[vp], i.mags[vp], i.vecs[j], i.mags[j])
	}
	order := make([]int, len(idxs))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	mid := len(order) / 2
	thr := dists[order[mid]]
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(idxs)-(mid+1))
	for rank, k := range order {
		if rank <= mid {
			left = append(left, idxs[k])
		} else {
			right = append(right, idxs[k])
		}
	}
	return &node{idx: vp, thr: thr, left: i.buildVP(left), right: i.buildVP(right)}
}

// Query returns up to k ids ordered by decreasing cosine similarity. Equal
// scores keep insertion order.
func (i *Index) Query(query []float32, k int) ([]string, []float64, error) {
	if i.dim == 0 || len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, errors.New("cover: query dim mismatch")
	}
	qm := magnitude(query)
	if qm == 0 {
		return nil, nil, nil
	}
	if i.dirty {
		i.build()
	}
	if k <= 0 || k > len(i.vecs) {
		k = len(i.vecs)
	}
	h := &candidates{}
	// slack absorbs acos rounding so ties on the pruning boundary are visited
	const slack = 1e-6
	var search func(n *node)
	search = func(n *node) {
		if n == nil {
			return
		}
		d := angular(query, qm, i.vecs[n.idx], i.mags[n.idx])
		c := candidate{idx: n.idx, dist: d}
		if h.Len() < k {
			heap.Push(h, c)
		} else if c.before((*h)[0]) {
			(*h)[0] = c
			heap.Fix(h, 0)
		}
		tau := math.Inf(1)
		if h.Len() == k {
			tau = (*h)[0].dist
		}
		if d < n.thr {
			if d-tau-slack <= n.thr {
				search(n.left)
			}
			if h.Len() == k {
				tau = (*h)[0].dist
			}
			if d+tau+slack >= n.thr {
				search(n.right)
			}
		} else {
			if d+tau+slack >= n.thr {
				search(n.right)
			}
			if h.Len() == k {
				tau = (*h)[0].dist
			}
			if d-tau-slack <= n.thr {
				search(n.left)
			}
		}
	}
	search(i.root)

	found := []candidate(*h)
	sort.Slice(found, func(a, b int) bool { return found[a].before(found[b]) })
	ids := make([]string, len(found))
	scores := make([]float64, len(found))
	for n, c := range found {
		ids[n] = i.ids[c.idx]
		scores[n] = cosine(query, qm, i.vecs[c.idx], i.mags[c.idx])
	}
	return ids, scores, nil
}

type candidate struct {
	idx  int
	dist float64
}

func (c candidate) before(o candidate) bool {
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	return c.idx < o.idx
}

// candidates is a max-heap on (dist, idx) keeping the current k best.
type candidates []candidate

func (h candidates) Len() int            { return len(h) }
func (h candidates) Less(a, b int) bool  { return h[b].before(h[a]) }
func (h candidates) Swap(a, b int)       { h[a], h[b] = h[b], h[a] }
func (h *candidates) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *candidates) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func magnitude(v []float32) float64 { return math.Sqrt(dot(v, v)) }

func cosine(a []float32, am float64, b []float32, bm float64) float64 {
	return dot(a, b) / (am * bm)
}

// angular is the angle between a and b in radians.
func angular(a []float32, am float64, b []float32, bm float64) float64 {
	c := cosine(a, am, b, bm)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}
