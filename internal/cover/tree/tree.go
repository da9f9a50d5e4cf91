package tree

// The insertion and per-node radius pruning follow github.com/viant/gds/tree/cover.

import (
	"container/heap"
	"math"
	"sort"
)

// slack absorbs float32 rounding in distance bounds.
const slack = 1e-5

// Node is a cover-tree node.
type Node struct {
	level          int32
	baseLevel      float32
	point          *Point
	children       []Node
	radius         float32
	radiusComputed uint64
}

func newNode(point *Point, level int32, base float32) Node {
	return Node{
		level:     level,
		baseLevel: float32(math.Pow(float64(base), float64(level))),
		point:     point,
	}
}

// Tree is a cover tree over unit points.
type Tree struct {
	root    *Node
	base    float32
	size    int32
	version uint64
}

// New constructs a cover tree; base <= 1 falls back to 1.3.
func New(base float32) *Tree {
	if base <= 1 {
		base = 1.3
	}
	return &Tree{base: base}
}

// Len reports how many points were inserted.
func (t *Tree) Len() int { return int(t.size) }

// Insert adds point and returns its insertion index.
func (t *Tree) Insert(point *Point) int32 {
	point.index = t.size
	t.size++
	if t.root == nil {
		node := newNode(point, 0, t.base)
		t.root = &node
	} else {
		t.insert(t.root, point, 0)
	}
	t.version++
	return point.index
}

func (t *Tree) insert(node *Node, point *Point, level int32) {
	for {
		baseLevel := float32(math.Pow(float64(t.base), float64(level)))
		if Distance(point, node.point) < baseLevel {
			inserted := false
			for i := range node.children {
				child := &node.children[i]
				if Distance(point, child.point) < baseLevel {
					node = child
					level--
					inserted = true
					break
				}
			}
			if !inserted {
				node.children = append(node.children, newNode(point, level-1, t.base))
				return
			}
		} else {
			level++
			if level > node.level {
				newRoot := newNode(point, level, t.base)
				newRoot.children = append(newRoot.children, *t.root)
				t.root = &newRoot
				return
			}
		}
	}
}

// KNearestNeighbors runs a depth-first kNN search and returns neighbours
// ordered by ascending distance, ties by insertion index. k <= 0 returns
// every point.
func (t *Tree) KNearestNeighbors(point *Point, k int) []Neighbor {
	if t.root == nil {
		return nil
	}
	if k <= 0 || k > int(t.size) {
		k = int(t.size)
	}
	h := &Neighbors{}
	t.kNearestNeighbors(t.root, point, k, h)
	result := make([]Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(Neighbor)
	}
	return result
}

func (t *Tree) kNearestNeighbors(node *Node, point *Point, k int, h *Neighbors) {
	candidate := Neighbor{Point: node.point, Distance: Distance(point, node.point)}
	if h.Len() < k {
		heap.Push(h, candidate)
	} else if candidate.before((*h)[0]) {
		(*h)[0] = candidate
		heap.Fix(h, 0)
	}
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float32
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: Distance(point, child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if h.Len() == k && cd.dist-t.radius(cd.child)-slack > (*h)[0].Distance {
			continue
		}
		t.kNearestNeighbors(cd.child, point, k, h)
	}
}

// radius bounds the distance from n to any point of its subtree; it is
// cached per tree version.
func (t *Tree) radius(n *Node) float32 {
	if n.radiusComputed == t.version {
		return n.radius
	}
	maxR := float32(0)
	for i := range n.children {
		child := &n.children[i]
		if d := Distance(n.point, child.point) + t.radius(child); d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	n.radiusComputed = t.version
	return maxR
}
