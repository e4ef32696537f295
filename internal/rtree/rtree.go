// Package rtree implements a bounding-rectangle-clustered spatial index per
// spec.md §4.D: entries are grouped by proximity rather than by partition,
// with node splitting on overflow using the linear-split policy.
package rtree

import (
	"sort"
	"sync"

	"github.com/arx-os/zlayout/internal/arena"
	"github.com/arx-os/zlayout/internal/geometry"
)

// MaxEntries is the maximum number of entries a node holds before splitting.
const MaxEntries = 16

// MinEntries is the minimum occupancy a non-root node must keep.
const MinEntries = 4

// BBoxFunc projects an object of type T to its bounding rectangle.
type BBoxFunc[T any] func(T) geometry.Rectangle

type entry[T any] struct {
	bbox  geometry.Rectangle
	obj   T
	child *node[T] // nil at leaf entries
}

type node[T any] struct {
	isLeaf  bool
	entries []entry[T]
}

func (n *node[T]) mbr() geometry.Rectangle {
	result := n.entries[0].bbox
	for _, e := range n.entries[1:] {
		result = result.Union(e.bbox)
	}
	return result
}

// RTree is an R-tree over objects of type T.
type RTree[T any] struct {
	mu     sync.Mutex // held by Insert/Clear/Size, not by queries (spec.md §5)
	root   *node[T]
	bboxOf BBoxFunc[T]
	count  int
	arena  *arena.Arena[node[T]]
}

// New constructs an empty RTree. Nodes are allocated from an arena, the
// same as internal/quadtree, so a tree teardown is O(arena-chunks) rather
// than O(nodes).
func New[T any](bboxOf BBoxFunc[T]) *RTree[T] {
	a := arena.New[node[T]](256)
	root := a.Allocate()
	root.isLeaf = true
	return &RTree[T]{
		root:   root,
		bboxOf: bboxOf,
		arena:  a,
	}
}

// Size returns the number of objects stored.
func (t *RTree[T]) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Clear discards every entry.
func (t *RTree[T]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena.Release()
	t.arena = arena.New[node[T]](256)
	root := t.arena.Allocate()
	root.isLeaf = true
	t.root = root
	t.count = 0
}

// Insert adds obj, routed by the bounding rectangle bboxOf projects it to.
// There is no failure path beyond memory exhaustion.
func (t *RTree[T]) Insert(obj T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bbox := t.bboxOf(obj)
	leaf := t.chooseLeaf(t.root, bbox)
	leaf.entries = append(leaf.entries, entry[T]{bbox: bbox, obj: obj})
	t.count++

	if len(leaf.entries) > MaxEntries {
		t.splitAndPropagate(leaf)
	} else {
		t.adjustAncestorMBRs(t.root, leaf)
	}
}

// chooseLeaf descends from n, at each internal node choosing the child
// whose MBR would expand least in area to accommodate bbox (ties broken by
// smaller resulting area, then by index).
func (t *RTree[T]) chooseLeaf(n *node[T], bbox geometry.Rectangle) *node[T] {
	if n.isLeaf {
		return n
	}

	bestIdx := 0
	bestEnlargement := areaEnlargement(n.entries[0].bbox, bbox)
	bestArea := n.entries[0].bbox.Union(bbox).Area()
	for i := 1; i < len(n.entries); i++ {
		enlargement := areaEnlargement(n.entries[i].bbox, bbox)
		area := n.entries[i].bbox.Union(bbox).Area()
		if enlargement < bestEnlargement ||
			(enlargement == bestEnlargement && area < bestArea) {
			bestIdx, bestEnlargement, bestArea = i, enlargement, area
		}
	}
	return t.chooseLeaf(n.entries[bestIdx].child, bbox)
}

func areaEnlargement(existing, bbox geometry.Rectangle) float64 {
	return existing.Union(bbox).Area() - existing.Area()
}

// splitAndPropagate splits an overflowing node using the linear-split
// policy and, on a root split, allocates a new root over the two halves.
func (t *RTree[T]) splitAndPropagate(n *node[T]) {
	sibling := t.linearSplit(n)

	parent, idx := t.findParent(t.root, n)
	if parent == nil {
		// n was the root.
		newRoot := t.arena.Allocate()
		newRoot.isLeaf = false
		newRoot.entries = append(newRoot.entries,
			entry[T]{bbox: n.mbr(), child: n},
			entry[T]{bbox: sibling.mbr(), child: sibling},
		)
		t.root = newRoot
		return
	}

	parent.entries[idx].bbox = n.mbr()
	parent.entries = append(parent.entries, entry[T]{bbox: sibling.mbr(), child: sibling})

	if len(parent.entries) > MaxEntries {
		t.splitAndPropagate(parent)
	} else {
		t.adjustAncestorMBRs(t.root, parent)
	}
}

// linearSplit sorts entries along the MBR's longer axis, then assigns the
// first half to the original node and the second half to a new sibling
// allocated from the tree's arena.
func (t *RTree[T]) linearSplit(n *node[T]) *node[T] {
	mbr := n.mbr()
	entries := n.entries

	if mbr.Width >= mbr.Height {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].bbox.Center().X < entries[j].bbox.Center().X
		})
	} else {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].bbox.Center().Y < entries[j].bbox.Center().Y
		})
	}

	mid := len(entries) / 2
	sibling := t.arena.Allocate()
	sibling.isLeaf = n.isLeaf
	sibling.entries = append([]entry[T]{}, entries[mid:]...)
	n.entries = append([]entry[T]{}, entries[:mid]...)
	return sibling
}

// findParent locates target's immediate parent node and its index within
// the parent's entries, searching from root. Returns (nil, -1) if target
// is the root.
func (t *RTree[T]) findParent(n *node[T], target *node[T]) (*node[T], int) {
	if n.isLeaf {
		return nil, -1
	}
	for i, e := range n.entries {
		if e.child == target {
			return n, i
		}
	}
	for _, e := range n.entries {
		if p, idx := t.findParent(e.child, target); p != nil {
			return p, idx
		}
	}
	return nil, -1
}

// adjustAncestorMBRs recomputes the MBR for every ancestor of descendant on
// the path from n.
func (t *RTree[T]) adjustAncestorMBRs(n *node[T], descendant *node[T]) bool {
	if n == descendant {
		return true
	}
	if n.isLeaf {
		return false
	}
	for i := range n.entries {
		if t.adjustAncestorMBRs(n.entries[i].child, descendant) {
			n.entries[i].bbox = n.entries[i].child.mbr()
			return true
		}
	}
	return false
}

// QueryRange returns every object whose bounding rectangle intersects r.
func (t *RTree[T]) QueryRange(r geometry.Rectangle) []T {
	var results []T
	t.queryRange(t.root, r, &results)
	return results
}

func (t *RTree[T]) queryRange(n *node[T], r geometry.Rectangle, results *[]T) {
	for _, e := range n.entries {
		if !e.bbox.Intersects(r) {
			continue
		}
		if n.isLeaf {
			*results = append(*results, e.obj)
		} else {
			t.queryRange(e.child, r, results)
		}
	}
}

// QueryPoint returns every object whose bounding rectangle contains p.
func (t *RTree[T]) QueryPoint(p geometry.Point) []T {
	return t.QueryRange(geometry.Rectangle{X: p.X, Y: p.Y, Width: 0, Height: 0})
}

// Remove is left unimplemented in this milestone: it always returns false.
// Callers must not rely on removal succeeding; a future milestone that
// adds incremental updates will implement proper node condensation.
func (t *RTree[T]) Remove(obj T) bool {
	return false
}

// Statistics summarizes the tree's current shape.
type Statistics struct {
	TotalNodes   int
	LeafCount    int
	Height       int
	TotalObjects int
}

// Statistics walks the tree and reports its current shape.
func (t *RTree[T]) Statistics() Statistics {
	var stats Statistics
	t.walkStats(t.root, 0, &stats)
	return stats
}

func (t *RTree[T]) walkStats(n *node[T], depth int, stats *Statistics) {
	stats.TotalNodes++
	if depth > stats.Height {
		stats.Height = depth
	}
	if n.isLeaf {
		stats.LeafCount++
		stats.TotalObjects += len(n.entries)
		return
	}
	for _, e := range n.entries {
		t.walkStats(e.child, depth+1, stats)
	}
}
