package hierarchical

import (
	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/objectid"
	"github.com/arx-os/zlayout/internal/quadtree"
	"github.com/arx-os/zlayout/internal/rtree"
)

const (
	blockQuadtreeCapacity = 100
	blockQuadtreeMaxDepth = 8
)

// block is one node of the IP-block tree. The root block owns every
// object not yet routed into a more specific descendant.
type block[T any] struct {
	id       objectid.ID
	name     string
	boundary geometry.Rectangle
	level    int
	parent   *block[T]
	children []*block[T]

	quad *quadtree.Quadtree[T]
	rtr  *rtree.RTree[T]
}

func newBlock[T any](name string, boundary geometry.Rectangle, level int, parent *block[T], bboxOf quadtree.BBoxFunc[T]) *block[T] {
	return &block[T]{
		id:       objectid.New(),
		name:     name,
		boundary: boundary,
		level:    level,
		parent:   parent,
		quad:     quadtree.New[T](boundary, bboxOf, blockQuadtreeCapacity, blockQuadtreeMaxDepth),
		rtr:      rtree.New[T](func(obj T) geometry.Rectangle { return bboxOf(obj) }),
	}
}

// insert places obj into both of the block's owned indices.
func (b *block[T]) insert(obj T) bool {
	if !b.quad.Insert(obj) {
		return false
	}
	b.rtr.Insert(obj)
	return true
}

// clear empties both of the block's owned indices.
func (b *block[T]) clear() {
	b.quad.Clear()
	b.rtr.Clear()
}

// size returns the number of objects the block directly owns.
func (b *block[T]) size() int {
	return b.quad.Size()
}

// quadrantBoundary computes one of the four equal-quadrant subdivisions of
// parent, in NW/NE/SW/SE order. Mirrors internal/quadtree's own
// subdivision formula (unexported there), since blocks subdivide their
// declared boundary independently of whatever quadtree sits inside them.
func quadrantBoundary(parent geometry.Rectangle, idx int) geometry.Rectangle {
	hw, hh := parent.Width/2, parent.Height/2
	switch idx {
	case 0: // NW
		return geometry.Rectangle{X: parent.X, Y: parent.Y + hh, Width: hw, Height: hh}
	case 1: // NE
		return geometry.Rectangle{X: parent.X + hw, Y: parent.Y + hh, Width: hw, Height: hh}
	case 2: // SW
		return geometry.Rectangle{X: parent.X, Y: parent.Y, Width: hw, Height: hh}
	default: // SE
		return geometry.Rectangle{X: parent.X + hw, Y: parent.Y, Width: hw, Height: hh}
	}
}
