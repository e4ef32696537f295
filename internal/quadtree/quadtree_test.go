package quadtree

import (
	"testing"

	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectBBox(r geometry.Rectangle) geometry.Rectangle { return r }

func mustRect(t *testing.T, x, y, w, h float64) geometry.Rectangle {
	t.Helper()
	r, err := geometry.NewRectangle(x, y, w, h)
	require.NoError(t, err)
	return r
}

// TestQuadtree_WorldScenario reproduces Scenario 4 verbatim: a 100x100 world,
// capacity 2, max depth 4, four named rectangles, queried against (0,0,30,30).
func TestQuadtree_WorldScenario(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	qt := New[geometry.Rectangle](world, rectBBox, 2, 4)

	a := mustRect(t, 5, 5, 10, 10)
	b := mustRect(t, 20, 20, 5, 5)
	c := mustRect(t, 60, 60, 10, 10)
	d := mustRect(t, 80, 10, 5, 5)

	for _, r := range []geometry.Rectangle{a, b, c, d} {
		require.True(t, qt.Insert(r))
	}
	assert.Equal(t, 4, qt.Size())

	query := mustRect(t, 0, 0, 30, 30)
	results := qt.QueryRange(query)

	assert.Len(t, results, 2)
	assert.Contains(t, results, a)
	assert.Contains(t, results, b)
	assert.NotContains(t, results, c)
	assert.NotContains(t, results, d)
}

func TestQuadtree_InsertOutsideBoundaryFails(t *testing.T) {
	world := mustRect(t, 0, 0, 10, 10)
	qt := New[geometry.Rectangle](world, rectBBox, 4, 4)

	outside := mustRect(t, 50, 50, 1, 1)
	assert.False(t, qt.Insert(outside))
	assert.Equal(t, 0, qt.Size())
}

func TestQuadtree_SubdividesPastCapacity(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	qt := New[geometry.Rectangle](world, rectBBox, 1, 4)

	qt.Insert(mustRect(t, 1, 1, 1, 1))
	qt.Insert(mustRect(t, 2, 2, 1, 1))
	qt.Insert(mustRect(t, 3, 3, 1, 1))

	stats := qt.Statistics()
	assert.Greater(t, stats.TotalNodes, 1, "tree must have subdivided past a single root node")
	assert.Equal(t, 3, stats.TotalObjects)
}

func TestQuadtree_MaxDepthSaturatesInsteadOfRecursingForever(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	qt := New[geometry.Rectangle](world, rectBBox, 1, 2)

	// All objects cluster in the same tiny region, forcing every
	// subdivision level to route them into the same quadrant.
	for i := 0; i < 20; i++ {
		r := mustRect(t, 1, 1, 0.01, 0.01)
		require.True(t, qt.Insert(r))
	}
	assert.Equal(t, 20, qt.Size())

	stats := qt.Statistics()
	assert.LessOrEqual(t, stats.MaxDepth, 2)
}

func TestQuadtree_QueryPointMatchesContainingObjects(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	qt := New[geometry.Rectangle](world, rectBBox, 4, 4)

	r := mustRect(t, 10, 10, 20, 20)
	qt.Insert(r)

	inside := qt.QueryPoint(geometry.Point{X: 15, Y: 15})
	assert.Contains(t, inside, r)

	outside := qt.QueryPoint(geometry.Point{X: 90, Y: 90})
	assert.Empty(t, outside)
}

func TestQuadtree_QueryNearbyFiltersByTrueDistance(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	qt := New[geometry.Rectangle](world, rectBBox, 4, 4)

	target := mustRect(t, 50, 50, 1, 1)
	near := mustRect(t, 52, 50, 1, 1)  // edge-to-edge distance 1
	far := mustRect(t, 90, 90, 1, 1)

	qt.Insert(target)
	qt.Insert(near)
	qt.Insert(far)

	results := qt.QueryNearby(target, 2)
	assert.Contains(t, results, near)
	assert.NotContains(t, results, far)
}

func TestQuadtree_FindPotentialIntersectionsCatchesOverlaps(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	// Capacity 1 forces subdivision, so the isolated rectangle ends up in a
	// different node from the overlapping pair; pairs sharing one node's
	// local list are emitted without any bounding-rectangle test.
	qt := New[geometry.Rectangle](world, rectBBox, 1, 4)

	overlapping1 := mustRect(t, 10, 10, 10, 10)
	overlapping2 := mustRect(t, 15, 15, 10, 10)
	isolated := mustRect(t, 90, 90, 5, 5)

	qt.Insert(overlapping1)
	qt.Insert(overlapping2)
	qt.Insert(isolated)

	pairs := qt.FindPotentialIntersections()
	found := false
	for _, p := range pairs {
		if (p.First == overlapping1 && p.Second == overlapping2) ||
			(p.First == overlapping2 && p.Second == overlapping1) {
			found = true
		}
		assert.NotEqual(t, isolated, p.First)
		assert.NotEqual(t, isolated, p.Second)
	}
	assert.True(t, found, "overlapping pair must appear in candidate set")
}

func TestQuadtree_ClearResetsTree(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	qt := New[geometry.Rectangle](world, rectBBox, 2, 4)

	qt.Insert(mustRect(t, 1, 1, 1, 1))
	qt.Insert(mustRect(t, 2, 2, 1, 1))
	qt.Insert(mustRect(t, 3, 3, 1, 1))
	require.Equal(t, 3, qt.Size())

	qt.Clear()
	assert.Equal(t, 0, qt.Size())
	assert.Empty(t, qt.QueryRange(world))
}

func TestQuadtree_RebuildPreservesObjectsUnderNewParameters(t *testing.T) {
	world := mustRect(t, 0, 0, 100, 100)
	qt := New[geometry.Rectangle](world, rectBBox, 1, 2)

	rects := []geometry.Rectangle{
		mustRect(t, 5, 5, 1, 1),
		mustRect(t, 50, 50, 1, 1),
		mustRect(t, 90, 90, 1, 1),
	}
	for _, r := range rects {
		require.True(t, qt.Insert(r))
	}

	qt.Rebuild(4, 6)
	assert.Equal(t, 3, qt.Size())
	for _, r := range rects {
		assert.Contains(t, qt.QueryRange(world), r)
	}
}
