package geometry

import (
	"testing"

	"github.com/arx-os/zlayout/internal/coreerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) *Polygon {
	p, err := NewPolygon([]Point{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	})
	if err != nil {
		panic(err)
	}
	return p
}

func TestNewPolygon_RejectsTooFewVertices(t *testing.T) {
	_, err := NewPolygon([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.Error(t, err)
	assert.True(t, coreerr.Of(err, coreerr.InvalidShape))
}

func TestPolygon_AreaMatchesSignedArea(t *testing.T) {
	p := square(0, 0, 10)
	assert.InDelta(t, p.Area(), p.SignedArea(), 1e-9)
	assert.Equal(t, p.SignedArea() < 0, p.IsClockwise())
}

func TestPolygon_VertexAngleRange(t *testing.T) {
	p := square(0, 0, 10)
	for i := range p.Vertices {
		theta := p.VertexAngle(i)
		assert.GreaterOrEqual(t, theta, 0.0)
		assert.LessOrEqual(t, theta, 180.0)
		assert.InDelta(t, 90.0, theta, 1e-6)
	}
}

func TestPolygon_ContainsPointRoundTrip(t *testing.T) {
	p := square(0, 0, 10)
	assert.True(t, p.ContainsPoint(NewPoint(5, 5)))
	assert.False(t, p.ContainsPoint(NewPoint(50, 50)))
}

// Scenario 1 — sharp angle of an arrow-head. The tip at vertex 3 measures
// about 24.8°; the other four vertices are obtuse (about 121° and 136.6°).
func TestPolygon_SharpAngleArrowHead(t *testing.T) {
	p, err := NewPolygon([]Point{
		{X: 6, Y: 0}, {X: 16, Y: 0}, {X: 22, Y: 10}, {X: 11, Y: 60}, {X: 0, Y: 10},
	})
	require.NoError(t, err)

	sharp := p.GetSharpAngles(30)
	assert.Equal(t, []int{3}, sharp)
	assert.Less(t, p.VertexAngle(3), 30.0)

	wantDeg := map[int]float64{0: 120.963757, 1: 120.963757, 2: 136.628825, 4: 136.628825}
	for _, i := range []int{0, 1, 2, 4} {
		assert.InDelta(t, wantDeg[i], p.VertexAngle(i), 1e-6)
	}
}

// Sharp-angle symmetry: reversing vertex order should report the same set
// of sharp vertices, modulo the reversal index mapping.
func TestPolygon_SharpAngleSymmetry(t *testing.T) {
	p, err := NewPolygon([]Point{
		{X: 6, Y: 0}, {X: 16, Y: 0}, {X: 22, Y: 10}, {X: 11, Y: 60}, {X: 0, Y: 10},
	})
	require.NoError(t, err)

	n := len(p.Vertices)
	reversed := make([]Point, n)
	for i, v := range p.Vertices {
		reversed[n-1-i] = v
	}
	q, err := NewPolygon(reversed)
	require.NoError(t, err)

	forward := p.GetSharpAngles(30)
	backward := q.GetSharpAngles(30)

	mapped := make([]int, len(forward))
	for i, idx := range forward {
		mapped[i] = n - 1 - idx
	}
	assert.ElementsMatch(t, mapped, backward)
}

// Scenario 2 — narrow region between two parallel rectangles.
func TestPolygon_FindNarrowRegionsParallelRectangles(t *testing.T) {
	p, err := NewPolygon([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 1}, {X: 0, Y: 1}})
	require.NoError(t, err)
	q, err := NewPolygon([]Point{{X: 0, Y: 1.05}, {X: 10, Y: 1.05}, {X: 10, Y: 2}, {X: 0, Y: 2}})
	require.NoError(t, err)

	regions := p.FindNarrowRegions(q, 0.1)
	require.NotEmpty(t, regions)
	for _, r := range regions {
		assert.GreaterOrEqual(t, r.Distance, 0.05-1e-9)
		assert.LessOrEqual(t, r.Distance, 0.05+1e-6)
	}
}

// Scenario 3 — edge intersection of two squares.
func TestPolygon_IntersectionOfTwoSquares(t *testing.T) {
	p := square(0, 0, 10)
	q := square(5, 5, 10)

	assert.True(t, p.Intersects(q))

	pts := p.IntersectionPoints(q)
	require.Len(t, pts, 2)

	want := []Point{{X: 10, Y: 5}, {X: 5, Y: 10}}
	assert.ElementsMatch(t, want, pts)
}

func TestPolygon_IsConvexAndSimple(t *testing.T) {
	p := square(0, 0, 10)
	assert.True(t, p.IsConvex())
	assert.True(t, p.IsSimple())
	assert.False(t, p.HasSelfIntersections())

	bowtie, err := NewPolygon([]Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}})
	require.NoError(t, err)
	assert.False(t, bowtie.IsSimple())
	assert.True(t, bowtie.HasSelfIntersections())
}

func TestPolygon_CentroidDegenerateFallback(t *testing.T) {
	degenerate, err := NewPolygon([]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
	require.NoError(t, err)
	c := degenerate.Centroid()
	assert.InDelta(t, 1.0, c.X, 1e-9)
	assert.InDelta(t, 0.0, c.Y, 1e-9)
}

func TestPolygon_TranslateRotateScale(t *testing.T) {
	p := square(0, 0, 10)
	translated := p.Translate(5, 5)
	assert.Equal(t, NewPoint(5, 5), translated.Vertices[0])

	rotated := p.RotateAround(NewPoint(5, 5), 180)
	assert.InDelta(t, 10.0, rotated.Vertices[0].X, 1e-9)
	assert.InDelta(t, 10.0, rotated.Vertices[0].Y, 1e-9)

	scaled := p.Scale(2)
	assert.InDelta(t, p.Area()*4, scaled.Area(), 1e-6)
}
