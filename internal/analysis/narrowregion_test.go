package analysis

import (
	"testing"

	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/hierarchical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(t *testing.T, x0, y0, x1, y1, x2, y2, x3, y3 float64) *geometry.Polygon {
	t.Helper()
	poly, err := geometry.NewPolygon([]geometry.Point{
		geometry.NewPoint(x0, y0),
		geometry.NewPoint(x1, y1),
		geometry.NewPoint(x2, y2),
		geometry.NewPoint(x3, y3),
	})
	require.NoError(t, err)
	return poly
}

// TestScanNarrowRegionPair_ParallelRectangles reproduces Scenario 2
// verbatim: a gap of 0.05 between two parallel rectangles must be reported
// with distance within [0.05, 0.05+epsilon].
func TestScanNarrowRegionPair_ParallelRectangles(t *testing.T) {
	p := rect(t, 0, 0, 10, 0, 10, 1, 0, 1)
	q := rect(t, 0, 1.05, 10, 1.05, 10, 2, 0, 2)

	violations := ScanNarrowRegionPair(p, q, 0.1)
	require.NotEmpty(t, violations)

	found := false
	for _, v := range violations {
		if v.Distance >= 0.05 && v.Distance <= 0.05+1e-9 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScanNarrowRegionsIndexed_FindsNeighboringPair(t *testing.T) {
	world, err := geometry.NewRectangle(0, 0, 100, 100)
	require.NoError(t, err)

	bboxOf := func(p *geometry.Polygon) geometry.Rectangle { return p.BoundingBox() }
	idx := hierarchical.New[*geometry.Polygon](world, 100, 8, bboxOf)
	defer idx.Shutdown()

	p := rect(t, 0, 0, 10, 0, 10, 1, 0, 1)
	q := rect(t, 0, 1.05, 10, 1.05, 10, 2, 0, 2)
	far, err := geometry.NewPolygon([]geometry.Point{
		geometry.NewPoint(90, 90), geometry.NewPoint(95, 90), geometry.NewPoint(95, 95), geometry.NewPoint(90, 95),
	})
	require.NoError(t, err)

	polygons := []*geometry.Polygon{p, q, far}
	idx.BulkInsert(polygons)

	violations := ScanNarrowRegionsIndexed(idx, polygons, 0.1)
	assert.NotEmpty(t, violations)
	for _, v := range violations {
		assert.Equal(t, NarrowRegionKind, v.Kind)
	}
}
