package factory

import (
	"testing"

	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersFor_Tiers(t *testing.T) {
	assert.Equal(t, Parameters{MaxObjectsPerBlock: 10_000_000, MaxHierarchyLevels: 12}, ParametersFor(100_000_001))
	assert.Equal(t, Parameters{MaxObjectsPerBlock: 1_000_000, MaxHierarchyLevels: 10}, ParametersFor(10_000_001))
	assert.Equal(t, Parameters{MaxObjectsPerBlock: 1_000_000, MaxHierarchyLevels: 8}, ParametersFor(1_000))
	assert.Equal(t, Parameters{MaxObjectsPerBlock: 1_000_000, MaxHierarchyLevels: 8}, ParametersFor(10_000_000))
	assert.Equal(t, Parameters{MaxObjectsPerBlock: 10_000_000, MaxHierarchyLevels: 12}, ParametersFor(100_000_000_000))
}

func TestCreateOptimizedIndex_BuildsUsableIndex(t *testing.T) {
	world, err := geometry.NewRectangle(0, 0, 1000, 1000)
	require.NoError(t, err)

	bboxOf := func(r geometry.Rectangle) geometry.Rectangle { return r }
	idx := CreateOptimizedIndex[geometry.Rectangle](world, 5_000, bboxOf)
	defer idx.Shutdown()

	r, err := geometry.NewRectangle(1, 1, 1, 1)
	require.NoError(t, err)
	idx.BulkInsert([]geometry.Rectangle{r})

	results := idx.ParallelQueryRange(world)
	assert.Len(t, results, 1)
}
