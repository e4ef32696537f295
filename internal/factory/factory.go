// Package factory chooses hierarchical-index construction parameters from
// an expected object count, so callers don't have to guess block/level
// sizing by hand for a given scale of dataset.
package factory

import (
	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/hierarchical"
	"github.com/arx-os/zlayout/internal/quadtree"
)

// Parameters is the (max_objects_per_block, max_hierarchy_levels) pair
// CreateOptimizedIndex derives from an expected object count.
type Parameters struct {
	MaxObjectsPerBlock int
	MaxHierarchyLevels int
}

// ParametersFor picks sizing tiers by expected object count:
//   - > 10^8: 10^7 objects/block, 12 levels.
//   - > 10^7: 10^6 objects/block, 10 levels.
//   - otherwise: 10^6 objects/block, 8 levels.
func ParametersFor(expectedCount int64) Parameters {
	switch {
	case expectedCount > 100_000_000:
		return Parameters{MaxObjectsPerBlock: 10_000_000, MaxHierarchyLevels: 12}
	case expectedCount > 10_000_000:
		return Parameters{MaxObjectsPerBlock: 1_000_000, MaxHierarchyLevels: 10}
	default:
		return Parameters{MaxObjectsPerBlock: 1_000_000, MaxHierarchyLevels: 8}
	}
}

// CreateOptimizedIndex constructs a hierarchical.Index sized for
// expectedCount objects over worldBounds.
func CreateOptimizedIndex[T comparable](worldBounds geometry.Rectangle, expectedCount int64, bboxOf quadtree.BBoxFunc[T], opts ...hierarchical.Option[T]) *hierarchical.Index[T] {
	params := ParametersFor(expectedCount)
	return hierarchical.New[T](worldBounds, params.MaxObjectsPerBlock, params.MaxHierarchyLevels, bboxOf, opts...)
}
