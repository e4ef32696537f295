package analysis

import (
	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/hierarchical"
)

// ScanEdgeIntersections obtains candidate polygon pairs from idx's
// parallel_find_intersections and, for each candidate, performs the full
// edge-by-edge segment intersection. Bounding-rectangle filtering means no
// actual intersection between two polygons of the same IP block is ever
// missed; it only rules out pairs that cannot possibly intersect. Polygons
// in different blocks are never paired, so intersections between them are
// not reported.
func ScanEdgeIntersections(idx *hierarchical.Index[*geometry.Polygon]) []Violation {
	pairs := idx.ParallelFindIntersections()
	var violations []Violation

	for _, pair := range pairs {
		points := pair.First.IntersectionPoints(pair.Second)
		if len(points) == 0 {
			continue
		}
		violations = append(violations, Violation{
			Kind:      EdgeIntersectionKind,
			Severity:  SeverityError,
			Message:   "polygon edges intersect",
			Locations: points,
		})
	}
	return violations
}
