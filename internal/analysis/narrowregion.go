package analysis

import (
	"unsafe"

	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/hierarchical"
)

// ScanNarrowRegionPair runs the brute-force O(|p|*|q|) edge-pair scan
// between two polygons and wraps every region closer than threshold as a
// Violation.
func ScanNarrowRegionPair(p, q *geometry.Polygon, threshold float64) []Violation {
	regions := p.FindNarrowRegions(q, threshold)
	violations := make([]Violation, 0, len(regions))
	for _, r := range regions {
		severity := SeverityWarning
		switch {
		case r.Distance <= threshold/4:
			severity = SeverityCritical
		case r.Distance <= threshold/2:
			severity = SeverityError
		}
		violations = append(violations, Violation{
			Kind:      NarrowRegionKind,
			Severity:  severity,
			Message:   "edges closer than clearance threshold",
			Locations: []geometry.Point{r.PointOnP, r.PointOnQ},
			Distance:  r.Distance,
		})
	}
	return violations
}

func pointerLess(a, b *geometry.Polygon) bool {
	return uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b))
}

type pairKey struct{ a, b *geometry.Polygon }

func orderedPair(a, b *geometry.Polygon) pairKey {
	if pointerLess(a, b) {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// ScanNarrowRegionsIndexed reduces the candidate pair count for a large
// polygon set by expanding each polygon's bounding box by threshold and
// querying idx for neighbors, instead of the full O(n^2) pairing. idx must
// already contain every polygon in polygons, keyed by its own bounding
// rectangle.
func ScanNarrowRegionsIndexed(idx *hierarchical.Index[*geometry.Polygon], polygons []*geometry.Polygon, threshold float64) []Violation {
	seen := make(map[pairKey]struct{})
	var violations []Violation

	for _, p := range polygons {
		expanded := p.BoundingBox().Expand(threshold)
		candidates := idx.ParallelQueryRange(expanded)
		for _, q := range candidates {
			if q == p {
				continue
			}
			key := orderedPair(p, q)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			violations = append(violations, ScanNarrowRegionPair(p, q, threshold)...)
		}
	}
	return violations
}
