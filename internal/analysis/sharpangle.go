package analysis

import "github.com/arx-os/zlayout/internal/geometry"

// DefaultSharpAngleThreshold is the τ used when a caller has no
// manufacturing-specific override.
const DefaultSharpAngleThreshold = 30.0

// ScanSharpAngles reports every vertex of poly whose interior angle is
// below thresholdDeg or above 180-thresholdDeg. O(n) in the vertex count.
func ScanSharpAngles(poly *geometry.Polygon, thresholdDeg float64) []Violation {
	indices := poly.GetSharpAngles(thresholdDeg)
	violations := make([]Violation, 0, len(indices))
	for _, i := range indices {
		theta := poly.VertexAngle(i)
		severity := SeverityError
		if theta < thresholdDeg/2 || theta > 180-thresholdDeg/2 {
			severity = SeverityCritical
		}
		violations = append(violations, Violation{
			Kind:      SharpAngleKind,
			Severity:  severity,
			Message:   "vertex angle falls outside manufacturable range",
			Indices:   []int{i},
			Locations: []geometry.Point{poly.Vertices[i]},
		})
	}
	return violations
}
