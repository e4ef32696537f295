// Package analysis implements the three EDA design-rule scans built on top
// of the geometry primitives and the hierarchical index: sharp-angle
// detection, narrow-region detection, and edge-intersection detection.
package analysis

import "github.com/arx-os/zlayout/internal/geometry"

// Kind discriminates which scan produced a Violation.
type Kind string

const (
	SharpAngleKind       Kind = "sharp_angle"
	NarrowRegionKind     Kind = "narrow_region"
	EdgeIntersectionKind Kind = "edge_intersection"
)

// Severity ranks a Violation, modeled on the teacher's
// services/arxobject/validator.Severity levels.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Violation is a uniform wrapper around one design-rule finding. spec.md's
// three analyses each return their own raw tuples/indices; those raw values
// are preserved here (Indices, Locations, Distance) so nothing about the
// documented return semantics changes, but every analysis can additionally
// be consumed as a flat []Violation for reporting.
type Violation struct {
	Kind     Kind
	Severity Severity
	Message  string

	// Indices holds the sharp-angle result's vertex indices, when Kind is
	// SharpAngleKind.
	Indices []int

	// Locations holds the points a reporting tool would mark: the
	// offending vertex for sharp angles, the closest-point pair for
	// narrow regions, or the crossing point for edge intersections.
	Locations []geometry.Point

	// Distance is populated for NarrowRegionKind.
	Distance float64
}
