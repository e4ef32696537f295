// Package geometry implements the primitive planar geometry the rest of the
// spatial-indexing core is built on: points, axis-aligned rectangles, and
// simple polygons, plus the numerically careful predicates (orientation,
// segment intersection, point-in-polygon) the indices rely on.
//
// Every type here is an immutable value. Nothing in this package is shared
// or mutated in place; callers copy points and rectangles freely.
package geometry

import (
	"math"

	"github.com/arx-os/zlayout/internal/coreerr"
)

// Epsilon is the module-wide tolerance used for coordinate comparisons and
// degeneracy checks. Two points are considered equal when both coordinate
// deltas fall under Epsilon.
const Epsilon = 1e-10

// Point is an ordered pair of IEEE-754 doubles.
type Point struct {
	X, Y float64
}

// NewPoint constructs a Point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Equal reports tolerance-based equality. Note this is not a reliable
// equivalence relation (it is not transitive near the tolerance boundary) —
// never use it as a map or sort key.
func (p Point) Equal(other Point) bool {
	return math.Abs(p.X-other.X) < Epsilon && math.Abs(p.Y-other.Y) < Epsilon
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns p scaled by factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// DistanceSquaredTo is the cheaper, sqrt-free relative of DistanceTo.
func (p Point) DistanceSquaredTo(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Point) DistanceTo(other Point) float64 {
	return math.Sqrt(p.DistanceSquaredTo(other))
}

// DistanceToSegment projects p onto segment ab, clamps the parameter to
// [0,1], and returns the distance from p to that clamped projection.
func (p Point) DistanceToSegment(a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < Epsilon {
		return p.DistanceTo(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projection := a.Add(ab.Scale(t))
	return p.DistanceTo(projection)
}

// Dot returns the dot product of p and other.
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the scalar cross product x1*y2 - x2*y1.
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - other.X*p.Y
}

// Magnitude returns the Euclidean norm of p treated as a vector.
func (p Point) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalize returns p scaled to unit length. A vector whose magnitude is
// below Epsilon cannot be normalized and yields DegenerateOperation.
func (p Point) Normalize() (Point, error) {
	mag := p.Magnitude()
	if mag < Epsilon {
		return Point{}, coreerr.New(coreerr.DegenerateOperation, "Point.Normalize", "zero-length vector")
	}
	return p.Scale(1 / mag), nil
}

// Rotate rotates p around the origin by angle radians.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateAround rotates p around center by angle radians.
func (p Point) RotateAround(center Point, angle float64) Point {
	return p.Sub(center).Rotate(angle).Add(center)
}
