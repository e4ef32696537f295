package geometry

import (
	"math"

	"github.com/arx-os/zlayout/internal/coreerr"
)

// Polygon is an ordered, cyclic sequence of at least three vertices. The
// core never mutates a caller's polygon in place; every transform returns a
// new *Polygon.
type Polygon struct {
	Vertices []Point
}

// NewPolygon validates and wraps a vertex list. Fewer than three vertices
// is rejected as InvalidShape.
func NewPolygon(vertices []Point) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, coreerr.New(coreerr.InvalidShape, "NewPolygon", "fewer than 3 vertices")
	}
	deduped := make([]Point, 0, len(vertices))
	for i, v := range vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return nil, coreerr.New(coreerr.InvalidShape, "NewPolygon", "NaN or Inf vertex coordinate")
		}
		if i > 0 && v.Equal(deduped[len(deduped)-1]) {
			continue
		}
		deduped = append(deduped, v)
	}
	if len(deduped) > 1 && deduped[0].Equal(deduped[len(deduped)-1]) {
		deduped = deduped[:len(deduped)-1]
	}
	if len(deduped) < 3 {
		return nil, coreerr.New(coreerr.InvalidShape, "NewPolygon", "fewer than 3 distinct vertices")
	}
	return &Polygon{Vertices: deduped}, nil
}

func (p *Polygon) n() int { return len(p.Vertices) }

func (p *Polygon) at(i int) Point {
	n := p.n()
	return p.Vertices[((i%n)+n)%n]
}

// SignedArea returns the shoelace signed area; positive indicates
// counter-clockwise vertex order.
func (p *Polygon) SignedArea() float64 {
	sum := 0.0
	n := p.n()
	for i := 0; i < n; i++ {
		a, b := p.at(i), p.at(i+1)
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the absolute value of SignedArea.
func (p *Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsClockwise reports whether the vertex order is clockwise.
func (p *Polygon) IsClockwise() bool {
	return p.SignedArea() < 0
}

// Perimeter returns the sum of edge lengths.
func (p *Polygon) Perimeter() float64 {
	sum := 0.0
	n := p.n()
	for i := 0; i < n; i++ {
		sum += p.at(i).DistanceTo(p.at(i + 1))
	}
	return sum
}

// Centroid returns the polygon's area centroid, falling back to the
// arithmetic mean of vertices when the signed area is degenerate.
func (p *Polygon) Centroid() Point {
	a := p.SignedArea()
	if math.Abs(a) < Epsilon {
		var sx, sy float64
		for _, v := range p.Vertices {
			sx += v.X
			sy += v.Y
		}
		n := float64(p.n())
		return Point{X: sx / n, Y: sy / n}
	}

	var cx, cy float64
	n := p.n()
	for i := 0; i < n; i++ {
		cur, next := p.at(i), p.at(i+1)
		cross := cur.X*next.Y - next.X*cur.Y
		cx += (cur.X + next.X) * cross
		cy += (cur.Y + next.Y) * cross
	}
	factor := 1 / (6 * a)
	return Point{X: cx * factor, Y: cy * factor}
}

// BoundingBox returns the axis-aligned bounding rectangle of the polygon.
func (p *Polygon) BoundingBox() Rectangle {
	return BoundingBoxOfPoints(p.Vertices)
}

// IsConvex reports whether every consecutive edge cross-product shares the
// same sign.
func (p *Polygon) IsConvex() bool {
	n := p.n()
	sawPositive, sawNegative := false, false
	for i := 0; i < n; i++ {
		prev, cur, next := p.at(i-1), p.at(i), p.at(i+1)
		cross := cur.Sub(prev).Cross(next.Sub(cur))
		if cross > Epsilon {
			sawPositive = true
		} else if cross < -Epsilon {
			sawNegative = true
		}
		if sawPositive && sawNegative {
			return false
		}
	}
	return true
}

// IsSimple reports whether no two non-adjacent edges intersect. O(n^2).
func (p *Polygon) IsSimple() bool {
	n := p.n()
	if n < 4 {
		return true
	}
	for i := 0; i < n; i++ {
		a1, a2 := p.at(i), p.at(i+1)
		for j := i + 1; j < n; j++ {
			if j == i+1 || (j+1)%n == i {
				continue
			}
			b1, b2 := p.at(j), p.at(j+1)
			if SegmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// HasSelfIntersections is the negation of IsSimple, spelled for callers
// running a DRC-style check where a positive result is the interesting one.
func (p *Polygon) HasSelfIntersections() bool {
	return !p.IsSimple()
}

// ContainsPoint tests point membership via horizontal ray-casting. A point
// exactly on the boundary is considered inside (the boundary-on-polygon
// open question from spec.md §9 is resolved as "inside" here).
func (p *Polygon) ContainsPoint(pt Point) bool {
	n := p.n()
	inside := false
	for i := 0; i < n; i++ {
		a, b := p.at(i), p.at(i+1)
		if onSegment(a, pt, b) && OrientationOf(a, pt, b) == Collinear {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xIntersect := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// VertexAngle returns the interior angle at vertex i in degrees, computed
// from the two incident edge vectors. Degenerate edge vectors (magnitude
// below Epsilon) yield 0.
func (p *Polygon) VertexAngle(i int) float64 {
	v := p.at(i)
	v1 := p.at(i - 1).Sub(v)
	v2 := p.at(i + 1).Sub(v)
	mag1, mag2 := v1.Magnitude(), v2.Magnitude()
	if mag1 < Epsilon || mag2 < Epsilon {
		return 0
	}
	cosTheta := v1.Dot(v2) / (mag1 * mag2)
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return math.Acos(cosTheta) * 180 / math.Pi
}

// GetSharpAngles returns, in ascending order, the indices of vertices whose
// interior angle falls below thresholdDeg or above 180-thresholdDeg (the
// latter branch catches reflex spikes).
func (p *Polygon) GetSharpAngles(thresholdDeg float64) []int {
	var sharp []int
	for i := 0; i < p.n(); i++ {
		theta := p.VertexAngle(i)
		if theta < thresholdDeg || theta > 180-thresholdDeg {
			sharp = append(sharp, i)
		}
	}
	return sharp
}

// DistanceToPoint returns the minimum distance from pt to the polygon's
// boundary, 0 if pt is inside.
func (p *Polygon) DistanceToPoint(pt Point) float64 {
	if p.ContainsPoint(pt) {
		return 0
	}
	best := math.Inf(1)
	n := p.n()
	for i := 0; i < n; i++ {
		d := pt.DistanceToSegment(p.at(i), p.at(i+1))
		if d < best {
			best = d
		}
	}
	return best
}

// DistanceToPolygon returns the minimum edge-to-edge distance between p and
// other, 0 when they intersect.
func (p *Polygon) DistanceToPolygon(other *Polygon) float64 {
	if p.Intersects(other) {
		return 0
	}
	best := math.Inf(1)
	for i := 0; i < p.n(); i++ {
		a1, a2 := p.at(i), p.at(i+1)
		for j := 0; j < other.n(); j++ {
			b1, b2 := other.at(j), other.at(j+1)
			if d := SegmentToSegmentDistance(a1, a2, b1, b2); d < best {
				best = d
			}
		}
	}
	return best
}

// NarrowRegion is one emitted candidate from FindNarrowRegions: the closest
// points on each polygon's edge and the distance between them.
type NarrowRegion struct {
	PointOnP Point
	PointOnQ Point
	Distance float64
}

// FindNarrowRegions enumerates, for every edge pair (e in p, f in other),
// the pairs whose segment-to-segment distance is below threshold. Brute
// force is O(|p|*|other|); callers indexing many polygons should pre-filter
// candidate pairs with a range-expansion query against a spatial index
// before calling this (see internal/analysis).
func (p *Polygon) FindNarrowRegions(other *Polygon, threshold float64) []NarrowRegion {
	var regions []NarrowRegion
	for i := 0; i < p.n(); i++ {
		a1, a2 := p.at(i), p.at(i+1)
		for j := 0; j < other.n(); j++ {
			b1, b2 := other.at(j), other.at(j+1)
			onP, onQ, dist := ClosestPointsBetweenSegments(a1, a2, b1, b2)
			if dist < threshold {
				regions = append(regions, NarrowRegion{PointOnP: onP, PointOnQ: onQ, Distance: dist})
			}
		}
	}
	return regions
}

// Intersects reports whether p and other share any boundary point.
func (p *Polygon) Intersects(other *Polygon) bool {
	if !p.BoundingBox().Intersects(other.BoundingBox()) {
		return false
	}
	for i := 0; i < p.n(); i++ {
		a1, a2 := p.at(i), p.at(i+1)
		for j := 0; j < other.n(); j++ {
			b1, b2 := other.at(j), other.at(j+1)
			if SegmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// IntersectionPoints returns every point where an edge of p crosses an edge
// of other.
func (p *Polygon) IntersectionPoints(other *Polygon) []Point {
	var points []Point
	for i := 0; i < p.n(); i++ {
		a1, a2 := p.at(i), p.at(i+1)
		for j := 0; j < other.n(); j++ {
			b1, b2 := other.at(j), other.at(j+1)
			if pt, ok := LineSegmentIntersection(a1, a2, b1, b2); ok {
				points = append(points, pt)
			}
		}
	}
	return points
}

// Translate returns a new polygon with every vertex shifted by (dx, dy).
func (p *Polygon) Translate(dx, dy float64) *Polygon {
	out := make([]Point, p.n())
	for i, v := range p.Vertices {
		out[i] = Point{X: v.X + dx, Y: v.Y + dy}
	}
	return &Polygon{Vertices: out}
}

// Rotate returns a new polygon rotated by angleDeg around the origin.
func (p *Polygon) Rotate(angleDeg float64) *Polygon {
	return p.RotateAround(Point{}, angleDeg)
}

// RotateAround returns a new polygon rotated by angleDeg around center.
func (p *Polygon) RotateAround(center Point, angleDeg float64) *Polygon {
	rad := angleDeg * math.Pi / 180
	out := make([]Point, p.n())
	for i, v := range p.Vertices {
		out[i] = v.RotateAround(center, rad)
	}
	return &Polygon{Vertices: out}
}

// Scale returns a new polygon scaled by factor around its own centroid.
func (p *Polygon) Scale(factor float64) *Polygon {
	c := p.Centroid()
	out := make([]Point, p.n())
	for i, v := range p.Vertices {
		out[i] = c.Add(v.Sub(c).Scale(factor))
	}
	return &Polygon{Vertices: out}
}
