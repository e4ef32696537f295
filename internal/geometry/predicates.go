package geometry

import "math"

// Orientation is the result of the three-point orientation predicate.
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

// OrientationOf computes the orientation of the ordered triple (p, q, r)
// from the sign of (qy-py)(rx-qx) - (qx-px)(ry-qy). This is the only
// primitive segment intersection relies on.
func OrientationOf(p, q, r Point) Orientation {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case math.Abs(val) < Epsilon:
		return Collinear
	case val > 0:
		return Clockwise
	default:
		return CounterClockwise
	}
}

// onSegment reports whether q, known to be collinear with p and r, lies on
// the closed segment pr.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X)+Epsilon && q.X >= math.Min(p.X, r.X)-Epsilon &&
		q.Y <= math.Max(p.Y, r.Y)+Epsilon && q.Y >= math.Min(p.Y, r.Y)-Epsilon
}

// SegmentsIntersect reports whether the closed segments p1q1 and p2q2 share
// any point, including collinear overlaps and touching endpoints.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := OrientationOf(p1, q1, p2)
	o2 := OrientationOf(p1, q1, q2)
	o3 := OrientationOf(p2, q2, p1)
	o4 := OrientationOf(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == Collinear && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == Collinear && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == Collinear && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == Collinear && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

// LineSegmentIntersection computes the parametric intersection of segments
// p1q1 and p2q2. It returns the intersection point and true iff both
// parameters fall (within tolerance) inside [0, 1]. Parallel segments
// (|denominator| < Epsilon) return false.
func LineSegmentIntersection(p1, q1, p2, q2 Point) (Point, bool) {
	r := q1.Sub(p1)
	s := q2.Sub(p2)
	denom := r.Cross(s)
	if math.Abs(denom) < Epsilon {
		return Point{}, false
	}

	diff := p2.Sub(p1)
	t := diff.Cross(s) / denom
	u := diff.Cross(r) / denom

	const tol = Epsilon
	if t < -tol || t > 1+tol || u < -tol || u > 1+tol {
		return Point{}, false
	}
	return p1.Add(r.Scale(t)), true
}

// SegmentToSegmentDistance returns the minimum distance between the closed
// segments ab and cd: the minimum over the four point-to-segment distances.
func SegmentToSegmentDistance(a, b, c, d Point) float64 {
	if SegmentsIntersect(a, b, c, d) {
		return 0
	}
	return math.Min(
		math.Min(a.DistanceToSegment(c, d), b.DistanceToSegment(c, d)),
		math.Min(c.DistanceToSegment(a, b), d.DistanceToSegment(a, b)),
	)
}

// ClosestPointsBetweenSegments returns, along with
// SegmentToSegmentDistance's value, the pair of points (one on each
// segment) realizing that minimum distance.
func ClosestPointsBetweenSegments(a, b, c, d Point) (onAB, onCD Point, dist float64) {
	if pt, ok := LineSegmentIntersection(a, b, c, d); ok {
		return pt, pt, 0
	}

	candidates := []struct {
		onAB, onCD Point
		dist       float64
	}{
		{a, closestPointOnSegment(a, c, d), a.DistanceToSegment(c, d)},
		{b, closestPointOnSegment(b, c, d), b.DistanceToSegment(c, d)},
		{closestPointOnSegment(c, a, b), c, c.DistanceToSegment(a, b)},
		{closestPointOnSegment(d, a, b), d, d.DistanceToSegment(a, b)},
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.dist < best.dist {
			best = cand
		}
	}
	return best.onAB, best.onCD, best.dist
}

// closestPointOnSegment projects p onto segment ab, clamped to [0,1].
func closestPointOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < Epsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}
