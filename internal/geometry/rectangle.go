package geometry

import (
	"math"

	"github.com/arx-os/zlayout/internal/coreerr"
)

// Rectangle is an axis-aligned box anchored at (X, Y) with non-negative
// Width and Height. A rectangle with zero width or height is "empty" but
// still valid — it participates in queries normally.
type Rectangle struct {
	X, Y, Width, Height float64
}

// NewRectangle constructs a Rectangle. Negative dimensions are rejected.
func NewRectangle(x, y, width, height float64) (Rectangle, error) {
	if width < 0 || height < 0 {
		return Rectangle{}, coreerr.New(coreerr.InvalidShape, "NewRectangle", "negative width or height")
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(width) || math.IsNaN(height) ||
		math.IsInf(x, 0) || math.IsInf(y, 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Rectangle{}, coreerr.New(coreerr.InvalidShape, "NewRectangle", "NaN or Inf coordinate")
	}
	return Rectangle{X: x, Y: y, Width: width, Height: height}, nil
}

// FromCorners builds the rectangle spanning two arbitrary corner points.
func FromCorners(a, b Point) Rectangle {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FromCenterSize builds a rectangle centered at center with the given size.
func FromCenterSize(center Point, width, height float64) Rectangle {
	return Rectangle{X: center.X - width/2, Y: center.Y - height/2, Width: width, Height: height}
}

func (r Rectangle) Left() float64   { return r.X }
func (r Rectangle) Right() float64  { return r.X + r.Width }
func (r Rectangle) Bottom() float64 { return r.Y }
func (r Rectangle) Top() float64    { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has zero width or height.
func (r Rectangle) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the rectangle's midpoint.
func (r Rectangle) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ContainsPoint reports whether p lies within r, closed on every edge.
func (r Rectangle) ContainsPoint(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Bottom() && p.Y <= r.Top()
}

// ContainsRectangle reports whether other is entirely contained in r.
func (r Rectangle) ContainsRectangle(other Rectangle) bool {
	return other.Left() >= r.Left() && other.Right() <= r.Right() &&
		other.Bottom() >= r.Bottom() && other.Top() <= r.Top()
}

// Intersects reports whether r and other share any point; edge-touching
// counts as intersecting.
func (r Rectangle) Intersects(other Rectangle) bool {
	return r.Left() <= other.Right() && r.Right() >= other.Left() &&
		r.Bottom() <= other.Top() && r.Top() >= other.Bottom()
}

// Intersection returns the overlapping region of r and other, which may be
// empty (zero width and/or height) when they do not overlap.
func (r Rectangle) Intersection(other Rectangle) Rectangle {
	left := math.Max(r.Left(), other.Left())
	bottom := math.Max(r.Bottom(), other.Bottom())
	right := math.Min(r.Right(), other.Right())
	top := math.Min(r.Top(), other.Top())
	if right < left || top < bottom {
		return Rectangle{X: left, Y: bottom, Width: 0, Height: 0}
	}
	return Rectangle{X: left, Y: bottom, Width: right - left, Height: top - bottom}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	left := math.Min(r.Left(), other.Left())
	bottom := math.Min(r.Bottom(), other.Bottom())
	right := math.Max(r.Right(), other.Right())
	top := math.Max(r.Top(), other.Top())
	return Rectangle{X: left, Y: bottom, Width: right - left, Height: top - bottom}
}

// Expand grows r by margin on every side. A negative margin shrinks it;
// the caller is responsible for avoiding negative resulting dimensions.
func (r Rectangle) Expand(margin float64) Rectangle {
	return Rectangle{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Translate shifts r by (dx, dy).
func (r Rectangle) Translate(dx, dy float64) Rectangle {
	return Rectangle{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Scale resizes r by factor around its own center.
func (r Rectangle) Scale(factor float64) Rectangle {
	c := r.Center()
	w, h := r.Width*factor, r.Height*factor
	return Rectangle{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// DistanceToRectangle returns 0 when r and other overlap, otherwise the
// Euclidean distance between their nearest edges.
func (r Rectangle) DistanceToRectangle(other Rectangle) float64 {
	dx := math.Max(0, math.Max(other.Left()-r.Right(), r.Left()-other.Right()))
	dy := math.Max(0, math.Max(other.Bottom()-r.Top(), r.Bottom()-other.Top()))
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceToPoint returns 0 when p is inside r, otherwise the distance from
// p to the nearest point on r's boundary.
func (r Rectangle) DistanceToPoint(p Point) float64 {
	dx := math.Max(0, math.Max(r.Left()-p.X, p.X-r.Right()))
	dy := math.Max(0, math.Max(r.Bottom()-p.Y, p.Y-r.Top()))
	return math.Sqrt(dx*dx + dy*dy)
}

// Corners returns (bottom-left, bottom-right, top-right, top-left).
func (r Rectangle) Corners() [4]Point {
	return [4]Point{
		{X: r.Left(), Y: r.Bottom()},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Left(), Y: r.Top()},
	}
}

// Area returns the rectangle's area.
func (r Rectangle) Area() float64 { return r.Width * r.Height }

// Perimeter returns the rectangle's perimeter.
func (r Rectangle) Perimeter() float64 { return 2 * (r.Width + r.Height) }

// BoundingBoxOfPoints returns the smallest rectangle containing every point
// in pts. Panics on an empty slice, same as indexing an empty slice would.
func BoundingBoxOfPoints(pts []Point) Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BoundingBoxOfRectangles returns the smallest rectangle containing every
// rectangle in rects.
func BoundingBoxOfRectangles(rects []Rectangle) Rectangle {
	result := rects[0]
	for _, r := range rects[1:] {
		result = result.Union(r)
	}
	return result
}
