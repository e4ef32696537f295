package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint_DistanceToSelf(t *testing.T) {
	p := NewPoint(3.5, -2.1)
	assert.Less(t, p.DistanceTo(p), Epsilon)
}

func TestPoint_DistanceSymmetric(t *testing.T) {
	a := NewPoint(1, 2)
	b := NewPoint(-4, 7)
	assert.Equal(t, a.DistanceTo(b), b.DistanceTo(a))
	assert.InDelta(t, a.DistanceTo(b)*a.DistanceTo(b), a.DistanceSquaredTo(b), 1e-9)
}

func TestPoint_DotCross(t *testing.T) {
	a := NewPoint(1, 0)
	b := NewPoint(0, 1)
	assert.Equal(t, 0.0, a.Dot(b))
	assert.Equal(t, 1.0, a.Cross(b))
}

func TestPoint_Normalize(t *testing.T) {
	unit, err := NewPoint(3, 4).Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, unit.Magnitude(), 1e-9)

	_, err = NewPoint(0, 0).Normalize()
	assert.Error(t, err)
}

func TestPoint_RotateAround(t *testing.T) {
	center := NewPoint(1, 1)
	p := NewPoint(2, 1)
	rotated := p.RotateAround(center, math.Pi/2)
	assert.InDelta(t, 1.0, rotated.X, 1e-9)
	assert.InDelta(t, 2.0, rotated.Y, 1e-9)
}

func TestPoint_DistanceToSegment(t *testing.T) {
	a, b := NewPoint(0, 0), NewPoint(10, 0)
	mid := NewPoint(5, 3)
	assert.InDelta(t, 3.0, mid.DistanceToSegment(a, b), 1e-9)

	beyond := NewPoint(15, 0)
	assert.InDelta(t, 5.0, beyond.DistanceToSegment(a, b), 1e-9)
}
