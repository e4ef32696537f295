package morton

import (
	"math/bits"
	"testing"

	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []struct{ x, y uint32 }{
		{0, 0},
		{1, 1},
		{0xFFFFFFFF, 0},
		{0, 0xFFFFFFFF},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{12345, 987654321},
		{1 << 31, 1 << 30},
	}
	for _, c := range cases {
		code := Encode(c.x, c.y)
		x, y := Decode(code)
		assert.Equal(t, c.x, x)
		assert.Equal(t, c.y, y)
	}
}

// Morton locality — points close together should share a long common
// code prefix; distant points should not. The near pair is 1e-4 apart on
// each axis of a 1000-wide world, so the two codes agree in the top 22
// bits of each axis (44 interleaved bits).
func TestEncodePoint_Locality(t *testing.T) {
	bounds, err := geometry.NewRectangle(0, 0, 1000, 1000)
	if err != nil {
		t.Fatal(err)
	}

	near1 := EncodePoint(geometry.NewPoint(100, 100), bounds)
	near2 := EncodePoint(geometry.NewPoint(100.0001, 100.0001), bounds)
	far := EncodePoint(geometry.NewPoint(900, 100), bounds)

	closeXor := near1 ^ near2
	farXor := near1 ^ far

	assert.GreaterOrEqual(t, bits.LeadingZeros64(closeXor), 40)
	assert.Less(t, bits.LeadingZeros64(farXor), 40)
}
