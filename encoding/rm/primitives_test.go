package rm

import (
	"testing"

	"github.com/platinummonkey/rmlines/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaruintRoundTrip(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x12}, 18},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0x81, 0x01}, 129},
		{[]byte{0xF0, 0x48}, 9328},
		{[]byte{0xFF, 0x55}, 11007},
		{[]byte{0x80, 0x80, 0x01}, 16384},
		{[]byte{0x80, 0xA6, 0x01}, 21248},
		{[]byte{0xC7, 0x96, 0x4D}, 1264455},
	}

	for _, tc := range cases {
		c := newCursor(tc.bytes)
		got, err := c.varuint()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "bytes % x", tc.bytes)
		assert.Equal(t, len(tc.bytes), c.pos, "varuint should consume exactly its encoded bytes")
	}
}

func TestVaruintOverflow(t *testing.T) {
	// 11 continuation bytes with the high bit set: past the 10-byte cap.
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x80
	}
	c := newCursor(buf)
	_, err := c.varuint()
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.VarintOverflow))
}

func TestTakeUnexpectedEnd(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02})
	_, err := c.take(3)
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.UnexpectedEnd))
}

func TestF32RoundTrip(t *testing.T) {
	// 1.5f32 little-endian.
	c := newCursor([]byte{0x00, 0x00, 0xC0, 0x3F})
	v, err := c.f32()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, float64(v), 1e-6)
}
