package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrushTypeFromU32Table(t *testing.T) {
	cases := map[uint32]BrushType{
		0x06: Eraser,
		0x08: EraserArea,
		0x03: Marker, 0x10: Marker,
		0x04: Fineliner, 0x11: Fineliner,
		0x00: Paintbrush, 0x0C: Paintbrush,
		0x07: MechanicalPencil, 0x0D: MechanicalPencil,
		0x01: Pencil, 0x0E: Pencil,
		0x02: Ballpoint, 0x0F: Ballpoint,
		0x05: Highlighter, 0x12: Highlighter,
		0x15: Calligraphy,
	}
	for code, want := range cases {
		got, err := BrushTypeFromU32(code)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestBrushTypeFromU32Unknown(t *testing.T) {
	_, err := BrushTypeFromU32(0x99)
	require.Error(t, err)
	assert.True(t, IsKind(err, UnknownEnum))
}

func TestIsEraser(t *testing.T) {
	assert.True(t, Eraser.IsEraser())
	assert.True(t, EraserArea.IsEraser())
	assert.False(t, Fineliner.IsEraser())
}

func TestColorFromU32(t *testing.T) {
	got, err := ColorFromU32(7)
	require.NoError(t, err)
	assert.Equal(t, Red, got)

	_, err = ColorFromU32(9)
	require.Error(t, err)
	assert.True(t, IsKind(err, UnknownEnum))
}
