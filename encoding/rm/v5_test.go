package rm

import (
	"testing"

	"github.com/platinummonkey/rmlines/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestV5MinimalPage is Scenario B.
func TestV5MinimalPage(t *testing.T) {
	b := header('5').
		u32(1) // num_layers

	b.u32(1). // num_lines
			u32(0x04). // brush_type Fineliner
			u32(0).    // color Black
			u32(0).    // padding
			f32(2.0).  // brush_size
			u32(0).    // v5-only padding
			u32(2)     // num_points

	b.f32(10).f32(20).f32(0).f32(0).f32(0).f32(0) // point 1
	b.f32(11).f32(22).f32(0).f32(0).f32(0).f32(0) // point 2

	page, err := Parse("page-1", b.bytes())
	require.NoError(t, err)

	require.Len(t, page.Layers, 1)
	require.Len(t, page.Layers[0].Lines, 1)
	line := page.Layers[0].Lines[0]
	assert.Equal(t, model.Fineliner, line.BrushType)
	assert.Equal(t, model.Black, line.Color)
	require.Len(t, line.Points, 2)
	assert.Equal(t, float32(10), line.Points[0].X)
	assert.Equal(t, float32(20), line.Points[0].Y)
	assert.Equal(t, float32(11), line.Points[1].X)
	assert.Equal(t, float32(22), line.Points[1].Y)
}

// TestV5UnknownBrush is Scenario E.
func TestV5UnknownBrush(t *testing.T) {
	b := header('5').u32(1)
	b.u32(1).
		u32(0x42). // unrecognised brush code
		u32(0).
		u32(0).
		f32(1.0).
		u32(0).
		u32(0)

	_, err := Parse("page-1", b.bytes())
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.UnknownEnum))
}
