package rm

import (
	"testing"

	"github.com/platinummonkey/rmlines/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// block assembles one complete v6 block (header + body) from a pre-built
// payload, computing block_len itself.
func block(minVersion, currentVersion, blockType byte, body []byte) *bufBuilder {
	b := &bufBuilder{}
	b.u32(uint32(len(body)))
	b.u8(0) // _unknown
	b.u8(minVersion)
	b.u8(currentVersion)
	b.u8(blockType)
	b.raw(body)
	return b
}

func crdtID(b *bufBuilder, index uint64, part1 uint8, part2 uint64) *bufBuilder {
	return b.tag(index, tagID).u8(part1).varuint(part2)
}

// TestV6PageInfoOnly is Scenario C.
func TestV6PageInfoOnly(t *testing.T) {
	body := &bufBuilder{}
	body.tag(1, tagByte4).u32(1) // loads
	body.tag(2, tagByte4).u32(0) // merges
	body.tag(3, tagByte4).u32(0) // text_chars
	body.tag(4, tagByte4).u32(0) // text_lines

	blk := block(1, 1, blockTypePageInfo, body.bytes())
	full := header('6').raw(blk.bytes()).bytes()

	page, err := Parse("page-1", full)
	require.NoError(t, err)
	require.Len(t, page.Layers, 1)
	assert.Empty(t, page.Layers[0].Lines)
}

// TestV6SceneItemVersion2 is Scenario D.
func TestV6SceneItemVersion2(t *testing.T) {
	value := &bufBuilder{}
	value.u8(sceneItemTypeLine)
	value.tag(1, tagByte4).u32(0x11)   // brush_type -> Fineliner
	value.tag(2, tagByte4).u32(6)      // color -> Blue
	value.tag(3, tagByte8).f64(1.5)    // thickness_scale
	value.tag(4, tagByte4).u32(0)      // starting_length
	value.tag(5, tagLength4).u32(2 * pointSizeV2)
	for i := 0; i < 2; i++ {
		value.f32(0).f32(0). // x, y
					u16(0).     // speed
					u16(255).   // width
					u8(0).      // direction
					u8(0)       // pressure
	}

	body := &bufBuilder{}
	crdtID(body, 1, 0, 0) // parent_id
	crdtID(body, 2, 0, 1) // item_id
	crdtID(body, 3, 0, 0) // left_id
	crdtID(body, 4, 0, 0) // right_id
	body.tag(5, tagByte4).u32(0) // deleted_length
	body.tag(6, tagLength4).u32(uint32(len(value.bytes())))
	body.raw(value.bytes())

	blk := block(1, 2, blockTypeSceneItem, body.bytes())
	full := header('6').raw(blk.bytes()).bytes()

	page, err := Parse("page-1", full)
	require.NoError(t, err)
	require.Len(t, page.Layers, 1)
	require.Len(t, page.Layers[0].Lines, 1)

	line := page.Layers[0].Lines[0]
	assert.Equal(t, model.Fineliner, line.BrushType)
	assert.Equal(t, model.Blue, line.Color)
	require.Len(t, line.Points, 2)
	for _, p := range line.Points {
		assert.Equal(t, float32(model.WidthPixels/2), p.X)
		assert.Equal(t, float32(0), p.Y)
		assert.Equal(t, float32(2.0), p.Width)
		assert.Equal(t, float32(0), p.Speed)
		assert.Equal(t, float32(0), p.Direction)
		assert.Equal(t, float32(0), p.Pressure)
	}
}

// TestV6ToleratesUnknownItemType is Scenario F.
func TestV6ToleratesUnknownItemType(t *testing.T) {
	value := &bufBuilder{}
	value.u8(0xFF) // unrecognised item_type
	value.raw([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	sceneBody := &bufBuilder{}
	crdtID(sceneBody, 1, 0, 0)
	crdtID(sceneBody, 2, 0, 1)
	crdtID(sceneBody, 3, 0, 0)
	crdtID(sceneBody, 4, 0, 0)
	sceneBody.tag(5, tagByte4).u32(0)
	sceneBody.tag(6, tagLength4).u32(uint32(len(value.bytes())))
	sceneBody.raw(value.bytes())
	sceneBlock := block(1, 1, blockTypeSceneItem, sceneBody.bytes())

	pageInfoBody := &bufBuilder{}
	pageInfoBody.tag(1, tagByte4).u32(0)
	pageInfoBody.tag(2, tagByte4).u32(0)
	pageInfoBody.tag(3, tagByte4).u32(0)
	pageInfoBody.tag(4, tagByte4).u32(0)
	pageInfoBlock := block(1, 1, blockTypePageInfo, pageInfoBody.bytes())

	full := header('6').raw(sceneBlock.bytes()).raw(pageInfoBlock.bytes()).bytes()

	page, err := Parse("page-1", full)
	require.NoError(t, err)
	require.Len(t, page.Layers, 1)
	assert.Empty(t, page.Layers[0].Lines, "unrecognised item_type must not produce a line")
}

// TestV6UnknownBlockTypesOnly is invariant 5: a page made entirely of
// unrecognised block types parses successfully into an empty layer.
func TestV6UnknownBlockTypesOnly(t *testing.T) {
	blk := block(1, 1, 0x7F, []byte{0x01, 0x02, 0x03})
	full := header('6').raw(blk.bytes()).bytes()

	page, err := Parse("page-1", full)
	require.NoError(t, err)
	require.Len(t, page.Layers, 1)
	assert.Empty(t, page.Layers[0].Lines)
}
