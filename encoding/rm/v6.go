package rm

import (
	"fmt"
	"math"
	"os"

	"github.com/platinummonkey/rmlines/model"
)

const (
	blockTypeSceneItem  = 0x05
	blockTypeAuthorInfo = 0x09
	blockTypePageInfo   = 0x0A

	sceneItemTypeLine = 0x03

	pointSizeV1 = 24
	pointSizeV2 = 14
)

// parsePageV6 decodes a v6 page body: a flat stream of blocks, each
// self-describing its own length so an unrecognised or partially
// understood block_type never desynchronises the stream. Every retained
// Line ends up in a single Layer, in block arrival order.
func parsePageV6(c *cursor) (*model.Page, error) {
	page := &model.Page{Version: model.V6, Layers: []model.Layer{{}}}
	layer := &page.Layers[0]

	for c.remaining() > 0 {
		if err := parseBlockV6(c, layer); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// parseBlockV6 reads one block header and dispatches its body, which is
// always consumed via the fixed-length segment combinator so block_len is
// authoritative regardless of how much the dispatched parser understood.
func parseBlockV6(c *cursor, layer *model.Layer) error {
	blockLen, err := c.u32()
	if err != nil {
		return err
	}
	if _, err := c.u8(); err != nil { // _unknown
		return err
	}
	if _, err := c.u8(); err != nil { // min_version
		return err
	}
	currentVersion, err := c.u8()
	if err != nil {
		return err
	}
	blockType, err := c.u8()
	if err != nil {
		return err
	}

	// AuthorInfo, PageInfo and unrecognised blocks are tolerant; a
	// SceneItem block is strict, so an error in its Line (unknown enum,
	// tag mismatch, unsupported current_version) fails the page.
	tolerant := blockType != blockTypeSceneItem
	return runFixedLengthSegment(c, blockLen, tolerant, func(body *cursor) error {
		switch blockType {
		case blockTypeSceneItem:
			return parseSceneItemV6(body, currentVersion, layer)
		case blockTypeAuthorInfo:
			return parseAuthorInfoV6(body)
		case blockTypePageInfo:
			return parsePageInfoV6(body)
		default:
			// unrecognised block type: the segment wrapper already
			// consumes the full declared length, so there's nothing
			// further to do here.
			return nil
		}
	})
}

// parseSceneItemV6 reads the CRDT sequence-item envelope (parent/item/
// left/right ids, deleted_length, optional value sub-block) and, when the
// value is a Line, appends it to layer.
func parseSceneItemV6(c *cursor, currentVersion uint8, layer *model.Layer) error {
	if _, err := taggedID(c, 1); err != nil { // parent_id
		return err
	}
	if _, err := taggedID(c, 2); err != nil { // item_id
		return err
	}
	if _, err := taggedID(c, 3); err != nil { // left_id
		return err
	}
	if _, err := taggedID(c, 4); err != nil { // right_id
		return err
	}
	if _, err := taggedU32(c, 5); err != nil { // deleted_length
		return err
	}

	// field 6 is optional: a block that ends here carries no value.
	if c.remaining() == 0 {
		return nil
	}
	hasValue, err := tryStreamTag(c, 6, tagLength4)
	if !hasValue || err != nil {
		return err
	}
	length, err := c.u32()
	if err != nil {
		return err
	}
	// Strict: a non-Line item_type returns nil below (the segment is still
	// drained), while errors inside a Line propagate.
	return runFixedLengthSegment(c, length, false, func(value *cursor) error {
		itemType, err := value.u8()
		if err != nil {
			return err
		}
		if itemType != sceneItemTypeLine {
			return nil
		}
		line, err := parseLineV6(value, currentVersion)
		if err != nil {
			return err
		}
		layer.Lines = append(layer.Lines, *line)
		return nil
	})
}

func parseLineV6(c *cursor, currentVersion uint8) (*model.Line, error) {
	brushCode, err := taggedU32(c, 1)
	if err != nil {
		return nil, err
	}
	brushType, err := model.BrushTypeFromU32(brushCode)
	if err != nil {
		return nil, err
	}

	colorCode, err := taggedU32(c, 2)
	if err != nil {
		return nil, err
	}
	color, err := model.ColorFromU32(colorCode)
	if err != nil {
		return nil, err
	}

	thicknessScale, err := taggedF64(c, 3)
	if err != nil {
		return nil, err
	}

	if _, err := taggedU32(c, 4); err != nil { // starting_length, unused downstream
		return nil, err
	}

	sub, length, err := taggedLength4(c, 5)
	if err != nil {
		return nil, err
	}

	pointSize, err := pointSizeForVersion(currentVersion)
	if err != nil {
		return nil, err
	}

	// A non-exact-multiple length truncates to the last whole point
	// rather than failing; the segment wrapper already drains any
	// leftover bytes once sub is exhausted below.
	numPoints := int(length) / pointSize
	if int(length)%pointSize != 0 {
		fmt.Fprintf(os.Stderr, "warning: line point array length %d is not a multiple of point size %d, truncating to %d point(s)\n", length, pointSize, numPoints)
	}

	points := make([]model.Point, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		point, err := parsePointV6(sub, currentVersion)
		if err != nil {
			return nil, err
		}
		points = append(points, *point)
	}

	return &model.Line{
		BrushType: brushType,
		Color:     color,
		BrushSize: float32(thicknessScale),
		Points:    points,
	}, nil
}

func pointSizeForVersion(currentVersion uint8) (int, error) {
	switch currentVersion {
	case 1:
		return pointSizeV1, nil
	case 2:
		return pointSizeV2, nil
	default:
		return 0, model.NewParseError(model.UnknownBlockVersion, 0, nil).
			WithMessagef("line block current_version %d not in {1, 2}", currentVersion)
	}
}

func parsePointV6(c *cursor, currentVersion uint8) (*model.Point, error) {
	x, err := c.f32()
	if err != nil {
		return nil, err
	}
	y, err := c.f32()
	if err != nil {
		return nil, err
	}

	var speed, width, direction, pressure float32

	switch currentVersion {
	case 1:
		rawSpeed, err := c.f32()
		if err != nil {
			return nil, err
		}
		rawWidth, err := c.f32()
		if err != nil {
			return nil, err
		}
		rawDirection, err := c.f32()
		if err != nil {
			return nil, err
		}
		rawPressure, err := c.f32()
		if err != nil {
			return nil, err
		}
		speed = rawSpeed * 4.0
		width = 255.0 * rawWidth / (2 * math.Pi)
		direction = rawDirection * 4.0
		pressure = rawPressure * 255.0
	case 2:
		rawSpeed, err := c.u16()
		if err != nil {
			return nil, err
		}
		rawWidth, err := c.u16()
		if err != nil {
			return nil, err
		}
		rawDirection, err := c.u8()
		if err != nil {
			return nil, err
		}
		rawPressure, err := c.u8()
		if err != nil {
			return nil, err
		}
		speed = float32(rawSpeed)
		width = float32(rawWidth)
		direction = float32(rawDirection)
		pressure = float32(rawPressure)
	default:
		return nil, model.NewParseError(model.UnknownBlockVersion, c.pos, nil).
			WithMessagef("point current_version %d not in {1, 2}", currentVersion)
	}

	width = width * 2.0 / 255.0
	x = x + model.WidthPixels/2

	return &model.Point{
		X:         x,
		Y:         y,
		Speed:     speed,
		Direction: direction,
		Width:     width,
		Pressure:  pressure,
	}, nil
}

// parseAuthorInfoV6 drains the author sub-block table for stream
// alignment; nothing it decodes is retained downstream (SPEC_FULL.md
// §4.5.2 — CRDT author IDs stay opaque).
func parseAuthorInfoV6(c *cursor) error {
	numSubblocks, err := c.varuint()
	if err != nil {
		return err
	}
	for i := uint64(0); i < numSubblocks; i++ {
		sub, _, err := taggedLength4(c, 0)
		if err != nil {
			return err
		}
		if err := parseAuthorSubblockV6(sub); err != nil {
			return err
		}
	}
	return nil
}

// authorSubblockUUIDLen is the fixed byte length of the UUID that
// follows the (discarded) length varint in each author sub-block.
const authorSubblockUUIDLen = 16

func parseAuthorSubblockV6(c *cursor) error {
	if _, err := c.varuint(); err != nil { // uuid_len, read and discarded
		return err
	}
	raw, err := c.take(authorSubblockUUIDLen)
	if err != nil {
		return err
	}
	if _, err := uuidFromSliceLE(raw); err != nil {
		// malformed UUID shape doesn't invalidate the rest of the page;
		// the author table isn't exposed downstream either way.
		return nil
	}
	if _, err := c.u16(); err != nil { // author_id
		return err
	}
	return nil
}

// parsePageInfoV6 decodes the per-page summary counters. The values are
// read and discarded: they are not logged and never reach model.Page.
func parsePageInfoV6(c *cursor) error {
	if _, err := taggedU32(c, 1); err != nil { // loads
		return err
	}
	if _, err := taggedU32(c, 2); err != nil { // merges
		return err
	}
	if _, err := taggedU32(c, 3); err != nil { // text_chars
		return err
	}
	if _, err := taggedU32(c, 4); err != nil { // text_lines
		return err
	}
	if c.remaining() == 0 {
		return nil
	}
	_, err := taggedU32(c, 5)
	return err
}
