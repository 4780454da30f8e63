package rm

import (
	"github.com/platinummonkey/rmlines/model"
)

// parsePageV5 decodes a v5 page body: a flat
// layer{line{point}} tree with no tags, only positional fields. Point
// values are stored exactly as read — v5 carries no unit-normalisation
// step (SPEC_FULL.md §4.4).
func parsePageV5(c *cursor) (*model.Page, error) {
	numLayers, err := c.u32()
	if err != nil {
		return nil, err
	}

	layers := make([]model.Layer, 0, numLayers)
	for i := uint32(0); i < numLayers; i++ {
		layer, err := parseLayerV5(c)
		if err != nil {
			return nil, err
		}
		layers = append(layers, *layer)
	}

	return &model.Page{Version: model.V5, Layers: layers}, nil
}

func parseLayerV5(c *cursor) (*model.Layer, error) {
	numLines, err := c.u32()
	if err != nil {
		return nil, err
	}

	lines := make([]model.Line, 0, numLines)
	for i := uint32(0); i < numLines; i++ {
		line, err := parseLineV5(c)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return &model.Layer{Lines: lines}, nil
}

func parseLineV5(c *cursor) (*model.Line, error) {
	brushCode, err := c.u32()
	if err != nil {
		return nil, err
	}
	brushType, err := model.BrushTypeFromU32(brushCode)
	if err != nil {
		return nil, err
	}

	colorCode, err := c.u32()
	if err != nil {
		return nil, err
	}
	color, err := model.ColorFromU32(colorCode)
	if err != nil {
		return nil, err
	}

	// padding: unused u32, historically a "brush_unknown_1" field.
	if _, err := c.u32(); err != nil {
		return nil, err
	}

	brushSize, err := c.f32()
	if err != nil {
		return nil, err
	}

	// v5-only padding: a second unused u32 not present in v6's Line fields.
	if _, err := c.u32(); err != nil {
		return nil, err
	}

	numPoints, err := c.u32()
	if err != nil {
		return nil, err
	}

	points := make([]model.Point, 0, numPoints)
	for i := uint32(0); i < numPoints; i++ {
		point, err := parsePointV5(c)
		if err != nil {
			return nil, err
		}
		points = append(points, *point)
	}

	return &model.Line{
		BrushType: brushType,
		Color:     color,
		BrushSize: brushSize,
		Points:    points,
	}, nil
}

func parsePointV5(c *cursor) (*model.Point, error) {
	x, err := c.f32()
	if err != nil {
		return nil, err
	}
	y, err := c.f32()
	if err != nil {
		return nil, err
	}
	speed, err := c.f32()
	if err != nil {
		return nil, err
	}
	direction, err := c.f32()
	if err != nil {
		return nil, err
	}
	width, err := c.f32()
	if err != nil {
		return nil, err
	}
	pressure, err := c.f32()
	if err != nil {
		return nil, err
	}
	return &model.Point{
		X:         x,
		Y:         y,
		Speed:     speed,
		Direction: direction,
		Width:     width,
		Pressure:  pressure,
	}, nil
}
