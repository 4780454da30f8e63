package rmconvert

import (
	"bytes"
	"strings"
	"testing"

	"github.com/platinummonkey/rmlines/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePage() model.Page {
	return model.Page{
		ID:      "page-1",
		Version: model.V6,
		Layers: []model.Layer{{
			Lines: []model.Line{
				{
					BrushType: model.Fineliner,
					Color:     model.Black,
					BrushSize: 2.0,
					Points: []model.Point{
						{X: 100, Y: 100, Width: 2.0},
						{X: 300, Y: 100, Width: 2.0},
					},
				},
				{
					BrushType: model.Eraser, // must be skipped by every renderer
					Color:     model.Black,
					Points: []model.Point{
						{X: 0, Y: 0},
						{X: 1, Y: 1},
					},
				},
			},
		}},
	}
}

func TestConvertPageToPDFProducesOutput(t *testing.T) {
	var buf bytes.Buffer
	err := ConvertPageToPDF(samplePage(), &buf)
	require.NoError(t, err)
	assert.True(t, buf.Len() > 0)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestConvertPageToPNGProducesOutput(t *testing.T) {
	var buf bytes.Buffer
	err := ConvertPageToPNG(samplePage(), &buf, 150)
	require.NoError(t, err)
	assert.True(t, buf.Len() > 0)
}

func TestGenerateSVGSkipsEraserLines(t *testing.T) {
	svg, err := GenerateSVG(samplePage())
	require.NoError(t, err)
	assert.True(t, strings.Contains(svg, "<svg"))
	assert.Equal(t, 1, strings.Count(svg, "<path"), "the eraser line must not produce a path")
}

func TestBoundingBoxEmptyPageFallsBackToCanonicalSize(t *testing.T) {
	empty := model.Page{Layers: []model.Layer{{}}}
	minX, minY, maxX, maxY := boundingBox(empty)
	assert.Equal(t, 0.0, minX)
	assert.Equal(t, 0.0, minY)
	assert.InDelta(t, float64(model.WidthPixels)*renderScale, maxX, 0.01)
	assert.InDelta(t, float64(model.HeightPixels)*renderScale, maxY, 0.01)
}

func TestWidthForLineUsesMaxAcrossPoints(t *testing.T) {
	line := model.Line{
		BrushType: model.Fineliner,
		Points: []model.Point{
			{Width: 1.0},
			{Width: 3.0},
			{Width: 2.0},
		},
	}
	got := widthForLine(line)
	want := 3.0 * 4.0 * renderScale
	assert.InDelta(t, want, got, 1e-9)
}
