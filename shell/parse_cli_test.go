package shell

import (
	"testing"

	"github.com/platinummonkey/rmlines/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarizePage(t *testing.T) {
	page := model.Page{
		ID:      "abc",
		Version: model.V6,
		Layers: []model.Layer{{
			Lines: []model.Line{
				{BrushType: model.Fineliner, Points: make([]model.Point, 3)},
				{BrushType: model.Fineliner, Points: make([]model.Point, 2)},
				{BrushType: model.Eraser, Points: make([]model.Point, 1)},
			},
		}},
	}

	out := summarizePage(page)
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "1 layer(s)")
	assert.Contains(t, out, "3 line(s)")
	assert.Contains(t, out, "6 point(s)")
	assert.Contains(t, out, "Fineliner: 2 line(s)")
	assert.Contains(t, out, "Eraser: 1 line(s)")
}
