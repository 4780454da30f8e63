package rmconvert

import (
	"fmt"
	"image/color"
	"math"

	"github.com/platinummonkey/rmlines/model"
)

// renderScale converts the reMarkable tablet's native ~226 DPI coordinate
// space to PDF points (72 DPI).
const renderScale = 72.0 / 226.0

// renderProperties is what a Line becomes on the canvas: a color, a
// stroke width, and an opacity. Width is one value for the whole line,
// the maximum of its per-point widths (BrushSize when all are zero),
// then adjusted by brush — see widthForLine.
type renderProperties struct {
	Color       color.RGBA
	Opacity     float64
	StrokeWidth float64
}

// colorToRGBA maps the model.Color palette to concrete RGB. The original
// Rust renderer (render/color.rs) only implemented Black/Green/Blue/Red
// and left the rest as todo!(); this table completes it so every emitted
// line gets ink instead of failing at render time.
func colorToRGBA(c model.Color) color.RGBA {
	switch c {
	case model.Black:
		return color.RGBA{R: 0, G: 0, B: 0, A: 255}
	case model.Grey:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	case model.White:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case model.Yellow:
		return color.RGBA{R: 255, G: 214, B: 0, A: 255}
	case model.Green:
		return color.RGBA{R: 0, G: 150, B: 57, A: 255}
	case model.Pink:
		return color.RGBA{R: 255, G: 140, B: 190, A: 255}
	case model.Blue:
		return color.RGBA{R: 28, G: 85, B: 201, A: 255}
	case model.Red:
		return color.RGBA{R: 217, G: 33, B: 33, A: 255}
	case model.GreyOverlap:
		return color.RGBA{R: 150, G: 150, B: 150, A: 160}
	default:
		return color.RGBA{R: 0, G: 0, B: 0, A: 255}
	}
}

// widthForLine resolves one render width for the whole line rather than
// per-segment widths. v6's per-point width is noisy at the sample level;
// the original renderer's documented workaround (render/mod.rs) is to use
// the maximum width observed across all of the line's points, scaled by
// 4.0, and render every segment of the line at that single width.
func widthForLine(line model.Line) float64 {
	var maxWidth float32
	for _, p := range line.Points {
		if p.Width > maxWidth {
			maxWidth = p.Width
		}
	}
	if maxWidth == 0 {
		maxWidth = line.BrushSize
	}
	return float64(maxWidth) * 4.0 * renderScale
}

func propertiesForLine(line model.Line) renderProperties {
	props := renderProperties{
		Color:       colorToRGBA(line.Color),
		Opacity:     1.0,
		StrokeWidth: widthForLine(line),
	}

	switch line.BrushType {
	case model.Highlighter:
		props.Opacity = 0.4
		props.StrokeWidth *= 3
	case model.Marker:
		props.Opacity = 0.7
		props.StrokeWidth *= 2
	case model.Pencil, model.MechanicalPencil:
		props.Opacity = 0.8
	}

	return props
}

// scalePoint converts a Point's device-pixel coordinates to PDF points.
func scalePoint(p model.Point) (x, y float64) {
	return float64(p.X) * renderScale, float64(p.Y) * renderScale
}

// boundingBox returns the scaled bounding box of every point in page,
// padded by 10pt, falling back to the canonical page size when the page
// carries no ink at all.
func boundingBox(page model.Page) (minX, minY, maxX, maxY float64) {
	minX = math.MaxFloat64
	minY = math.MaxFloat64
	maxX = -math.MaxFloat64
	maxY = -math.MaxFloat64

	found := false
	for _, layer := range page.Layers {
		for _, line := range layer.Lines {
			if line.BrushType.IsEraser() {
				continue
			}
			for _, p := range line.Points {
				x, y := scalePoint(p)
				found = true
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if !found {
		return 0, 0, float64(model.WidthPixels) * renderScale, float64(model.HeightPixels) * renderScale
	}

	const padding = 10.0
	return minX - padding, minY - padding, maxX + padding, maxY + padding
}

// cssColor formats a color.RGBA as an SVG/CSS hex color.
func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func pageSummary(page model.Page) string {
	lines := 0
	for _, l := range page.Layers {
		lines += len(l.Lines)
	}
	return fmt.Sprintf("Page{ID: %s, Version: %s, Layers: %d, Lines: %d}",
		page.ID, page.Version, len(page.Layers), lines)
}
