package rmconvert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/platinummonkey/rmlines/model"
)

// GenerateSVG creates an SVG representation of a decoded page.
func GenerateSVG(page model.Page) (string, error) {
	var buf bytes.Buffer

	minX, minY, maxX, maxY := boundingBox(page)
	width := maxX - minX
	height := maxY - minY

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>`)
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" `+
		`width="%.2f" height="%.2f" `+
		`viewBox="%.2f %.2f %.2f %.2f">`,
		width, height, minX, minY, width, height))
	buf.WriteString("\n")

	buf.WriteString(fmt.Sprintf(`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" `+
		`fill="white" stroke="none"/>`,
		minX, minY, width, height))
	buf.WriteString("\n")

	id := 0
	for _, layer := range page.Layers {
		for _, line := range layer.Lines {
			if line.BrushType.IsEraser() || len(line.Points) < 2 {
				continue
			}
			strokeSVG, err := generateLineSVG(line, id, minX, minY)
			id++
			if err != nil {
				continue
			}
			buf.WriteString(strokeSVG)
			buf.WriteString("\n")
		}
	}

	buf.WriteString("</svg>")

	return buf.String(), nil
}

// generateLineSVG creates SVG markup for a single line.
func generateLineSVG(line model.Line, lineID int, offsetX, offsetY float64) (string, error) {
	if len(line.Points) < 2 {
		return "", fmt.Errorf("line must have at least 2 points")
	}

	props := propertiesForLine(line)

	var pathData strings.Builder
	firstX, firstY := scalePoint(line.Points[0])
	pathData.WriteString(fmt.Sprintf("M %.2f %.2f", firstX-offsetX, firstY-offsetY))

	for i := 1; i < len(line.Points); i++ {
		x, y := scalePoint(line.Points[i])
		pathData.WriteString(fmt.Sprintf(" L %.2f %.2f", x-offsetX, y-offsetY))
	}

	svg := fmt.Sprintf(`  <path id="stroke-%d" `+
		`d="%s" `+
		`fill="none" `+
		`stroke="%s" `+
		`stroke-width="%.2f" `+
		`stroke-opacity="%.2f" `+
		`stroke-linecap="round" `+
		`stroke-linejoin="round"/>`,
		lineID,
		pathData.String(),
		cssColor(props.Color),
		props.StrokeWidth,
		props.Opacity)

	return svg, nil
}

// generateLineSVGWithVariableWidth renders a line as a sequence of
// individually-widthed segments instead of one fixed-width path.
func generateLineSVGWithVariableWidth(line model.Line, lineID int, offsetX, offsetY float64) (string, error) {
	if len(line.Points) < 2 {
		return "", fmt.Errorf("line must have at least 2 points")
	}

	props := propertiesForLine(line)
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf(`  <g id="stroke-group-%d" stroke="%s" stroke-opacity="%.2f" fill="none">`,
		lineID, cssColor(props.Color), props.Opacity))
	buf.WriteString("\n")

	for i := 0; i < len(line.Points)-1; i++ {
		p1 := line.Points[i]
		p2 := line.Points[i+1]
		x1, y1 := scalePoint(p1)
		x2, y2 := scalePoint(p2)

		avgWidth := float64(p1.Width+p2.Width) / 2 * 4.0 * renderScale
		if avgWidth <= 0 {
			avgWidth = props.StrokeWidth
		}

		buf.WriteString(fmt.Sprintf(`    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" `+
			`stroke-width="%.2f" stroke-linecap="round"/>`,
			x1-offsetX, y1-offsetY, x2-offsetX, y2-offsetY, avgWidth))
		buf.WriteString("\n")
	}

	buf.WriteString("  </g>")
	return buf.String(), nil
}

// GenerateSVGWithVariableWidth creates an SVG with per-segment stroke
// widths instead of one fixed width per line.
func GenerateSVGWithVariableWidth(page model.Page) (string, error) {
	var buf bytes.Buffer

	minX, minY, maxX, maxY := boundingBox(page)
	width := maxX - minX
	height := maxY - minY

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>`)
	buf.WriteString("\n")
	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" `+
		`width="%.2f" height="%.2f" `+
		`viewBox="%.2f %.2f %.2f %.2f">`,
		width, height, minX, minY, width, height))
	buf.WriteString("\n")

	buf.WriteString(fmt.Sprintf(`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" `+
		`fill="white" stroke="none"/>`,
		minX, minY, width, height))
	buf.WriteString("\n")

	id := 0
	for _, layer := range page.Layers {
		for _, line := range layer.Lines {
			if line.BrushType.IsEraser() || len(line.Points) < 2 {
				continue
			}

			strokeSVG, err := generateLineSVGWithVariableWidth(line, id, minX, minY)
			if err != nil {
				strokeSVG, err = generateLineSVG(line, id, minX, minY)
				if err != nil {
					id++
					continue
				}
			}
			id++

			buf.WriteString(strokeSVG)
			buf.WriteString("\n")
		}
	}

	buf.WriteString("</svg>")

	return buf.String(), nil
}
