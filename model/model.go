// Package model holds the data model shared by the .lines parser
// (encoding/rm), the notebook scanner (notebookfs) and the renderer
// (rmconvert): everything downstream of a parsed page sees these types.
package model

// Canonical pixel dimensions of a reMarkable page. The parser uses
// WidthPixels for the v6 x-shift; the renderer uses both for page geometry.
const (
	WidthPixels  = 1872
	HeightPixels = 1404
)

// Version identifies which on-disk .lines layout produced a Page.
type Version int

const (
	VersionUnknown Version = iota
	V3
	V5
	V6
)

func (v Version) String() string {
	switch v {
	case V3:
		return "v3"
	case V5:
		return "v5"
	case V6:
		return "v6"
	default:
		return "unknown"
	}
}

// Color is the reMarkable stroke color palette. Ordinals match the
// on-disk encoding exactly; do not reorder.
type Color int

const (
	Black Color = iota
	Grey
	White
	Yellow
	Green
	Pink
	Blue
	Red
	GreyOverlap
)

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case Grey:
		return "Grey"
	case White:
		return "White"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	case Pink:
		return "Pink"
	case Blue:
		return "Blue"
	case Red:
		return "Red"
	case GreyOverlap:
		return "GreyOverlap"
	default:
		return "Color(?)"
	}
}

// ColorFromU32 decodes a wire color ordinal. Any value outside the table
// is a hard parse error (UnknownEnum).
func ColorFromU32(v uint32) (Color, error) {
	switch v {
	case 0:
		return Black, nil
	case 1:
		return Grey, nil
	case 2:
		return White, nil
	case 3:
		return Yellow, nil
	case 4:
		return Green, nil
	case 5:
		return Pink, nil
	case 6:
		return Blue, nil
	case 7:
		return Red, nil
	case 8:
		return GreyOverlap, nil
	default:
		return 0, NewParseError(UnknownEnum, 0, nil).withMessagef("color ordinal %d not recognised", v)
	}
}

// BrushType is the reMarkable pen/tool palette. The wire encoding is
// non-contiguous: several brushes share two codes (an older and a newer
// tool ID), so this is a lookup table, not an ordinal range.
type BrushType int

const (
	Eraser BrushType = iota
	EraserArea
	Marker
	Fineliner
	Paintbrush
	MechanicalPencil
	Pencil
	Ballpoint
	Highlighter
	Calligraphy
)

func (b BrushType) String() string {
	switch b {
	case Eraser:
		return "Eraser"
	case EraserArea:
		return "EraserArea"
	case Marker:
		return "Marker"
	case Fineliner:
		return "Fineliner"
	case Paintbrush:
		return "Paintbrush"
	case MechanicalPencil:
		return "MechanicalPencil"
	case Pencil:
		return "Pencil"
	case Ballpoint:
		return "Ballpoint"
	case Highlighter:
		return "Highlighter"
	case Calligraphy:
		return "Calligraphy"
	default:
		return "BrushType(?)"
	}
}

// BrushTypeFromU32 decodes a wire brush-type code via the fixed
// non-contiguous table of SPEC_FULL.md §3. Any other code is UnknownEnum.
func BrushTypeFromU32(v uint32) (BrushType, error) {
	switch v {
	case 0x06:
		return Eraser, nil
	case 0x08:
		return EraserArea, nil
	case 0x03, 0x10:
		return Marker, nil
	case 0x04, 0x11:
		return Fineliner, nil
	case 0x00, 0x0C:
		return Paintbrush, nil
	case 0x07, 0x0D:
		return MechanicalPencil, nil
	case 0x01, 0x0E:
		return Pencil, nil
	case 0x02, 0x0F:
		return Ballpoint, nil
	case 0x05, 0x12:
		return Highlighter, nil
	case 0x15:
		return Calligraphy, nil
	default:
		return 0, NewParseError(UnknownEnum, 0, nil).withMessagef("brush type code 0x%02x not recognised", v)
	}
}

// IsEraser reports whether the renderer should skip ink for this brush.
func (b BrushType) IsEraser() bool {
	return b == Eraser || b == EraserArea
}

// Point is a single sample along a stroke, already normalised to the
// in-memory units described in SPEC_FULL.md §4.5.1 (v6) — v5 points carry
// the raw wire values unchanged, per §4.4.
type Point struct {
	X         float32
	Y         float32
	Speed     float32
	Direction float32
	Width     float32
	Pressure  float32
}

// Line is one stroke: a brush/color/size plus its ordered points.
type Line struct {
	BrushType BrushType
	Color     Color
	BrushSize float32
	Points    []Point
}

// Layer is an ordered group of lines. v5 pages may have several; v6 pages
// always flatten to exactly one.
type Layer struct {
	Lines []Line
}

// Page is one decoded .rm file.
type Page struct {
	ID      string
	Version Version
	Layers  []Layer
}

// Notebook is an ordered collection of pages sharing one directory.
type Notebook struct {
	ID    string
	Pages []Page
}

// CrdtId identifies a node in the device's conflict-free replicated data
// type. It is parsed for preservation and equality only; this package does
// not reconstruct ordering from it (SPEC_FULL.md §9).
type CrdtId struct {
	Part1 uint8
	Part2 uint64
}
