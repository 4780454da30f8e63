package device

import (
	"testing"

	"github.com/platinummonkey/rmlines/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleLumaClampsToByteRange(t *testing.T) {
	assert.Equal(t, byte(0), scaleLuma(0))
	assert.Equal(t, byte(255), scaleLuma(30))
	assert.Equal(t, byte(255), scaleLuma(255)) // well beyond the panel's 0-30 range, must clamp
}

func TestDecodeFrameDimensions(t *testing.T) {
	raw := make([]byte, rawFrameBytes)
	img := decodeFrame(raw)
	b := img.Bounds()
	require.Equal(t, model.HeightPixels, b.Dx())
	require.Equal(t, model.WidthPixels, b.Dy())
}

func TestDecodeFrameCarriesLumaValue(t *testing.T) {
	raw := make([]byte, rawFrameBytes)
	// first source pixel (x=0, y=0) carries a bright value
	raw[0] = 30
	img := decodeFrame(raw)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
	assert.True(t, r > 0)
}
