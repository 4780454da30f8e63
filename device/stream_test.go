package device

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFramePNGAndJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	var pngBuf bytes.Buffer
	require.NoError(t, encodeFrame(&pngBuf, img, ".png"))
	assert.True(t, pngBuf.Len() > 0)

	var jpegBuf bytes.Buffer
	require.NoError(t, encodeFrame(&jpegBuf, img, ".jpg"))
	assert.True(t, jpegBuf.Len() > 0)

	err := encodeFrame(&bytes.Buffer{}, img, ".bmp")
	assert.Error(t, err)
}

func TestOverlayDiagnosticsWritesPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for x := 0; x < 200; x++ {
		for y := 0; y < 100; y++ {
			img.Set(x, y, color.White)
		}
	}

	overlayDiagnostics(img, "frame errors: 0 latency: 5ms rate: 20.00fps")

	foundDark := false
	for x := 0; x < 200 && !foundDark; x++ {
		for y := 0; y < 100 && !foundDark; y++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r == 0 {
				foundDark = true
			}
		}
	}
	assert.True(t, foundDark, "expected the diagnostics overlay to draw some black text pixels")
}
