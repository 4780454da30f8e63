package device

import (
	"image"
	"image/jpeg"
	"io"
	"os"
)

func jpegEncode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
