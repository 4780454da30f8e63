package device

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/platinummonkey/rmlines/model"
)

// rawFrameBytes is the size of one raw framebuffer read: two bytes per
// pixel, reMarkable's panel is RGB565-ish but only the high byte per pixel
// carries usable greyscale (see decodeFrame).
const rawFrameBytes = model.WidthPixels * model.HeightPixels * 2

// FrameCache lazily resolves and remembers the tablet's xochitl PID and
// its /dev/fb0 mapping offset, so the streaming loop doesn't re-scrape
// /proc/<pid>/maps on every frame. A PID change (xochitl restarted) is
// detected by re-checking XochitlPID and invalidates the cached offset.
type FrameCache struct {
	rem *Remarkable

	mu     sync.Mutex
	pid    int
	offset int64
}

// NewFrameCache returns a cache bound to rem. It resolves nothing until
// the first Frame call.
func NewFrameCache(rem *Remarkable) *FrameCache {
	return &FrameCache{rem: rem}
}

func (c *FrameCache) resolve() (int, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pid, err := c.rem.XochitlPID()
	if err != nil {
		return 0, 0, err
	}
	if pid != c.pid || c.offset == 0 {
		offset, err := c.rem.FramebufferOffset(pid)
		if err != nil {
			return 0, 0, err
		}
		c.pid, c.offset = pid, offset
	}
	return c.pid, c.offset, nil
}

// Frame pulls one raw frame from the tablet's framebuffer and decodes it
// to an RGB image at the device's native orientation.
func (c *FrameCache) Frame() (image.Image, error) {
	pid, offset, err := c.resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve framebuffer location: %w", err)
	}

	raw, err := c.rem.ReadFramebuffer(pid, offset, rawFrameBytes)
	if err != nil {
		// The cached offset may be stale (xochitl restarted between
		// resolve and read); force a refresh on the next call.
		c.mu.Lock()
		c.pid, c.offset = 0, 0
		c.mu.Unlock()
		return nil, err
	}

	return decodeFrame(raw), nil
}

// decodeFrame converts one raw framebuffer read into the RGB image a
// viewer expects: every other source byte is a luma sample, scaled from
// the panel's narrow 0-30 range up to 0-255, then rotated 270 degrees and
// flipped horizontally to match the tablet's physical orientation.
func decodeFrame(raw []byte) image.Image {
	luma := make([]byte, model.WidthPixels*model.HeightPixels)
	for i, j := 0, 0; j < len(raw) && i < len(luma); i, j = i+1, j+2 {
		luma[i] = scaleLuma(raw[j])
	}

	rotated := image.NewRGBA(image.Rect(0, 0, model.HeightPixels, model.WidthPixels))
	for y := 0; y < model.HeightPixels; y++ {
		for x := 0; x < model.WidthPixels; x++ {
			v := luma[y*model.WidthPixels+x]
			// rotate270 + fliph, combined: source (x, y) lands at
			// destination (y, x) in the rotated frame.
			rotated.Set(y, x, color.Gray{Y: v})
		}
	}
	return rotated
}

func scaleLuma(b byte) byte {
	v := float64(b) / 30.0 * 255.0
	if v > 255 {
		v = 255
	}
	return byte(v)
}
