package device

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// minDurationPerFrame throttles the streaming loop so a fast round trip
// doesn't hammer the tablet's SSH link with back-to-back framebuffer reads.
const minDurationPerFrame = 100 * time.Millisecond

const textMarginPx = 10

// previewMaxWidth bounds how wide a served frame is. Full device
// resolution is wasted on a browser preview and needlessly fattens every
// refresh over the SSH-forwarded link, so Serve downsamples with
// nfnt/resize before encoding.
const previewMaxWidth = 700

// Streamer serves the tablet's live framebuffer, either as a single
// still (GrabFrame) or as a continuously refreshed page (Serve).
type Streamer struct {
	cache *FrameCache
}

// NewStreamer wraps rem's framebuffer in a Streamer.
func NewStreamer(rem *Remarkable) *Streamer {
	return &Streamer{cache: NewFrameCache(rem)}
}

// GrabFrame pulls a single frame and writes it to destFile, inferring the
// image format from its extension (.png or .jpg/.jpeg).
func (s *Streamer) GrabFrame(destFile string) error {
	img, err := s.cache.Frame()
	if err != nil {
		return fmt.Errorf("failed to grab frame: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(destFile))
	var buf bytes.Buffer
	if err := encodeFrame(&buf, img, ext); err != nil {
		return err
	}
	return writeFile(destFile, buf.Bytes())
}

func encodeFrame(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case ".png", "":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpegEncode(w, img)
	default:
		return fmt.Errorf("unsupported image extension %q", ext)
	}
}

// frameServer holds the most recently captured frame behind a mutex, for
// Serve's HTTP handler to read while the capture loop keeps writing.
type frameServer struct {
	mu    sync.RWMutex
	frame []byte // PNG-encoded
}

func (f *frameServer) set(data []byte) {
	f.mu.Lock()
	f.frame = data
	f.mu.Unlock()
}

func (f *frameServer) get() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frame
}

// Serve streams the tablet's framebuffer to a local HTTP endpoint: an
// auto-refreshing page at "/" and the latest frame as a PNG at
// "/frame.png". This is the Go idiom for "show the stream somewhere" —
// unlike the original desktop-window viewer, it needs no native GUI
// toolkit and works over SSH-forwarded ports.
func (s *Streamer) Serve(addr string, showDiagnostics bool) error {
	srv := &frameServer{}
	go s.captureLoop(srv, showDiagnostics)

	mux := http.NewServeMux()
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) {
		frame := srv.get()
		if frame == nil {
			http.Error(w, "no frame captured yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(frame)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta http-equiv="refresh" content="1">`+
			`<title>reMarkable stream</title></head>`+
			`<body style="margin:0;background:#000">`+
			`<img src="/frame.png" style="max-width:100%;max-height:100vh"/>`+
			`</body></html>`)
	})

	log.Printf("streaming reMarkable tablet at http://%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Streamer) captureLoop(srv *frameServer, showDiagnostics bool) {
	var frameErrors int
	for {
		begin := time.Now()
		img, err := s.cache.Frame()
		if err != nil {
			frameErrors++
			continue
		}

		if showDiagnostics {
			rate := 1.0 / time.Since(begin).Seconds()
			overlayDiagnostics(img, fmt.Sprintf(
				"frame errors: %d latency: %dms rate: %.2ffps",
				frameErrors, time.Since(begin).Milliseconds(), rate,
			))
		}

		preview := resize.Resize(previewMaxWidth, 0, img, resize.Lanczos3)

		var buf bytes.Buffer
		if err := png.Encode(&buf, preview); err == nil {
			srv.set(buf.Bytes())
		}

		if elapsed := time.Since(begin); elapsed < minDurationPerFrame {
			time.Sleep(minDurationPerFrame - elapsed)
		}
	}
}

// overlayDiagnostics draws text in the bottom-right corner of img, in
// place, mirroring the original stream's debug overlay.
func overlayDiagnostics(img image.Image, text string) {
	dst, ok := img.(draw.Image)
	if !ok {
		return
	}
	bounds := dst.Bounds()
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Round()
	height := face.Metrics().Height.Round()

	x := bounds.Dx() - width - textMarginPx
	y := bounds.Dy() - height - textMarginPx
	if x < 0 {
		x = 0
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + face.Metrics().Ascent.Round())},
	}
	d.DrawString(text)
}
