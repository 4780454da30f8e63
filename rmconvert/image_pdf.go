package rmconvert

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"

	"github.com/platinummonkey/rmlines/encoding/rm"
	"github.com/platinummonkey/rmlines/model"
)

// ConvertPageToPNG renders one decoded page to a PNG image at the given DPI.
func ConvertPageToPNG(page model.Page, writer io.Writer, dpi int) error {
	const rmDPI = 226.0
	scale := float64(dpi) / rmDPI

	width := float64(model.WidthPixels) * scale
	height := float64(model.HeightPixels) * scale

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)

	ctx.SetFillColor(canvas.White)
	ctx.MoveTo(0, 0)
	ctx.LineTo(width, 0)
	ctx.LineTo(width, height)
	ctx.LineTo(0, height)
	ctx.Close()
	ctx.Fill()

	for _, layer := range page.Layers {
		for _, line := range layer.Lines {
			if line.BrushType.IsEraser() || len(line.Points) < 2 {
				continue
			}
			if err := renderLineToRaster(ctx, line, scale); err != nil {
				fmt.Printf("Warning: failed to render line: %v\n", err)
				continue
			}
		}
	}

	pngWriter := renderers.PNG()
	return c.Write(writer, pngWriter)
}

// renderLineToRaster renders a single decoded Line to a raster canvas
// context at the given device-pixel-to-output scale (no PDF-point
// conversion, unlike renderLineToCanvas).
func renderLineToRaster(ctx *canvas.Context, line model.Line, scale float64) error {
	if len(line.Points) < 2 {
		return fmt.Errorf("line must have at least 2 points")
	}

	props := propertiesForLine(line)

	ctx.SetStrokeColor(props.Color)
	ctx.SetStrokeWidth(props.StrokeWidth / renderScale * scale)
	ctx.SetStrokeCapper(canvas.RoundCap)
	ctx.SetStrokeJoiner(canvas.RoundJoin)

	first := line.Points[0]
	ctx.MoveTo(float64(first.X)*scale, float64(first.Y)*scale)

	for i := 1; i < len(line.Points); i++ {
		p := line.Points[i]
		ctx.LineTo(float64(p.X)*scale, float64(p.Y)*scale)
	}

	ctx.Stroke()

	return nil
}

// ConvertRmdocToImagePDF converts a .rmdoc file to PDF by rendering each
// page to PNG first and assembling the PNGs with pdfcpu's image importer.
func ConvertRmdocToImagePDF(rmdocPath, pdfPath string, dpi int) error {
	if dpi <= 0 {
		dpi = 300
	}

	tempDir, err := os.MkdirTemp("", "rmdoc_images_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	extractDir := filepath.Join(tempDir, "extracted")
	if err := extractZip(rmdocPath, extractDir); err != nil {
		return fmt.Errorf("failed to extract .rmdoc: %v", err)
	}

	pageOrder, docDir, err := getPageOrderAndDocDir(extractDir)
	if err != nil {
		return fmt.Errorf("failed to get page order: %v", err)
	}
	if len(pageOrder) == 0 {
		return fmt.Errorf("no pages found in document")
	}

	pdfDir := filepath.Dir(pdfPath)
	if err := os.MkdirAll(pdfDir, 0755); err != nil {
		return fmt.Errorf("failed to create PDF directory: %v", err)
	}

	var pngFiles []string
	successCount := 0

	for i, pageID := range pageOrder {
		rmFile := filepath.Join(docDir, pageID+".rm")
		if _, err := os.Stat(rmFile); err != nil {
			fmt.Printf("Warning: page %s not found, skipping\n", pageID)
			continue
		}

		pngPath := filepath.Join(tempDir, fmt.Sprintf("page_%04d.png", i+1))
		if err := convertRMToPNG(rmFile, pngPath, dpi); err != nil {
			fmt.Printf("Warning: failed to convert page %s to PNG: %v\n", pageID, err)
			continue
		}

		pngFiles = append(pngFiles, pngPath)
		successCount++
	}

	if successCount == 0 {
		return fmt.Errorf("no pages were successfully converted")
	}

	return createPDFFromImages(pngFiles, pdfPath)
}

// convertRMToPNG converts a single .rm file to PNG.
func convertRMToPNG(rmFile, pngFile string, dpi int) error {
	data, err := os.ReadFile(rmFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", rmFile, err)
	}

	id := strings.TrimSuffix(filepath.Base(rmFile), ".rm")
	page, err := rm.Parse(id, data)
	if err != nil {
		fmt.Printf("Warning: failed to parse %s, creating empty page: %v\n", rmFile, err)
		page = &model.Page{ID: id, Layers: []model.Layer{{}}}
	}

	file, err := os.Create(pngFile)
	if err != nil {
		return fmt.Errorf("failed to create PNG file: %v", err)
	}
	defer file.Close()

	return ConvertPageToPNG(*page, file, dpi)
}

// createPDFFromImages creates a PDF from a list of PNG images using pdfcpu
func createPDFFromImages(imagePaths []string, outputPath string) error {
	return CreatePDFFromImagesExport(imagePaths, outputPath)
}

// CreatePDFFromImagesExport creates a PDF from a list of PNG images using pdfcpu (exported for testing)
func CreatePDFFromImagesExport(imagePaths []string, outputPath string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no images to convert")
	}

	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.CreateBookmarks = false

	err := api.ImportImagesFile(imagePaths, outputPath, nil, conf)
	if err != nil {
		return fmt.Errorf("failed to create PDF from images: %v", err)
	}

	return nil
}

// ConvertRMFileToImage converts a single .rm file to an image for testing
func ConvertRMFileToImage(rmFilePath, imagePath string, dpi int) error {
	return convertRMToPNG(rmFilePath, imagePath, dpi)
}

// RenderPageToImage renders a decoded page directly to an image.Image.
func RenderPageToImage(page model.Page, dpi int) (image.Image, error) {
	var buf []byte
	writer := &bufferWriter{buf: &buf}
	if err := ConvertPageToPNG(page, writer, dpi); err != nil {
		return nil, fmt.Errorf("failed to render to PNG: %v", err)
	}

	img, err := png.Decode(&bufferReader{buf: buf})
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %v", err)
	}

	return img, nil
}

// Helper types for in-memory buffer operations
type bufferWriter struct {
	buf *[]byte
}

func (w *bufferWriter) Write(p []byte) (n int, err error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

type bufferReader struct {
	buf []byte
	pos int
}

func (r *bufferReader) Read(p []byte) (n int, err error) {
	if r.pos >= len(r.buf) {
		return 0, io.EOF
	}
	n = copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}
