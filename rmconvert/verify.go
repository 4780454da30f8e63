package rmconvert

import (
	"fmt"
	"os"

	unipdf "github.com/unidoc/unipdf/v3/model"
)

// PageReport is one page's dimensions as read back by the verify path.
type PageReport struct {
	Number      int
	WidthPoints float64
	HeightPoints float64
}

// VerifyReport summarises what a second, independent PDF engine sees in a
// file this package produced.
type VerifyReport struct {
	Path  string
	Pages []PageReport
}

// VerifyPDF opens path with unidoc/unipdf/v3 — a different engine from the
// pdfcpu/tdewolff-canvas pipeline that writes these files — and reports
// page count and per-page dimensions. This is a read-back sanity check,
// not a structural validator: it exists to catch "wrote garbage" class
// failures the writing engine itself can't detect.
func VerifyPDF(path string) (*VerifyReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader, err := unipdf.NewPdfReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	report := &VerifyReport{Path: path}
	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			fmt.Printf("Warning: failed to read page %d: %v\n", i, err)
			continue
		}

		box, err := page.GetMediaBox()
		if err != nil || box == nil {
			report.Pages = append(report.Pages, PageReport{Number: i})
			continue
		}

		report.Pages = append(report.Pages, PageReport{
			Number:       i,
			WidthPoints:  box.Urx - box.Llx,
			HeightPoints: box.Ury - box.Lly,
		})
	}

	return report, nil
}
