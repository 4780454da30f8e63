package rmconvert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/platinummonkey/rmlines/model"
	"github.com/platinummonkey/rmlines/notebookfs"
)

// PageFilter selects which pages of a notebook to render, evaluated
// against a page's ordinal position (not its ID).
type PageFilter struct {
	Kind  PageFilterKind
	Start int
	End   int // half-open, only used when Kind is PageRange: [Start, End)
}

type PageFilterKind int

const (
	PageAll PageFilterKind = iota
	PageSingle
	PageRange
)

func (f PageFilter) includes(index int) bool {
	switch f.Kind {
	case PageSingle:
		return index == f.Start
	case PageRange:
		return index >= f.Start && index < f.End
	default:
		return true
	}
}

// ConvertNotebookToPDF renders a scanned notebook's pages to a single
// merged PDF at destPath, decoding pages concurrently via
// notebookfs.ParseNotebook and honouring filter.
func ConvertNotebookToPDF(nb notebookfs.Notebook, destPath string, filter PageFilter) error {
	decoded, err := notebookfs.ParseNotebook(nb)
	if err != nil {
		return fmt.Errorf("failed to parse notebook %s: %w", nb.Name, err)
	}

	selected := selectPages(decoded.Pages, filter)
	if len(selected) == 0 {
		return fmt.Errorf("no pages selected from notebook %s", nb.Name)
	}

	tempDir, err := os.MkdirTemp("", "rmlines_notebook_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	var tempPDFs []string
	for i, page := range selected {
		tempPDF := filepath.Join(tempDir, fmt.Sprintf("page_%04d.pdf", i+1))
		f, err := os.Create(tempPDF)
		if err != nil {
			return fmt.Errorf("failed to create temp PDF: %w", err)
		}
		err = ConvertPageToPDF(page, f)
		f.Close()
		if err != nil {
			fmt.Printf("Warning: failed to render page %s: %v\n", page.ID, err)
			continue
		}
		tempPDFs = append(tempPDFs, tempPDF)
	}

	if len(tempPDFs) == 0 {
		return fmt.Errorf("no pages were successfully rendered for notebook %s", nb.Name)
	}
	if len(tempPDFs) == 1 {
		return copyFile(tempPDFs[0], destPath)
	}

	return MergePDFs(tempPDFs, destPath)
}

func selectPages(pages []model.Page, filter PageFilter) []model.Page {
	var out []model.Page
	for i, p := range pages {
		if filter.includes(i) {
			out = append(out, p)
		}
	}
	return out
}
