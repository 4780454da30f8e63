package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ogier/pflag"

	"github.com/platinummonkey/rmlines/notebookfs"
	"github.com/platinummonkey/rmlines/rmconvert"
)

func convertCommand(ctx *Context) Command {
	return Command{
		Name: "convert",
		Help: "convert a .rmdoc file or a scanned notebook directory to PDF",
		Func: func(ctx *Context, args []string) error {
			defaults := ctx.Config

			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			dest := flagSet.String("dest", defaults.OutputDir, "output directory")
			notebook := flagSet.String("notebook", "", "notebook name to convert (scan mode only; default: all)")
			pages := flagSet.String("pages", "", "page selection: N or A:B (default: all pages)")
			dpi := flagSet.Int("dpi", defaults.DPI, "render DPI for image-based fallback conversion")
			enableOCR := flagSet.Bool("ocr", defaults.OCR.Enabled, "enable OCR text layer (requires tesseract)")
			tessPath := flagSet.String("tess-path", defaults.OCR.TesseractPath, "path to tesseract binary")
			tessLang := flagSet.String("tess-lang", defaults.OCR.Lang, "tesseract language")
			tessPSM := flagSet.Int("tess-psm", defaults.OCR.PSM, "tesseract page segmentation mode")

			if err := flagSet.Parse(args); err != nil {
				return err
			}

			rest := flagSet.Args()
			if len(rest) == 0 {
				return fmt.Errorf("usage: rmlines convert [options] <source-dir-or-file.rmdoc>")
			}
			source := rest[0]

			filter, err := parsePageFilter(*pages)
			if err != nil {
				return err
			}

			info, err := os.Stat(source)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", source, err)
			}

			if !info.IsDir() {
				return convertSingleFile(source, *dest, *dpi, *enableOCR, *tessPath, *tessLang, *tessPSM)
			}
			return convertScannedNotebooks(source, *dest, *notebook, filter)
		},
	}
}

func convertSingleFile(source, dest string, dpi int, enableOCR bool, tessPath, tessLang string, tessPSM int) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	pdfPath := filepath.Join(dest, base+".pdf")

	if enableOCR {
		if err := rmconvert.ConvertRmdocToSearchablePDF(source, pdfPath, dpi, tessPath, tessLang, tessPSM); err == nil {
			fmt.Printf("converted %s -> %s (searchable)\n", source, pdfPath)
			return nil
		}
		fmt.Println("OCR conversion failed, falling back to non-searchable PDF")
	}

	if err := rmconvert.ConvertRmdocToPDFWithFallback(source, pdfPath); err != nil {
		return fmt.Errorf("failed to convert %s: %w", source, err)
	}
	fmt.Printf("converted %s -> %s\n", source, pdfPath)
	return nil
}

func convertScannedNotebooks(root, dest, notebookFilter string, filter rmconvert.PageFilter) error {
	notebooks, err := notebookfs.Scan(root)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	converted := 0
	for _, nb := range notebooks.Notebooks {
		if notebookFilter != "" && nb.Name != notebookFilter {
			continue
		}

		pdfPath := filepath.Join(dest, nb.Name+".pdf")
		fmt.Printf("converting notebook %q (%d page(s))...", nb.Name, len(nb.Pages))
		if err := rmconvert.ConvertNotebookToPDF(nb, pdfPath, filter); err != nil {
			fmt.Printf(" FAILED: %v\n", err)
			continue
		}
		fmt.Println(" OK")
		converted++
	}

	if converted == 0 {
		return fmt.Errorf("no notebooks converted")
	}
	return nil
}

// parsePageFilter parses the --pages flag: "" (all), "N" (single page,
// 0-indexed), or "A:B" (half-open range: pages A up to, but not
// including, B).
func parsePageFilter(spec string) (rmconvert.PageFilter, error) {
	if spec == "" {
		return rmconvert.PageFilter{Kind: rmconvert.PageAll}, nil
	}

	if idx := strings.Index(spec, ":"); idx >= 0 {
		start, err := strconv.Atoi(spec[:idx])
		if err != nil {
			return rmconvert.PageFilter{}, fmt.Errorf("invalid page range start %q", spec[:idx])
		}
		end, err := strconv.Atoi(spec[idx+1:])
		if err != nil {
			return rmconvert.PageFilter{}, fmt.Errorf("invalid page range end %q", spec[idx+1:])
		}
		return rmconvert.PageFilter{Kind: rmconvert.PageRange, Start: start, End: end}, nil
	}

	n, err := strconv.Atoi(spec)
	if err != nil {
		return rmconvert.PageFilter{}, fmt.Errorf("invalid page selector %q", spec)
	}
	return rmconvert.PageFilter{Kind: rmconvert.PageSingle, Start: n}, nil
}
