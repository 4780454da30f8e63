package notebookfs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/rmlines/encoding/rm"
	"github.com/platinummonkey/rmlines/model"
)

// ParseNotebook reads and decodes every page of nb concurrently, one
// goroutine per page, each owning its own []byte read from disk — the
// "distinct buffers on distinct threads" story encoding/rm is written
// against. Results are collected in nb.Pages order regardless of which
// goroutine finishes first. A page that fails to open or decode is
// logged and omitted, never fails the whole notebook.
func ParseNotebook(nb Notebook) (*model.Notebook, error) {
	decoded := make([]*model.Page, len(nb.Pages))

	var g errgroup.Group
	for i, page := range nb.Pages {
		i, page := i, page
		g.Go(func() error {
			p, err := parseOnePage(nb.Root, page.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: notebookfs: skipping page %s: %v\n", page.ID, err)
				return nil
			}
			decoded[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &model.Notebook{ID: nb.Name}
	for _, p := range decoded {
		if p != nil {
			out.Pages = append(out.Pages, *p)
		}
	}
	return out, nil
}

func parseOnePage(docDir, pageID string) (*model.Page, error) {
	path := filepath.Join(docDir, pageID+".rm")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rm.Parse(pageID, data)
}
