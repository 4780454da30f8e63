// Package notebookfs scans a reMarkable data directory for notebooks and
// their page order, and drives the concurrent per-page decode of a
// notebook via encoding/rm.
package notebookfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Notebooks is the result of scanning a directory: every DocumentType
// entry found, in directory-read order.
type Notebooks struct {
	Root      string
	Notebooks []Notebook
}

// Notebook is one document: its display name, the directory holding its
// *.rm page files, and the page IDs in reading order.
type Notebook struct {
	Name  string
	Root  string
	Pages []Page
}

// Page names one .rm file belonging to a Notebook, identified by its
// on-disk UUID stem.
type Page struct {
	ID string
}

type notebookMetadata struct {
	VisibleName string `json:"visibleName"`
	Type        string `json:"type"`
}

const collectionType = "CollectionType"

type contentFileRaw struct {
	Pages *[]string `json:"pages"`
	CPages *struct {
		Pages *[]struct {
			ID string `json:"id"`
		} `json:"pages"`
	} `json:"cPages"`
}

func (c contentFileRaw) pageIDs() []string {
	if c.Pages != nil {
		return *c.Pages
	}
	if c.CPages != nil && c.CPages.Pages != nil {
		ids := make([]string, 0, len(*c.CPages.Pages))
		for _, p := range *c.CPages.Pages {
			ids = append(ids, p.ID)
		}
		return ids
	}
	return nil
}

// Scan walks root for *.metadata files and builds a Notebooks tree,
// skipping CollectionType (folder) entries. When a notebook's .content
// file declares no page list, the sibling UUID directory's *.rm files are
// listed directly and used as the page order instead — grounded in
// original_source/src/fs.rs's single-page fallback.
func Scan(root string) (*Notebooks, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("notebookfs: reading %s: %w", root, err)
	}

	result := &Notebooks{Root: root}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".metadata") {
			continue
		}
		metaPath := filepath.Join(root, entry.Name())
		stem := strings.TrimSuffix(entry.Name(), ".metadata")
		docDir := filepath.Join(root, stem)

		meta, err := readNotebookMetadata(metaPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: notebookfs: skipping %s: %v\n", metaPath, err)
			continue
		}
		if meta.Type == collectionType {
			continue
		}

		pageIDs, err := resolvePageOrder(root, stem, docDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: notebookfs: skipping %s: %v\n", metaPath, err)
			continue
		}

		pages := make([]Page, 0, len(pageIDs))
		for _, id := range pageIDs {
			pages = append(pages, Page{ID: id})
		}

		result.Notebooks = append(result.Notebooks, Notebook{
			Name:  meta.VisibleName,
			Root:  docDir,
			Pages: pages,
		})
	}

	return result, nil
}

func readNotebookMetadata(path string) (*notebookMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading .metadata: %w", err)
	}
	var meta notebookMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing .metadata: %w", err)
	}
	return &meta, nil
}

func resolvePageOrder(root, stem, docDir string) ([]string, error) {
	contentPath := filepath.Join(root, stem+".content")
	data, err := os.ReadFile(contentPath)
	if err != nil {
		return nil, fmt.Errorf("reading .content: %w", err)
	}
	var raw contentFileRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing .content: %w", err)
	}

	if ids := raw.pageIDs(); ids != nil {
		return ids, nil
	}

	return listRMFiles(docDir)
}

func listRMFiles(docDir string) ([]string, error) {
	entries, err := os.ReadDir(docDir)
	if err != nil {
		return nil, fmt.Errorf("listing page directory %s: %w", docDir, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".rm") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".rm"))
	}
	return ids, nil
}
