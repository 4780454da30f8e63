package notebookfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanSkipsCollections(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "folder-1.metadata"), `{"visibleName":"My Folder","type":"CollectionType"}`)

	writeFile(t, filepath.Join(root, "doc-1.metadata"), `{"visibleName":"Notes","type":"DocumentType"}`)
	writeFile(t, filepath.Join(root, "doc-1.content"), `{"pages":["page-a","page-b"]}`)

	notebooks, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, notebooks.Notebooks, 1)

	nb := notebooks.Notebooks[0]
	assert.Equal(t, "Notes", nb.Name)
	require.Len(t, nb.Pages, 2)
	assert.Equal(t, "page-a", nb.Pages[0].ID)
	assert.Equal(t, "page-b", nb.Pages[1].ID)
}

func TestScanFallsBackToCPages(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "doc-1.metadata"), `{"visibleName":"Notes","type":"DocumentType"}`)
	writeFile(t, filepath.Join(root, "doc-1.content"), `{"cPages":{"pages":[{"id":"page-x"},{"id":"page-y"}]}}`)

	notebooks, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, notebooks.Notebooks, 1)
	assert.Equal(t, []Page{{ID: "page-x"}, {ID: "page-y"}}, notebooks.Notebooks[0].Pages)
}

func TestScanFallsBackToDirectoryListing(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "doc-1.metadata"), `{"visibleName":"Notes","type":"DocumentType"}`)
	writeFile(t, filepath.Join(root, "doc-1.content"), `{}`)

	docDir := filepath.Join(root, "doc-1")
	require.NoError(t, os.MkdirAll(docDir, 0o755))
	writeFile(t, filepath.Join(docDir, "page-only.rm"), "")

	notebooks, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, notebooks.Notebooks, 1)
	assert.Equal(t, []Page{{ID: "page-only"}}, notebooks.Notebooks[0].Pages)
}
