package notebookfs

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeV5Page(t *testing.T, path string) {
	t.Helper()
	var buf []byte
	buf = append(buf, []byte("reMarkable .lines file, version=5          ")...)
	numLayers := make([]byte, 4)
	binary.LittleEndian.PutUint32(numLayers, 0)
	buf = append(buf, numLayers...)
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func TestParseNotebookPreservesOrderAndSkipsBadPages(t *testing.T) {
	root := t.TempDir()

	writeV5Page(t, filepath.Join(root, "page-1.rm"))
	writeV5Page(t, filepath.Join(root, "page-3.rm"))
	// page-2.rm intentionally missing, to exercise the skip-and-continue path.

	nb := Notebook{
		Name: "Notes",
		Root: root,
		Pages: []Page{
			{ID: "page-1"},
			{ID: "page-2"},
			{ID: "page-3"},
		},
	}

	out, err := ParseNotebook(nb)
	require.NoError(t, err)
	require.Len(t, out.Pages, 2)
	assert.Equal(t, "page-1", out.Pages[0].ID)
	assert.Equal(t, "page-3", out.Pages[1].ID)
}
