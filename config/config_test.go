package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
outputDir: /tmp/out
dpi: 150
ocr:
  enabled: true
  lang: deu
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 150, cfg.DPI)
	assert.True(t, cfg.OCR.Enabled)
	assert.Equal(t, "deu", cfg.OCR.Lang)
	// untouched by the override file, kept from Default()
	assert.Equal(t, "tesseract", cfg.OCR.TesseractPath)
	assert.Equal(t, 6, cfg.OCR.PSM)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid yaml"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
