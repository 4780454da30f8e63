// Package config loads CLI defaults from ~/.config/rmlines/config.yaml,
// the knobs shell's commands otherwise require as flags on every
// invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// OCR holds the OCR-related defaults also accepted as ConvertRmdocToSearchablePDF arguments.
type OCR struct {
	Enabled       bool   `yaml:"enabled"`
	TesseractPath string `yaml:"tesseractPath"`
	Lang          string `yaml:"lang"`
	PSM           int    `yaml:"psm"`
}

// Config is the full set of CLI defaults.
type Config struct {
	OutputDir string `yaml:"outputDir"`
	DPI       int    `yaml:"dpi"`
	OCR       OCR    `yaml:"ocr"`
}

// Default returns the built-in defaults, matching the fallbacks
// rmconvert.ConvertRmdocToSearchablePDF already applies when called with
// zero values.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		DPI:       300,
		OCR: OCR{
			Enabled:       false,
			TesseractPath: "tesseract",
			Lang:          "eng",
			PSM:           6,
		},
	}
}

// Path returns the default config file location, ~/.config/rmlines/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rmlines", "config.yaml"), nil
}

// Load reads path and overlays it onto Default(). A missing file is not
// an error: it just means the built-in defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault resolves the default config path and loads it.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Load(path)
}
