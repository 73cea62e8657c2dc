// Package config loads jpvocab settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"jpvocab/ingest"
	"jpvocab/tokenize"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "jpvocab.toml"

type Config struct {
	Analyzer Analyzer `toml:"analyzer"`
	OCR      OCR      `toml:"ocr"`
	Output   Output   `toml:"output"`
	Log      Log      `toml:"log"`
}

type Analyzer struct {
	Dictionary string `toml:"dictionary"` // "ipa" or "uni"
	Mode       string `toml:"mode"`       // "normal", "search" or "extended"
}

type OCR struct {
	Enabled   bool   `toml:"enabled"`
	Language  string `toml:"language"`
	DPI       int    `toml:"dpi"`
	Workers   int    `toml:"workers"`
	Pdftoppm  string `toml:"pdftoppm"`
	Tesseract string `toml:"tesseract"`
}

type Output struct {
	WithReading bool `toml:"with_reading"` // add the reading as a first column
}

type Log struct {
	Level   string `toml:"level"`
	Format  string `toml:"format"`
	DumpDir string `toml:"dump_dir"` // JSON stage dumps, disabled when empty
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Analyzer: Analyzer{Dictionary: string(tokenize.IPA), Mode: string(tokenize.Normal)},
		OCR: OCR{
			Enabled:   true,
			Language:  "jpn",
			DPI:       300,
			Workers:   4,
			Pdftoppm:  "pdftoppm",
			Tesseract: "tesseract",
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and numeric bounds.
func (c *Config) Validate() error {
	var errs []error
	if _, err := tokenize.ParseDict(c.Analyzer.Dictionary); err != nil {
		errs = append(errs, err)
	}
	if _, err := tokenize.ParseMode(c.Analyzer.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.OCR.DPI <= 0 {
		errs = append(errs, fmt.Errorf("ocr.dpi must be positive, got %d", c.OCR.DPI))
	}
	if c.OCR.Workers <= 0 {
		errs = append(errs, fmt.Errorf("ocr.workers must be positive, got %d", c.OCR.Workers))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// IngestOptions converts the OCR section for package ingest.
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{OCR: ingest.OCR{
		Enabled:   c.OCR.Enabled,
		Language:  c.OCR.Language,
		DPI:       c.OCR.DPI,
		Workers:   c.OCR.Workers,
		Pdftoppm:  c.OCR.Pdftoppm,
		Tesseract: c.OCR.Tesseract,
	}}
}

// NewAnalyzer returns the shared tokenizer the analyzer section selects.
func (c *Config) NewAnalyzer() (*tokenize.Kagome, error) {
	d, err := tokenize.ParseDict(c.Analyzer.Dictionary)
	if err != nil {
		return nil, err
	}
	m, err := tokenize.ParseMode(c.Analyzer.Mode)
	if err != nil {
		return nil, err
	}
	return tokenize.Shared(d, m)
}
