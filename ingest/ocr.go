package ingest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// OCR configures the rasterize-and-recognize fallback for pages without a
// usable text layer.
type OCR struct {
	Enabled   bool
	Language  string // tesseract language, "jpn" if empty
	DPI       int
	Workers   int
	Pdftoppm  string // poppler rasterizer binary
	Tesseract string
}

// pageOCR recognizes the text of one 1-based page.
type pageOCR func(ctx context.Context, page int) (string, error)

type tesseract struct {
	pdftoppm  string
	tesseract string
	lang      string
	dpi       int
	pdfPath   string
}

// newTesseract returns nil when OCR is disabled or either binary is missing.
func newTesseract(cfg OCR, pdfPath string) *tesseract {
	if !cfg.Enabled {
		return nil
	}
	raster, err := exec.LookPath(orDefault(cfg.Pdftoppm, "pdftoppm"))
	if err != nil {
		tracer().Debugf("ocr dependencies missing, skipping ocr: %v", err)
		return nil
	}
	recog, err := exec.LookPath(orDefault(cfg.Tesseract, "tesseract"))
	if err != nil {
		tracer().Debugf("ocr dependencies missing, skipping ocr: %v", err)
		return nil
	}
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = 300
	}
	return &tesseract{
		pdftoppm:  raster,
		tesseract: recog,
		lang:      orDefault(cfg.Language, "jpn"),
		dpi:       dpi,
		pdfPath:   pdfPath,
	}
}

func (t *tesseract) page(ctx context.Context, page int) (string, error) {
	dir, err := os.MkdirTemp("", "jpvocab-ocr-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	n := strconv.Itoa(page)
	prefix := filepath.Join(dir, "page")
	raster := exec.CommandContext(ctx, t.pdftoppm,
		"-f", n, "-l", n, "-r", strconv.Itoa(t.dpi), "-png", "-singlefile",
		t.pdfPath, prefix)
	if out, err := raster.CombinedOutput(); err != nil {
		return "", fmt.Errorf("rasterize page %d: %w: %s", page, err, strings.TrimSpace(string(out)))
	}

	recog := exec.CommandContext(ctx, t.tesseract, prefix+".png", "stdout", "-l", t.lang)
	out, err := recog.Output()
	if err != nil {
		return "", fmt.Errorf("recognize page %d: %w", page, err)
	}
	return string(out), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
