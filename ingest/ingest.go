// Package ingest reads source documents into normalized text units, one per
// page, in document order.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"jpvocab/normalize"

	"github.com/google/uuid"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jpvocab.ingest'
func tracer() tracing.Trace {
	return tracing.Select("jpvocab.ingest")
}

var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrInvalidUTF8       = errors.New("input is not valid UTF-8")
)

// Document is an ingested source.
type Document struct {
	ID     uuid.UUID `json:"id"`
	Source string    `json:"source"`
	// Pages holds normalized text, one unit per page. Plain text files
	// produce a single unit.
	Pages []string `json:"pages"`
}

// Options controls PDF ingestion.
type Options struct {
	OCR OCR
	// Progress, if set, is called before each page with the 1-based page
	// number and the page count.
	Progress func(current, total int)
}

// Read dispatches on the file suffix: .pdf or .txt, case-insensitive.
func Read(ctx context.Context, path string, opts Options) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ReadPDF(ctx, path, opts)
	case ".txt":
		return ReadText(path)
	}
	return nil, fmt.Errorf("%w: %s (want .pdf or .txt)", ErrUnsupportedFormat, path)
}

// ReadText reads a UTF-8 text file as one normalized unit.
func ReadText(path string) (*Document, error) {
	path, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUTF8, path)
	}
	doc := newDocument(path)
	doc.Pages = []string{normalize.Normalize(string(raw))}
	return doc, nil
}

func newDocument(path string) *Document {
	doc := &Document{ID: uuid.New(), Source: path}
	tracer().Debugf("document %s: %s", doc.ID, path)
	return doc
}

// Resolve expands a leading ~ and makes path absolute.
func Resolve(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
