package ingest

import (
	"context"
	"fmt"
	"os"

	"jpvocab/normalize"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// pageSource yields the raw text layer of a paged document.
type pageSource interface {
	NumPage() int
	PageText(page int) (string, error)
}

type pdfSource struct {
	r *pdf.Reader
}

func (s pdfSource) NumPage() int { return s.r.NumPage() }

func (s pdfSource) PageText(page int) (string, error) {
	p := s.r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

// ReadPDF extracts normalized text per page. Pages whose text layer
// normalizes to nothing are run through OCR when it is enabled and
// available; OCR failures leave the page empty.
func ReadPDF(ctx context.Context, path string, opts Options) (*Document, error) {
	path, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("pdf not found: %w", err)
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	doc := newDocument(path)
	var ocr pageOCR
	if t := newTesseract(opts.OCR, path); t != nil {
		ocr = t.page
	}
	doc.Pages, err = extractPages(ctx, pdfSource{r: r}, ocr, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// extractPages reads every page of src in order, then fills empty pages
// from ocr with at most opts.OCR.Workers pages in flight.
func extractPages(ctx context.Context, src pageSource, ocr pageOCR, opts Options) ([]string, error) {
	total := src.NumPage()
	pages := make([]string, total)
	var blank []int
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Progress != nil {
			opts.Progress(i, total)
		}
		raw, err := src.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages[i-1] = normalize.Normalize(raw)
		if pages[i-1] == "" {
			blank = append(blank, i)
		}
	}
	if ocr == nil || len(blank) == 0 {
		return pages, nil
	}

	tracer().Infof("ocr fallback for %d of %d pages", len(blank), total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.OCR.Workers, 1))
	for _, page := range blank {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := ocr(gctx, page)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				tracer().Errorf("ocr failed on page %d: %v", page, err)
				return nil
			}
			pages[page-1] = normalize.Normalize(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
