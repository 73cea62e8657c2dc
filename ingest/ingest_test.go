package ingest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReadTextFiltersASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc カタカナ\n　かな"), 0o644))

	doc, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"カタカナ かな"}, doc.Pages)
	assert.Equal(t, path, doc.Source)
	assert.NotEqual(t, uuid.Nil, doc.ID)
}

func TestReadTextInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{0x82, 0xa0, 0xff}, 0o644))

	_, err := ReadText(path)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestReadDispatch(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "UPPER.TXT")
	require.NoError(t, os.WriteFile(txt, []byte("漢字"), 0o644))

	doc, err := Read(context.Background(), txt, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"漢字"}, doc.Pages)

	_, err = Read(context.Background(), filepath.Join(dir, "notes.docx"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Read(context.Background(), filepath.Join(dir, "missing.pdf"), Options{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolveHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	got, err := Resolve("~/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "docs", "a.txt"), got)
}

type fakeSource struct {
	pages []string
	err   map[int]error
}

func (f fakeSource) NumPage() int { return len(f.pages) }

func (f fakeSource) PageText(page int) (string, error) {
	if err, ok := f.err[page]; ok {
		return "", err
	}
	return f.pages[page-1], nil
}

func TestExtractPagesNormalizesAndReportsProgress(t *testing.T) {
	src := fakeSource{pages: []string{"Page 1: 猫", "ｶﾀｶﾅ text", "東京  大阪"}}
	var calls [][2]int
	opts := Options{Progress: func(cur, total int) { calls = append(calls, [2]int{cur, total}) }}

	pages, err := extractPages(context.Background(), src, nil, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"猫", "カタカナ", "東京 大阪"}, pages)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
}

func TestExtractPagesOCRFallback(t *testing.T) {
	src := fakeSource{pages: []string{"猫", "", "scanned only", "犬", ""}}
	var mu sync.Mutex
	var asked []int
	ocr := func(_ context.Context, page int) (string, error) {
		mu.Lock()
		asked = append(asked, page)
		mu.Unlock()
		if page == 5 {
			return "", errors.New("tesseract crashed")
		}
		return "OCR 頁" + string(rune('0'+page)), nil
	}

	opts := Options{OCR: OCR{Workers: 2}}
	pages, err := extractPages(context.Background(), src, ocr, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"猫", "頁", "頁", "犬", ""}, pages)
	assert.ElementsMatch(t, []int{2, 3, 5}, asked)
}

func TestExtractPagesOCRWorkerLimit(t *testing.T) {
	src := fakeSource{pages: make([]string, 12)}
	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 12)
	ocr := func(_ context.Context, page int) (string, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		started <- struct{}{}
		<-release
		inFlight.Add(-1)
		return "頁", nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := extractPages(context.Background(), src, ocr, Options{OCR: OCR{Workers: 3}})
		done <- err
	}()
	for i := 0; i < 3; i++ {
		<-started
	}
	close(release)
	require.NoError(t, <-done)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestExtractPagesError(t *testing.T) {
	boom := errors.New("bad xref")
	src := fakeSource{pages: []string{"猫", "犬"}, err: map[int]error{2: boom}}
	_, err := extractPages(context.Background(), src, nil, Options{})
	assert.ErrorIs(t, err, boom)
}

func TestExtractPagesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := extractPages(ctx, fakeSource{pages: []string{"猫"}}, nil, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewTesseractDisabledOrMissing(t *testing.T) {
	assert.Nil(t, newTesseract(OCR{}, "a.pdf"))
	assert.Nil(t, newTesseract(OCR{Enabled: true, Pdftoppm: "jpvocab-no-such-binary"}, "a.pdf"))
}
