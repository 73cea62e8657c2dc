// Package export writes vocabulary lists as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jpvocab/model"
)

// EnsureCSVSuffix appends ".csv" unless name already ends with it in any case.
func EnsureCSVSuffix(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return name
	}
	return name + ".csv"
}

// WriteSurfaces writes one row per entry with a non-empty surface, without a
// header. With withReading the reading is written as the first column. It
// returns the number of rows written.
func WriteSurfaces(w io.Writer, entries []model.Entry, withReading bool) (int, error) {
	cw := csv.NewWriter(w)
	n := 0
	for _, e := range entries {
		if e.Surface == "" {
			continue
		}
		row := []string{e.Surface}
		if withReading {
			row = []string{e.Reading, e.Surface}
		}
		if err := cw.Write(row); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}

// WriteFile creates dir if needed and writes the entries to dir/name.
func WriteFile(dir, name string, entries []model.Entry, withReading bool) (path string, n int, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}
	path = filepath.Join(dir, EnsureCSVSuffix(name))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	n, err = WriteSurfaces(f, entries, withReading)
	if err != nil {
		return "", n, fmt.Errorf("write %s: %w", path, err)
	}
	return path, n, nil
}
