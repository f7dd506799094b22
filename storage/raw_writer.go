package storage

import (
	"fmt"
	"path/filepath"

	"nfl-stats/models"
)

// RawWriter stores fetched season tables as <dir>/<year>_<side>.csv.
type RawWriter struct {
	dir string
}

// NewRawWriter creates a RawWriter rooted at dir.
func NewRawWriter(dir string) *RawWriter {
	return &RawWriter{dir: dir}
}

// WriteTable writes t's records, both header rows included, and returns
// the file path.
func (r *RawWriter) WriteTable(t *models.RawSeasonTable) (path string, err error) {
	if len(t.Records) < 2 {
		return "", fmt.Errorf("raw: %s: table has no header rows", t.FileName())
	}

	path = filepath.Join(r.dir, t.FileName())
	w, err := NewCSVWriter(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := w.Write(t.Records); err != nil {
		return "", fmt.Errorf("raw: %s: %w", t.FileName(), err)
	}
	return path, nil
}
