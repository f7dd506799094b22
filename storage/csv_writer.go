package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-gota/gota/dataframe"
)

// missingCell is how gota renders an absent value; it is written empty.
const missingCell = "NaN"

// CSVWriter writes tables to a CSV file. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{file: f, writer: csv.NewWriter(f)}, nil
}

// Write writes records verbatim.
func (c *CSVWriter) Write(records [][]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range records {
		if err := c.writer.Write(rec); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// WriteFrame writes df with its header row and no index column. Missing
// values are written as empty cells.
func (c *CSVWriter) WriteFrame(df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("csv: frame: %w", df.Err)
	}

	records := df.Records()
	for _, rec := range records[1:] {
		for j, cell := range rec {
			if cell == missingCell {
				rec[j] = ""
			}
		}
	}
	return c.Write(records)
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}
