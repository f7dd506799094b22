package storage

import (
	"github.com/go-gota/gota/dataframe"

	"nfl-stats/models"
)

// DatasetWriter is the interface for persisting the combined dataset.
type DatasetWriter interface {
	WriteFrame(df dataframe.DataFrame) error
	Close() error
}

// RawTableWriter is the interface for persisting fetched raw exports.
type RawTableWriter interface {
	WriteTable(t *models.RawSeasonTable) (string, error)
}

var (
	_ DatasetWriter  = (*CSVWriter)(nil)
	_ RawTableWriter = (*RawWriter)(nil)
)
