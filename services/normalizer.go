package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"nfl-stats/utils"
)

// Normalizer turns one raw season export into a clean table.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize reads the raw export at path, drops the section header row and
// the league aggregate rows, renames stat codes to descriptive names and
// tags every row with year and side. All cells are kept as text.
//
// A file with a header but no team rows yields an empty DataFrame and no
// error. Read and shape failures wrap ErrFileFormat.
func (n *Normalizer) Normalize(path string, year int, side string) (dataframe.DataFrame, error) {
	records, err := readRecords(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(records) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: missing column header row", ErrFileFormat, path)
	}

	header := DedupeHeader(records[1])
	if indexOf(header, TeamCode) < 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: no %q column", ErrFileFormat, path, TeamCode)
	}

	body, err := alignRows(records[2:], len(header))
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrFileFormat, path, err)
	}
	if len(body) == 0 {
		n.logger.Warn("[normalizer] %s has a header but no rows", path)
		return dataframe.DataFrame{}, nil
	}

	df := dataframe.LoadRecords(
		append([][]string{header}, body...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrFileFormat, path, df.Err)
	}

	before := df.Nrow()
	df = dropAggregateRows(df)

	for _, code := range df.Names() {
		if name := RenamedColumn(code); name != code {
			df = df.Rename(name, code)
		}
	}

	rows := df.Nrow()
	years := make([]int, rows)
	sides := make([]string, rows)
	for i := range years {
		years[i] = year
		sides[i] = side
	}
	df = df.Mutate(series.New(years, series.Int, YearColumn))
	df = df.Mutate(series.New(sides, series.String, SideColumn))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("normalize %s: %w", path, df.Err)
	}

	n.logger.Debug("[normalizer] %s: %d rows (%d aggregate rows dropped), %d columns",
		path, rows, before-rows, df.Ncol())
	return df, nil
}

func dropAggregateRows(df dataframe.DataFrame) dataframe.DataFrame {
	filters := make([]dataframe.F, 0, len(aggregateTeams))
	for _, team := range aggregateTeams {
		filters = append(filters, dataframe.F{
			Colname:    TeamCode,
			Comparator: series.Neq,
			Comparando: team,
		})
	}
	return df.FilterAggregation(dataframe.And, filters...)
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrFileFormat, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrFileFormat, path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// alignRows pads short rows with empty cells. Rows wider than the header
// are rejected.
func alignRows(rows [][]string, width int) ([][]string, error) {
	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		switch {
		case len(row) > width:
			return nil, fmt.Errorf("data row %d has %d fields, header has %d", i+1, len(row), width)
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		out = append(out, row)
	}
	return out, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
