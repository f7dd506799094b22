package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"nfl-stats/models"
	"nfl-stats/storage"
	"nfl-stats/utils"
)

// RawFileExt is the extension of raw season exports.
const RawFileExt = ".csv"

// Combiner normalizes every raw export in a directory and writes the
// concatenation as one CSV.
type Combiner struct {
	logger     *utils.Logger
	normalizer *Normalizer
}

// NewCombiner creates a Combiner with the given logger.
func NewCombiner(logger *utils.Logger) *Combiner {
	return &Combiner{logger: logger, normalizer: NewNormalizer(logger)}
}

// Combine normalizes inputDir's *.csv season exports and writes the
// combined dataset to outputPath. Files are combined by year, offense
// before defense, so output is reproducible. Files that cannot be parsed
// are logged and skipped. If no file yields rows, nothing is written and
// the error wraps ErrNoValidInput. Write failures wrap ErrOutput.
func (c *Combiner) Combine(inputDir, outputPath string) (*models.CombineReport, error) {
	report := &models.CombineReport{
		RunID:      uuid.NewString(),
		InputDir:   inputDir,
		OutputPath: outputPath,
	}

	c.logger.Info("[combiner] run %s: scanning %s", report.RunID, inputDir)

	files, err := c.seasonFiles(inputDir, report)
	if err != nil {
		return report, err
	}

	var (
		combined dataframe.DataFrame
		have     bool
	)
	for _, f := range files {
		df, err := c.normalizer.Normalize(filepath.Join(inputDir, f.name), f.Year, string(f.Side))
		if err != nil {
			c.skip(report, f.name, err.Error())
			continue
		}
		if df.Nrow() == 0 {
			c.skip(report, f.name, "no team rows")
			continue
		}

		if !have {
			combined, have = df, true
		} else {
			combined = combined.Concat(df)
		}
		if combined.Err != nil {
			return report, fmt.Errorf("combine: append %s: %w", f.name, combined.Err)
		}
		report.FilesCombined++
		c.logger.Debug("[combiner] %s: %d rows", f.name, df.Nrow())
	}

	if !have {
		c.logger.Warn("[combiner] No valid CSV files found.")
		return report, fmt.Errorf("combine %s: %w", inputDir, ErrNoValidInput)
	}

	if err := writeDataset(outputPath, combined); err != nil {
		return report, fmt.Errorf("%w: %v", ErrOutput, err)
	}

	report.Rows = combined.Nrow()
	report.Columns = combined.Names()
	c.logger.Info("[combiner] Combined NFL Data CSV saved to: %s (%d rows from %d files, %d skipped)",
		outputPath, report.Rows, report.FilesCombined, len(report.Skipped))
	return report, nil
}

type seasonEntry struct {
	models.SeasonFile
	name string
}

// seasonFiles lists the *.csv files in dir whose names follow the season
// convention, ordered by year, then side, then name. Misnamed files are
// recorded as skipped.
func (c *Combiner) seasonFiles(dir string, report *models.CombineReport) ([]seasonEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("combine: read dir %s: %w", dir, err)
	}

	var files []seasonEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, RawFileExt) {
			continue
		}
		report.FilesSeen++

		season, err := ParseSeasonFilename(name)
		if err != nil {
			c.skip(report, name, err.Error())
			continue
		}
		files = append(files, seasonEntry{SeasonFile: season, name: name})
	}

	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Side != b.Side {
			return a.Side == models.Offense
		}
		return a.name < b.name
	})
	return files, nil
}

func (c *Combiner) skip(report *models.CombineReport, name, reason string) {
	c.logger.Warn("[combiner] Cannot clean %s due to error: %s", name, reason)
	report.Skipped = append(report.Skipped, models.SkippedFile{Name: name, Reason: reason})
}

func writeDataset(path string, df dataframe.DataFrame) (err error) {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return w.WriteFrame(df)
}
