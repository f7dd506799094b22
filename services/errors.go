package services

import "errors"

var (
	// ErrFileFormat marks a raw file that cannot be read as a two-header table.
	ErrFileFormat = errors.New("file format")
	// ErrFilenameConvention marks a file name that does not encode <year>_<side>.
	ErrFilenameConvention = errors.New("filename convention")
	// ErrNoValidInput is returned when a combine run produced no rows.
	ErrNoValidInput = errors.New("no valid CSV files found")
	// ErrOutput wraps failures writing the combined dataset.
	ErrOutput = errors.New("output")
)
