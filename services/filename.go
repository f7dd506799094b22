package services

import (
	"fmt"
	"strconv"
	"strings"

	"nfl-stats/models"
)

// ParseSeasonFilename reads the year and side from a raw export name of
// the form <year>_<side>.<ext>. The year is everything before the first
// underscore and must be four digits; the side runs from there to the
// next dot and must be Offense or Defense.
func ParseSeasonFilename(name string) (models.SeasonFile, error) {
	yearPart, rest, ok := strings.Cut(name, "_")
	if !ok {
		return models.SeasonFile{}, fmt.Errorf("%w: %q has no underscore", ErrFilenameConvention, name)
	}
	sidePart, _, _ := strings.Cut(rest, ".")

	if !isFourDigits(yearPart) {
		return models.SeasonFile{}, fmt.Errorf("%w: %q: year %q is not a four-digit number",
			ErrFilenameConvention, name, yearPart)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return models.SeasonFile{}, fmt.Errorf("%w: %q: %v", ErrFilenameConvention, name, err)
	}

	side := models.Side(sidePart)
	if !side.Valid() {
		return models.SeasonFile{}, fmt.Errorf("%w: %q: side %q is not %s or %s",
			ErrFilenameConvention, name, sidePart, models.Offense, models.Defense)
	}

	return models.SeasonFile{Year: year, Side: side}, nil
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
