package models

import "strconv"

// Side says whether a team-season record describes offense or defense.
type Side string

const (
	Offense Side = "Offense"
	Defense Side = "Defense"
)

// Sides lists every side in output order.
func Sides() []Side {
	return []Side{Offense, Defense}
}

// Valid reports whether s is one of the known sides.
func (s Side) Valid() bool {
	return s == Offense || s == Defense
}

// SeasonFile identifies one raw export: a season year and a unit side.
type SeasonFile struct {
	Year int
	Side Side
}

// FileName returns the raw export's file name, e.g. "2023_Offense.csv".
func (f SeasonFile) FileName() string {
	return strconv.Itoa(f.Year) + "_" + string(f.Side) + ".csv"
}

// RawSeasonTable is one season table as exported by the source site:
// a section header row, the column header row, then one row per team
// followed by the aggregate rows.
type RawSeasonTable struct {
	SeasonFile
	SourceURL string
	Records   [][]string
}
