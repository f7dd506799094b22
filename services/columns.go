package services

import (
	"fmt"
	"strings"
)

const (
	// TeamCode is the raw column holding the team name.
	TeamCode = "Tm"

	TeamColumn = "Team"
	YearColumn = "Year"
	SideColumn = "Side"

	PointsForColumn     = "Points For"
	PointsAllowedColumn = "Points Allowed"
	TotalYardsColumn    = "Total Yards"
	PassingYardsColumn  = "Passing Yards"
	RushingYardsColumn  = "Rushing Yards"
)

// columnRenames maps raw stat codes to descriptive column names. The
// numbered suffixes follow header deduplication order: Yds is total
// yards, Yds.1 passing, Yds.2 rushing, Yds.3 penalties.
var columnRenames = map[string]string{
	// General
	"Tm":   TeamColumn,
	"G":    "Games Played",
	"PF":   PointsForColumn,
	"PA":   PointsAllowedColumn,
	"Yds":  TotalYardsColumn,
	"1stD": "1st Downs",
	"Sc%":  "Scoring Percentage",
	"TO%":  "Turnover Percentage",
	"EXP":  "Expected Points",

	// Total yards & turnovers
	"Ply": "Total Plays",
	"Y/P": "Yards Per Play",
	"TO":  "Total Turnovers",
	"FL":  "Total Fumbles Lost",

	// Passing
	"Cmp":    "Completions",
	"Att":    "Passing Attempts",
	"Yds.1":  PassingYardsColumn,
	"TD":     "Passing Touchdowns",
	"Int":    "Interceptions",
	"NY/A":   "Net Yards Per Pass Attempt",
	"1stD.1": "1st Downs Passing",

	// Rushing
	"Att.1":  "Rushing Attempts",
	"Yds.2":  RushingYardsColumn,
	"TD.1":   "Rushing Touchdowns",
	"Y/A":    "Rushing Yards Per Attempt",
	"1stD.2": "1st Downs Rushing",

	// Penalties
	"Pen":   "Penalties",
	"Yds.3": "Penalty Yards",
	"1stPy": "1st Downs by Penalty",
}

var aggregateTeams = []string{"Avg Team", "League Total", "Avg Tm/G"}

// RenamedColumn returns the descriptive name for a raw code, or the code
// itself when it has no mapping.
func RenamedColumn(code string) string {
	if name, ok := columnRenames[code]; ok {
		return name
	}
	return code
}

// IsAggregateTeam reports whether a team cell is a league summary row.
func IsAggregateTeam(team string) bool {
	for _, a := range aggregateTeams {
		if team == a {
			return true
		}
	}
	return false
}

// AggregateTeams returns the summary row labels excluded from team data.
func AggregateTeams() []string {
	return append([]string(nil), aggregateTeams...)
}

// DedupeHeader gives repeated column names positional suffixes the way
// spreadsheet exports are conventionally read: the first "Yds" stays
// "Yds", later ones become "Yds.1", "Yds.2" and so on, skipping any
// suffix already taken. Blank names become "Unnamed: <index>".
func DedupeHeader(raw []string) []string {
	names := make([]string, len(raw))
	counts := make(map[string]int, len(raw))

	for i, col := range raw {
		if strings.TrimSpace(col) == "" {
			col = fmt.Sprintf("Unnamed: %d", i)
		}
		cur := counts[col]
		for cur > 0 {
			counts[col] = cur + 1
			col = fmt.Sprintf("%s.%d", col, cur)
			cur = counts[col]
		}
		names[i] = col
		counts[col] = cur + 1
	}
	return names
}
