package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"nfl-stats/models"
	"nfl-stats/storage"
	"nfl-stats/utils"
)

// InsightService summarizes a combined dataset per season and side.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Load reads the combined dataset at path and summarizes it.
func (s *InsightService) Load(path string) (*models.InsightReport, error) {
	df, err := storage.LoadDataset(path)
	if err != nil {
		return nil, err
	}
	report, err := s.Generate(df)
	if err != nil {
		return nil, err
	}
	report.Source = path
	return report, nil
}

// PointsColumn is the scoring column a side is ranked on.
func PointsColumn(side models.Side) string {
	if side == models.Defense {
		return PointsAllowedColumn
	}
	return PointsForColumn
}

// Generate groups df by Year and Side. Offense ranks teams by points
// scored (most is best), defense by points allowed (fewest is best).
// Blank or non-numeric cells are left out of rankings and averages.
func (s *InsightService) Generate(df dataframe.DataFrame) (*models.InsightReport, error) {
	for _, col := range []string{YearColumn, SideColumn, TeamColumn} {
		if indexOf(df.Names(), col) < 0 {
			return nil, fmt.Errorf("insights: dataset has no %q column", col)
		}
	}

	report := &models.InsightReport{Rows: df.Nrow()}
	if df.Nrow() == 0 {
		return report, nil
	}

	years := df.Col(YearColumn).Records()
	sides := df.Col(SideColumn).Records()
	teams := df.Col(TeamColumn).Records()

	stats := map[string][]float64{
		PointsForColumn:     floatColumn(df, PointsForColumn),
		PointsAllowedColumn: floatColumn(df, PointsAllowedColumn),
		TotalYardsColumn:    floatColumn(df, TotalYardsColumn),
		PassingYardsColumn:  floatColumn(df, PassingYardsColumn),
		RushingYardsColumn:  floatColumn(df, RushingYardsColumn),
	}

	type key struct {
		year int
		side models.Side
	}
	groups := make(map[key][]int)
	for i := range years {
		year, err := strconv.Atoi(years[i])
		if err != nil {
			s.logger.Warn("[insights] row %d: bad year %q, skipping", i+1, years[i])
			continue
		}
		side := models.Side(sides[i])
		if !side.Valid() {
			s.logger.Warn("[insights] row %d: unknown side %q, skipping", i+1, sides[i])
			continue
		}
		k := key{year, side}
		groups[k] = append(groups[k], i)
	}

	for k, rows := range groups {
		pointsCol := PointsColumn(k.side)
		points := stats[pointsCol]

		insight := models.SeasonInsight{
			Year:         k.year,
			Side:         k.side,
			Teams:        len(rows),
			PointsColumn: pointsCol,

			AvgPoints:       mean(points, rows),
			AvgTotalYards:   mean(stats[TotalYardsColumn], rows),
			AvgPassingYards: mean(stats[PassingYardsColumn], rows),
			AvgRushingYards: mean(stats[RushingYardsColumn], rows),
		}

		ranked := make([]int, 0, len(rows))
		for _, r := range rows {
			if !math.IsNaN(points[r]) {
				ranked = append(ranked, r)
			}
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			return points[ranked[a]] > points[ranked[b]]
		})
		if len(ranked) > 0 {
			top := models.TeamValue{Team: teams[ranked[0]], Value: points[ranked[0]]}
			bottom := models.TeamValue{Team: teams[ranked[len(ranked)-1]], Value: points[ranked[len(ranked)-1]]}
			if k.side == models.Defense {
				top, bottom = bottom, top
			}
			insight.Best, insight.Worst = top, bottom
		}

		report.Seasons = append(report.Seasons, insight)
	}

	sort.Slice(report.Seasons, func(i, j int) bool {
		a, b := report.Seasons[i], report.Seasons[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Side == models.Offense && b.Side != models.Offense
	})

	return report, nil
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 72)
	thin := strings.Repeat("─", 72)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏈 NFL TEAM SEASON SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	if r.Source != "" {
		fmt.Printf("  Source : %s\n", r.Source)
	}
	fmt.Printf("  Rows   : \033[1m%d\033[0m\n\n", r.Rows)

	if len(r.Seasons) == 0 {
		fmt.Printf("  No season data available\n\n")
		return
	}

	fmt.Printf("\033[1;33m  %-6s %-8s %5s  %-28s %-28s\033[0m\n", "Year", "Side", "Teams", "Best", "Worst")
	fmt.Printf("  %s\n", thin)
	for _, si := range r.Seasons {
		fmt.Printf("  %-6d %-8s %5d  %-28s %-28s\n",
			si.Year, si.Side, si.Teams,
			teamCell(si.Best), teamCell(si.Worst))
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  %-6s %-8s %-15s %10s %10s %10s %10s\033[0m\n",
		"Year", "Side", "Points", "Avg Pts", "Avg Yds", "Avg Pass", "Avg Rush")
	fmt.Printf("  %s\n", thin)
	for _, si := range r.Seasons {
		fmt.Printf("  %-6d %-8s %-15s %10s %10s %10s %10s\n",
			si.Year, si.Side, si.PointsColumn,
			numCell(si.AvgPoints), numCell(si.AvgTotalYards),
			numCell(si.AvgPassingYards), numCell(si.AvgRushingYards))
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func floatColumn(df dataframe.DataFrame, name string) []float64 {
	if indexOf(df.Names(), name) < 0 {
		out := make([]float64, df.Nrow())
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	return df.Col(name).Float()
}

func mean(values []float64, rows []int) float64 {
	var total float64
	n := 0
	for _, r := range rows {
		if v := values[r]; !math.IsNaN(v) {
			total += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return round1(total / float64(n))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func teamCell(tv models.TeamValue) string {
	if tv.Team == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", truncate(tv.Team, 20), strconv.FormatFloat(tv.Value, 'f', -1, 64))
}

func numCell(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
