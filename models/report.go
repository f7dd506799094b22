package models

// SkippedFile records an input file left out of a combine run.
type SkippedFile struct {
	Name   string
	Reason string
}

// CombineReport summarizes a combine run.
type CombineReport struct {
	RunID         string
	InputDir      string
	OutputPath    string
	FilesSeen     int
	FilesCombined int
	Skipped       []SkippedFile
	Rows          int
	Columns       []string
}

// TeamValue pairs a team with one statistic.
type TeamValue struct {
	Team  string
	Value float64
}

// SeasonInsight summarizes one (Year, Side) slice of the combined dataset.
type SeasonInsight struct {
	Year         int
	Side         Side
	Teams        int
	PointsColumn string
	Best         TeamValue
	Worst        TeamValue

	AvgPoints       float64
	AvgTotalYards   float64
	AvgPassingYards float64
	AvgRushingYards float64
}

// InsightReport holds per-season summaries over the combined dataset.
type InsightReport struct {
	Source  string
	Rows    int
	Seasons []SeasonInsight
}
