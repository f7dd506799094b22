package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nfl-stats/storage"
)

func TestCombineEndToEnd(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "cleaned", "combined.csv")
	writeFile(t, in, "2023_Offense.csv", offense2023)
	writeFile(t, in, "2023_Defense.csv", defense2023)

	report, err := NewCombiner(newTestLogger()).Combine(in, out)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if report.Rows != 2 || report.FilesCombined != 2 || len(report.Skipped) != 0 {
		t.Errorf("report: rows=%d combined=%d skipped=%v", report.Rows, report.FilesCombined, report.Skipped)
	}
	if report.RunID == "" {
		t.Error("report should carry a run id")
	}

	df, err := storage.LoadDataset(out)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	if df.Nrow() != 2 {
		t.Fatalf("rows: got %d, want 2", df.Nrow())
	}

	names := strings.Join(df.Names(), "|")
	for _, col := range []string{"Points For", "Points Allowed", "Team", "Year", "Side",
		"Passing Yards", "Rushing Yards", "Total Yards"} {
		if !strings.Contains("|"+names+"|", "|"+col+"|") {
			t.Errorf("header missing %q: %s", col, names)
		}
	}

	years := df.Col("Year").Records()
	sides := df.Col("Side").Records()
	if years[0] != "2023" || years[1] != "2023" {
		t.Errorf("years: got %v, want [2023 2023]", years)
	}
	if sides[0] != "Offense" || sides[1] != "Defense" {
		t.Errorf("sides: got %v, want [Offense Defense]", sides)
	}

	pf := df.Col("Points For").Records()
	pa := df.Col("Points Allowed").Records()
	if pf[0] != "509" || pf[1] != "" {
		t.Errorf("Points For: got %q, want [509 \"\"]", pf)
	}
	if pa[0] != "" || pa[1] != "315" {
		t.Errorf("Points Allowed: got %q, want [\"\" 315]", pa)
	}

	for _, team := range df.Col("Team").Records() {
		if IsAggregateTeam(team) {
			t.Errorf("aggregate row %q in combined output", team)
		}
	}
}

func TestCombineOrdersByYearThenSide(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "combined.csv")
	writeFile(t, in, "2024_Defense.csv", strings.ReplaceAll(defense2023, "Dallas Cowboys", "Team D24"))
	writeFile(t, in, "2023_Defense.csv", strings.ReplaceAll(defense2023, "Dallas Cowboys", "Team D23"))
	writeFile(t, in, "2024_Offense.csv", strings.ReplaceAll(offense2023, "Dallas Cowboys", "Team O24"))
	writeFile(t, in, "2023_Offense.csv", strings.ReplaceAll(offense2023, "Dallas Cowboys", "Team O23"))

	if _, err := NewCombiner(newTestLogger()).Combine(in, out); err != nil {
		t.Fatalf("Combine: %v", err)
	}

	df, err := storage.LoadDataset(out)
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	got := strings.Join(df.Col("Team").Records(), ",")
	want := "Team O23,Team D23,Team O24,Team D24"
	if got != want {
		t.Errorf("row order: got %s, want %s", got, want)
	}
}

func TestCombineSkipsBadFiles(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "combined.csv")
	writeFile(t, in, "2023_Offense.csv", offense2023)
	writeFile(t, in, "notayear_Offense.csv", offense2023)
	writeFile(t, in, "2023_Special.csv", offense2023)
	writeFile(t, in, "2022_Offense.csv", "Tm,PF\n")
	writeFile(t, in, "2021_Defense.csv", "x,y\nTm,PA\nAvg Team,20\n")
	writeFile(t, in, "README.txt", "not a csv")
	if err := os.Mkdir(filepath.Join(in, "2019_Offense.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	logger, logs := newCapturingLogger()
	report, err := NewCombiner(logger).Combine(in, out)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}

	if report.FilesSeen != 5 {
		t.Errorf("FilesSeen: got %d, want 5", report.FilesSeen)
	}
	if report.FilesCombined != 1 || report.Rows != 1 {
		t.Errorf("combined=%d rows=%d, want 1 and 1", report.FilesCombined, report.Rows)
	}

	skipped := make(map[string]bool)
	for _, s := range report.Skipped {
		skipped[s.Name] = true
		if s.Reason == "" {
			t.Errorf("%s skipped without a reason", s.Name)
		}
		if !strings.Contains(logs.String(), s.Name) {
			t.Errorf("skip of %s was not logged", s.Name)
		}
	}
	for _, name := range []string{"notayear_Offense.csv", "2023_Special.csv", "2022_Offense.csv", "2021_Defense.csv"} {
		if !skipped[name] {
			t.Errorf("%s should be reported as skipped", name)
		}
	}
}

func TestCombineEmptyDirWritesNothing(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "combined.csv")

	logger, logs := newCapturingLogger()
	_, err := NewCombiner(logger).Combine(in, out)
	if !errors.Is(err, ErrNoValidInput) {
		t.Fatalf("got %v, want ErrNoValidInput", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output should not exist, stat err = %v", statErr)
	}
	if !strings.Contains(logs.String(), "No valid CSV files found") {
		t.Errorf("missing no-valid-files message in logs: %q", logs.String())
	}
}

func TestCombineOnlyInvalidFiles(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "combined.csv")
	writeFile(t, in, "garbage.csv", offense2023)

	_, err := NewCombiner(newTestLogger()).Combine(in, out)
	if !errors.Is(err, ErrNoValidInput) {
		t.Fatalf("got %v, want ErrNoValidInput", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output should not be written")
	}
}

func TestCombineIsIdempotent(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "combined.csv")
	writeFile(t, in, "2023_Offense.csv", offense2023)
	writeFile(t, in, "2023_Defense.csv", defense2023)
	writeFile(t, in, "2022_Offense.csv", offense2023)

	c := NewCombiner(newTestLogger())
	if _, err := c.Combine(in, out); err != nil {
		t.Fatalf("first Combine: %v", err)
	}
	first, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Combine(in, out); err != nil {
		t.Fatalf("second Combine: %v", err)
	}
	second, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("re-running Combine changed the output")
	}
}

func TestCombineOutputInsideInputDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(in, "2020-2024_combined_nfl_data.csv")
	writeFile(t, in, "2023_Offense.csv", offense2023)

	c := NewCombiner(newTestLogger())
	if _, err := c.Combine(in, out); err != nil {
		t.Fatalf("first Combine: %v", err)
	}
	report, err := c.Combine(in, out)
	if err != nil {
		t.Fatalf("second Combine: %v", err)
	}
	if report.Rows != 1 {
		t.Errorf("previous output must not be re-ingested, rows = %d", report.Rows)
	}
}

func TestCombineUnwritableOutput(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "2023_Offense.csv", offense2023)

	blocker := writeFile(t, t.TempDir(), "blocker", "file, not a dir")
	out := filepath.Join(blocker, "combined.csv")

	_, err := NewCombiner(newTestLogger()).Combine(in, out)
	if !errors.Is(err, ErrOutput) {
		t.Errorf("got %v, want ErrOutput", err)
	}
}

func TestCombineMissingInputDir(t *testing.T) {
	_, err := NewCombiner(newTestLogger()).Combine(filepath.Join(t.TempDir(), "missing"), "out.csv")
	if err == nil {
		t.Fatal("expected error for missing input directory")
	}
	if errors.Is(err, ErrNoValidInput) {
		t.Error("missing directory is not a no-valid-input condition")
	}
}
