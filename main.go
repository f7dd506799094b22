package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nfl-stats/config"
	"nfl-stats/models"
	"nfl-stats/scraper/pfr"
	"nfl-stats/services"
	"nfl-stats/storage"
	"nfl-stats/utils"
)

const usage = `Usage: nfl-stats <command> [flags]

Commands:
  combine   normalize raw season exports and write the combined dataset (default)
  fetch     download raw season exports from pro-football-reference.com
  report    print a per-season summary of the combined dataset

Run "nfl-stats <command> -h" for command flags.
`

func main() {
	cfg := config.Load()
	logger := utils.NewLogger()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	cmd, args := "combine", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd {
	case "combine":
		err = runCombine(cfg, logger, args)
	case "fetch":
		err = runFetch(ctx, cfg, logger, args)
	case "report":
		err = runReport(cfg, logger, args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

func runCombine(cfg *config.Config, logger *utils.Logger, args []string) error {
	fs := flag.NewFlagSet("combine", flag.ExitOnError)
	in := fs.String("in", cfg.DataDir, "directory of <year>_<side>.csv raw exports")
	out := fs.String("out", cfg.OutputPath, "combined dataset output path")
	_ = fs.Parse(args)

	logger.Info("=== NFL stats combine starting ===")

	report, err := services.NewCombiner(logger).Combine(*in, *out)
	if errors.Is(err, services.ErrNoValidInput) {
		fmt.Println("No valid CSV files found.")
		return err
	}
	if err != nil {
		return err
	}

	for _, s := range report.Skipped {
		fmt.Printf("  skipped %-32s %s\n", s.Name, s.Reason)
	}
	fmt.Printf("  Done. %d rows x %d columns → %s\n\n",
		report.Rows, len(report.Columns), report.OutputPath)
	return nil
}

func runFetch(ctx context.Context, cfg *config.Config, logger *utils.Logger, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	yearSpec := fs.String("years", cfg.FetchYears, "years to fetch, e.g. 2020-2024 or 2021,2023")
	out := fs.String("out", cfg.RawDir, "directory to write <year>_<side>.csv files to")
	_ = fs.Parse(args)

	years, err := config.ParseYears(*yearSpec)
	if err != nil {
		return err
	}

	var targets []models.SeasonFile
	for _, y := range years {
		for _, side := range models.Sides() {
			targets = append(targets, models.SeasonFile{Year: y, Side: side})
		}
	}

	logger.Info("=== NFL stats fetch starting ===")
	logger.Info("Config: years %v | concurrency: %d | rate: %dms | retries: %d",
		years, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.MaxRetries)

	tables, err := pfr.New(cfg, logger).Fetch(ctx, targets)
	if err != nil && len(tables) == 0 {
		return err
	}

	written, werr := saveTables(storage.NewRawWriter(*out), tables, logger)
	fmt.Printf("Fetched %d/%d season tables into %s\n", written, len(targets), *out)
	if err != nil {
		return err
	}
	return werr
}

func saveTables(w storage.RawTableWriter, tables []*models.RawSeasonTable, logger *utils.Logger) (int, error) {
	written := 0
	var firstErr error
	for _, t := range tables {
		path, err := w.WriteTable(t)
		if err != nil {
			logger.Error("[fetch] %v", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logger.Info("[fetch] wrote %s", path)
		written++
	}
	return written, firstErr
}

func runReport(cfg *config.Config, logger *utils.Logger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	in := fs.String("in", cfg.OutputPath, "combined dataset to summarize")
	_ = fs.Parse(args)

	svc := services.NewInsightService(logger)
	report, err := svc.Load(*in)
	if err != nil {
		return err
	}
	svc.Print(report)
	return nil
}
