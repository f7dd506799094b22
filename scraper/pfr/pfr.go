package pfr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"nfl-stats/config"
	"nfl-stats/models"
	"nfl-stats/utils"
)

const (
	baseURL = "https://www.pro-football-reference.com/years/"
	tableID = "team_stats"
)

// SeasonURL returns the page holding the team stats table for f:
// the season page for offense, opp.htm for defense.
func SeasonURL(f models.SeasonFile) string {
	u := fmt.Sprintf("%s%d/", baseURL, f.Year)
	if f.Side == models.Defense {
		u += "opp.htm"
	}
	return u
}

// Scraper downloads season team stats tables with a headless browser.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.StringSet
	retry   *utils.RetryConfig

	mu     sync.Mutex
	tables []*models.RawSeasonTable
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimit()),
		visited: utils.NewStringSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Fetch downloads every target's table. Targets that fail after retries
// are logged and left out; an error is returned only if nothing was
// fetched. Tables come back ordered by year, offense first.
func (s *Scraper) Fetch(ctx context.Context, targets []models.SeasonFile) ([]*models.RawSeasonTable, error) {
	s.logger.Info("[pfr] Fetching %d season tables", len(targets))

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[pfr] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// Start the browser once so page tabs share it.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("pfr: start browser: %w", err)
	}

	for _, target := range targets {
		t := target
		if !s.visited.Add(t.FileName()) {
			s.logger.Debug("[pfr] Skipping duplicate target %s", t.FileName())
			continue
		}

		s.pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			table, err := s.fetchTable(browserCtx, t)
			if err != nil {
				s.logger.Error("[pfr] %s failed: %v", t.FileName(), err)
				return
			}

			s.mu.Lock()
			s.tables = append(s.tables, table)
			s.mu.Unlock()
			s.logger.Info("[pfr] %s: %d rows from %s", t.FileName(), len(table.Records)-2, table.SourceURL)
		})
	}
	s.pool.Wait()

	if err := ctx.Err(); err != nil {
		return s.sorted(), fmt.Errorf("pfr: %w", err)
	}
	if len(s.tables) == 0 {
		return nil, fmt.Errorf("pfr: no tables fetched")
	}

	s.logger.Info("[pfr] Fetch complete: %d/%d tables", len(s.tables), s.visited.Size())
	return s.sorted(), nil
}

func (s *Scraper) sorted() []*models.RawSeasonTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]*models.RawSeasonTable(nil), s.tables...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Side == models.Offense && out[j].Side != models.Offense
	})
	return out
}

// fetchTable loads one season page and extracts its team stats table.
func (s *Scraper) fetchTable(browserCtx context.Context, target models.SeasonFile) (*models.RawSeasonTable, error) {
	pageURL := SeasonURL(target)
	var data tableData

	err := s.retry.Do(browserCtx, "fetch-"+target.FileName(), func(context.Context) error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		data = tableData{}
		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(extractTableJS, &data),
		)
		if err != nil {
			return fmt.Errorf("chromedp extract: %w", err)
		}
		if !data.Found {
			return fmt.Errorf("table #%s not found on %s", tableID, pageURL)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	records, err := data.records()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pageURL, err)
	}

	return &models.RawSeasonTable{
		SeasonFile: target,
		SourceURL:  pageURL,
		Records:    records,
	}, nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured one.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
