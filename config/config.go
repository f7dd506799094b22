package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir    string
	OutputPath string
	RawDir     string
	FetchYears string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	ChromeBin      string

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		DataDir:    getEnv("DATA_DIR", "data"),
		OutputPath: getEnv("OUTPUT_PATH", "data/cleaned_data/2020-2024_combined_nfl_data.csv"),
		RawDir:     getEnv("RAW_DIR", "data"),
		FetchYears: getEnv("FETCH_YEARS", "2020-2024"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 2),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 3000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		ChromeBin:      getEnv("CHROME_BIN", ""),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
}

// RateLimit returns the minimum spacing between page loads.
func (c *Config) RateLimit() time.Duration {
	return time.Duration(c.RateLimitMs) * time.Millisecond
}

// ParseYears expands a year list such as "2020-2022,2024" into
// [2020 2021 2022 2024]. Ranges are inclusive; duplicates are dropped.
func ParseYears(list string) ([]int, error) {
	var years []int
	seen := make(map[int]struct{})

	add := func(y int) {
		if _, dup := seen[y]; dup {
			return
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}

	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		from, err := parseYear(lo)
		if err != nil {
			return nil, err
		}
		if !isRange {
			add(from)
			continue
		}

		to, err := parseYear(hi)
		if err != nil {
			return nil, err
		}
		if to < from {
			return nil, fmt.Errorf("config: year range %q is reversed", part)
		}
		for y := from; y <= to; y++ {
			add(y)
		}
	}

	if len(years) == 0 {
		return nil, fmt.Errorf("config: no years in %q", list)
	}
	return years, nil
}

func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, fmt.Errorf("config: year %q must have four digits", s)
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: year %q: %w", s, err)
	}
	return y, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
