package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"stocksense/internal/util"
)

// Config mirrors config.json. A missing file is not an error; every field
// has a safe default so the tool works out of the box.
type Config struct {
	DefaultTicker string `json:"defaultTicker"`
	Start         string `json:"start"`
	End           string `json:"end"`
	ForecastDays  int    `json:"forecastDays"`
	CacheEnabled  *bool  `json:"cacheEnabled"`
	DataDir       string `json:"dataDir"`
	ExportDir     string `json:"exportDir"`
	LogFile       string `json:"logFile"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DefaultTicker == "" {
		c.DefaultTicker = "AAPL"
	}
	if c.Start == "" {
		c.Start = "2018-01-01"
	}
	if c.End == "" {
		c.End = "today"
	}
	if c.ForecastDays == 0 {
		c.ForecastDays = 7
	}
	if c.CacheEnabled == nil {
		enabled := true
		c.CacheEnabled = &enabled
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.ExportDir == "" {
		c.ExportDir = "exports"
	}
	if c.LogFile == "" {
		c.LogFile = "logs.csv"
	}
}

func (c *Config) Cache() bool {
	return c.CacheEnabled == nil || *c.CacheEnabled
}

// DateRange resolves the configured start/end strings into dates. The end
// keyword "today" resolves at call time.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad start date %q: %w", c.Start, err)
	}

	end := util.Midnight(time.Now())
	if !strings.EqualFold(c.End, "today") {
		end, err = time.Parse(time.DateOnly, c.End)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad end date %q: %w", c.End, err)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return start, end, nil
}
