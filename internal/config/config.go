package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Symbols string `yaml:"symbols"` // comma-separated ticker list
	From    string `yaml:"from"`    // start of the fetch window, RFC3339 or YYYY-MM-DD
	Schedule struct {
		Interval string `yaml:"interval"` // tick period, Go duration syntax
	} `yaml:"schedule"`
	Pipeline struct {
		SMAWindow      int `yaml:"sma_window"`
		BufferCapacity int `yaml:"buffer_capacity"`
	} `yaml:"pipeline"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "mock"
	} `yaml:"data_source"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Output struct {
		Dir string `yaml:"dir"` // directory for the per-run CSV file
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables the sqlite recorder
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; flags applied by
// the caller take precedence over everything here.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = v
	}
	if v := os.Getenv("FROM_DATE"); v != "" {
		cfg.From = v
	}
	if v := os.Getenv("TICK_INTERVAL"); v != "" {
		cfg.Schedule.Interval = v
	}
	if v := os.Getenv("BUFFER_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.BufferCapacity = n
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Symbols == "" {
		cfg.Symbols = "AAPL,MSFT,UBER,GOOG"
	}
	if cfg.Schedule.Interval == "" {
		cfg.Schedule.Interval = "30s"
	}
	if cfg.Pipeline.SMAWindow == 0 {
		cfg.Pipeline.SMAWindow = 30
	}
	if cfg.Pipeline.BufferCapacity == 0 {
		cfg.Pipeline.BufferCapacity = 10000
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "localhost:8080"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}

	return cfg, nil
}

// Validate checks that all required fields are set and parseable.
func (c *Config) Validate() error {
	if len(c.SymbolList()) == 0 {
		return fmt.Errorf("symbols is required")
	}
	if c.From == "" {
		return fmt.Errorf("from is required")
	}
	if _, err := c.FromTime(); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	d, err := c.TickInterval()
	if err != nil {
		return fmt.Errorf("schedule.interval: %w", err)
	}
	if d < time.Second {
		return fmt.Errorf("schedule.interval must be at least 1s")
	}
	if c.Pipeline.SMAWindow <= 1 {
		return fmt.Errorf("pipeline.sma_window must be greater than 1")
	}
	if c.Pipeline.BufferCapacity <= 0 {
		return fmt.Errorf("pipeline.buffer_capacity must be positive")
	}
	if p := c.DataSource.Provider; p != "yahoo" && p != "mock" {
		return fmt.Errorf("data_source.provider must be yahoo or mock, got %q", p)
	}
	return nil
}

// SymbolList returns the configured symbols, trimmed, empty entries dropped.
func (c *Config) SymbolList() []string {
	var symbols []string
	for _, s := range strings.Split(c.Symbols, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

// FromTime parses the fetch window start, accepting RFC3339 or a bare date.
func (c *Config) FromTime() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, c.From); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", c.From)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: want RFC3339 or YYYY-MM-DD", c.From)
	}
	return t, nil
}

// TickInterval parses the scheduler period.
func (c *Config) TickInterval() (time.Duration, error) {
	return time.ParseDuration(c.Schedule.Interval)
}
