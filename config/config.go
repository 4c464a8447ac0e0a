package config

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultCategories is the category set swept when none are supplied.
var DefaultCategories = []string{
	"meyve-sebze-c-2",
	"sut-kahvaltilik-c-4",
	"yag-c-7a",
	"cay-c-6e",
	"seker-c-7be",
	"bakliyat-c-79",
}

// Config holds harvester configuration.
type Config struct {
	BaseURL         string
	Categories      []string
	MaxPages        int
	RequestDelay    time.Duration
	CategoryDelay   time.Duration
	Timeout         time.Duration
	UserAgent       string
	StorePath       string
	StoreBackend    string // sheet or sqlite
	SnapshotEnabled bool
	SnapshotDir     string
	MetricsAddr     string
	Verbose         bool
}

// DefaultConfig returns conservative defaults for the grocery target.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://www.migros.com.tr",
		Categories:      append([]string(nil), DefaultCategories...),
		MaxPages:        50,
		RequestDelay:    400 * time.Millisecond,
		CategoryDelay:   time.Second,
		Timeout:         15 * time.Second,
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		StorePath:       "output/fiyat_takip.csv",
		StoreBackend:    "sheet",
		SnapshotEnabled: false,
		SnapshotDir:     "output",
		MetricsAddr:     "",
		Verbose:         false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if len(c.Categories) == 0 {
		return fmt.Errorf("category list cannot be empty")
	}
	for _, slug := range c.Categories {
		if slug == "" {
			return fmt.Errorf("category slug cannot be empty")
		}
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay cannot be negative")
	}
	if c.CategoryDelay < 0 {
		return fmt.Errorf("category delay cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.StorePath == "" {
		return fmt.Errorf("store path cannot be empty")
	}
	if c.StoreBackend != "sheet" && c.StoreBackend != "sqlite" {
		return fmt.Errorf("store backend must be sheet or sqlite")
	}
	if c.SnapshotEnabled && c.SnapshotDir == "" {
		return fmt.Errorf("snapshot directory cannot be empty when snapshots are enabled")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}
