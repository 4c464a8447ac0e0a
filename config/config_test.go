package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty base url",
			mutate: func(cfg *Config) {
				cfg.BaseURL = ""
			},
			wantErr: "base URL",
		},
		{
			name: "invalid url format",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "http://"
			},
			wantErr: "base URL",
		},
		{
			name: "empty category list",
			mutate: func(cfg *Config) {
				cfg.Categories = nil
			},
			wantErr: "category list",
		},
		{
			name: "blank category slug",
			mutate: func(cfg *Config) {
				cfg.Categories = []string{"yag-c-7a", ""}
			},
			wantErr: "category slug",
		},
		{
			name: "zero max pages",
			mutate: func(cfg *Config) {
				cfg.MaxPages = 0
			},
			wantErr: "max pages",
		},
		{
			name: "negative request delay",
			mutate: func(cfg *Config) {
				cfg.RequestDelay = -time.Second
			},
			wantErr: "request delay",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "unknown backend",
			mutate: func(cfg *Config) {
				cfg.StoreBackend = "postgres"
			},
			wantErr: "store backend",
		},
		{
			name: "snapshot without directory",
			mutate: func(cfg *Config) {
				cfg.SnapshotEnabled = true
				cfg.SnapshotDir = ""
			},
			wantErr: "snapshot directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestDefaultCategoriesAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories[0] = "changed"
	if DefaultCategories[0] == "changed" {
		t.Fatalf("mutating a config must not leak into the defaults")
	}
}
