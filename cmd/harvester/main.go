package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kyucel/fiyat-avcisi/config"
	"github.com/kyucel/fiyat-avcisi/fetch"
	"github.com/kyucel/fiyat-avcisi/models"
	"github.com/kyucel/fiyat-avcisi/store"
	"github.com/kyucel/fiyat-avcisi/sweep"
)

func main() {
	defaultCfg := config.DefaultConfig()

	categories := flag.String("categories", strings.Join(defaultCfg.Categories, ","), "Comma-separated category slugs to sweep")
	baseURL := flag.String("base-url", defaultCfg.BaseURL, "Site base URL")
	maxPages := flag.Int("max-pages", defaultCfg.MaxPages, "Per-category page cap")
	delayMs := flag.Int("delay", int(defaultCfg.RequestDelay/time.Millisecond), "Delay before each page request (milliseconds)")
	categoryDelayMs := flag.Int("category-delay", int(defaultCfg.CategoryDelay/time.Millisecond), "Delay between categories (milliseconds)")
	timeoutSec := flag.Int("timeout", int(defaultCfg.Timeout/time.Second), "Per-request timeout (seconds)")
	output := flag.String("output", defaultCfg.StorePath, "Main table path")
	backend := flag.String("backend", defaultCfg.StoreBackend, "Store backend: sheet or sqlite")
	snapshot := flag.Bool("snapshot", defaultCfg.SnapshotEnabled, "Also write a per-run snapshot table")
	snapshotDir := flag.String("snapshot-dir", defaultCfg.SnapshotDir, "Directory for snapshot sheets")
	metricsAddr := flag.String("metrics-addr", defaultCfg.MetricsAddr, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.Categories = splitCategories(*categories)
	cfg.BaseURL = *baseURL
	cfg.MaxPages = *maxPages
	cfg.RequestDelay = time.Duration(*delayMs) * time.Millisecond
	cfg.CategoryDelay = time.Duration(*categoryDelayMs) * time.Millisecond
	cfg.Timeout = time.Duration(*timeoutSec) * time.Second
	cfg.StorePath = *output
	cfg.StoreBackend = strings.ToLower(*backend)
	cfg.SnapshotEnabled = *snapshot
	cfg.SnapshotDir = *snapshotDir
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting sweep",
		slog.String("base_url", cfg.BaseURL),
		slog.Int("categories", len(cfg.Categories)),
		slog.String("backend", cfg.StoreBackend),
	)

	st, err := openStore(cfg, time.Now())
	if err != nil {
		slog.Error("opening store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("close store", slog.Any("error", err))
		}
	}()

	fetcher, err := fetch.New(cfg)
	if err != nil {
		slog.Error("initialising fetcher", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, finishing current category")
	}()

	s := sweep.New(cfg, fetcher, st)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	result, err := s.Run(ctx)
	if err != nil {
		slog.Error("sweep failed", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, cfg.StorePath)
}

func openStore(cfg *config.Config, now time.Time) (store.Store, error) {
	var main, snap store.Store
	var err error

	switch cfg.StoreBackend {
	case "sqlite":
		main, err = store.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		if cfg.SnapshotEnabled {
			snap, err = store.OpenSQLiteSnapshot(cfg.StorePath, now)
		}
	default:
		main, err = store.OpenSheet(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		if cfg.SnapshotEnabled {
			snap, err = store.OpenSnapshot(cfg.SnapshotDir, now)
		}
	}
	if err != nil {
		// The snapshot is a convenience view; its absence never blocks
		// the main table.
		slog.Warn("snapshot store unavailable", slog.Any("error", err))
		snap = nil
	}

	if snap == nil {
		return main, nil
	}
	return store.NewDual(main, snap), nil
}

func splitCategories(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if slug := strings.TrimSpace(p); slug != "" {
			out = append(out, slug)
		}
	}
	return out
}

func printSummary(result *models.SweepResult, outputPath string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Sweep complete")
	fmt.Printf("  Categories:    %d\n", result.Categories)
	fmt.Printf("  Pages fetched: %d\n", result.PagesFetched)
	fmt.Printf("  Items seen:    %d\n", result.ItemsSeen)
	fmt.Printf("  Duplicates:    %d\n", result.Duplicates)
	fmt.Printf("  Rows written:  %d\n", result.RecordsWritten)
	if result.WriteFailures > 0 {
		fmt.Printf("  Write failures: %d (%v)\n", result.WriteFailures, result.FailedCats)
	}
	if len(result.ErrorsByType) > 0 {
		fmt.Printf("  Fetch errors:  %v\n", result.ErrorsByType)
	}
	fmt.Printf("  Duration:      %v\n", result.EndTime.Sub(result.StartTime).Round(time.Millisecond))
	fmt.Printf("  Main table:    %s\n", outputPath)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
