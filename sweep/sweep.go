// Package sweep drives one full harvesting run: every configured
// category, page by page, through extraction and de-duplication into
// the store.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kyucel/fiyat-avcisi/config"
	"github.com/kyucel/fiyat-avcisi/extract"
	"github.com/kyucel/fiyat-avcisi/fetch"
	"github.com/kyucel/fiyat-avcisi/models"
	"github.com/kyucel/fiyat-avcisi/store"
)

// PageFetcher is the slice of the fetcher the sweeper depends on.
type PageFetcher interface {
	FetchPage(ctx context.Context, slug string, page int) (*fetch.Envelope, error)
}

// Sweeper runs sweeps. Writes happen per category: a failure in one
// category's write or fetch never discards what earlier categories
// already persisted.
type Sweeper struct {
	cfg     *config.Config
	fetcher PageFetcher
	store   store.Store
	Metrics *Metrics
}

// New builds a sweeper over the given fetcher and store.
func New(cfg *config.Config, fetcher PageFetcher, st store.Store) *Sweeper {
	return &Sweeper{
		cfg:     cfg,
		fetcher: fetcher,
		store:   st,
		Metrics: NewMetrics(),
	}
}

// Run executes one sweep. The only fatal condition is an unreachable
// store before fetching starts; every later failure is absorbed at
// category granularity and reported through the result counts.
func (s *Sweeper) Run(ctx context.Context) (*models.SweepResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.store.Ping(); err != nil {
		return nil, fmt.Errorf("store unavailable: %w", err)
	}

	start := time.Now()
	capturedAt := start.Format(models.CaptureTimeLayout)
	seen := make(map[string]struct{})

	result := &models.SweepResult{
		StartTime:    start,
		Categories:   len(s.cfg.Categories),
		ErrorsByType: make(map[string]int),
	}

	for i, slug := range s.cfg.Categories {
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			if err := wait(ctx, s.cfg.CategoryDelay); err != nil {
				break
			}
		}

		records, pages, err := s.harvestCategory(ctx, slug, capturedAt)
		result.PagesFetched += pages
		result.ItemsSeen += len(records)
		if err != nil {
			// A failed page ends this category's pagination; anything
			// already extracted from earlier pages is still persisted.
			label := fetch.Label(err)
			result.ErrorsByType[label]++
			slog.Warn("category ended early",
				slog.String("category", slug),
				slog.Int("pages", pages),
				slog.String("error_type", label),
				slog.Any("error", err),
			)
		}

		unique := Dedupe(records, seen)
		dropped := len(records) - len(unique)
		result.Duplicates += dropped
		s.Metrics.AddDuplicates(dropped)
		if len(unique) == 0 {
			continue
		}

		if err := s.store.Append(unique); err != nil {
			result.WriteFailures++
			result.FailedCats = append(result.FailedCats, slug)
			s.Metrics.IncWriteFailures()
			slog.Error("category write failed",
				slog.String("category", slug),
				slog.Int("rows", len(unique)),
				slog.Any("error", err),
			)
			continue
		}

		result.RecordsWritten += len(unique)
		s.Metrics.AddRowsWritten(len(unique))
		slog.Info("category persisted",
			slog.String("category", slug),
			slog.Int("pages", pages),
			slog.Int("rows", len(unique)),
			slog.Int("duplicates", dropped),
		)
	}

	result.EndTime = time.Now()
	return result, nil
}

// harvestCategory paginates one category until an empty page, a fetch
// failure, or the page cap. It returns whatever was extracted before
// the stop together with the error that caused it, if any.
func (s *Sweeper) harvestCategory(ctx context.Context, slug, capturedAt string) ([]*models.ProductRecord, int, error) {
	var all []*models.ProductRecord
	pages := 0

	for page := 1; page <= s.cfg.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return all, pages, err
		}

		fetchStart := time.Now()
		env, err := s.fetcher.FetchPage(ctx, slug, page)
		s.Metrics.IncRequests()
		s.Metrics.ObserveDuration(time.Since(fetchStart))
		if err != nil {
			s.Metrics.IncError(fetch.Label(err))
			return all, pages, err
		}
		pages++

		records := extract.Records(env, slug, capturedAt, s.cfg.BaseURL)
		if len(records) == 0 {
			return all, pages, nil
		}
		s.Metrics.AddItems(len(records))
		all = append(all, records...)
	}

	slog.Debug("page cap reached", slog.String("category", slug), slog.Int("pages", pages))
	return all, pages, nil
}

// Dedupe keeps the first record per product name, updating seen in
// place. The accumulator belongs to one sweep invocation; repeated or
// concurrent sweeps never share it.
func Dedupe(records []*models.ProductRecord, seen map[string]struct{}) []*models.ProductRecord {
	unique := make([]*models.ProductRecord, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.Name]; ok {
			continue
		}
		seen[record.Name] = struct{}{}
		unique = append(unique, record)
	}
	return unique
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
