// Package ingest orchestrates one ingestion run: fetch every source, resolve
// publication dates, filter to the last full JST day, and reconcile the
// survivors against the store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"govnews/internal/domain/entity"
	"govnews/internal/jptime"
	"govnews/internal/repository"

	"github.com/google/uuid"
)

// Fetcher turns one endpoint into candidate items. Both the feed and the
// page adapters satisfy it.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, limit int) ([]entity.Candidate, error)
}

// Config holds the per-run tunables.
type Config struct {
	// ItemLimit bounds candidates taken per source; 0 means unlimited.
	ItemLimit int
}

// Service runs the ingestion pipeline. Sources are processed strictly in
// order, one at a time; one bad source never stops the run.
type Service struct {
	sources []entity.Source
	feed    Fetcher
	page    Fetcher
	store   repository.AnnouncementRepository
	config  Config

	// now is replaceable in tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates an ingest Service over the given collaborators.
func NewService(
	sources []entity.Source,
	feed Fetcher,
	page Fetcher,
	store repository.AnnouncementRepository,
	config Config,
) *Service {
	return &Service{
		sources: sources,
		feed:    feed,
		page:    page,
		store:   store,
		config:  config,
		now:     time.Now,
	}
}

// RunStats summarizes one run. Every candidate ends up in exactly one of the
// item counters.
type RunStats struct {
	Sources       int
	Created       int
	Updated       int
	SkippedNoDate int
	SkippedTime   int
	Errors        int
	Window        jptime.Window
	Duration      time.Duration
}

// Run executes one full ingestion pass and returns its statistics. The only
// error it returns is a missing source list; per-source and per-item
// failures are counted and logged, never fatal.
func (s *Service) Run(ctx context.Context) (*RunStats, error) {
	if len(s.sources) == 0 {
		return nil, ErrNoSources
	}

	logger := slog.Default().With(slog.String("run_id", uuid.NewString()))
	start := time.Now()
	now := s.now()
	window := jptime.LastFullDay(now)

	stats := &RunStats{Sources: len(s.sources), Window: window}
	logger.Info("ingest run started",
		slog.Int("sources", stats.Sources),
		slog.Time("window_start", window.Start),
		slog.Time("window_end", window.End))

	for _, src := range s.sources {
		s.processSource(ctx, logger, src, now, window, stats)
	}

	stats.Duration = time.Since(start)
	logger.Info("ingest run completed",
		slog.Int("sources", stats.Sources),
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("skipped_nodate", stats.SkippedNoDate),
		slog.Int("skipped_time", stats.SkippedTime),
		slog.Int("errors", stats.Errors),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}

// processSource fetches one source and walks its candidates through the
// pipeline, updating stats in place.
func (s *Service) processSource(
	ctx context.Context,
	logger *slog.Logger,
	src entity.Source,
	now time.Time,
	window jptime.Window,
	stats *RunStats,
) {
	items, err := s.fetchCandidates(ctx, src)
	if err != nil {
		stats.Errors++
		logger.Warn("failed to fetch source",
			slog.String("source", src.Name),
			slog.String("endpoint", src.Endpoint),
			slog.Any("error", err))
		return
	}

	for _, c := range items {
		published, err := jptime.Normalize(c.RawPublished, now)
		if err != nil {
			// 日付が読めないものは保存しない(推測もしない)
			stats.SkippedNoDate++
			continue
		}

		if !window.Contains(published) {
			stats.SkippedTime++
			continue
		}

		item := entity.NormalizedItem{Title: c.Title, Link: c.Link, PublishedAt: published}
		result, err := s.reconcile(ctx, item, src.Name)
		if err != nil {
			stats.Errors++
			logger.Warn("failed to reconcile item",
				slog.String("source", src.Name),
				slog.String("link", c.Link),
				slog.Any("error", err))
			continue
		}

		switch result {
		case ResultCreated:
			stats.Created++
		case ResultUpdated:
			stats.Updated++
		}
	}

	logger.Info("source processed",
		slog.String("source", src.Name),
		slog.Int("candidates", len(items)))
}

// fetchCandidates applies the two-tier strategy: feed-looking sources go
// through the feed adapter first and fall back to page scraping when the
// feed errors or comes back empty; everything else is scraped directly.
func (s *Service) fetchCandidates(ctx context.Context, src entity.Source) ([]entity.Candidate, error) {
	if useFeedFirst(src) {
		items, err := s.feed.Fetch(ctx, src.Endpoint, s.config.ItemLimit)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		if err != nil {
			slog.Debug("feed fetch failed, falling back to page scraping",
				slog.String("source", src.Name),
				slog.Any("error", err))
		}
	}

	items, err := s.page.Fetch(ctx, src.Endpoint, s.config.ItemLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", src.Name, err)
	}
	return items, nil
}
