// Command ingest runs a single ingestion pass over the configured source
// list and exits. The scheduled variant lives in cmd/worker.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pgRepo "govnews/internal/infra/adapter/persistence/postgres"
	"govnews/internal/infra/db"
	"govnews/internal/infra/scraper"
	"govnews/internal/infra/sourcelist"
	"govnews/internal/observability/logging"
	"govnews/internal/resilience/circuitbreaker"
	"govnews/internal/usecase/ingest"
	"govnews/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	sourcesPath := config.GetEnvString("SOURCES_PATH", "data/sources.csv")
	sources, err := sourcelist.Load(sourcesPath)
	if err != nil {
		logger.Error("failed to load source list",
			slog.String("path", sourcesPath),
			slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("source list loaded",
		slog.String("path", sourcesPath),
		slog.Int("sources", len(sources)))

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	store := circuitbreaker.NewAnnouncementStore(pgRepo.NewAnnouncementRepo(database))

	httpClient := &http.Client{
		Timeout: config.GetEnvDuration("FETCH_TIMEOUT", 30*time.Second),
	}
	svc := ingest.NewService(
		sources,
		scraper.NewFeedFetcher(httpClient),
		scraper.NewPageFetcher(httpClient, config.GetEnvInt("DETAIL_FETCH_BUDGET", 5)),
		store,
		ingest.Config{ItemLimit: config.GetEnvInt("ITEM_LIMIT", 0)},
	)

	ctx, cancel := context.WithTimeout(context.Background(), config.GetEnvDuration("RUN_TIMEOUT", 30*time.Minute))
	defer cancel()

	stats, err := svc.Run(ctx)
	if err != nil {
		logger.Error("ingest run failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("ingest finished",
		slog.Int("sources", stats.Sources),
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("skipped_nodate", stats.SkippedNoDate),
		slog.Int("skipped_time", stats.SkippedTime),
		slog.Int("errors", stats.Errors),
		slog.Duration("duration", stats.Duration))
}
