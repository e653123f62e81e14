// Command worker runs the ingestion pipeline on a cron schedule and exposes
// Prometheus metrics and health probes.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	pgRepo "govnews/internal/infra/adapter/persistence/postgres"
	"govnews/internal/infra/db"
	"govnews/internal/infra/scraper"
	"govnews/internal/infra/sourcelist"
	workerPkg "govnews/internal/infra/worker"
	"govnews/internal/observability/logging"
	"govnews/internal/resilience/circuitbreaker"
	"govnews/internal/usecase/ingest"
	"govnews/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	workerConfig := workerPkg.LoadConfigFromEnv()
	if err := workerConfig.Validate(); err != nil {
		logger.Error("invalid worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("run_timeout", workerConfig.RunTimeout),
		slog.Int("metrics_port", workerConfig.MetricsPort),
		slog.Int("health_port", workerConfig.HealthPort))

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := workerPkg.NewMetrics()
	startMetricsServer(ctx, logger, workerConfig.MetricsPort)

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", workerConfig.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	startCronWorker(ctx, logger, database, workerConfig, metrics, healthServer)
}

// initDatabase opens the database connection and applies migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// startCronWorker registers the ingest job and blocks until ctx is cancelled.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	database *sql.DB,
	cfg workerPkg.Config,
	metrics *workerPkg.Metrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runIngestJob(logger, database, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutdown signal received")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("worker stopped")
}

// runIngestJob executes one ingestion pass with a fresh source list so edits
// to the list take effect without a restart.
func runIngestJob(logger *slog.Logger, database *sql.DB, cfg workerPkg.Config, metrics *workerPkg.Metrics) {
	startTime := time.Now()
	logger.Info("ingest job started")

	sourcesPath := config.GetEnvString("SOURCES_PATH", "data/sources.csv")
	sources, err := sourcelist.Load(sourcesPath)
	if err != nil {
		logger.Error("failed to load source list",
			slog.String("path", sourcesPath),
			slog.Any("error", err))
		metrics.RecordRun("failure", time.Since(startTime).Seconds())
		return
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	stats, err := svc.Run(ctx)
	if err != nil {
		logger.Error("ingest job failed", slog.Any("error", err))
		metrics.RecordRun("failure", time.Since(startTime).Seconds())
		return
	}

	metrics.RecordRun("success", time.Since(startTime).Seconds())
	metrics.RecordStats(stats)

	logger.Info("ingest job completed",
		slog.Int("sources", stats.Sources),
		slog.Int("created", stats.Created),
		slog.Int("updated", stats.Updated),
		slog.Int("skipped_nodate", stats.SkippedNoDate),
		slog.Int("skipped_time", stats.SkippedTime),
		slog.Int("errors", stats.Errors),
		slog.Duration("duration", stats.Duration))
}
