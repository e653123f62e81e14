// Package worker holds the long-running scheduler's configuration, metrics,
// and health endpoints.
package worker

import (
	"fmt"
	"time"

	"govnews/pkg/config"

	"github.com/robfig/cron/v3"
)

// Config controls the scheduled runner.
type Config struct {
	// CronSchedule is the five-field cron expression for ingestion runs.
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	Timezone string

	// RunTimeout bounds a single ingestion run.
	RunTimeout time.Duration

	// MetricsPort serves /metrics.
	MetricsPort int

	// HealthPort serves /health and /health/ready.
	HealthPort int
}

// DefaultConfig returns the production defaults: one run every morning at
// 05:30 JST, shortly after municipal sites publish the previous day's items.
func DefaultConfig() Config {
	return Config{
		CronSchedule: "30 5 * * *",
		Timezone:     "Asia/Tokyo",
		RunTimeout:   30 * time.Minute,
		MetricsPort:  9090,
		HealthPort:   9091,
	}
}

// LoadConfigFromEnv reads the worker configuration from environment
// variables, falling back to defaults for anything unset.
func LoadConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		CronSchedule: config.GetEnvString("CRON_SCHEDULE", def.CronSchedule),
		Timezone:     config.GetEnvString("WORKER_TIMEZONE", def.Timezone),
		RunTimeout:   config.GetEnvDuration("RUN_TIMEOUT", def.RunTimeout),
		MetricsPort:  config.GetEnvInt("METRICS_PORT", def.MetricsPort),
		HealthPort:   config.GetEnvInt("HEALTH_PORT", def.HealthPort),
	}
}

// Validate checks that the configuration can actually drive the scheduler.
func (c *Config) Validate() error {
	if _, err := cron.ParseStandard(c.CronSchedule); err != nil {
		return fmt.Errorf("cron schedule %q: %w", c.CronSchedule, err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("run timeout must be positive, got %v", c.RunTimeout)
	}
	for _, port := range []int{c.MetricsPort, c.HealthPort} {
		if port < 1024 || port > 65535 {
			return fmt.Errorf("port %d out of range 1024-65535", port)
		}
	}
	return nil
}
