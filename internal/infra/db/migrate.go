package db

import (
	"database/sql"
	"fmt"
)

// MigrateUp creates the announcements schema if it does not exist. The key
// column carries a unique index because the link is the sole item identity.
func MigrateUp(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS announcements (
    id           BIGSERIAL PRIMARY KEY,
    key          TEXT NOT NULL,
    title        TEXT NOT NULL,
    url          TEXT NOT NULL,
    agency       TEXT NOT NULL DEFAULT '',
    published_at TIMESTAMPTZ NOT NULL,
    retrieved_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_announcements_key ON announcements(key)`,
		// 日次窓の確認や集計はpublished_at降順で読む
		`CREATE INDEX IF NOT EXISTS idx_announcements_published_at ON announcements(published_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	}
	return nil
}

// MigrateDown drops the announcements schema. Destructive; development only.
func MigrateDown(db *sql.DB) error {
	if _, err := db.Exec(`DROP TABLE IF EXISTS announcements`); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
