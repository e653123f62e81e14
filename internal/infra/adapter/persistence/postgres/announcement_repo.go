// Package postgres implements the announcement store on PostgreSQL via
// database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"govnews/internal/domain/entity"
)

// AnnouncementRepo persists announcements in PostgreSQL.
type AnnouncementRepo struct {
	db *sql.DB
}

// NewAnnouncementRepo creates a repository bound to the given connection pool.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

// FindByKey returns the announcement stored under key, or (nil, nil) when
// absent.
func (r *AnnouncementRepo) FindByKey(ctx context.Context, key string) (*entity.Announcement, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, key, title, url, agency, published_at, retrieved_at
FROM announcements
WHERE key = $1`, key)

	a, err := scanAnnouncement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByKey: %w", err)
	}
	return a, nil
}

// Create inserts a new announcement and fills in the generated ID.
func (r *AnnouncementRepo) Create(ctx context.Context, a *entity.Announcement) error {
	err := r.db.QueryRowContext(ctx, `
INSERT INTO announcements (key, title, url, agency, published_at, retrieved_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		a.Key, a.Title, a.URL, a.Agency, a.PublishedAt, a.RetrievedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields of an existing announcement.
func (r *AnnouncementRepo) Update(ctx context.Context, a *entity.Announcement) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE announcements
SET title = $1, url = $2, agency = $3, published_at = $4, retrieved_at = $5
WHERE id = $6`,
		a.Title, a.URL, a.Agency, a.PublishedAt, a.RetrievedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(row rowScanner) (*entity.Announcement, error) {
	var a entity.Announcement
	err := row.Scan(&a.ID, &a.Key, &a.Title, &a.URL, &a.Agency, &a.PublishedAt, &a.RetrievedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
