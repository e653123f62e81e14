// Package sqlite implements the announcement store on SQLite for local runs
// and development, mirroring the PostgreSQL repository with ? placeholders.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"govnews/internal/domain/entity"
)

// AnnouncementRepo persists announcements in SQLite.
type AnnouncementRepo struct {
	db *sql.DB
}

// NewAnnouncementRepo creates a repository bound to the given database.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

// FindByKey returns the announcement stored under key, or (nil, nil) when
// absent.
func (r *AnnouncementRepo) FindByKey(ctx context.Context, key string) (*entity.Announcement, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, key, title, url, agency, published_at, retrieved_at
FROM announcements
WHERE key = ?`, key)

	var a entity.Announcement
	err := row.Scan(&a.ID, &a.Key, &a.Title, &a.URL, &a.Agency, &a.PublishedAt, &a.RetrievedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByKey: %w", err)
	}
	return &a, nil
}

// Create inserts a new announcement and fills in the generated ID.
func (r *AnnouncementRepo) Create(ctx context.Context, a *entity.Announcement) error {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO announcements (key, title, url, agency, published_at, retrieved_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		a.Key, a.Title, a.URL, a.Agency, a.PublishedAt, a.RetrievedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create last insert id: %w", err)
	}
	a.ID = id
	return nil
}

// Update overwrites the mutable fields of an existing announcement.
func (r *AnnouncementRepo) Update(ctx context.Context, a *entity.Announcement) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE announcements
SET title = ?, url = ?, agency = ?, published_at = ?, retrieved_at = ?
WHERE id = ?`,
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
