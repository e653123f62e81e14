// Package repository defines the persistence interfaces consumed by the
// usecase layer.
package repository

import (
	"context"

	"govnews/internal/domain/entity"
)

// AnnouncementRepository is the external store the reconciler writes to.
// Lookup is exact-match on Key; implementations perform no key normalization.
type AnnouncementRepository interface {
	// FindByKey returns the stored announcement for key, or (nil, nil) when
	// no record exists. An error means the store itself failed.
	FindByKey(ctx context.Context, key string) (*entity.Announcement, error)

	// Create inserts a new announcement and sets its ID.
	Create(ctx context.Context, a *entity.Announcement) error

	// Update overwrites the mutable fields of an existing announcement by ID.
	Update(ctx context.Context, a *entity.Announcement) error
}
