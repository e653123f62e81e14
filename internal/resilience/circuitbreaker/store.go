package circuitbreaker

import (
	"context"

	"govnews/internal/domain/entity"
	"govnews/internal/repository"
)

// AnnouncementStore wraps an AnnouncementRepository so every store call goes
// through one shared breaker. When the store is down the reconciler's calls
// fail fast with gobreaker.ErrOpenState and each affected item is counted as
// an error by the caller; no retries are introduced.
type AnnouncementStore struct {
	cb   *CircuitBreaker
	repo repository.AnnouncementRepository
}

var _ repository.AnnouncementRepository = (*AnnouncementStore)(nil)

// NewAnnouncementStore wraps repo with the store breaker configuration.
func NewAnnouncementStore(repo repository.AnnouncementRepository) *AnnouncementStore {
	return &AnnouncementStore{cb: New(StoreConfig()), repo: repo}
}

// NewAnnouncementStoreWithConfig wraps repo with a custom breaker configuration.
func NewAnnouncementStoreWithConfig(repo repository.AnnouncementRepository, cfg Config) *AnnouncementStore {
	return &AnnouncementStore{cb: New(cfg), repo: repo}
}

// FindByKey looks up an announcement through the breaker.
func (s *AnnouncementStore) FindByKey(ctx context.Context, key string) (*entity.Announcement, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.repo.FindByKey(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return result.(*entity.Announcement), nil
}

// Create inserts an announcement through the breaker.
func (s *AnnouncementStore) Create(ctx context.Context, a *entity.Announcement) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.repo.Create(ctx, a)
	})
	return err
}

// Update overwrites an announcement through the breaker.
func (s *AnnouncementStore) Update(ctx context.Context, a *entity.Announcement) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.repo.Update(ctx, a)
	})
	return err
}

// IsOpen reports whether the store breaker is currently open.
func (s *AnnouncementStore) IsOpen() bool {
	return s.cb.IsOpen()
}
