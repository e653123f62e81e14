package ingest

import (
	"context"
	"fmt"

	"govnews/internal/domain/entity"
	"govnews/internal/jptime"
)

// Result describes what the reconciler did with one item.
type Result int

const (
	// ResultCreated means a new record was inserted.
	ResultCreated Result = iota
	// ResultUpdated means an existing record was overwritten.
	ResultUpdated
)

// reconcile writes one in-window item to the store. The identity key is the
// item link verbatim; no normalization, so trailing-slash or query variants
// are distinct records. Lookup-then-write is not transactional, which is
// acceptable because runs never overlap.
func (s *Service) reconcile(ctx context.Context, item entity.NormalizedItem, agency string) (Result, error) {
	key := item.Link

	existing, err := s.store.FindByKey(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("find by key: %w", err)
	}

	record := &entity.Announcement{
		Key:         key,
		Title:       finalizeTitle(item.Title, item.Link),
		URL:         item.Link,
		Agency:      agency,
		PublishedAt: item.PublishedAt,
		RetrievedAt: s.now().In(jptime.JST),
	}
	if err := record.Validate(); err != nil {
		return 0, fmt.Errorf("validate record: %w", err)
	}

	if existing != nil {
		record.ID = existing.ID
		if err := s.store.Update(ctx, record); err != nil {
			return 0, fmt.Errorf("update announcement: %w", err)
		}
		return ResultUpdated, nil
	}

	if err := s.store.Create(ctx, record); err != nil {
		return 0, fmt.Errorf("create announcement: %w", err)
	}
	return ResultCreated, nil
}
