package scraper

import (
	"context"
	"fmt"
	"net/http"

	"govnews/internal/domain/entity"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher reads RSS/Atom endpoints using the gofeed library.
type FeedFetcher struct {
	client *http.Client
}

// NewFeedFetcher creates a FeedFetcher with the given HTTP client.
func NewFeedFetcher(client *http.Client) *FeedFetcher {
	return &FeedFetcher{client: client}
}

// Fetch retrieves and parses a feed, returning at most limit candidates.
// The published text is passed through raw; interpreting it is the
// normalizer's job, not the adapter's.
func (f *FeedFetcher) Fetch(ctx context.Context, endpoint string, limit int) ([]entity.Candidate, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(endpoint, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]entity.Candidate, 0, len(feed.Items))
	for _, it := range feed.Items {
		if limit > 0 && len(items) >= limit {
			break
		}

		// リンクがなければGUIDで代替、どちらもなければ黙って捨てる
		link := it.Link
		if link == "" {
			link = it.GUID
		}
		if link == "" {
			continue
		}

		raw := it.Published
		if raw == "" {
			raw = it.Updated
		}

		items = append(items, entity.Candidate{
			Title:        it.Title,
			Link:         link,
			RawPublished: raw,
		})
	}

	return items, nil
}
