package ingest

import (
	"net/url"
	"path"
	"strings"

	"govnews/internal/domain/entity"
)

var feedExtensions = map[string]bool{
	".rss":  true,
	".rdf":  true,
	".atom": true,
	".xml":  true,
}

var feedKeywords = []string{"rss", "feed", "atom"}

// looksLikeFeed guesses from the endpoint URL alone whether it serves a
// syndication feed. It is only a routing hint: a feed-looking endpoint that
// fails or returns nothing still falls back to page scraping.
func looksLikeFeed(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}

	if feedExtensions[strings.ToLower(path.Ext(u.Path))] {
		return true
	}

	lower := strings.ToLower(u.Path)
	for _, kw := range feedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// useFeedFirst decides whether a source is tried through the feed adapter
// before falling back to page scraping. An explicit kind wins; unknown
// sources are routed by URL.
func useFeedFirst(src entity.Source) bool {
	switch src.Kind {
	case entity.SourceKindFeed:
		return true
	case entity.SourceKindPage:
		return false
	default:
		return looksLikeFeed(src.Endpoint)
	}
}
