package entity

import (
	"strings"
	"time"
)

// Announcement is one stored government announcement. Key is the item link
// verbatim and is the sole identity used for reconciliation; URL duplicates
// it for display so that key semantics can change without losing the link.
type Announcement struct {
	ID          int64
	Key         string
	Title       string
	URL         string
	Agency      string
	PublishedAt time.Time
	RetrievedAt time.Time
}

// Validate checks the fields required before a store write.
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Key) == "" {
		return &ValidationError{Field: "key", Message: "must not be empty"}
	}
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if strings.TrimSpace(a.URL) == "" {
		return &ValidationError{Field: "url", Message: "must not be empty"}
	}
	if a.PublishedAt.IsZero() {
		return &ValidationError{Field: "published_at", Message: "must be set"}
	}
	return nil
}
