package entity

import "strings"

// Source kinds. Kind is a routing hint for adapter selection; Unknown sources
// are routed by the endpoint URL heuristic instead.
const (
	SourceKindFeed    = "feed"
	SourceKindPage    = "page"
	SourceKindUnknown = "unknown"
)

// Source is one monitored publisher: a municipality or agency feed or page.
type Source struct {
	// Name is the human-readable agency name, recorded on every stored item.
	Name string

	// Endpoint is the URL polled for new announcements.
	Endpoint string

	// Kind is one of SourceKindFeed, SourceKindPage, SourceKindUnknown.
	Kind string
}

// Validate checks that the source carries everything a run needs.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		return &ValidationError{Field: "endpoint", Message: "must not be empty"}
	}
	if !strings.HasPrefix(s.Endpoint, "http://") && !strings.HasPrefix(s.Endpoint, "https://") {
		return &ValidationError{Field: "endpoint", Message: "must be an http(s) URL"}
	}
	switch s.Kind {
	case SourceKindFeed, SourceKindPage, SourceKindUnknown:
		return nil
	default:
		return &ValidationError{Field: "kind", Message: "must be feed, page, or unknown"}
	}
}
