package entity

import "time"

// Candidate is a raw item produced by a source adapter before any date
// interpretation. RawPublished carries the publication date exactly as the
// source presented it; an empty string means the adapter found none.
type Candidate struct {
	Title        string
	Link         string
	RawPublished string
}

// NormalizedItem is a candidate whose publication date has been resolved to
// an absolute instant. Only normalized items reach the window filter and the
// store.
type NormalizedItem struct {
	Title       string
	Link        string
	PublishedAt time.Time
}
