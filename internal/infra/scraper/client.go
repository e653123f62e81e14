// Package scraper provides the source adapters that turn announcement
// endpoints (RSS/Atom feeds and plain listing pages) into candidate items.
package scraper

import (
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

const (
	// userAgent identifies the crawler to the sites it polls.
	userAgent = "GovNewsBot/1.0"

	// maxBodySize caps response bodies to prevent memory exhaustion.
	maxBodySize = 10 * 1024 * 1024 // 10MB
)

// HTTPError represents a non-2xx response from a source endpoint.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// fetchDocument fetches a URL and parses the body as HTML. There is no retry:
// a failed source is reported once and picked up again on the next run.
func fetchDocument(client *http.Client, req *http.Request) (*goquery.Document, error) {
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}
