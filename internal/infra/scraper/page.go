package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"govnews/internal/datetext"
	"govnews/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	// minTitleRunes filters navigation noise like "»" or "1".
	minTitleRunes = 2

	// detailFetchInterval paces detail-page requests against the same host.
	detailFetchInterval = 500 * time.Millisecond
)

// contentSelectors narrow link collection to the likely announcement region.
// Tried in order; a page matching none is scanned whole.
var contentSelectors = []string{
	"main",
	"article",
	"#main",
	"#contents",
	"#content",
	".main-content",
	".contents",
	".content",
}

// metaDateProperties are page-level date hints, most trustworthy first.
// Municipal CMSes tend to keep modified_time current while published_time
// reflects the page's first upload.
var metaDateProperties = []string{
	"article:modified_time",
	"article:published_time",
}

// PageFetcher extracts announcement candidates from plain HTML listing pages
// that publish no feed.
type PageFetcher struct {
	client       *http.Client
	detailBudget int
	pacer        *rate.Limiter
}

// NewPageFetcher creates a PageFetcher. detailBudget bounds how many extra
// detail-page requests a single listing fetch may spend recovering dates.
func NewPageFetcher(client *http.Client, detailBudget int) *PageFetcher {
	return &PageFetcher{
		client:       client,
		detailBudget: detailBudget,
		pacer:        rate.NewLimiter(rate.Every(detailFetchInterval), 1),
	}
}

// Fetch scans a listing page and returns at most limit candidates. Candidates
// keep whatever raw date text could be recovered; an empty RawPublished means
// every recovery step came up dry.
func (p *PageFetcher) Fetch(ctx context.Context, endpoint string, limit int) ([]entity.Candidate, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}

	doc, err := p.fetchHTML(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	region := contentRegion(doc)
	seen := make(map[string]bool)
	budget := p.detailBudget
	var items []entity.Candidate

	region.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if limit > 0 && len(items) >= limit {
			return false
		}

		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}

		link := abs.String()
		if link == endpoint {
			return true
		}
		// 同一リンクは初出のみ採用
		if seen[link] {
			return true
		}
		seen[link] = true

		title := collapseSpace(a.Text())
		if utf8.RuneCountInString(title) < minTitleRunes {
			return true
		}

		raw := p.findDate(a, doc, title)
		if raw == "" && budget > 0 {
			// 予算は失敗しても消費する(同じ遅いページを何度も叩かない)
			budget--
			raw = p.detailDate(ctx, link)
		}

		items = append(items, entity.Candidate{
			Title:        title,
			Link:         link,
			RawPublished: raw,
		})
		return true
	})

	return items, nil
}

// findDate climbs the cheap recovery ladder for one link: surrounding text
// through the extractor, then time elements, then page metadata.
func (p *PageFetcher) findDate(a *goquery.Selection, doc *goquery.Document, title string) string {
	context := collapseSpace(a.Parent().Text())
	if raw, ok := datetext.Extract(context + " " + title); ok {
		return raw
	}

	if dt := timeAttr(a.Parent()); dt != "" {
		return dt
	}
	if dt := timeAttr(a); dt != "" {
		return dt
	}

	return metaDate(doc)
}

// detailDate fetches the candidate's own page and searches it for a date.
// Any failure yields an empty string; the item simply stays dateless.
func (p *PageFetcher) detailDate(ctx context.Context, link string) string {
	if err := p.pacer.Wait(ctx); err != nil {
		return ""
	}

	doc, err := p.fetchHTML(ctx, link)
	if err != nil {
		return ""
	}

	if dt := timeAttr(doc.Selection); dt != "" {
		return dt
	}
	if dt := metaDate(doc); dt != "" {
		return dt
	}
	if raw, ok := datetext.Extract(collapseSpace(doc.Find("body").Text())); ok {
		return raw
	}
	return ""
}

func (p *PageFetcher) fetchHTML(ctx context.Context, urlStr string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return fetchDocument(p.client, req)
}

// contentRegion returns the first matching announcement region, or the whole
// document when the page uses none of the known layouts.
func contentRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if region := doc.Find(sel); region.Length() > 0 {
			return region.First()
		}
	}
	return doc.Selection
}

// timeAttr returns the datetime attribute of the first <time> element under
// sel, if any.
func timeAttr(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Find("time[datetime]").First().AttrOr("datetime", ""))
}

// metaDate returns the page-level date metadata, if any.
func metaDate(doc *goquery.Document) string {
	for _, prop := range metaDateProperties {
		content := doc.Find(`meta[property="` + prop + `"]`).First().AttrOr("content", "")
		if content = strings.TrimSpace(content); content != "" {
			return content
		}
	}
	return ""
}

// collapseSpace trims and squeezes all runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
