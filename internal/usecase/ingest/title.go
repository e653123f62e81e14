package ingest

import (
	"net/url"
	"strings"
)

// maxTitleRunes caps stored titles; counted in runes so Japanese text is not
// cut mid-character.
const maxTitleRunes = 200

// finalizeTitle produces the stored title: the trimmed extracted title, or
// when that is empty, the last non-empty path segment of the link, or the
// link itself as a last resort.
func finalizeTitle(title, link string) string {
	if t := strings.TrimSpace(title); t != "" {
		return truncateRunes(t, maxTitleRunes)
	}

	if u, err := url.Parse(link); err == nil {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i := len(segments) - 1; i >= 0; i-- {
			if segments[i] != "" {
				return truncateRunes(segments[i], maxTitleRunes)
			}
		}
	}

	return truncateRunes(link, maxTitleRunes)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
