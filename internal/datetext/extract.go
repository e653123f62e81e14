// Package datetext locates publication date text inside free-form page text.
// It only finds the text; interpretation is left to the normalizer.
package datetext

import "regexp"

// Patterns are ordered most specific first so that a fully qualified date is
// preferred over a fragment of itself (e.g. "2026/1/9" must win over the
// "1/9" a short pattern would find inside it).
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`),
	regexp.MustCompile(`(?:令和|平成|昭和|大正|明治)(?:元|\d{1,2})年\s*\d{1,2}月\s*\d{1,2}日`),
	regexp.MustCompile(`\d{4}年\s*\d{1,2}月\s*\d{1,2}日`),
	regexp.MustCompile(`\d{1,2}月\s*\d{1,2}日`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}`),
}

// Extract returns the first date-looking substring of text by pattern
// priority. The second return value is false when nothing matched; absence
// of a date is an ordinary outcome, not an error.
func Extract(text string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
