// Package jptime turns Japanese-style publication date text into absolute
// instants in the fixed JST offset, and computes the daily ingestion window.
package jptime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// JST is the fixed UTC+9 offset used for all window arithmetic. A fixed zone
// avoids depending on the host tzdata; Japan has no DST.
var JST = time.FixedZone("JST", 9*60*60)

// ErrUnparseable is returned when no date can be recovered from the input.
// Callers treat it as "no usable date", never as a reason to guess one.
var ErrUnparseable = errors.New("unparseable date text")

// eraStartOffsets maps an era name to (first Gregorian year of the era - 1),
// so that Gregorian year = offset + era year. 元年 counts as year 1.
var eraStartOffsets = map[string]int{
	"令和": 2018,
	"平成": 1988,
	"昭和": 1925,
	"大正": 1911,
	"明治": 1867,
}

// shapeRule rewrites one recognized textual date shape into a canonical
// YYYY-MM-DD string. Rules are tried in order; the first match wins.
type shapeRule struct {
	name  string
	re    *regexp.Regexp
	canon func(m []string, ref time.Time) string
}

var shapeRules = []shapeRule{
	{
		name: "era",
		re:   regexp.MustCompile(`(令和|平成|昭和|大正|明治)(元|\d{1,2})年\s*(\d{1,2})月\s*(\d{1,2})日`),
		canon: func(m []string, _ time.Time) string {
			year := 1
			if m[2] != "元" {
				year, _ = strconv.Atoi(m[2])
			}
			return canonDate(eraStartOffsets[m[1]]+year, atoi(m[3]), atoi(m[4]))
		},
	},
	{
		name: "gregorian-kanji",
		re:   regexp.MustCompile(`(\d{4})年\s*(\d{1,2})月\s*(\d{1,2})日`),
		canon: func(m []string, _ time.Time) string {
			return canonDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
		},
	},
	{
		// Anchored: bare numeric dates are rewritten only when they are the
		// whole input. Full timestamps (RFC3339 feed dates and the like) fall
		// through to the general parser with their time and offset intact.
		name: "gregorian-numeric",
		re:   regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`),
		canon: func(m []string, _ time.Time) string {
			return canonDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
		},
	},
	{
		name: "monthday-kanji",
		re:   regexp.MustCompile(`(\d{1,2})月\s*(\d{1,2})日`),
		canon: func(m []string, ref time.Time) string {
			month, day := atoi(m[1]), atoi(m[2])
			return canonDate(yearForMonth(month, ref), month, day)
		},
	},
	{
		name: "monthday-numeric",
		re:   regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`),
		canon: func(m []string, ref time.Time) string {
			month, day := atoi(m[1]), atoi(m[2])
			return canonDate(yearForMonth(month, ref), month, day)
		},
	},
}

// Normalize resolves raw date text into an instant in JST. ref supplies the
// year for year-less shapes. Instants without an explicit offset are treated
// as UTC before conversion; sources that mean JST midnight therefore come out
// as 09:00 JST, which still lands on the intended calendar day.
func Normalize(raw string, ref time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnparseable)
	}

	for _, rule := range shapeRules {
		if m := rule.re.FindStringSubmatch(s); m != nil {
			s = rule.canon(m, ref)
			break
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}
	return t.In(JST), nil
}

// yearForMonth resolves the year for a year-less date: the reference year,
// rolled back by one when the month is ahead of the reference month (a
// December item seen in January belongs to the previous year).
func yearForMonth(month int, ref time.Time) int {
	r := ref.In(JST)
	if month > int(r.Month()) {
		return r.Year() - 1
	}
	return r.Year()
}

func canonDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
