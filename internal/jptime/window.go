package jptime

import "time"

// Window is a half-open interval [Start, End) of instants.
type Window struct {
	Start time.Time
	End   time.Time
}

// LastFullDay returns the most recent completed JST calendar day relative to
// now: [yesterday 00:00 JST, today 00:00 JST).
func LastFullDay(now time.Time) Window {
	t := now.In(JST)
	end := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, JST)
	return Window{Start: end.AddDate(0, 0, -1), End: end}
}

// Contains reports whether t falls inside the window. The start is included,
// the end is excluded, so adjacent daily windows never overlap.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
