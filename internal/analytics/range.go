package analytics

import (
	"strings"
	"time"
)

// Range selects the appointments an analytics view covers.
type Range string

const (
	Today     Range = "Today"
	ThisWeek  Range = "This Week"
	ThisMonth Range = "This Month"
	ThisYear  Range = "This Year"
	All       Range = "All"
)

// ParseRange accepts the range labels case-insensitively. Anything else,
// including an empty value, selects All.
func ParseRange(s string) Range {
	for _, r := range []Range{Today, ThisWeek, ThisMonth, ThisYear} {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r
		}
	}
	return All
}

// Contains reports whether t falls into the range around now. Weeks start on
// Sunday; all comparisons use now's location.
func (r Range) Contains(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	t = t.In(now.Location())
	switch r {
	case Today:
		return sameDay(t, now)
	case ThisWeek:
		start := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		end := start.AddDate(0, 0, 7)
		return !t.Before(start) && t.Before(end)
	case ThisMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case ThisYear:
		return t.Year() == now.Year()
	default:
		return true
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
