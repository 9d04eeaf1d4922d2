// Package analytics holds the pure aggregation and classification logic of
// the dashboard: discount usage, campaign grouping, sales series. Nothing
// here performs I/O; callers fetch and pass data in.
package analytics

import (
	"fmt"
	"time"
)

// Range names a reporting window. Order endpoints use today/week/month;
// usage endpoints additionally accept day (alias of today's calendar day)
// and all.
type Range string

const (
	RangeToday Range = "today"
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// ParseRange validates a query-string time range against the allowed set.
func ParseRange(s string, allowed ...Range) (Range, error) {
	r := Range(s)
	for _, a := range allowed {
		if r == a {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid time range %q", s)
}

// Bounds returns the half-open [start, end) interval of a calendar range in
// the given location. Weeks start on Monday.
func Bounds(now time.Time, r Range, loc *time.Location) (time.Time, time.Time) {
	now = now.In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch r {
	case RangeWeek:
		offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
		start := dayStart.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default: // today / day
		return dayStart, dayStart.AddDate(0, 0, 1)
	}
}

// WindowStart returns the lower time bound of a usage window, or ok=false for
// the unbounded all range. day means the current calendar day in loc; week
// and month are rolling 7- and 30-day lookbacks.
func WindowStart(now time.Time, r Range, loc *time.Location) (time.Time, bool) {
	switch r {
	case RangeDay, RangeToday:
		d := now.In(loc)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), true
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}
