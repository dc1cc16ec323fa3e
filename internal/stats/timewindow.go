package stats

import (
	"strings"
	"time"
)

// The week and month windows start at 00:01, not midnight. The one minute
// buffer around the boundary is a long-standing behavior of the tracker and
// the weekly goal counting depends on it, so it stays.

// WeekStart returns the most recent Monday at 00:01:00 relative to now.
// If now is a Monday, that same day is returned.
func WeekStart(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := now.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 1, 0, 0, now.Location())
}

// WeekEnd returns the Sunday of now's week, at 23:59:59.999.
func WeekEnd(now time.Time) time.Time {
	sunday := WeekStart(now).AddDate(0, 0, 6)
	return endOfDay(sunday)
}

// MonthStart returns the first day of now's month at 00:01:00.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 1, 0, 0, now.Location())
}

// MonthEnd returns the last day of now's month at 23:59:59.999.
func MonthEnd(now time.Time) time.Time {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return endOfDay(firstOfNext.AddDate(0, 0, -1))
}

func endOfDay(day time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		23, 59, 59, int(999*time.Millisecond),
		day.Location(),
	)
}

// looseLayouts are the timestamp formats seen across the backend versions,
// tried in order. Fractional seconds are cut to milliseconds beforehand.
var looseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999Z07:00",
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

// ParseLooseDate parses the inconsistently formatted date strings the backend
// returns: either a bare YYYY-MM-DD date, read as local midnight, or a full
// timestamp in one of the known historical formats. It never fails hard,
// unparseable input just yields ok=false and the caller skips the record.
func ParseLooseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if len(raw) == len("2006-01-02") {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	raw = truncateSubMillis(raw)
	for _, layout := range looseLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// truncateSubMillis cuts the fractional seconds part of a timestamp string
// down to at most 3 digits, leaving any timezone suffix in place.
func truncateSubMillis(raw string) string {
	dot := strings.IndexByte(raw, '.')
	if dot == -1 {
		return raw
	}

	end := dot + 1
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}

	frac := raw[dot+1 : end]
	if frac == "" {
		return raw[:dot] + raw[end:]
	}
	if len(frac) > 3 {
		frac = frac[:3]
	}
	return raw[:dot+1] + frac + raw[end:]
}
