package dateutil

import (
	"fmt"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
)

// flexibleFormats is the fixed-priority list of timestamp layouts accepted from
// external sources. Backend exports are inconsistent about fractional seconds
// and zone offsets, so every observed shape is listed before the date-only
// fallback kicks in.
var flexibleFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999Z07:00",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	constants.DayFormat,
}

// ParseFlexible parses a date or timestamp string trying each known layout in
// priority order. If none match, it falls back to the first ten characters as a
// plain date. Callers treat an error as "exclude this value and continue".
func ParseFlexible(s string) (time.Time, error) {
	for _, layout := range flexibleFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if len(s) > 10 {
		if t, err := time.Parse(constants.DayFormat, s[:10]); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// ParseDay parses a YYYY-MM-DD date string
func ParseDay(s string) (time.Time, error) {
	return time.Parse(constants.DayFormat, s)
}

// FormatDay formats a time as YYYY-MM-DD
func FormatDay(t time.Time) string {
	return t.Format(constants.DayFormat)
}

// Day truncates a time to its calendar date (midnight UTC). All day arithmetic
// in the engine happens on truncated dates so DST shifts cannot skew counts.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative if b
// is before a). Both inputs are truncated to their dates first.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// Window returns the calendar-aligned reporting window for a period ending at
// today: the week starts on Monday, the month on the 1st, the year on Jan 1.
// The end of every window is today itself.
func Window(period constants.Period, today time.Time) (start, end time.Time) {
	d := Day(today)

	switch period {
	case constants.PeriodWeek:
		offset := int(d.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7 // Sunday belongs to the week that started the previous Monday
		}
		start = d.AddDate(0, 0, -offset)
	case constants.PeriodMonth:
		start = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	case constants.PeriodYear:
		start = time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		start = d
	}

	return start, d
}

// EachDay calls fn for every date from start through end inclusive
func EachDay(start, end time.Time, fn func(time.Time)) {
	for d := Day(start); !d.After(Day(end)); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// MonthBounds returns the first and last day of the month containing t
func MonthBounds(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}
