package dateutil

import (
	"testing"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
)

func TestParseFlexible_AcceptedLayouts(t *testing.T) {
	cases := map[string]string{
		"2024-03-15":                     "2024-03-15",
		"2024-03-15T08:30:00Z":           "2024-03-15",
		"2024-03-15T08:30:00.123456Z":    "2024-03-15",
		"2024-03-15T08:30:00":            "2024-03-15",
		"2024-03-15 08:30:00":            "2024-03-15",
		"2024-03-15 08:30:00.123456":     "2024-03-15",
		"2024-03-15T08:30:00.123+08:00":  "2024-03-15",
		"2024-03-15T99:99:99 downstream": "2024-03-15", // ten-char prefix fallback
	}

	for input, want := range cases {
		parsed, err := ParseFlexible(input)
		if err != nil {
			t.Errorf("ParseFlexible(%q) failed: %v", input, err)
			continue
		}
		if got := FormatDay(parsed); got != want {
			t.Errorf("ParseFlexible(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestParseFlexible_RejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not a date", "15/03/2024", "2024-3-5"} {
		if _, err := ParseFlexible(input); err == nil {
			t.Errorf("ParseFlexible(%q) should fail", input)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 1, 4, 0, 1, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 3 {
		t.Errorf("DaysBetween = %d, want 3 (clock times must not matter)", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Errorf("reversed DaysBetween = %d, want -3", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("same-day DaysBetween = %d, want 0", got)
	}
}

func TestWindow_WeekStartsMonday(t *testing.T) {
	// 2024-01-10 is a Wednesday; its week started Monday 2024-01-08.
	today := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	start, end := Window(constants.PeriodWeek, today)

	if got := FormatDay(start); got != "2024-01-08" {
		t.Errorf("week start = %s, want 2024-01-08", got)
	}
	if got := FormatDay(end); got != "2024-01-10" {
		t.Errorf("week end = %s, want 2024-01-10 (today)", got)
	}
}

func TestWindow_SundayBelongsToPreviousMonday(t *testing.T) {
	// 2024-01-14 is a Sunday; the week started Monday 2024-01-08, not the 15th.
	today := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	start, _ := Window(constants.PeriodWeek, today)

	if got := FormatDay(start); got != "2024-01-08" {
		t.Errorf("Sunday week start = %s, want 2024-01-08", got)
	}
}

func TestWindow_MonthAndYear(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	start, end := Window(constants.PeriodMonth, today)
	if FormatDay(start) != "2024-03-01" || FormatDay(end) != "2024-03-15" {
		t.Errorf("month window = %s..%s, want 2024-03-01..2024-03-15", FormatDay(start), FormatDay(end))
	}

	start, end = Window(constants.PeriodYear, today)
	if FormatDay(start) != "2024-01-01" || FormatDay(end) != "2024-03-15" {
		t.Errorf("year window = %s..%s, want 2024-01-01..2024-03-15", FormatDay(start), FormatDay(end))
	}
}

func TestEachDay_InclusiveBounds(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var days []string
	EachDay(start, end, func(d time.Time) { days = append(days, FormatDay(d)) })

	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"} // leap year
	if len(days) != len(want) {
		t.Fatalf("EachDay produced %d days, want %d", len(days), len(want))
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, days[i], want[i])
		}
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC))
	if FormatDay(first) != "2024-02-01" || FormatDay(last) != "2024-02-29" {
		t.Errorf("February 2024 bounds = %s..%s, want 2024-02-01..2024-02-29", FormatDay(first), FormatDay(last))
	}
}
