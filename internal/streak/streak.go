package streak

import (
	"sort"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
)

// Rule derives (current, longest) streaks from a chronological status sequence
// for a rule-based item. A completed due day extends the running streak, a
// missed day resets it, and everything else is skipped: not-due days, days
// before creation, future days, and completions logged on days the rule did
// not require. Because skipped days leave the running value untouched, the
// final value after the walk is the value at the most recent counted day.
func Rule(statuses []models.DayStatus) (current, longest int) {
	run := 0
	for _, s := range statuses {
		switch s.Class {
		case constants.DayCompleted:
			if !s.Due {
				continue // opportunistic check-in on a not-due day
			}
			run++
			if run > longest {
				longest = run
			}
		case constants.DayMissed:
			run = 0
		}
	}
	return run, longest
}

// Calendar derives (current, longest) streaks from plain calendar adjacency of
// record-bearing dates. It serves free-rule items, which are never due, and
// the cross-item overall streak over days with at least one completion. A gap
// of more than one calendar day between consecutive dates resets the running
// count to 1. The current streak is the run ending at the most recent date,
// provided that date is today or yesterday; an older run has already been
// broken by the empty days since.
func Calendar(days []string, today time.Time) (current, longest int) {
	dates := parseDays(days)
	if len(dates) == 0 {
		return 0, 0
	}

	run := 1
	longest = 1
	for i := 1; i < len(dates); i++ {
		if dateutil.DaysBetween(dates[i-1], dates[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	if dateutil.DaysBetween(dates[len(dates)-1], today) > 1 {
		return 0, longest
	}
	return run, longest
}

// parseDays converts day strings to sorted, deduplicated dates, dropping any
// that fail to parse.
func parseDays(days []string) []time.Time {
	seen := make(map[string]bool, len(days))
	var dates []time.Time
	for _, day := range days {
		if seen[day] {
			continue
		}
		seen[day] = true
		if d, err := dateutil.ParseDay(day); err == nil {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
