package timeline

import (
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/rule"
)

// Build produces one DayStatus per date from start through end inclusive for a
// single item. Classification per date, in precedence order: before-creation,
// future (relative to today), completed (a record's presence always wins, even
// on a date the rule does not require), missed (due with no record), not-due.
// The transform is pure and stateless; identical inputs yield identical output.
func Build(item models.Item, records []models.Record, start, end, today time.Time) []models.DayStatus {
	byDay := IndexRecords(records)
	created := dateutil.Day(item.CreatedAt)
	todayDay := dateutil.Day(today)

	var statuses []models.DayStatus
	dateutil.EachDay(start, end, func(d time.Time) {
		statuses = append(statuses, classify(item, byDay, created, todayDay, d))
	})
	return statuses
}

// IndexRecords maps records by day, defensively deduplicating to one per date.
// When duplicates exist the most recently created record wins.
func IndexRecords(records []models.Record) map[string]models.Record {
	byDay := make(map[string]models.Record, len(records))
	for _, r := range records {
		if prev, ok := byDay[r.Day]; ok && prev.CreatedAt.After(r.CreatedAt) {
			continue
		}
		byDay[r.Day] = r
	}
	return byDay
}

func classify(item models.Item, byDay map[string]models.Record, created, today, d time.Time) models.DayStatus {
	status := models.DayStatus{
		Day:    dateutil.FormatDay(d),
		ItemID: item.ID,
	}

	if !d.Before(created) {
		status.Due = rule.IsDue(item.Rule, created, d)
	}

	switch {
	case d.Before(created):
		status.Class = constants.DayBeforeCreation
	case d.After(today):
		status.Class = constants.DayFuture
	default:
		if rec, ok := byDay[status.Day]; ok {
			status.Class = constants.DayCompleted
			status.Record = &rec
		} else if status.Due {
			status.Class = constants.DayMissed
		} else {
			status.Class = constants.DayNotDue
		}
	}

	return status
}
