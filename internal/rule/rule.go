package rule

import (
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
)

// IsDue reports whether an item with the given rule, created on created, is due
// on date. The contract assumes date >= created; callers classify earlier dates
// as before-creation without consulting the rule. The function is pure and
// total: malformed parameters degrade to a documented fallback instead of
// failing.
func IsDue(r models.Rule, created, date time.Time) bool {
	switch r.Kind {
	case constants.RuleDaily:
		return true
	case constants.RuleWeekday:
		wd := date.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case constants.RuleWeekend:
		wd := date.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case constants.RuleCustom:
		// An empty weekday set behaves as daily. The stored rule is accepted
		// as-is; construction-time validation normally prevents this state.
		if len(r.Weekdays) == 0 {
			return true
		}
		for _, wd := range r.Weekdays {
			if date.Weekday() == wd {
				return true
			}
		}
		return false
	case constants.RuleInterval:
		n := r.IntervalDays
		if n < 1 {
			n = 1 // clamp rather than divide by zero
		}
		since := dateutil.DaysBetween(created, date)
		return since >= 0 && since%n == 0
	case constants.RuleFree:
		return false
	default:
		return false
	}
}
