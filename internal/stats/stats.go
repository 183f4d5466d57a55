package stats

import (
	"sort"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/streak"
	"github.com/xujingshi/LifeTrack/internal/timeline"
)

// Overall aggregates every item of one owner over a reporting window into the
// dashboard statistics. Empty input yields a zeroed result, never an error.
// Completion rate is due-based: check-ins on days a rule did not require count
// toward totals and active days but not toward the rate's numerator, and free
// items contribute nothing to either side of the rate.
func Overall(items []models.Item, recordsByItem map[string][]models.Record, period constants.Period, today time.Time) models.OverallStats {
	result := models.OverallStats{
		Rankings: []models.ItemRanking{},
		Trend:    []models.TrendPoint{},
	}

	start, end := dateutil.Window(period, today)
	days := dateutil.DaysBetween(start, end) + 1
	if days < 1 || len(items) == 0 {
		return result
	}

	trend := make([]models.TrendPoint, days)
	dateutil.EachDay(start, end, func(d time.Time) {
		i := dateutil.DaysBetween(start, d)
		trend[i] = models.TrendPoint{Day: dateutil.FormatDay(d)}
	})

	activeDates := make(map[string]bool)
	dueSum, completedSum := 0, 0

	for _, item := range items {
		statuses := timeline.Build(item, recordsByItem[item.ID], start, end, today)

		ranking := models.ItemRanking{ItemID: item.ID, ItemName: item.Name}
		for i, s := range statuses {
			if s.Class == constants.DayCompleted {
				result.TotalCheckIns++
				activeDates[s.Day] = true
				if d, err := dateutil.ParseDay(s.Day); err == nil {
					result.WeekdayDistribution[int(d.Weekday())]++
				}
			}

			if item.IsFree() {
				// Free items rank by raw check-in count; they carry no due
				// denominator so their rate stays 0.
				if s.Class == constants.DayCompleted {
					ranking.Completed++
				}
				continue
			}

			if s.Due && (s.Class == constants.DayCompleted || s.Class == constants.DayMissed) {
				trend[i].Due++
				ranking.Total++
				dueSum++
				if s.Class == constants.DayCompleted {
					trend[i].Completed++
					ranking.Completed++
					completedSum++
				}
			}
		}

		if ranking.Total > 0 {
			ranking.Rate = float64(ranking.Completed) / float64(ranking.Total)
		}
		result.Rankings = append(result.Rankings, ranking)
	}

	result.ActiveDays = len(activeDates)
	if dueSum > 0 {
		result.CompletionRate = float64(completedSum) / float64(dueSum)
	}
	result.BestWeekday = bestWeekday(result.WeekdayDistribution)
	result.Trend = trend

	days2 := make([]string, 0, len(activeDates))
	for day := range activeDates {
		days2 = append(days2, day)
	}
	result.CurrentStreak, result.LongestStreak = streak.Calendar(days2, today)

	sortRankings(result.Rankings)
	return result
}

// Item computes the detailed statistics of a single item over a window. The
// streak pair uses the rule walk for scheduled items and calendar adjacency
// for free items; numeric items additionally get value aggregates.
func Item(item models.Item, records []models.Record, period constants.Period, today time.Time) models.ItemStats {
	result := models.ItemStats{
		Period:      string(period),
		BestWeekday: -1,
		Trend:       []models.TrendPoint{},
	}

	start, end := dateutil.Window(period, today)
	statuses := timeline.Build(item, records, start, end, today)

	var weekdays [7]int
	var completedDays []string
	for _, s := range statuses {
		point := models.TrendPoint{Day: s.Day}
		if s.Due && s.Class != constants.DayFuture {
			point.Due = 1
		}
		if s.Class == constants.DayCompleted {
			point.Completed = 1
			point.Value = recordValue(s.Record)
			completedDays = append(completedDays, s.Day)
			if d, err := dateutil.ParseDay(s.Day); err == nil {
				weekdays[int(d.Weekday())]++
			}
			if s.Due {
				result.CompletedDays++
			}
		}
		result.DueDays += point.Due
		result.Trend = append(result.Trend, point)
	}

	if result.DueDays > 0 {
		result.CompletionRate = float64(result.CompletedDays) / float64(result.DueDays)
	}
	if len(completedDays) > 0 {
		result.BestWeekday = bestWeekday(weekdays)
	}

	if item.IsFree() {
		result.CurrentStreak, result.LongestStreak = streak.Calendar(completedDays, today)
	} else {
		result.CurrentStreak, result.LongestStreak = streak.Rule(statuses)
	}

	if item.RecordKind == constants.RecordValue {
		fillValueAggregates(&result, statuses)
	}

	return result
}

// sortRankings orders rankings by completion rate descending, then completed
// count descending, then item id ascending so output is deterministic.
func sortRankings(rankings []models.ItemRanking) {
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Rate != rankings[j].Rate {
			return rankings[i].Rate > rankings[j].Rate
		}
		if rankings[i].Completed != rankings[j].Completed {
			return rankings[i].Completed > rankings[j].Completed
		}
		return rankings[i].ItemID < rankings[j].ItemID
	})
}

// bestWeekday returns the index of the busiest weekday, ties going to the
// earliest index (0 = Sunday).
func bestWeekday(distribution [7]int) int {
	best := 0
	for i := 1; i < 7; i++ {
		if distribution[i] > distribution[best] {
			best = i
		}
	}
	return best
}

func recordValue(r *models.Record) *float64 {
	if r == nil || r.Value == nil {
		return nil
	}
	v := *r.Value
	return &v
}

func fillValueAggregates(result *models.ItemStats, statuses []models.DayStatus) {
	var sum float64
	var count int
	var max, min float64

	for _, s := range statuses {
		if s.Record == nil || s.Record.Value == nil {
			continue
		}
		v := *s.Record.Value
		if count == 0 {
			max, min = v, v
		} else {
			if v > max {
				max = v
			}
			if v < min {
				min = v
			}
		}
		sum += v
		count++
	}

	if count == 0 {
		return
	}
	avg := sum / float64(count)
	result.AvgValue = &avg
	result.MaxValue = &max
	result.MinValue = &min
}
