package stats

import (
	"testing"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func records(itemID string, days ...string) []models.Record {
	var out []models.Record
	for _, d := range days {
		out = append(out, models.Record{ID: itemID + "-" + d, ItemID: itemID, Day: d, CreatedAt: day(d)})
	}
	return out
}

func valueRecords(itemID string, byDay map[string]float64) []models.Record {
	var out []models.Record
	for d, v := range byDay {
		val := v
		out = append(out, models.Record{ID: itemID + "-" + d, ItemID: itemID, Day: d, Value: &val, CreatedAt: day(d)})
	}
	return out
}

// weekFixture is a Monday-through-Sunday week ending Sunday 2024-01-14 with
// three items of different rule kinds.
func weekFixture() ([]models.Item, map[string][]models.Record, time.Time) {
	items := []models.Item{
		{
			ID:        "item-a",
			Name:      "Read",
			Rule:      models.Rule{Kind: constants.RuleDaily},
			CreatedAt: day("2024-01-01"),
		},
		{
			ID:        "item-b",
			Name:      "Gym",
			Rule:      models.Rule{Kind: constants.RuleWeekday},
			CreatedAt: day("2024-01-01"),
		},
		{
			ID:        "item-c",
			Name:      "Journal",
			Rule:      models.Rule{Kind: constants.RuleFree},
			CreatedAt: day("2024-01-01"),
		},
	}
	byItem := map[string][]models.Record{
		"item-a": records("item-a", "2024-01-08", "2024-01-09", "2024-01-10", "2024-01-13"),
		"item-b": records("item-b", "2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13"),
		"item-c": records("item-c", "2024-01-14"),
	}
	return items, byItem, day("2024-01-14") // Sunday
}

func TestOverall_ZeroItems(t *testing.T) {
	result := Overall(nil, nil, constants.PeriodWeek, day("2024-01-14"))

	if result.TotalCheckIns != 0 || result.ActiveDays != 0 {
		t.Errorf("zero-item counts = (%d, %d), want (0, 0)", result.TotalCheckIns, result.ActiveDays)
	}
	if result.CompletionRate != 0 {
		t.Errorf("zero-item completion rate = %f, want 0", result.CompletionRate)
	}
	if result.CurrentStreak != 0 || result.LongestStreak != 0 {
		t.Errorf("zero-item streaks = (%d, %d), want (0, 0)", result.CurrentStreak, result.LongestStreak)
	}
	if len(result.Rankings) != 0 {
		t.Errorf("zero-item rankings should be empty, got %d entries", len(result.Rankings))
	}
}

func TestOverall_Counts(t *testing.T) {
	items, byItem, today := weekFixture()
	result := Overall(items, byItem, constants.PeriodWeek, today)

	if result.TotalCheckIns != 11 {
		t.Errorf("totalCheckIns = %d, want 11", result.TotalCheckIns)
	}
	if result.ActiveDays != 7 {
		t.Errorf("activeDays = %d, want 7", result.ActiveDays)
	}

	// item-a was due all 7 days and completed 4; item-b was due the 5 weekdays
	// and completed all of them. Its Saturday check-in and everything the free
	// item did stay out of the rate.
	want := 9.0 / 12.0
	if result.CompletionRate != want {
		t.Errorf("completionRate = %f, want %f", result.CompletionRate, want)
	}
}

func TestOverall_StreakAcrossItems(t *testing.T) {
	items, byItem, today := weekFixture()
	result := Overall(items, byItem, constants.PeriodWeek, today)

	// Every day Mon..Sun has at least one check-in from some item.
	if result.CurrentStreak != 7 || result.LongestStreak != 7 {
		t.Errorf("overall streaks = (%d, %d), want (7, 7)", result.CurrentStreak, result.LongestStreak)
	}
}

func TestOverall_WeekdayDistributionAndTieBreak(t *testing.T) {
	items, byItem, today := weekFixture()
	result := Overall(items, byItem, constants.PeriodWeek, today)

	// Index 0 is Sunday. Mon/Tue/Wed/Sat each saw two check-ins, so the tie
	// goes to the lowest index, Monday.
	want := [7]int{1, 2, 2, 2, 1, 1, 2}
	if result.WeekdayDistribution != want {
		t.Errorf("weekdayDistribution = %v, want %v", result.WeekdayDistribution, want)
	}
	if result.BestWeekday != int(time.Monday) {
		t.Errorf("bestWeekday = %d, want %d (Monday)", result.BestWeekday, int(time.Monday))
	}
}

func TestOverall_BestWeekdayFriday(t *testing.T) {
	items := []models.Item{{
		ID:        "item-a",
		Name:      "Review",
		Rule:      models.Rule{Kind: constants.RuleDaily},
		CreatedAt: day("2024-01-01"),
	}}
	byItem := map[string][]models.Record{
		"item-a": records("item-a", "2024-01-05", "2024-01-12"), // both Fridays
	}

	result := Overall(items, byItem, constants.PeriodMonth, day("2024-01-14"))
	if result.BestWeekday != int(time.Friday) {
		t.Errorf("bestWeekday = %d, want %d (Friday)", result.BestWeekday, int(time.Friday))
	}
}

func TestOverall_RankingOrder(t *testing.T) {
	items, byItem, today := weekFixture()
	result := Overall(items, byItem, constants.PeriodWeek, today)

	if len(result.Rankings) != 3 {
		t.Fatalf("expected 3 rankings, got %d", len(result.Rankings))
	}

	// item-b is perfect (5/5), item-a is 4/7, and the free item-c carries no
	// due denominator so it ranks last at rate 0.
	wantOrder := []string{"item-b", "item-a", "item-c"}
	for i, id := range wantOrder {
		if result.Rankings[i].ItemID != id {
			t.Errorf("ranking[%d] = %s, want %s", i, result.Rankings[i].ItemID, id)
		}
	}

	free := result.Rankings[2]
	if free.Total != 0 || free.Rate != 0 || free.Completed != 1 {
		t.Errorf("free ranking = {total %d, rate %f, completed %d}, want {0, 0, 1}", free.Total, free.Rate, free.Completed)
	}
}

func TestOverall_Trend(t *testing.T) {
	items, byItem, today := weekFixture()
	result := Overall(items, byItem, constants.PeriodWeek, today)

	if len(result.Trend) != 7 {
		t.Fatalf("expected 7 trend points, got %d", len(result.Trend))
	}
	monday := result.Trend[0]
	if monday.Day != "2024-01-08" {
		t.Fatalf("trend starts at %s, want 2024-01-08", monday.Day)
	}
	if monday.Due != 2 || monday.Completed != 2 {
		t.Errorf("Monday trend = (due %d, completed %d), want (2, 2)", monday.Due, monday.Completed)
	}
	saturday := result.Trend[5]
	if saturday.Due != 1 || saturday.Completed != 1 {
		// Only the daily item was due Saturday; item-b's check-in that day
		// does not inflate either side.
		t.Errorf("Saturday trend = (due %d, completed %d), want (1, 1)", saturday.Due, saturday.Completed)
	}
}

func TestItem_WeekdayRule(t *testing.T) {
	item := models.Item{
		ID:        "item-b",
		Name:      "Gym",
		Rule:      models.Rule{Kind: constants.RuleWeekday},
		CreatedAt: day("2024-01-01"),
	}
	recs := records("item-b", "2024-01-08", "2024-01-09", "2024-01-10")

	result := Item(item, recs, constants.PeriodWeek, day("2024-01-14"))

	if result.DueDays != 5 || result.CompletedDays != 3 {
		t.Errorf("due/completed = (%d, %d), want (5, 3)", result.DueDays, result.CompletedDays)
	}
	if result.CompletionRate != 0.6 {
		t.Errorf("completionRate = %f, want 0.6", result.CompletionRate)
	}
	// Thursday and Friday were missed, so the run ending the week is broken.
	if result.CurrentStreak != 0 || result.LongestStreak != 3 {
		t.Errorf("streaks = (%d, %d), want (0, 3)", result.CurrentStreak, result.LongestStreak)
	}
	if result.BestWeekday != int(time.Monday) {
		t.Errorf("bestWeekday = %d, want %d (Monday)", result.BestWeekday, int(time.Monday))
	}
	if len(result.Trend) != 7 {
		t.Errorf("expected 7 trend points, got %d", len(result.Trend))
	}
}

func TestItem_NoCompletions(t *testing.T) {
	item := models.Item{
		ID:        "item-a",
		Rule:      models.Rule{Kind: constants.RuleDaily},
		CreatedAt: day("2024-01-01"),
	}

	result := Item(item, nil, constants.PeriodWeek, day("2024-01-14"))
	if result.BestWeekday != -1 {
		t.Errorf("bestWeekday with no completions = %d, want -1", result.BestWeekday)
	}
	if result.CompletionRate != 0 {
		t.Errorf("completionRate = %f, want 0", result.CompletionRate)
	}
}

func TestItem_FreeUsesCalendarStreak(t *testing.T) {
	item := models.Item{
		ID:        "item-c",
		Rule:      models.Rule{Kind: constants.RuleFree},
		CreatedAt: day("2024-01-01"),
	}
	recs := records("item-c", "2024-01-13", "2024-01-14")

	result := Item(item, recs, constants.PeriodWeek, day("2024-01-14"))
	if result.CurrentStreak != 2 || result.LongestStreak != 2 {
		t.Errorf("free streaks = (%d, %d), want (2, 2)", result.CurrentStreak, result.LongestStreak)
	}
	if result.DueDays != 0 || result.CompletionRate != 0 {
		t.Errorf("free item should carry no due denominator, got due %d rate %f", result.DueDays, result.CompletionRate)
	}
}

func TestItem_ValueAggregates(t *testing.T) {
	item := models.Item{
		ID:         "item-w",
		Rule:       models.Rule{Kind: constants.RuleDaily},
		RecordKind: constants.RecordValue,
		Unit:       "kg",
		CreatedAt:  day("2024-01-01"),
	}
	recs := valueRecords("item-w", map[string]float64{
		"2024-01-08": 72.5,
		"2024-01-09": 71.0,
		"2024-01-10": 73.5,
	})

	result := Item(item, recs, constants.PeriodWeek, day("2024-01-14"))
	if result.AvgValue == nil || result.MaxValue == nil || result.MinValue == nil {
		t.Fatalf("numeric item should produce value aggregates")
	}
	if *result.AvgValue != (72.5+71.0+73.5)/3 {
		t.Errorf("avg = %f, want %f", *result.AvgValue, (72.5+71.0+73.5)/3)
	}
	if *result.MaxValue != 73.5 || *result.MinValue != 71.0 {
		t.Errorf("max/min = (%f, %f), want (73.5, 71.0)", *result.MaxValue, *result.MinValue)
	}
}

func TestItem_CheckKindHasNoValueAggregates(t *testing.T) {
	item := models.Item{
		ID:        "item-a",
		Rule:      models.Rule{Kind: constants.RuleDaily},
		CreatedAt: day("2024-01-01"),
	}
	recs := records("item-a", "2024-01-08")

	result := Item(item, recs, constants.PeriodWeek, day("2024-01-14"))
	if result.AvgValue != nil || result.MaxValue != nil || result.MinValue != nil {
		t.Errorf("check item should not produce value aggregates")
	}
}
