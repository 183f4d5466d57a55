package timeline

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

func record(itemID, d string) models.Record {
	return models.Record{ID: "rec-" + d, ItemID: itemID, Day: d, CreatedAt: day(d)}
}

func classByDay(statuses []models.DayStatus) map[string]constants.DayClass {
	m := make(map[string]constants.DayClass, len(statuses))
	for _, s := range statuses {
		m[s.Day] = s.Class
	}
	return m
}

func TestBuild_ClassificationPrecedence(t *testing.T) {
	item := models.Item{
		ID:        "item-1",
		Name:      "Morning run",
		Rule:      models.Rule{Kind: constants.RuleDaily},
		CreatedAt: day("2024-01-03"),
	}
	records := []models.Record{
		record("item-1", "2024-01-04"),
	}
	today := day("2024-01-06")

	statuses := Build(item, records, day("2024-01-01"), day("2024-01-08"), today)
	if len(statuses) != 8 {
		t.Fatalf("expected 8 statuses, got %d", len(statuses))
	}

	want := map[string]constants.DayClass{
		"2024-01-01": constants.DayBeforeCreation,
		"2024-01-02": constants.DayBeforeCreation,
		"2024-01-03": constants.DayMissed,
		"2024-01-04": constants.DayCompleted,
		"2024-01-05": constants.DayMissed,
		"2024-01-06": constants.DayMissed, // today itself is classified, not future
		"2024-01-07": constants.DayFuture,
		"2024-01-08": constants.DayFuture,
	}
	got := classByDay(statuses)
	for d, class := range want {
		if got[d] != class {
			t.Errorf("%s: got %s, want %s", d, got[d], class)
		}
	}
}

func TestBuild_RecordWinsOnNotDueDay(t *testing.T) {
	// Weekday item checked in on a Saturday: the day reads completed, not
	// not-due, but the rule verdict still says it was not required.
	item := models.Item{
		ID:        "item-1",
		Rule:      models.Rule{Kind: constants.RuleWeekday},
		CreatedAt: day("2024-01-01"), // Monday
	}
	records := []models.Record{record("item-1", "2024-01-06")} // Saturday

	statuses := Build(item, records, day("2024-01-06"), day("2024-01-07"), day("2024-01-07"))

	sat := statuses[0]
	if sat.Class != constants.DayCompleted {
		t.Errorf("Saturday with record: got %s, want %s", sat.Class, constants.DayCompleted)
	}
	if sat.Due {
		t.Errorf("Saturday should not be due for a weekday rule")
	}
	if sat.Record == nil {
		t.Errorf("completed status should carry its record")
	}

	sun := statuses[1]
	if sun.Class != constants.DayNotDue {
		t.Errorf("Sunday without record: got %s, want %s", sun.Class, constants.DayNotDue)
	}
}

func TestBuild_FutureWinsOverRecord(t *testing.T) {
	item := models.Item{
		ID:        "item-1",
		Rule:      models.Rule{Kind: constants.RuleDaily},
		CreatedAt: day("2024-01-01"),
	}
	// A record logged on a date after today. Future outranks completed.
	records := []models.Record{record("item-1", "2024-01-05")}

	statuses := Build(item, records, day("2024-01-05"), day("2024-01-05"), day("2024-01-03"))
	if statuses[0].Class != constants.DayFuture {
		t.Errorf("future day with record: got %s, want %s", statuses[0].Class, constants.DayFuture)
	}
}

func TestBuild_FreeItemNeverMissed(t *testing.T) {
	item := models.Item{
		ID:        "item-1",
		Rule:      models.Rule{Kind: constants.RuleFree},
		CreatedAt: day("2024-01-01"),
	}
	records := []models.Record{record("item-1", "2024-01-02")}

	statuses := Build(item, records, day("2024-01-01"), day("2024-01-03"), day("2024-01-03"))
	got := classByDay(statuses)

	if got["2024-01-01"] != constants.DayNotDue || got["2024-01-03"] != constants.DayNotDue {
		t.Errorf("free item empty days should be not-due, got %s and %s", got["2024-01-01"], got["2024-01-03"])
	}
	if got["2024-01-02"] != constants.DayCompleted {
		t.Errorf("free item with record should be completed, got %s", got["2024-01-02"])
	}
}

func TestIndexRecords_LatestCreatedWins(t *testing.T) {
	older := models.Record{ID: "rec-a", ItemID: "item-1", Day: "2024-01-02", Note: "first", CreatedAt: day("2024-01-02")}
	newer := models.Record{ID: "rec-b", ItemID: "item-1", Day: "2024-01-02", Note: "second", CreatedAt: day("2024-01-03")}

	byDay := IndexRecords([]models.Record{newer, older})
	if len(byDay) != 1 {
		t.Fatalf("expected 1 indexed record, got %d", len(byDay))
	}
	if byDay["2024-01-02"].ID != "rec-b" {
		t.Errorf("expected most recently created record to win, got %s", byDay["2024-01-02"].ID)
	}
}

func TestBuild_IsPure(t *testing.T) {
	item := models.Item{
		ID:        "item-1",
		Rule:      models.Rule{Kind: constants.RuleInterval, IntervalDays: 2},
		CreatedAt: day("2024-01-01"),
	}
	records := []models.Record{record("item-1", "2024-01-03")}

	first := Build(item, records, day("2024-01-01"), day("2024-01-05"), day("2024-01-05"))
	second := Build(item, records, day("2024-01-01"), day("2024-01-05"), day("2024-01-05"))

	if len(first) != len(second) {
		t.Fatalf("repeated builds differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Class != second[i].Class || first[i].Due != second[i].Due {
			t.Errorf("repeated builds differ at %s", first[i].Day)
		}
	}
}
