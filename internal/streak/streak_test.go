package streak

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

// status builds a DayStatus shorthand for streak walks. Due mirrors what the
// timeline would have set for the class unless overridden by the caller.
func status(d string, class constants.DayClass, due bool) models.DayStatus {
	return models.DayStatus{Day: d, Class: class, Due: due}
}

func TestRule_MissResetsRun(t *testing.T) {
	statuses := []models.DayStatus{
		status("2024-01-01", constants.DayCompleted, true),
		status("2024-01-02", constants.DayCompleted, true),
		status("2024-01-03", constants.DayMissed, true),
		status("2024-01-04", constants.DayCompleted, true),
	}

	current, longest := Rule(statuses)
	if current != 1 {
		t.Errorf("current = %d, want 1", current)
	}
	if longest != 2 {
		t.Errorf("longest = %d, want 2", longest)
	}
}

func TestRule_NotDueDaysAreTransparent(t *testing.T) {
	// Weekday item over a weekend: Friday and Monday completions bridge the
	// not-due Saturday and Sunday into one run.
	statuses := []models.DayStatus{
		status("2024-01-05", constants.DayCompleted, true), // Friday
		status("2024-01-06", constants.DayNotDue, false),
		status("2024-01-07", constants.DayNotDue, false),
		status("2024-01-08", constants.DayCompleted, true), // Monday
	}

	current, longest := Rule(statuses)
	if current != 2 || longest != 2 {
		t.Errorf("got (%d, %d), want (2, 2)", current, longest)
	}
}

func TestRule_OpportunisticCheckInDoesNotExtend(t *testing.T) {
	// A completion on a not-due Saturday is recorded but does not grow the
	// streak; it must not reset it either.
	statuses := []models.DayStatus{
		status("2024-01-05", constants.DayCompleted, true),  // Friday
		status("2024-01-06", constants.DayCompleted, false), // Saturday, not due
		status("2024-01-08", constants.DayCompleted, true),  // Monday
	}

	current, longest := Rule(statuses)
	if current != 2 || longest != 2 {
		t.Errorf("got (%d, %d), want (2, 2)", current, longest)
	}
}

func TestRule_BoundaryClassesAreSkipped(t *testing.T) {
	statuses := []models.DayStatus{
		status("2024-01-01", constants.DayBeforeCreation, false),
		status("2024-01-02", constants.DayCompleted, true),
		status("2024-01-03", constants.DayCompleted, true),
		status("2024-01-04", constants.DayFuture, true),
	}

	current, longest := Rule(statuses)
	if current != 2 || longest != 2 {
		t.Errorf("got (%d, %d), want (2, 2)", current, longest)
	}
}

func TestRule_Empty(t *testing.T) {
	current, longest := Rule(nil)
	if current != 0 || longest != 0 {
		t.Errorf("empty walk got (%d, %d), want (0, 0)", current, longest)
	}
}

func TestCalendar_AdjacentRuns(t *testing.T) {
	today := day("2024-01-10")
	days := []string{"2024-01-03", "2024-01-04", "2024-01-05", "2024-01-09", "2024-01-10"}

	current, longest := Calendar(days, today)
	if current != 2 {
		t.Errorf("current = %d, want 2", current)
	}
	if longest != 3 {
		t.Errorf("longest = %d, want 3", longest)
	}
}

func TestCalendar_YesterdayKeepsCurrentAlive(t *testing.T) {
	today := day("2024-01-10")

	current, _ := Calendar([]string{"2024-01-08", "2024-01-09"}, today)
	if current != 2 {
		t.Errorf("run ending yesterday should still count as current, got %d", current)
	}

	current, longest := Calendar([]string{"2024-01-07", "2024-01-08"}, today)
	if current != 0 {
		t.Errorf("run ending two days ago should be broken, got current %d", current)
	}
	if longest != 2 {
		t.Errorf("longest = %d, want 2", longest)
	}
}

func TestCalendar_UnsortedAndDuplicatedInput(t *testing.T) {
	today := day("2024-01-05")
	days := []string{"2024-01-05", "2024-01-03", "2024-01-04", "2024-01-04"}

	current, longest := Calendar(days, today)
	if current != 3 || longest != 3 {
		t.Errorf("got (%d, %d), want (3, 3)", current, longest)
	}
}

func TestCalendar_UnparseableDatesDropped(t *testing.T) {
	today := day("2024-01-02")

	current, longest := Calendar([]string{"garbage", "2024-01-02"}, today)
	if current != 1 || longest != 1 {
		t.Errorf("got (%d, %d), want (1, 1)", current, longest)
	}

	current, longest = Calendar([]string{"garbage"}, today)
	if current != 0 || longest != 0 {
		t.Errorf("all-garbage input got (%d, %d), want (0, 0)", current, longest)
	}
}
