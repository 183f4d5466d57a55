package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/timeline"
	"github.com/xujingshi/LifeTrack/internal/validation"
)

type CalendarCmd struct {
	Item  string `arg:"" help:"Item name or ID."`
	Month string `short:"m" help:"Month to show (YYYY-MM)." default:""`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	item, err := ctx.resolveItem(c.Item)
	if err != nil {
		return err
	}

	month := time.Now()
	if c.Month != "" {
		month, err = time.Parse(constants.MonthFormat, c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", c.Month)
		}
	}

	records, err := ctx.Store.GetRecordsForItem(item.ID)
	if err != nil {
		return err
	}

	first, last := dateutil.MonthBounds(month)
	statuses := timeline.Build(item, records, first, last, time.Now())

	fmt.Printf("%s - %s (%s)\n\n", month.Format("January 2006"), item.Name, validation.FormatRule(item.Rule))
	fmt.Println(renderMonth(statuses, first))
	fmt.Println("x done   ! missed   . not due")
	return nil
}

// renderMonth lays one month of day statuses out as a Monday-first calendar
// grid with a single-character marker per day.
func renderMonth(statuses []models.DayStatus, first time.Time) string {
	var b strings.Builder
	b.WriteString(" Mo  Tu  We  Th  Fr  Sa  Su\n")

	// Column of the first day, Monday = 0.
	col := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("    ", col))

	for i, s := range statuses {
		b.WriteString(fmt.Sprintf("%2d%s ", i+1, statusMarker(s.Class)))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
