package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/timeline"
)

type LogCmd struct {
	Days int `short:"n" help:"Number of trailing days to show." default:"30"`
}

func (c *LogCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1")
	}

	items, err := ctx.Store.GetAllItems(false)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}

	byItem, err := ctx.recordsByItem()
	if err != nil {
		return err
	}

	today := dateutil.Day(time.Now())
	start := today.AddDate(0, 0, -(c.Days - 1))

	fmt.Print(renderLog(items, byItem, start, today))
	fmt.Println("\nx done   ! missed   . not due")
	return nil
}

// renderLog draws one row of day markers per item, oldest day first. The
// header marks week boundaries with the day of month on Mondays.
func renderLog(items []models.Item, byItem map[string][]models.Record, start, today time.Time) string {
	nameWidth := 0
	for _, item := range items {
		if len(item.Name) > nameWidth {
			nameWidth = len(item.Name)
		}
	}

	var b strings.Builder

	b.WriteString(strings.Repeat(" ", nameWidth+2))
	dateutil.EachDay(start, today, func(d time.Time) {
		if d.Weekday() == time.Monday {
			b.WriteString(fmt.Sprintf("%-2d", d.Day()))
		} else {
			b.WriteString("  ")
		}
	})
	b.WriteString("\n")

	for _, item := range items {
		statuses := timeline.Build(item, byItem[item.ID], start, today, today)
		b.WriteString(fmt.Sprintf("%-*s  ", nameWidth, item.Name))
		for _, s := range statuses {
			b.WriteString(statusMarker(s.Class) + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
