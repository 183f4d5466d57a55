package cli

import (
	"fmt"
	"time"

	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/streak"
	"github.com/xujingshi/LifeTrack/internal/timeline"
)

type StreakCmd struct {
	Item string `arg:"" optional:"" help:"Item name or ID. Omit to show all items."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	var items []models.Item
	if c.Item != "" {
		item, err := ctx.resolveItem(c.Item)
		if err != nil {
			return err
		}
		items = []models.Item{item}
	} else {
		var err error
		items, err = ctx.Store.GetAllItems(false)
		if err != nil {
			return err
		}
	}
	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}

	today := time.Now()
	for _, item := range items {
		records, err := ctx.Store.GetRecordsForItem(item.ID)
		if err != nil {
			return err
		}
		current, longest := itemStreaks(item, records, today)
		fmt.Printf("  %s: %d current, %d longest\n", item.Name, current, longest)
	}

	return nil
}

// itemStreaks walks the full timeline from creation through today
func itemStreaks(item models.Item, records []models.Record, today time.Time) (current, longest int) {
	if item.IsFree() {
		days := make([]string, 0, len(records))
		for _, r := range records {
			days = append(days, r.Day)
		}
		return streak.Calendar(days, today)
	}

	statuses := timeline.Build(item, records, item.CreatedAt, today, today)
	return streak.Rule(statuses)
}
