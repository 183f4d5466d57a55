package cli

import (
	"fmt"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/validation"
)

type ItemListCmd struct {
	All bool `short:"a" help:"Include paused items."`
}

func (c *ItemListCmd) Run(ctx *Context) error {
	items, err := ctx.Store.GetAllItems(c.All)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}

	fmt.Println("Items:")
	for _, item := range items {
		status := "active"
		if !item.Active {
			status = "paused"
		}

		line := fmt.Sprintf("  [%s] %s - %s", status, item.Name, validation.FormatRule(item.Rule))
		if item.RecordKind == constants.RecordValue && item.Unit != "" {
			line += fmt.Sprintf(" (%s)", item.Unit)
		}
		fmt.Println(line)

		if item.ScheduledTime != "" {
			fmt.Printf("      Scheduled: %s\n", item.ScheduledTime)
		}
	}

	return nil
}
