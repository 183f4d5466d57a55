package cli

import (
	"fmt"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/validation"
)

type ItemEditCmd struct {
	Item  string `arg:"" help:"Item name or ID."`
	Name  string `help:"New name."`
	Rule  string `short:"r" help:"New recurrence rule."`
	Unit  string `short:"u" help:"New unit for value items."`
	Time  string `short:"t" help:"New scheduled time (HH:MM), empty string clears."`
	Icon  string `help:"New display icon."`
	Color string `help:"New display color (hex)."`
	Pause bool   `help:"Pause the item."`
	Resume bool  `help:"Resume a paused item."`
}

func (c *ItemEditCmd) Validate() error {
	if c.Pause && c.Resume {
		return fmt.Errorf("cannot pause and resume at the same time")
	}
	return nil
}

func (c *ItemEditCmd) Run(ctx *Context) error {
	item, err := ctx.resolveItem(c.Item)
	if err != nil {
		return err
	}

	changed := false

	if c.Name != "" && c.Name != item.Name {
		if existing, err := ctx.Store.GetItemByName(c.Name); err == nil && existing.ID != item.ID {
			return fmt.Errorf("item %q already exists", c.Name)
		}
		item.Name = c.Name
		changed = true
	}

	if c.Rule != "" {
		// Rule changes apply retroactively: past days are reclassified under
		// the new rule the next time statistics run.
		rule, err := validation.ParseRule(c.Rule)
		if err != nil {
			return err
		}
		item.Rule = rule
		changed = true
	}

	if c.Unit != "" {
		if item.RecordKind != constants.RecordValue {
			return fmt.Errorf("unit only applies to value items")
		}
		item.Unit = c.Unit
		changed = true
	}

	if c.Time != "" {
		if _, err := time.Parse(constants.ClockFormat, c.Time); err != nil {
			return fmt.Errorf("invalid scheduled time %q, want HH:MM", c.Time)
		}
		item.ScheduledTime = c.Time
		changed = true
	}

	if c.Icon != "" {
		item.Icon = c.Icon
		changed = true
	}
	if c.Color != "" {
		item.Color = c.Color
		changed = true
	}

	if c.Pause {
		item.Active = false
		changed = true
	}
	if c.Resume {
		item.Active = true
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change")
		return nil
	}

	if err := ctx.Store.UpdateItem(item); err != nil {
		return err
	}

	fmt.Printf("Updated item: %s\n", item.Name)
	return nil
}
