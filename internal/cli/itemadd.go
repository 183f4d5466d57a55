package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/validation"
)

type ItemAddCmd struct {
	Name string `arg:"" help:"Item name."`
	Rule string `short:"r" help:"Recurrence rule (daily|weekday|weekend|free|every:N|custom:mon,wed,fri)." default:"daily"`
	Kind string `short:"k" help:"Record kind (check|note|value)." default:"check"`
	Unit string `short:"u" help:"Unit for value items (e.g. kg, km)."`
	Time string `short:"t" help:"Scheduled time of day (HH:MM)."`
	Icon string `help:"Display icon."`
	Color string `help:"Display color (hex)."`
}

func (c *ItemAddCmd) Validate() error {
	switch constants.RecordKind(c.Kind) {
	case constants.RecordCheck, constants.RecordNote, constants.RecordValue:
	default:
		return fmt.Errorf("invalid record kind %q (check|note|value)", c.Kind)
	}
	if c.Time != "" {
		if _, err := time.Parse(constants.ClockFormat, c.Time); err != nil {
			return fmt.Errorf("invalid scheduled time %q, want HH:MM", c.Time)
		}
	}
	if c.Unit != "" && constants.RecordKind(c.Kind) != constants.RecordValue {
		return fmt.Errorf("unit only applies to value items")
	}
	return nil
}

func (c *ItemAddCmd) Run(ctx *Context) error {
	rule, err := validation.ParseRule(c.Rule)
	if err != nil {
		return err
	}

	if existing, err := ctx.Store.GetItemByName(c.Name); err == nil {
		return fmt.Errorf("item %q already exists (ID: %s)", c.Name, existing.ID)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	item := models.Item{
		ID:            uuid.New().String(),
		OwnerID:       settings.OwnerID,
		Name:          c.Name,
		Rule:          rule,
		RecordKind:    constants.RecordKind(c.Kind),
		Unit:          c.Unit,
		ScheduledTime: c.Time,
		Icon:          c.Icon,
		Color:         c.Color,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}

	if err := ctx.Store.AddItem(item); err != nil {
		return err
	}

	fmt.Printf("Added item: %s (%s, ID: %s)\n", c.Name, validation.FormatRule(rule), item.ID)
	return nil
}
