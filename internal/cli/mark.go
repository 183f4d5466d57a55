package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/models"
)

type MarkCmd struct {
	Item  string   `arg:"" help:"Item name or ID."`
	Date  string   `short:"d" help:"Date to mark (YYYY-MM-DD, 'today', 'yesterday')." default:"today"`
	Note  string   `short:"n" help:"Attach a note."`
	Value *float64 `short:"v" help:"Numeric value for value items."`
	Image string   `help:"Path or URL of an attached image."`
}

func (c *MarkCmd) Run(ctx *Context) error {
	item, err := ctx.resolveItem(c.Item)
	if err != nil {
		return err
	}

	day, err := parseDayFlag(c.Date)
	if err != nil {
		return err
	}

	// Marks in the future make streaks and rates lie.
	today := time.Now()
	if d, _ := time.Parse(constants.DayFormat, day); d.After(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)) {
		return fmt.Errorf("cannot mark a future date: %s", day)
	}

	if item.RecordKind == constants.RecordValue && c.Value == nil {
		return fmt.Errorf("item %q records a value, pass one with --value", item.Name)
	}
	if item.RecordKind != constants.RecordValue && c.Value != nil {
		return fmt.Errorf("item %q does not record values", item.Name)
	}

	record := models.Record{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Day:       day,
		Note:      c.Note,
		Value:     c.Value,
		Image:     c.Image,
		CreatedAt: time.Now().UTC(),
	}

	if err := ctx.Store.SaveRecord(record); err != nil {
		return err
	}

	if c.Value != nil {
		fmt.Printf("Marked %s on %s: %g %s\n", item.Name, day, *c.Value, item.Unit)
	} else {
		fmt.Printf("Marked %s on %s\n", item.Name, day)
	}
	return nil
}

type UnmarkCmd struct {
	Item string `arg:"" help:"Item name or ID."`
	Date string `short:"d" help:"Date to unmark (YYYY-MM-DD, 'today', 'yesterday')." default:"today"`
}

func (c *UnmarkCmd) Run(ctx *Context) error {
	item, err := ctx.resolveItem(c.Item)
	if err != nil {
		return err
	}

	day, err := parseDayFlag(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteRecord(item.ID, day); err != nil {
		return err
	}

	fmt.Printf("Unmarked %s on %s\n", item.Name, day)
	return nil
}
