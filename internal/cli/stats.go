package cli

import (
	"fmt"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/stats"
)

type StatsCmd struct {
	Item   string `arg:"" optional:"" help:"Item name or ID. Omit for the overall dashboard."`
	Period string `short:"p" help:"Reporting window (week|month|year)." default:"week"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	period, err := parsePeriodFlag(c.Period)
	if err != nil {
		return err
	}
	today := time.Now()

	if c.Item != "" {
		return c.runItem(ctx, period, today)
	}
	return c.runOverall(ctx, period, today)
}

func (c *StatsCmd) runOverall(ctx *Context, period constants.Period, today time.Time) error {
	items, err := ctx.Store.GetAllItems(false)
	if err != nil {
		return err
	}
	byItem, err := ctx.recordsByItem()
	if err != nil {
		return err
	}

	result := stats.Overall(items, byItem, period, today)

	fmt.Printf("Overall (%s)\n", period)
	fmt.Printf("  Check-ins:       %d\n", result.TotalCheckIns)
	fmt.Printf("  Active days:     %d\n", result.ActiveDays)
	fmt.Printf("  Completion rate: %.0f%%\n", result.CompletionRate*100)
	fmt.Printf("  Streak:          %d current, %d longest\n", result.CurrentStreak, result.LongestStreak)
	if result.TotalCheckIns > 0 {
		fmt.Printf("  Best weekday:    %s\n", time.Weekday(result.BestWeekday))
	}

	if len(result.Rankings) > 0 {
		fmt.Println("\nRankings:")
		for i, r := range result.Rankings {
			if r.Total > 0 {
				fmt.Printf("  %d. %s - %.0f%% (%d/%d)\n", i+1, r.ItemName, r.Rate*100, r.Completed, r.Total)
			} else {
				fmt.Printf("  %d. %s - %d check-ins\n", i+1, r.ItemName, r.Completed)
			}
		}
	}

	return nil
}

func (c *StatsCmd) runItem(ctx *Context, period constants.Period, today time.Time) error {
	item, err := ctx.resolveItem(c.Item)
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetRecordsForItem(item.ID)
	if err != nil {
		return err
	}

	result := stats.Item(item, records, period, today)

	fmt.Printf("%s (%s)\n", item.Name, period)
	fmt.Printf("  Due days:        %d\n", result.DueDays)
	fmt.Printf("  Completed:       %d\n", result.CompletedDays)
	fmt.Printf("  Completion rate: %.0f%%\n", result.CompletionRate*100)
	fmt.Printf("  Streak:          %d current, %d longest\n", result.CurrentStreak, result.LongestStreak)
	if result.BestWeekday >= 0 {
		fmt.Printf("  Best weekday:    %s\n", time.Weekday(result.BestWeekday))
	}
	if result.AvgValue != nil {
		unit := item.Unit
		fmt.Printf("  Values:          avg %.1f %s, max %.1f, min %.1f\n", *result.AvgValue, unit, *result.MaxValue, *result.MinValue)
	}

	return nil
}
