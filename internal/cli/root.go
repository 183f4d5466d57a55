package cli

import (
	"fmt"
	"time"

	"github.com/xujingshi/LifeTrack/internal/backup"
	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/logger"
	"github.com/xujingshi/LifeTrack/internal/models"
	"github.com/xujingshi/LifeTrack/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// resolveItem finds an item by id first, then by name
func (c *Context) resolveItem(ref string) (models.Item, error) {
	if item, err := c.Store.GetItem(ref); err == nil {
		return item, nil
	}
	return c.Store.GetItemByName(ref)
}

// recordsByItem loads all records grouped by item id
func (c *Context) recordsByItem() (map[string][]models.Record, error) {
	records, err := c.Store.GetAllRecords()
	if err != nil {
		return nil, err
	}

	byItem := make(map[string][]models.Record)
	for _, r := range records {
		byItem[r.ItemID] = append(byItem[r.ItemID], r)
	}
	return byItem, nil
}

// parseDayFlag resolves a --date flag, defaulting to today
func parseDayFlag(s string) (string, error) {
	if s == "" || s == "today" {
		return dateutil.FormatDay(time.Now()), nil
	}
	if s == "yesterday" {
		return dateutil.FormatDay(time.Now().AddDate(0, 0, -1)), nil
	}
	d, err := dateutil.ParseDay(s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return dateutil.FormatDay(d), nil
}

// parsePeriodFlag validates a reporting period flag
func parsePeriodFlag(s string) (constants.Period, error) {
	switch constants.Period(s) {
	case constants.PeriodWeek, constants.PeriodMonth, constants.PeriodYear:
		return constants.Period(s), nil
	default:
		return "", fmt.Errorf("invalid period %q (week|month|year)", s)
	}
}

// statusMarker maps a day classification to its single-character log marker
func statusMarker(class constants.DayClass) string {
	switch class {
	case constants.DayCompleted:
		return "x"
	case constants.DayMissed:
		return "!"
	case constants.DayNotDue:
		return "."
	default:
		return " "
	}
}
