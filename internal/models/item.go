package models

import (
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
)

// Rule is the recurrence rule attached to an item. Exactly one kind applies at a
// time; the parameter fields are only meaningful for their matching kind.
type Rule struct {
	Kind         constants.RuleKind `json:"kind"`
	Weekdays     []time.Weekday     `json:"weekdays,omitempty"`      // custom: due weekdays
	IntervalDays int                `json:"interval_days,omitempty"` // interval: every n days from creation
}

// Item represents a trackable check-in item
type Item struct {
	ID            string              `json:"id"`
	OwnerID       string              `json:"owner_id,omitempty"`
	Name          string              `json:"name"`
	Rule          Rule                `json:"rule"`
	RecordKind    constants.RecordKind `json:"record_kind"`
	Unit          string              `json:"unit,omitempty"`           // numeric items: value unit label
	ScheduledTime string              `json:"scheduled_time,omitempty"` // HH:MM, informational only
	Icon          string              `json:"icon,omitempty"`
	Color         string              `json:"color,omitempty"`
	Active        bool                `json:"active"`
	CreatedAt     time.Time           `json:"created_at"`
	DeletedAt     *time.Time          `json:"deleted_at,omitempty"`
}

// IsFree reports whether the item is logged opportunistically and never "due"
func (i Item) IsFree() bool {
	return i.Rule.Kind == constants.RuleFree
}
