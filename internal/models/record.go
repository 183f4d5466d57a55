package models

import (
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
)

// Record represents a single day's check-in for an item. At most one record
// exists per (item, day); Day uses YYYY-MM-DD format.
type Record struct {
	ID        string     `json:"id"`
	ItemID    string     `json:"item_id"`
	Day       string     `json:"day"`
	Note      string     `json:"note,omitempty"`
	Value     *float64   `json:"value,omitempty"`
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// DayStatus is the derived classification of one calendar day for one item.
// It is computed, never stored.
type DayStatus struct {
	Day    string             `json:"day"`
	ItemID string             `json:"item_id"`
	Class  constants.DayClass `json:"class"`
	Due    bool               `json:"due"` // rule verdict; always false before creation
	Record *Record            `json:"record,omitempty"`
}
