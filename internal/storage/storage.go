package storage

import (
	"strings"

	"github.com/xujingshi/LifeTrack/internal/constants"
)

// Settings holds per-database application preferences
type Settings struct {
	DefaultPeriod string `json:"default_period"`
	NotifyTime    string `json:"notify_time"`
	OwnerID       string `json:"owner_id"`
}

// DefaultSettings returns the settings written by a fresh init
func DefaultSettings() Settings {
	return Settings{
		DefaultPeriod: string(constants.PeriodWeek),
		NotifyTime:    "20:00",
	}
}

// NewProvider selects a storage backend from a connection string or path.
// Postgres URLs get the Postgres store, a .json path gets the JSON store, and
// everything else is treated as a SQLite database path.
//
// Concurrency note: providers are not safe for concurrent use by multiple
// goroutines without external synchronization, and running multiple processes
// against the same SQLite or JSON path is not supported.
func NewProvider(conn string) Provider {
	switch {
	case strings.HasPrefix(conn, "postgres://"), strings.HasPrefix(conn, "postgresql://"):
		return NewPostgresStore(conn)
	case strings.HasSuffix(conn, ".json"):
		return NewJSONStore(conn)
	default:
		return NewSQLiteStore(conn)
	}
}
