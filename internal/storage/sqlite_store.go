package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/dateutil"
	"github.com/xujingshi/LifeTrack/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL DEFAULT '',
	name           TEXT NOT NULL,
	rule_kind      TEXT NOT NULL,
	rule_weekdays  TEXT NOT NULL DEFAULT '[]',
	rule_interval  INTEGER NOT NULL DEFAULT 0,
	record_kind    TEXT NOT NULL,
	unit           TEXT NOT NULL DEFAULT '',
	scheduled_time TEXT NOT NULL DEFAULT '',
	icon           TEXT NOT NULL DEFAULT '',
	color          TEXT NOT NULL DEFAULT '',
	active         INTEGER NOT NULL DEFAULT 1,
	created_at     TEXT NOT NULL,
	deleted_at     TEXT
);

CREATE TABLE IF NOT EXISTS records (
	id         TEXT PRIMARY KEY,
	item_id    TEXT NOT NULL REFERENCES items(id),
	day        TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	value      REAL,
	image      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	deleted_at TEXT,
	UNIQUE(item_id, day)
);

CREATE INDEX IF NOT EXISTS idx_records_day ON records(day);
CREATE INDEX IF NOT EXISTS idx_records_item ON records(item_id);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Older databases may predate an index or column; re-running the schema is
	// idempotent and fills the gap.
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "default_period":
			settings.DefaultPeriod = value
		case "notify_time":
			settings.NotifyTime = value
		case "owner_id":
			settings.OwnerID = value
		}
		count++
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("default_period", settings.DefaultPeriod); err != nil {
		return err
	}
	if _, err := stmt.Exec("notify_time", settings.NotifyTime); err != nil {
		return err
	}
	if _, err := stmt.Exec("owner_id", settings.OwnerID); err != nil {
		return err
	}

	return tx.Commit()
}

const itemColumns = `id, owner_id, name, rule_kind, rule_weekdays, rule_interval,
	       record_kind, unit, scheduled_time, icon, color, active, created_at, deleted_at`

func (s *SQLiteStore) AddItem(item models.Item) error {
	return s.UpdateItem(item)
}

func (s *SQLiteStore) GetItem(id string) (models.Item, error) {
	row := s.db.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE id = ? AND deleted_at IS NULL", id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, fmt.Errorf("item with id %s not found", id)
	}
	return item, err
}

func (s *SQLiteStore) GetItemByName(name string) (models.Item, error) {
	row := s.db.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE name = ? AND deleted_at IS NULL", name)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, fmt.Errorf("item %q not found", name)
	}
	return item, err
}

func (s *SQLiteStore) GetAllItems(includeInactive bool) ([]models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE deleted_at IS NULL"
	if !includeInactive {
		query += " AND active = 1"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) UpdateItem(item models.Item) error {
	weekdaysJSON, err := json.Marshal(weekdayInts(item.Rule.Weekdays))
	if err != nil {
		return fmt.Errorf("failed to marshal rule weekdays: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO items (
			id, owner_id, name, rule_kind, rule_weekdays, rule_interval,
			record_kind, unit, scheduled_time, icon, color, active, created_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.Name, string(item.Rule.Kind), string(weekdaysJSON), item.Rule.IntervalDays,
		string(item.RecordKind), item.Unit, item.ScheduledTime, item.Icon, item.Color, item.Active,
		item.CreatedAt.UTC().Format(time.RFC3339), formatDeletedAt(item.DeletedAt),
	)
	return err
}

func (s *SQLiteStore) DeleteItem(id string) error {
	// Soft delete: set deleted_at timestamp instead of removing the row
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM items WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("item with id %s not found", id)
		}
		return fmt.Errorf("failed to check item existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("item with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE items SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *SQLiteStore) RestoreItem(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM items WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("item with id %s not found", id)
		}
		return fmt.Errorf("failed to check item existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("item with id %s is not deleted", id)
	}

	_, err = s.db.Exec("UPDATE items SET deleted_at = NULL WHERE id = ?", id)
	return err
}

const recordColumns = "id, item_id, day, note, value, image, created_at, deleted_at"

func (s *SQLiteStore) SaveRecord(record models.Record) error {
	// OR REPLACE also resolves the UNIQUE(item_id, day) conflict, so writing a
	// record for an already checked-in day overwrites the earlier one.
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO records (id, item_id, day, note, value, image, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.ItemID, record.Day, record.Note, record.Value, record.Image,
		record.CreatedAt.UTC().Format(time.RFC3339), formatDeletedAt(record.DeletedAt),
	)
	return err
}

func (s *SQLiteStore) GetRecord(itemID, day string) (models.Record, error) {
	row := s.db.QueryRow(
		"SELECT "+recordColumns+" FROM records WHERE item_id = ? AND day = ? AND deleted_at IS NULL",
		itemID, day)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return models.Record{}, fmt.Errorf("no record for item %s on %s", itemID, day)
	}
	return record, err
}

func (s *SQLiteStore) GetRecordsForDay(day string) ([]models.Record, error) {
	return s.queryRecords(
		"SELECT "+recordColumns+" FROM records WHERE day = ? AND deleted_at IS NULL ORDER BY item_id", day)
}

func (s *SQLiteStore) GetRecordsForItem(itemID string) ([]models.Record, error) {
	return s.queryRecords(
		"SELECT "+recordColumns+" FROM records WHERE item_id = ? AND deleted_at IS NULL ORDER BY day", itemID)
}

func (s *SQLiteStore) GetAllRecords() ([]models.Record, error) {
	return s.queryRecords(
		"SELECT " + recordColumns + " FROM records WHERE deleted_at IS NULL ORDER BY day, item_id")
}

func (s *SQLiteStore) DeleteRecord(itemID, day string) error {
	res, err := s.db.Exec(
		"UPDATE records SET deleted_at = ? WHERE item_id = ? AND day = ? AND deleted_at IS NULL",
		time.Now().UTC().Format(time.RFC3339), itemID, day)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no record for item %s on %s", itemID, day)
	}
	return nil
}

func (s *SQLiteStore) queryRecords(query string, args ...interface{}) ([]models.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// GetConfigPath returns the path to the underlying database file
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item
	var ruleKind, recordKind, weekdaysJSON, createdAt string
	var deletedAt sql.NullString

	err := row.Scan(
		&item.ID, &item.OwnerID, &item.Name, &ruleKind, &weekdaysJSON, &item.Rule.IntervalDays,
		&recordKind, &item.Unit, &item.ScheduledTime, &item.Icon, &item.Color, &item.Active,
		&createdAt, &deletedAt,
	)
	if err != nil {
		return models.Item{}, err
	}

	item.Rule.Kind = constants.RuleKind(ruleKind)
	item.RecordKind = constants.RecordKind(recordKind)

	var weekdays []int
	if err := json.Unmarshal([]byte(weekdaysJSON), &weekdays); err == nil {
		for _, w := range weekdays {
			item.Rule.Weekdays = append(item.Rule.Weekdays, time.Weekday(w))
		}
	}

	if t, err := dateutil.ParseFlexible(createdAt); err == nil {
		item.CreatedAt = t
	}
	item.DeletedAt = parseDeletedAt(deletedAt)

	return item, nil
}

func scanRecord(row rowScanner) (models.Record, error) {
	var record models.Record
	var createdAt string
	var value sql.NullFloat64
	var deletedAt sql.NullString

	err := row.Scan(
		&record.ID, &record.ItemID, &record.Day, &record.Note, &value, &record.Image,
		&createdAt, &deletedAt,
	)
	if err != nil {
		return models.Record{}, err
	}

	if value.Valid {
		v := value.Float64
		record.Value = &v
	}
	if t, err := dateutil.ParseFlexible(createdAt); err == nil {
		record.CreatedAt = t
	}
	record.DeletedAt = parseDeletedAt(deletedAt)

	return record, nil
}

func weekdayInts(weekdays []time.Weekday) []int {
	ints := make([]int, len(weekdays))
	for i, w := range weekdays {
		ints[i] = int(w)
	}
	return ints
}

func formatDeletedAt(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func parseDeletedAt(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := dateutil.ParseFlexible(v.String)
	if err != nil {
		return nil
	}
	return &t
}
