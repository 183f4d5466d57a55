package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/logger"
	"github.com/xujingshi/LifeTrack/internal/models"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

const postgresSchema = `
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
	active         BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TEXT NOT NULL,
	deleted_at     TEXT
);

CREATE TABLE IF NOT EXISTS records (
	id         TEXT PRIMARY KEY,
	item_id    TEXT NOT NULL REFERENCES items(id),
	day        TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	value      DOUBLE PRECISION,
	image      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	deleted_at TEXT,
	UNIQUE(item_id, day)
);

CREATE INDEX IF NOT EXISTS idx_records_day ON records(day);
CREATE INDEX IF NOT EXISTS idx_records_item ON records(item_id);
`

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	s := &PostgresStore{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *PostgresStore) ensureSearchPath() {
	// Keep all application tables inside a dedicated schema
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		if !hasSearchPathParam(s.connStr) {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasSearchPathParam returns true if the given DSN-style connection string
// contains a search_path parameter key (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	parts := strings.Fields(connStr)
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "search_path") {
			return true
		}
	}
	return false
}

// hasSSLMode checks if the connection string contains an sslmode parameter key
// in either URL or DSN form.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}

	parts := strings.Fields(connStr)
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "sslmode") {
			return true
		}
	}
	return false
}

// ValidateConnString checks if a connection string is a valid PostgreSQL
// connection string (URI or DSN) and ensures it does not contain a password.
// Credentials belong in the OS keyring, not on the command line.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		pairs := strings.Fields(connStr)
		for _, pair := range pairs {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

func (s *PostgresStore) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func (s *PostgresStore) ping() error {
	if err := s.db.Ping(); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.ping(); err != nil {
		return err
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	return s.ping()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetSettings() (Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
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

func (s *PostgresStore) AddItem(item models.Item) error {
	return s.UpdateItem(item)
}

func (s *PostgresStore) GetItem(id string) (models.Item, error) {
	row := s.db.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE id = $1 AND deleted_at IS NULL", id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, fmt.Errorf("item with id %s not found", id)
	}
	return item, err
}

func (s *PostgresStore) GetItemByName(name string) (models.Item, error) {
	row := s.db.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE name = $1 AND deleted_at IS NULL", name)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, fmt.Errorf("item %q not found", name)
	}
	return item, err
}

func (s *PostgresStore) GetAllItems(includeInactive bool) ([]models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE deleted_at IS NULL"
	if !includeInactive {
		query += " AND active"
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

func (s *PostgresStore) UpdateItem(item models.Item) error {
	weekdaysJSON, err := json.Marshal(weekdayInts(item.Rule.Weekdays))
	if err != nil {
		return fmt.Errorf("failed to marshal rule weekdays: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO items (
			id, owner_id, name, rule_kind, rule_weekdays, rule_interval,
			record_kind, unit, scheduled_time, icon, color, active, created_at, deleted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id, name = EXCLUDED.name,
			rule_kind = EXCLUDED.rule_kind, rule_weekdays = EXCLUDED.rule_weekdays,
			rule_interval = EXCLUDED.rule_interval, record_kind = EXCLUDED.record_kind,
			unit = EXCLUDED.unit, scheduled_time = EXCLUDED.scheduled_time,
			icon = EXCLUDED.icon, color = EXCLUDED.color, active = EXCLUDED.active,
			created_at = EXCLUDED.created_at, deleted_at = EXCLUDED.deleted_at`,
		item.ID, item.OwnerID, item.Name, string(item.Rule.Kind), string(weekdaysJSON), item.Rule.IntervalDays,
		string(item.RecordKind), item.Unit, item.ScheduledTime, item.Icon, item.Color, item.Active,
		item.CreatedAt.UTC().Format(time.RFC3339), formatDeletedAt(item.DeletedAt),
	)
	return err
}

func (s *PostgresStore) DeleteItem(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM items WHERE id = $1", id).Scan(&deletedAt)
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
	_, err = s.db.Exec("UPDATE items SET deleted_at = $1 WHERE id = $2", now, id)
	return err
}

func (s *PostgresStore) RestoreItem(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM items WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("item with id %s not found", id)
		}
		return fmt.Errorf("failed to check item existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("item with id %s is not deleted", id)
	}

	_, err = s.db.Exec("UPDATE items SET deleted_at = NULL WHERE id = $1", id)
	return err
}

func (s *PostgresStore) SaveRecord(record models.Record) error {
	_, err := s.db.Exec(`
		INSERT INTO records (id, item_id, day, note, value, image, created_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (item_id, day) DO UPDATE SET
			id = EXCLUDED.id, note = EXCLUDED.note, value = EXCLUDED.value,
			image = EXCLUDED.image, created_at = EXCLUDED.created_at,
			deleted_at = EXCLUDED.deleted_at`,
		record.ID, record.ItemID, record.Day, record.Note, record.Value, record.Image,
		record.CreatedAt.UTC().Format(time.RFC3339), formatDeletedAt(record.DeletedAt),
	)
	return err
}

func (s *PostgresStore) GetRecord(itemID, day string) (models.Record, error) {
	row := s.db.QueryRow(
		"SELECT "+recordColumns+" FROM records WHERE item_id = $1 AND day = $2 AND deleted_at IS NULL",
		itemID, day)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return models.Record{}, fmt.Errorf("no record for item %s on %s", itemID, day)
	}
	return record, err
}

func (s *PostgresStore) GetRecordsForDay(day string) ([]models.Record, error) {
	return s.queryRecords(
		"SELECT "+recordColumns+" FROM records WHERE day = $1 AND deleted_at IS NULL ORDER BY item_id", day)
}

func (s *PostgresStore) GetRecordsForItem(itemID string) ([]models.Record, error) {
	return s.queryRecords(
		"SELECT "+recordColumns+" FROM records WHERE item_id = $1 AND deleted_at IS NULL ORDER BY day", itemID)
}

func (s *PostgresStore) GetAllRecords() ([]models.Record, error) {
	return s.queryRecords(
		"SELECT " + recordColumns + " FROM records WHERE deleted_at IS NULL ORDER BY day, item_id")
}

func (s *PostgresStore) DeleteRecord(itemID, day string) error {
	res, err := s.db.Exec(
		"UPDATE records SET deleted_at = $1 WHERE item_id = $2 AND day = $3 AND deleted_at IS NULL",
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

func (s *PostgresStore) queryRecords(query string, args ...interface{}) ([]models.Record, error) {
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

// GetConfigPath returns the connection string with any query parameters
// stripped so logs never leak options
func (s *PostgresStore) GetConfigPath() string {
	if u, err := url.Parse(s.connStr); err == nil && u.Scheme != "" {
		u.RawQuery = ""
		if name := u.User.Username(); name != "" {
			u.User = url.User(name)
		} else {
			u.User = nil
		}
		return u.String()
	}
	return "postgres"
}
