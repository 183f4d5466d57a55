package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/models"
)

// Store is the on-disk shape of the JSON backend. Records are keyed by
// "itemID/day" so the one-record-per-day rule holds structurally.
type Store struct {
	Version  int                      `json:"version"`
	Settings Settings                 `json:"settings"`
	Items    map[string]models.Item   `json:"items"`
	Records  map[string]models.Record `json:"records"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func recordKey(itemID, day string) string {
	return itemID + "/" + day
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: DefaultSettings(),
		Items:    make(map[string]models.Item),
		Records:  make(map[string]models.Record),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Items == nil {
		s.store.Items = make(map[string]models.Item)
	}
	if s.store.Records == nil {
		s.store.Records = make(map[string]models.Record)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.store == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddItem(item models.Item) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Items[item.ID] = item
	return s.save()
}

func (s *JSONStore) GetItem(id string) (models.Item, error) {
	if s.store == nil {
		return models.Item{}, fmt.Errorf("storage not loaded")
	}

	item, ok := s.store.Items[id]
	if !ok || item.DeletedAt != nil {
		return models.Item{}, fmt.Errorf("item with id %s not found", id)
	}
	return item, nil
}

func (s *JSONStore) GetItemByName(name string) (models.Item, error) {
	if s.store == nil {
		return models.Item{}, fmt.Errorf("storage not loaded")
	}

	for _, item := range s.store.Items {
		if item.Name == name && item.DeletedAt == nil {
			return item, nil
		}
	}
	return models.Item{}, fmt.Errorf("item %q not found", name)
}

func (s *JSONStore) GetAllItems(includeInactive bool) ([]models.Item, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	items := make([]models.Item, 0, len(s.store.Items))
	for _, item := range s.store.Items {
		if item.DeletedAt != nil {
			continue
		}
		if !includeInactive && !item.Active {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *JSONStore) UpdateItem(item models.Item) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Items[item.ID]; !ok {
		return fmt.Errorf("item with id %s not found", item.ID)
	}
	s.store.Items[item.ID] = item
	return s.save()
}

func (s *JSONStore) DeleteItem(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	item, ok := s.store.Items[id]
	if !ok {
		return fmt.Errorf("item with id %s not found", id)
	}
	if item.DeletedAt != nil {
		return fmt.Errorf("item with id %s is already deleted", id)
	}

	now := time.Now().UTC()
	item.DeletedAt = &now
	s.store.Items[id] = item
	return s.save()
}

func (s *JSONStore) RestoreItem(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	item, ok := s.store.Items[id]
	if !ok {
		return fmt.Errorf("item with id %s not found", id)
	}
	if item.DeletedAt == nil {
		return fmt.Errorf("item with id %s is not deleted", id)
	}

	item.DeletedAt = nil
	s.store.Items[id] = item
	return s.save()
}

func (s *JSONStore) SaveRecord(record models.Record) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Records[recordKey(record.ItemID, record.Day)] = record
	return s.save()
}

func (s *JSONStore) GetRecord(itemID, day string) (models.Record, error) {
	if s.store == nil {
		return models.Record{}, fmt.Errorf("storage not loaded")
	}

	record, ok := s.store.Records[recordKey(itemID, day)]
	if !ok || record.DeletedAt != nil {
		return models.Record{}, fmt.Errorf("no record for item %s on %s", itemID, day)
	}
	return record, nil
}

func (s *JSONStore) GetRecordsForDay(day string) ([]models.Record, error) {
	return s.filterRecords(func(r models.Record) bool { return r.Day == day })
}

func (s *JSONStore) GetRecordsForItem(itemID string) ([]models.Record, error) {
	return s.filterRecords(func(r models.Record) bool { return r.ItemID == itemID })
}

func (s *JSONStore) GetAllRecords() ([]models.Record, error) {
	return s.filterRecords(func(models.Record) bool { return true })
}

func (s *JSONStore) DeleteRecord(itemID, day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	key := recordKey(itemID, day)
	record, ok := s.store.Records[key]
	if !ok || record.DeletedAt != nil {
		return fmt.Errorf("no record for item %s on %s", itemID, day)
	}

	now := time.Now().UTC()
	record.DeletedAt = &now
	s.store.Records[key] = record
	return s.save()
}

func (s *JSONStore) filterRecords(keep func(models.Record) bool) ([]models.Record, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var records []models.Record
	for _, record := range s.store.Records {
		if record.DeletedAt != nil {
			continue
		}
		if keep(record) {
			records = append(records, record)
		}
	}
	return records, nil
}

// GetConfigPath returns the path to the underlying storage file
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
