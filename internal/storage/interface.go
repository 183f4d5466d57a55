package storage

import "github.com/xujingshi/LifeTrack/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Items
	AddItem(models.Item) error
	GetItem(id string) (models.Item, error)
	GetItemByName(name string) (models.Item, error)
	GetAllItems(includeInactive bool) ([]models.Item, error)
	UpdateItem(models.Item) error
	DeleteItem(id string) error
	RestoreItem(id string) error

	// Records
	SaveRecord(models.Record) error
	GetRecord(itemID, day string) (models.Record, error)
	GetRecordsForDay(day string) ([]models.Record, error)
	GetRecordsForItem(itemID string) ([]models.Record, error)
	GetAllRecords() ([]models.Record, error)
	DeleteRecord(itemID, day string) error

	// Utils
	GetConfigPath() string
}
