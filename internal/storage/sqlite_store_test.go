package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xujingshi/LifeTrack/internal/constants"
	"github.com/xujingshi/LifeTrack/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testItem(id, name string) models.Item {
	return models.Item{
		ID:         id,
		Name:       name,
		Rule:       models.Rule{Kind: constants.RuleCustom, Weekdays: []time.Weekday{time.Monday, time.Friday}},
		RecordKind: constants.RecordCheck,
		Active:     true,
		CreatedAt:  time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_ItemRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	item := testItem("item-1", "Read")
	item.Unit = "pages"
	item.ScheduledTime = "21:00"
	if err := store.AddItem(item); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	got, err := store.GetItem("item-1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Name != "Read" || got.Unit != "pages" || got.ScheduledTime != "21:00" {
		t.Errorf("item fields lost in round trip: %+v", got)
	}
	if got.Rule.Kind != constants.RuleCustom || len(got.Rule.Weekdays) != 2 {
		t.Errorf("rule lost in round trip: %+v", got.Rule)
	}
	if !got.CreatedAt.Equal(item.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, item.CreatedAt)
	}

	byName, err := store.GetItemByName("Read")
	if err != nil {
		t.Fatalf("GetItemByName failed: %v", err)
	}
	if byName.ID != "item-1" {
		t.Errorf("GetItemByName returned %s, want item-1", byName.ID)
	}
}

func TestSQLiteStore_SoftDeleteAndRestore(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.AddItem(testItem("item-1", "Read")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := store.DeleteItem("item-1"); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if _, err := store.GetItem("item-1"); err == nil {
		t.Error("deleted item should not be readable")
	}
	if err := store.DeleteItem("item-1"); err == nil {
		t.Error("double delete should fail")
	}

	if err := store.RestoreItem("item-1"); err != nil {
		t.Fatalf("RestoreItem failed: %v", err)
	}
	if _, err := store.GetItem("item-1"); err != nil {
		t.Errorf("restored item should be readable: %v", err)
	}
	if err := store.RestoreItem("item-1"); err == nil {
		t.Error("restoring a live item should fail")
	}
}

func TestSQLiteStore_GetAllItemsFiltersInactive(t *testing.T) {
	store := newTestSQLiteStore(t)

	active := testItem("item-1", "Read")
	paused := testItem("item-2", "Gym")
	paused.Active = false

	if err := store.AddItem(active); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := store.AddItem(paused); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	items, err := store.GetAllItems(false)
	if err != nil {
		t.Fatalf("GetAllItems failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "item-1" {
		t.Errorf("active-only listing = %d items, want just item-1", len(items))
	}

	items, err = store.GetAllItems(true)
	if err != nil {
		t.Fatalf("GetAllItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("full listing = %d items, want 2", len(items))
	}
}

func TestSQLiteStore_RecordUpsertPerDay(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.AddItem(testItem("item-1", "Read")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	first := models.Record{ID: "rec-1", ItemID: "item-1", Day: "2024-01-05", Note: "ch 1", CreatedAt: time.Now().UTC()}
	if err := store.SaveRecord(first); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	// Same item and day again replaces the earlier record.
	second := models.Record{ID: "rec-2", ItemID: "item-1", Day: "2024-01-05", Note: "ch 2", CreatedAt: time.Now().UTC()}
	if err := store.SaveRecord(second); err != nil {
		t.Fatalf("SaveRecord upsert failed: %v", err)
	}

	records, err := store.GetRecordsForItem("item-1")
	if err != nil {
		t.Fatalf("GetRecordsForItem failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after upsert, got %d", len(records))
	}
	if records[0].ID != "rec-2" || records[0].Note != "ch 2" {
		t.Errorf("upsert kept the old record: %+v", records[0])
	}
}

func TestSQLiteStore_RecordValueRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.AddItem(testItem("item-1", "Weight")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	v := 72.5
	rec := models.Record{ID: "rec-1", ItemID: "item-1", Day: "2024-01-05", Value: &v, CreatedAt: time.Now().UTC()}
	if err := store.SaveRecord(rec); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	got, err := store.GetRecord("item-1", "2024-01-05")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.Value == nil || *got.Value != 72.5 {
		t.Errorf("value lost in round trip: %+v", got.Value)
	}

	checkOnly := models.Record{ID: "rec-2", ItemID: "item-1", Day: "2024-01-06", CreatedAt: time.Now().UTC()}
	if err := store.SaveRecord(checkOnly); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	got, err = store.GetRecord("item-1", "2024-01-06")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.Value != nil {
		t.Errorf("check-only record should have nil value, got %v", *got.Value)
	}
}

func TestSQLiteStore_DeleteRecord(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.AddItem(testItem("item-1", "Read")); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	rec := models.Record{ID: "rec-1", ItemID: "item-1", Day: "2024-01-05", CreatedAt: time.Now().UTC()}
	if err := store.SaveRecord(rec); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	if err := store.DeleteRecord("item-1", "2024-01-05"); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	if _, err := store.GetRecord("item-1", "2024-01-05"); err == nil {
		t.Error("deleted record should not be readable")
	}
	if err := store.DeleteRecord("item-1", "2024-01-05"); err == nil {
		t.Error("deleting a missing record should fail")
	}
}

func TestSQLiteStore_SettingsRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DefaultPeriod != string(constants.PeriodWeek) {
		t.Errorf("default period = %q, want %q", settings.DefaultPeriod, constants.PeriodWeek)
	}

	settings.DefaultPeriod = string(constants.PeriodMonth)
	settings.OwnerID = "owner-1"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.DefaultPeriod != string(constants.PeriodMonth) || got.OwnerID != "owner-1" {
		t.Errorf("settings lost in round trip: %+v", got)
	}
}

func TestSQLiteStore_LoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load on a missing database should fail")
	}
}
