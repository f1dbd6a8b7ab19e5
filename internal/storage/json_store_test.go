package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/models"
)

var _ Provider = (*JSONStore)(nil)

func TestJSONStoreInitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "weekendly.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Country != constants.DefaultCountry {
		t.Errorf("Country = %q, want %q", settings.Country, constants.DefaultCountry)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(raw), constants.SettingsNamespace+constants.SettingCountry) {
		t.Errorf("settings keys are not namespaced: %s", raw)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := reopened.GetConfigPath(); got != path {
		t.Errorf("GetConfigPath() = %q, want %q", got, path)
	}
}

func TestJSONStoreLoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() error = %v, want ErrNotInitialized", err)
	}
	if _, err := store.LoadSchedule(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("LoadSchedule() error = %v, want ErrNotInitialized", err)
	}
}

func TestJSONStoreRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekendly.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Error("expected error for newer storage version")
	}
}

func TestJSONStoreScheduleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekendly.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	rec := models.ScheduledActivity{
		ScheduledID: "s1",
		Activity: models.Activity{
			ID: "wellness-yoga", Title: "Yoga", Category: models.CategoryWellness,
			Mood: []models.Mood{models.MoodPeaceful}, DurationMin: 60, Price: models.PriceLow,
		},
		Day:       models.DaySunday,
		TimeSlot:  "8am",
		SortKey:   1,
		CreatedAt: time.Date(2026, 5, 3, 7, 0, 0, 0, time.UTC),
	}
	if err := store.SaveSchedule([]models.ScheduledActivity{rec}); err != nil {
		t.Fatalf("SaveSchedule failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	items, err := reopened.LoadSchedule()
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 record, got %d", len(items))
	}
	got := items[0]
	if got.Activity.Title != "Yoga" || got.TimeSlot != "8am" || got.SortKey != 1 || !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// callers get a copy
	items[0].ScheduledID = "mutated"
	again, _ := reopened.LoadSchedule()
	if again[0].ScheduledID != "s1" {
		t.Error("LoadSchedule returned the internal slice")
	}
}

func TestJSONStoreInitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekendly.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	settings, _ := store.GetSettings()
	settings.HomeName = "Lisbon"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	again := NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	got, _ := again.GetSettings()
	if got.HomeName != "Lisbon" {
		t.Errorf("HomeName = %q, want Lisbon", got.HomeName)
	}
}

func TestActivityCodec(t *testing.T) {
	lat := 38.72
	in := models.Activity{
		ID: "x", Title: "X", Category: models.CategoryCultural, Mood: []models.Mood{models.MoodCreative},
		DurationMin: 30, Price: models.PriceFree, Location: &models.Location{Name: "Museum", Lat: &lat},
	}
	raw, err := EncodeActivity(in)
	if err != nil {
		t.Fatalf("EncodeActivity failed: %v", err)
	}
	out, err := DecodeActivity([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeActivity failed: %v", err)
	}
	if out.Location == nil || *out.Location.Lat != lat || out.Title != "X" {
		t.Errorf("decoded = %+v", out)
	}
	if _, err := DecodeActivity([]byte("{")); err == nil {
		t.Error("expected decode error")
	}
}
