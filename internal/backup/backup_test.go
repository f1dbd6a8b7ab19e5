package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "weekendly.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	hike := models.Activity{
		ID:          "outdoor-hike",
		Title:       "Trail Hike",
		Category:    models.CategoryOutdoor,
		Mood:        []models.Mood{models.MoodAdventurous},
		DurationMin: 180,
		Price:       models.PriceFree,
	}
	err := store.SaveSchedule([]models.ScheduledActivity{{
		ScheduledID: "s1",
		Activity:    hike,
		Day:         models.DaySaturday,
		TimeSlot:    "9am",
		CreatedAt:   time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC),
	}})
	if err != nil {
		t.Fatalf("failed to save schedule: %v", err)
	}
	return dbPath
}

func scheduleLen(t *testing.T, dbPath string) int {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	defer store.Close()
	items, err := store.LoadSchedule()
	if err != nil {
		t.Fatalf("failed to load schedule: %v", err)
	}
	return len(items)
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(info.Path) != mgr.Dir() {
		t.Errorf("backup written outside %s: %s", mgr.Dir(), info.Path)
	}
	if info.Size == 0 {
		t.Error("expected a non-empty backup")
	}
	if err := Verify(info.Path); err != nil {
		t.Errorf("backup does not verify: %v", err)
	}
	if n := scheduleLen(t, info.Path); n != 1 {
		t.Errorf("expected 1 activity in the backup, got %d", n)
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected an error for a missing database")
	}
}

func TestCreate_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 5, 20, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if first.Path == second.Path {
		t.Fatal("expected distinct backup paths")
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].Path != second.Path {
		t.Errorf("expected the later backup first, got %s", backups[0].Path)
	}
	for _, b := range backups {
		if !b.Timestamp.Equal(fixed) {
			t.Errorf("expected timestamp %v, got %v", fixed, b.Timestamp)
		}
	}
}

func TestList_NewestFirstAndRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3

	start := time.Date(2026, 5, 20, 9, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		ts := start.Add(time.Duration(i) * time.Minute)
		mgr.now = func() time.Time { return ts }
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i+1, err)
		}
	}

	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected rotation to keep 3 backups, got %d", len(backups))
	}
	want := start.Add(4 * time.Minute)
	if !backups[0].Timestamp.Equal(want) {
		t.Errorf("expected newest %v first, got %v", want, backups[0].Timestamp)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestList_NoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "weekendly.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSchedule(nil); err != nil {
		t.Fatal(err)
	}
	store.Close()
	if n := scheduleLen(t, dbPath); n != 0 {
		t.Fatalf("expected an empty schedule before restore, got %d", n)
	}

	mgr.now = func() time.Time { return time.Now().Add(time.Hour) }
	current, err := mgr.Restore(snapshot.Path)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if current.Path == "" {
		t.Error("expected the current database to be backed up before restore")
	}
	if n := scheduleLen(t, dbPath); n != 1 {
		t.Errorf("expected 1 activity after restore, got %d", n)
	}
	if n := scheduleLen(t, current.Path); n != 0 {
		t.Errorf("expected the pre-restore backup to hold the empty schedule, got %d", n)
	}
}

func TestRestore_RejectsForeignDatabase(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	foreign := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := mgr.Restore(foreign); err == nil {
		t.Error("expected restore of a non-weekendly database to fail")
	}
	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected restore of a missing file to fail")
	}
	if n := scheduleLen(t, dbPath); n != 1 {
		t.Errorf("failed restore changed the database: %d activities", n)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/me/.config/weekendly/weekendly.db", true},
		{"/tmp/plan.json", false},
		{"postgres://planner@localhost/weekendly", false},
		{"host=localhost dbname=weekendly", false},
		{"postgresql", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestParseName(t *testing.T) {
	if _, seq, ok := parseName("weekendly-20260520-093000.db"); !ok || seq != 0 {
		t.Error("expected canonical name to parse")
	}
	if _, seq, ok := parseName("weekendly-20260520-093000-2.db"); !ok || seq != 2 {
		t.Error("expected name with counter to parse")
	}
	for _, bad := range []string{"planner-20260520-093000.db", "weekendly-latest.db", "weekendly-20260520-093000.json", "weekendly-20260520-093000-x.db"} {
		if _, _, ok := parseName(bad); ok {
			t.Errorf("expected %q to be ignored", bad)
		}
	}
}
