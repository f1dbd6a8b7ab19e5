package plans

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/config"
	apperrors "github.com/julianstephens/weekendly/internal/errors"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/scheduler"
	"github.com/julianstephens/weekendly/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return &cli.Context{
		Store:   store,
		Config:  config.NewForTesting(),
		Catalog: catalog.Default(),
	}
}

func mustAdd(t *testing.T, ctx *cli.Context, id, slot, day string) models.ScheduledActivity {
	t.Helper()
	if err := (&AddCmd{ActivityID: id, Slot: slot, Day: day}).Run(ctx); err != nil {
		t.Fatalf("add %s failed: %v", id, err)
	}
	items, err := ctx.Store.LoadSchedule()
	if err != nil {
		t.Fatalf("failed to load schedule: %v", err)
	}
	for _, it := range items {
		if it.Activity.ID == id && string(it.TimeSlot) == slot {
			return it
		}
	}
	t.Fatalf("%s not found in the stored schedule", id)
	return models.ScheduledActivity{}
}

func TestAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	rec := mustAdd(t, ctx, "food-brunch", "10am", "sun")
	if rec.Day != models.DaySunday {
		t.Errorf("expected sunday, got %s", rec.Day)
	}
	if rec.ScheduledID == "" {
		t.Error("expected a scheduled id")
	}
}

func TestAddCmd_Errors(t *testing.T) {
	ctx := setupTestDB(t)
	mustAdd(t, ctx, "food-brunch", "10am", "saturday")

	err := (&AddCmd{ActivityID: "outdoor-hike", Slot: "10:00", Day: "sat"}).Run(ctx)
	if !errors.Is(err, scheduler.ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
	if msg := apperrors.Format(err); !strings.Contains(msg, "this time is already booked") {
		t.Errorf("unexpected message: %s", msg)
	}

	cases := []AddCmd{
		{ActivityID: "no-such-activity", Slot: "9am", Day: "saturday"},
		{ActivityID: "outdoor-hike", Slot: "5am", Day: "saturday"},
		{ActivityID: "outdoor-hike", Slot: "9am", Day: "wednesday"},
	}
	for _, c := range cases {
		if err := c.Run(ctx); err == nil {
			t.Errorf("expected an error for %+v", c)
		}
	}

	items, _ := ctx.Store.LoadSchedule()
	if len(items) != 1 {
		t.Errorf("expected 1 stored activity, got %d", len(items))
	}
}

func TestMoveCmd(t *testing.T) {
	ctx := setupTestDB(t)
	brunch := mustAdd(t, ctx, "food-brunch", "10am", "saturday")
	mustAdd(t, ctx, "outdoor-hike", "1pm", "saturday")

	if err := (&MoveCmd{ID: brunch.ScheduledID, Slot: "11am"}).Run(ctx); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if err := (&MoveCmd{ID: brunch.ScheduledID, Slot: "1pm", Day: "saturday"}).Run(ctx); !errors.Is(err, scheduler.ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
	if err := (&MoveCmd{ID: brunch.ScheduledID, Slot: "1pm", Day: "monday"}).Run(ctx); err != nil {
		t.Fatalf("move to monday failed: %v", err)
	}
	if err := (&MoveCmd{ID: "missing", Slot: "9am"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown id")
	}

	items, _ := ctx.Store.LoadSchedule()
	for _, it := range items {
		if it.ScheduledID == brunch.ScheduledID && (it.Day != models.DayMonday || it.TimeSlot != "1pm") {
			t.Errorf("expected brunch on monday at 1pm, got %s %s", it.Day, it.TimeSlot)
		}
	}
}

func TestRemoveCmd_Idempotent(t *testing.T) {
	ctx := setupTestDB(t)
	rec := mustAdd(t, ctx, "food-brunch", "10am", "saturday")

	for i := 0; i < 2; i++ {
		if err := (&RemoveCmd{ID: rec.ScheduledID}).Run(ctx); err != nil {
			t.Fatalf("remove #%d failed: %v", i+1, err)
		}
	}
	items, _ := ctx.Store.LoadSchedule()
	if len(items) != 0 {
		t.Errorf("expected an empty schedule, got %d", len(items))
	}
}

func TestCompleteCmd(t *testing.T) {
	ctx := setupTestDB(t)
	rec := mustAdd(t, ctx, "food-brunch", "10am", "saturday")

	completed := func() bool {
		items, _ := ctx.Store.LoadSchedule()
		return items[0].Completed
	}

	if err := (&CompleteCmd{ID: rec.ScheduledID}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !completed() {
		t.Error("expected completed after toggle")
	}

	done := true
	if err := (&CompleteCmd{ID: rec.ScheduledID, Done: &done}).Run(ctx); err != nil {
		t.Fatalf("complete --done failed: %v", err)
	}
	if !completed() {
		t.Error("expected --done to keep it completed")
	}

	if err := (&CompleteCmd{ID: rec.ScheduledID}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed() {
		t.Error("expected second toggle to clear completion")
	}

	if err := (&CompleteCmd{ID: "missing"}).Run(ctx); !errors.Is(err, scheduler.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReorderCmd_KeepsSlots(t *testing.T) {
	ctx := setupTestDB(t)
	mustAdd(t, ctx, "food-brunch", "10am", "saturday")
	mustAdd(t, ctx, "outdoor-hike", "1pm", "saturday")
	mustAdd(t, ctx, "ent-movie-night", "8pm", "saturday")

	if err := (&ReorderCmd{Day: "saturday", From: 3, To: 1}).Run(ctx); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	engine, err := ctx.Engine()
	if err != nil {
		t.Fatal(err)
	}
	agenda := engine.Agenda(models.DaySaturday)
	if agenda[0].Activity.ID != "ent-movie-night" {
		t.Errorf("expected movie night first, got %s", agenda[0].Activity.ID)
	}
	if agenda[0].TimeSlot != "8pm" {
		t.Errorf("reorder changed the slot to %s", agenda[0].TimeSlot)
	}

	if err := (&ReorderCmd{Day: "saturday", From: 1, To: 4}).Run(ctx); err == nil {
		t.Error("expected an error for an out-of-range position")
	}
}

func TestClearCmd(t *testing.T) {
	ctx := setupTestDB(t)
	mustAdd(t, ctx, "food-brunch", "10am", "saturday")
	mustAdd(t, ctx, "outdoor-hike", "1pm", "sunday")

	if err := (&ClearCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, _ := ctx.Store.LoadSchedule()
	if len(items) != 0 {
		t.Errorf("expected an empty schedule, got %d", len(items))
	}

	if err := (&ClearCmd{}).Run(ctx); err != nil {
		t.Errorf("clearing an empty plan should not prompt or fail: %v", err)
	}
}

func TestDayCmd(t *testing.T) {
	ctx := setupTestDB(t)
	mustAdd(t, ctx, "food-brunch", "10am", "saturday")

	if err := (&DayCmd{Day: "saturday", Free: true}).Run(ctx); err != nil {
		t.Errorf("day failed: %v", err)
	}
	if err := (&DayCmd{Day: "someday"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown day")
	}
}

func TestWeekendCmd_FallsBackWithoutUpstream(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&WeekendCmd{Date: "2026-05-20"}).Run(ctx); err != nil {
		t.Errorf("weekend failed: %v", err)
	}
	if err := (&WeekendCmd{Date: "20/05/2026"}).Run(ctx); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestRenderAgenda(t *testing.T) {
	brunch, _ := catalog.Default().Get("food-brunch")
	items := []models.ScheduledActivity{{
		ScheduledID: "s1",
		Activity:    brunch,
		Day:         models.DaySaturday,
		TimeSlot:    "10am",
		Completed:   true,
	}}

	out := renderAgenda(models.DaySaturday, items, "Independence Day")
	for _, want := range []string{"Saturday (Independence Day)", "10:00-", "Weekend Brunch", "[done]", "ID: s1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if out := renderAgenda(models.DaySunday, nil, ""); !strings.Contains(out, "Nothing planned yet") {
		t.Errorf("expected empty message, got:\n%s", out)
	}
}
