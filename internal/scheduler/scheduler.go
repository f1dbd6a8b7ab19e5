// Package scheduler owns the weekend timeline: the set of scheduled
// activities placed on (day, time slot) cells, with at most one live record
// per cell.
package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
)

var (
	ErrSlotOccupied     = errors.New("time slot already occupied")
	ErrNotFound         = errors.New("scheduled activity not found")
	ErrInvalidPlacement = errors.New("invalid placement")
)

// Persister receives the full collection after every successful mutation
type Persister interface {
	SaveSchedule([]models.ScheduledActivity) error
}

type Option func(*Engine)

// WithIDGenerator replaces the uuid-based scheduled id generator
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithPersister writes the collection through p on every mutation
func WithPersister(p Persister) Option {
	return func(e *Engine) { e.persister = p }
}

// WithClock sets the time source used for CreatedAt
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// Engine is safe for concurrent use. Every check-then-write sequence runs
// under a single mutex.
type Engine struct {
	mu        sync.Mutex
	items     []models.ScheduledActivity
	newID     func() string
	now       func() time.Time
	persister Persister
}

func New(opts ...Option) *Engine {
	e := &Engine{
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Restore replaces the collection with previously persisted records. It
// does not call the persister. Records that collide on a cell are rejected.
func (e *Engine) Restore(items []models.ScheduledActivity) error {
	seen := make(map[string]bool, len(items))
	cells := make(map[string]string, len(items))
	for _, it := range items {
		if it.ScheduledID == "" || seen[it.ScheduledID] {
			return fmt.Errorf("%w: duplicate or empty scheduled id %q", ErrInvalidPlacement, it.ScheduledID)
		}
		if err := validatePlacement(it.Activity, it.TimeSlot, it.Day); err != nil {
			return err
		}
		key := cellKey(it.Day, it.TimeSlot)
		if other, ok := cells[key]; ok {
			return fmt.Errorf("%w: %s and %s both at %s", ErrSlotOccupied, other, it.ScheduledID, key)
		}
		seen[it.ScheduledID] = true
		cells[key] = it.ScheduledID
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = cloneAll(items)
	return nil
}

// Schedule places a copy of activity at (day, slot) and returns the new record
func (e *Engine) Schedule(activity models.Activity, slot models.TimeSlot, day models.Day) (models.ScheduledActivity, error) {
	if err := validatePlacement(activity, slot, day); err != nil {
		return models.ScheduledActivity{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.occupiedLocked(day, slot, "") {
		logger.Debug("Slot conflict", "day", day, "slot", slot, "activity", activity.ID)
		return models.ScheduledActivity{}, fmt.Errorf("%w: %s %s", ErrSlotOccupied, day, slot)
	}

	rec := models.ScheduledActivity{
		ScheduledID: e.newID(),
		Activity:    cloneActivity(activity),
		Day:         day,
		TimeSlot:    slot,
		CreatedAt:   e.now().UTC(),
	}

	next := append(cloneAll(e.items), rec)
	if err := e.commitLocked(next); err != nil {
		return models.ScheduledActivity{}, err
	}
	return cloneRecord(rec), nil
}

// AddActivity is the boolean form of Schedule. It returns false, leaving the
// collection untouched, when the cell is occupied or the placement is invalid.
func (e *Engine) AddActivity(activity models.Activity, slot models.TimeSlot, day models.Day) bool {
	_, err := e.Schedule(activity, slot, day)
	return err == nil
}

// RemoveActivity deletes the record with the given id. Unknown ids are a no-op.
func (e *Engine) RemoveActivity(scheduledID string) {
	if _, err := e.Remove(scheduledID); err != nil {
		logger.Warn("Failed to persist removal", "id", scheduledID, "error", err)
	}
}

// Remove deletes the record with the given id and reports whether one existed
func (e *Engine) Remove(scheduledID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(scheduledID)
	if idx < 0 {
		return false, nil
	}
	next := make([]models.ScheduledActivity, 0, len(e.items)-1)
	next = append(next, e.items[:idx]...)
	next = append(next, e.items[idx+1:]...)
	if err := e.commitLocked(cloneAll(next)); err != nil {
		return false, err
	}
	return true, nil
}

// Move reschedules an existing record in place. The scheduled id and the
// activity snapshot are preserved.
func (e *Engine) Move(scheduledID string, slot models.TimeSlot, day models.Day) error {
	if !day.Valid() || !slot.Valid() {
		return fmt.Errorf("%w: %q %q", ErrInvalidPlacement, day, slot)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(scheduledID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, scheduledID)
	}
	if e.occupiedLocked(day, slot, scheduledID) {
		logger.Debug("Move conflict", "id", scheduledID, "day", day, "slot", slot)
		return fmt.Errorf("%w: %s %s", ErrSlotOccupied, day, slot)
	}

	next := cloneAll(e.items)
	if next[idx].Day != day {
		next[idx].SortKey = 0
	}
	next[idx].Day = day
	next[idx].TimeSlot = slot
	return e.commitLocked(next)
}

// MoveActivity is the boolean form of Move
func (e *Engine) MoveActivity(scheduledID string, slot models.TimeSlot, day models.Day) bool {
	return e.Move(scheduledID, slot, day) == nil
}

// IsSlotOccupied reports whether any record sits at exactly (day, slot)
func (e *Engine) IsSlotOccupied(day models.Day, slot models.TimeSlot) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.occupiedLocked(day, slot, "")
}

// GetActivitiesForSlot returns the records at (day, slot). Normally zero or one.
func (e *Engine) GetActivitiesForSlot(day models.Day, slot models.TimeSlot) []models.ScheduledActivity {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []models.ScheduledActivity{}
	for _, it := range e.items {
		if it.Day == day && it.TimeSlot == slot {
			out = append(out, cloneRecord(it))
		}
	}
	return out
}

// GetActivitiesForDay returns the day's records in chronological slot order
func (e *Engine) GetActivitiesForDay(day models.Day) []models.ScheduledActivity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dayLocked(day)
}

// Agenda returns the day's records in presentation order: records ranked by
// ReorderActivities first (by SortKey), then unranked records by slot. It
// never changes any time slot.
func (e *Engine) Agenda(day models.Day) []models.ScheduledActivity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.agendaLocked(day)
}

// ReorderActivities moves the record at oldIndex of Agenda(day) to newIndex.
// This is a presentation-order change only: TimeSlot, StartTime and EndTime
// are untouched. Use Move to reschedule. Out-of-range indexes return false.
func (e *Engine) ReorderActivities(day models.Day, oldIndex, newIndex int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	agenda := e.agendaLocked(day)
	if oldIndex < 0 || oldIndex >= len(agenda) || newIndex < 0 || newIndex >= len(agenda) {
		return false
	}
	if oldIndex == newIndex {
		return true
	}

	moved := agenda[oldIndex]
	agenda = append(agenda[:oldIndex], agenda[oldIndex+1:]...)
	agenda = append(agenda[:newIndex], append([]models.ScheduledActivity{moved}, agenda[newIndex:]...)...)

	rank := make(map[string]int, len(agenda))
	for i, it := range agenda {
		rank[it.ScheduledID] = i + 1
	}
	next := cloneAll(e.items)
	for i := range next {
		if r, ok := rank[next[i].ScheduledID]; ok {
			next[i].SortKey = r
		}
	}
	if err := e.commitLocked(next); err != nil {
		logger.Warn("Failed to persist reorder", "day", day, "error", err)
		return false
	}
	return true
}

// ClearAllActivities empties the collection unconditionally
func (e *Engine) ClearAllActivities() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.commitLocked([]models.ScheduledActivity{}); err != nil {
		// clearing is unconditional even when the write fails
		logger.Warn("Failed to persist clear", "error", err)
		e.items = []models.ScheduledActivity{}
	}
}

// ToggleComplete flips the completed flag. Unknown ids are a no-op.
func (e *Engine) ToggleComplete(scheduledID string) {
	if _, err := e.SetCompleted(scheduledID, nil); err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn("Failed to persist completion toggle", "id", scheduledID, "error", err)
	}
}

// SetCompleted sets the completed flag, or flips it when value is nil, and
// returns the resulting record.
func (e *Engine) SetCompleted(scheduledID string, value *bool) (models.ScheduledActivity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(scheduledID)
	if idx < 0 {
		return models.ScheduledActivity{}, fmt.Errorf("%w: %s", ErrNotFound, scheduledID)
	}
	next := cloneAll(e.items)
	if value == nil {
		next[idx].Completed = !next[idx].Completed
	} else {
		next[idx].Completed = *value
	}
	if err := e.commitLocked(next); err != nil {
		return models.ScheduledActivity{}, err
	}
	return cloneRecord(next[idx]), nil
}

// Get returns the record with the given id
func (e *Engine) Get(scheduledID string) (models.ScheduledActivity, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexLocked(scheduledID)
	if idx < 0 {
		return models.ScheduledActivity{}, false
	}
	return cloneRecord(e.items[idx]), true
}

// All returns every record ordered by day then slot
func (e *Engine) All() []models.ScheduledActivity {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := cloneAll(e.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day.Index() < out[j].Day.Index()
		}
		return out[i].TimeSlot.Index() < out[j].TimeSlot.Index()
	})
	return out
}

// FreeSlots lists the unoccupied slots of a day in chronological order
func (e *Engine) FreeSlots(day models.Day) []models.TimeSlot {
	e.mu.Lock()
	defer e.mu.Unlock()
	var free []models.TimeSlot
	for _, slot := range models.TimeSlots {
		if !e.occupiedLocked(day, slot, "") {
			free = append(free, slot)
		}
	}
	return free
}

func (e *Engine) occupiedLocked(day models.Day, slot models.TimeSlot, ignoreID string) bool {
	for _, it := range e.items {
		if it.Day == day && it.TimeSlot == slot && it.ScheduledID != ignoreID {
			return true
		}
	}
	return false
}

func (e *Engine) indexLocked(scheduledID string) int {
	for i, it := range e.items {
		if it.ScheduledID == scheduledID {
			return i
		}
	}
	return -1
}

func (e *Engine) dayLocked(day models.Day) []models.ScheduledActivity {
	out := []models.ScheduledActivity{}
	for _, it := range e.items {
		if it.Day == day {
			out = append(out, cloneRecord(it))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeSlot.Index() < out[j].TimeSlot.Index()
	})
	return out
}

func (e *Engine) agendaLocked(day models.Day) []models.ScheduledActivity {
	out := e.dayLocked(day)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].SortKey, out[j].SortKey
		switch {
		case ri > 0 && rj > 0:
			return ri < rj
		case ri > 0:
			return true
		case rj > 0:
			return false
		default:
			return false // both unranked: keep slot order
		}
	})
	return out
}

// commitLocked persists next and, on success, makes it the live collection
func (e *Engine) commitLocked(next []models.ScheduledActivity) error {
	if e.persister != nil {
		if err := e.persister.SaveSchedule(cloneAll(next)); err != nil {
			return fmt.Errorf("failed to persist schedule: %w", err)
		}
	}
	e.items = next
	return nil
}

func validatePlacement(activity models.Activity, slot models.TimeSlot, day models.Day) error {
	if !day.Valid() {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidPlacement, day)
	}
	if !slot.Valid() {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidPlacement, slot)
	}
	if activity.ID == "" {
		return fmt.Errorf("%w: activity id is required", ErrInvalidPlacement)
	}
	if activity.DurationMin <= 0 {
		return fmt.Errorf("%w: activity %s has non-positive duration", ErrInvalidPlacement, activity.ID)
	}
	return nil
}

func cellKey(day models.Day, slot models.TimeSlot) string {
	return string(day) + "/" + string(slot)
}
