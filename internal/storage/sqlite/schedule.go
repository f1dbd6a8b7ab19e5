package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/storage"
)

func (s *Store) LoadSchedule() ([]models.ScheduledActivity, error) {
	rows, err := s.db.Query(`
		SELECT scheduled_id, activity, day, time_slot, completed, sort_key, created_at
		FROM scheduled_activities
		ORDER BY created_at, scheduled_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ScheduledActivity{}
	for rows.Next() {
		var (
			rec       models.ScheduledActivity
			activity  string
			day, slot string
			completed int
			createdAt string
		)
		if err := rows.Scan(&rec.ScheduledID, &activity, &day, &slot, &completed, &rec.SortKey, &createdAt); err != nil {
			return nil, err
		}
		rec.Activity, err = storage.DecodeActivity([]byte(activity))
		if err != nil {
			return nil, fmt.Errorf("scheduled activity %s: %w", rec.ScheduledID, err)
		}
		rec.Day = models.Day(day)
		rec.TimeSlot = models.TimeSlot(slot)
		rec.Completed = completed != 0
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("scheduled activity %s: parsing created_at: %w", rec.ScheduledID, err)
		}
		items = append(items, rec)
	}

	return items, rows.Err()
}

// SaveSchedule replaces the stored schedule with items in one transaction
func (s *Store) SaveSchedule(items []models.ScheduledActivity) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM scheduled_activities"); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scheduled_activities
			(scheduled_id, activity_id, activity, day, time_slot, completed, sort_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range items {
		activity, err := storage.EncodeActivity(rec.Activity)
		if err != nil {
			return err
		}
		completed := 0
		if rec.Completed {
			completed = 1
		}
		if _, err := stmt.Exec(
			rec.ScheduledID,
			rec.Activity.ID,
			activity,
			string(rec.Day),
			string(rec.TimeSlot),
			completed,
			rec.SortKey,
			rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to save scheduled activity %s: %w", rec.ScheduledID, err)
		}
	}

	return tx.Commit()
}
