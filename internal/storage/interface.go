// Package storage defines the persistence contract for the schedule and user
// preferences. Backends read the whole collection at startup and replace it
// on every mutation.
package storage

import (
	"errors"

	"github.com/julianstephens/weekendly/internal/models"
)

var (
	ErrNotInitialized   = errors.New("storage not initialized, run 'weekendly init' first")
	ErrSettingsNotFound = errors.New("settings not found")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Schedule
	LoadSchedule() ([]models.ScheduledActivity, error)
	SaveSchedule([]models.ScheduledActivity) error

	// Utils
	GetConfigPath() string
}

// DefaultSettings is what Init writes to a fresh store
func DefaultSettings() models.Settings {
	s := models.Settings{}
	models.ApplyDefaultSettings(&s)
	return s
}
