package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/weekendly/internal/models"
)

const jsonStoreVersion = 1

// Store is the on-disk document written by JSONStore. Settings are kept under
// their namespaced keys so a file written by one version stays readable by
// the next.
type Store struct {
	Version  int                        `json:"version"`
	Settings map[string]string          `json:"settings"`
	Schedule []models.ScheduledActivity `json:"schedule"`
}

// JSONStore persists everything in a single JSON document. Every save
// rewrites the file through a temp file and rename.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.store = &Store{
		Version:  jsonStoreVersion,
		Settings: models.SettingsToMap(DefaultSettings()),
		Schedule: []models.ScheduledActivity{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d)", store.Version, jsonStoreVersion)
	}

	if store.Settings == nil {
		store.Settings = make(map[string]string)
	}
	if store.Schedule == nil {
		store.Schedule = []models.ScheduledActivity{}
	}
	s.store = store

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

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, ErrNotInitialized
	}
	if len(s.store.Settings) == 0 {
		return models.Settings{}, ErrSettingsNotFound
	}
	settings, err := models.MapToSettings(s.store.Settings)
	if err != nil {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return ErrNotInitialized
	}
	prev := s.store.Settings
	s.store.Settings = models.SettingsToMap(settings)
	if err := s.save(); err != nil {
		s.store.Settings = prev
		return err
	}
	return nil
}

func (s *JSONStore) LoadSchedule() ([]models.ScheduledActivity, error) {
	if s.store == nil {
		return nil, ErrNotInitialized
	}
	out := make([]models.ScheduledActivity, len(s.store.Schedule))
	copy(out, s.store.Schedule)
	return out, nil
}

func (s *JSONStore) SaveSchedule(items []models.ScheduledActivity) error {
	if s.store == nil {
		return ErrNotInitialized
	}
	prev := s.store.Schedule
	s.store.Schedule = make([]models.ScheduledActivity, len(items))
	copy(s.store.Schedule, items)
	if err := s.save(); err != nil {
		s.store.Schedule = prev
		return err
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
