package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekendly/internal/aggregator"
	"github.com/julianstephens/weekendly/internal/backup"
	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/config"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/fetch"
	"github.com/julianstephens/weekendly/internal/holidays"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/scheduler"
	"github.com/julianstephens/weekendly/internal/sources"
	"github.com/julianstephens/weekendly/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Config  *config.Config
	Catalog *catalog.Catalog

	engine  *scheduler.Engine
	clients map[string]*fetch.Client
}

// Engine restores the persisted schedule on first use. Every later mutation
// writes the whole collection back through the store.
func (c *Context) Engine() (*scheduler.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}
	items, err := c.Store.LoadSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	engine := scheduler.New(scheduler.WithPersister(c.Store))
	if err := engine.Restore(items); err != nil {
		return nil, fmt.Errorf("failed to restore schedule: %w", err)
	}
	c.engine = engine
	return engine, nil
}

// PerformAutomaticBackup snapshots a SQLite database before a destructive
// command. Failures are logged, never returned.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if !backup.Supported(path) {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Settings returns the stored preferences with defaults applied
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (c *Context) client(cfg fetch.Config) *fetch.Client {
	if c.clients == nil {
		c.clients = make(map[string]*fetch.Client)
	}
	if cl, ok := c.clients[cfg.Name]; ok {
		return cl
	}
	cl := fetch.New(cfg)
	c.clients[cfg.Name] = cl
	return cl
}

// Clients returns every upstream client built so far
func (c *Context) Clients() []*fetch.Client {
	out := make([]*fetch.Client, 0, len(c.clients))
	for _, name := range []string{constants.AdapterPlaces, constants.AdapterMovies, constants.AdapterGames, "holidays"} {
		if cl, ok := c.clients[name]; ok {
			out = append(out, cl)
		}
	}
	return out
}

// Adapters builds the upstream sources. The fixture source is added when
// WEEKENDLY_FIXTURE is set.
func (c *Context) Adapters() []sources.Adapter {
	adapters := []sources.Adapter{
		sources.NewPlaces(c.client(c.Config.Places()), c.Catalog),
		sources.NewMovies(c.client(c.Config.Movies()), c.Catalog),
		sources.NewGames(c.client(c.Config.Games()), c.Catalog),
	}
	if c.Config.Fixture {
		adapters = append(adapters, sources.NewFixture(c.Catalog))
	}
	return adapters
}

func (c *Context) Manager(settings models.Settings) *aggregator.Manager {
	return aggregator.New(c.Adapters(), aggregator.WithDefaultLimit(settings.DefaultLimit))
}

func (c *Context) Holidays(settings models.Settings) *holidays.Service {
	return holidays.New(c.client(c.Config.Holidays()), settings.Country)
}

// ParseDay resolves a day argument such as "sat" or "Sunday"
func ParseDay(s string) (models.Day, error) {
	day, ok := models.ParseDay(s)
	if !ok {
		return "", fmt.Errorf("invalid day %q, expected one of: %s", s, joinDays(models.Days))
	}
	return day, nil
}

// ParseSlot resolves a slot argument such as "9am", "14:00" or "10 AM"
func ParseSlot(s string) (models.TimeSlot, error) {
	slot, ok := models.ParseTimeSlot(s)
	if !ok {
		first, last := models.TimeSlots[0], models.TimeSlots[len(models.TimeSlots)-1]
		return "", fmt.Errorf("invalid time slot %q, expected %s through %s", s, first, last)
	}
	return slot, nil
}

func joinDays(days []models.Day) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}
