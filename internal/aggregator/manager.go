// Package aggregator fans a query out to several activity sources and merges
// the answers.
package aggregator

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/sources"
)

// Route prefers Adapter for Mood
type Route struct {
	Mood    models.Mood
	Adapter string
}

// DefaultRoutes is searched in order; for each mood the first entry whose
// adapter is registered wins.
var DefaultRoutes = []Route{
	{models.MoodRelaxed, constants.AdapterMovies},
	{models.MoodRomantic, constants.AdapterMovies},
	{models.MoodCozy, constants.AdapterMovies},
	{models.MoodFun, constants.AdapterGames},
	{models.MoodProductive, constants.AdapterGames},
	{models.MoodAdventurous, constants.AdapterPlaces},
	{models.MoodEnergetic, constants.AdapterPlaces},
	{models.MoodSocial, constants.AdapterPlaces},
	{models.MoodCreative, constants.AdapterPlaces},
	{models.MoodPeaceful, constants.AdapterPlaces},
	{models.MoodFun, constants.AdapterMovies},
	{models.MoodSocial, constants.AdapterMovies},
	{models.MoodCozy, constants.AdapterGames},
	{models.MoodCreative, constants.AdapterGames},
	{models.MoodAdventurous, constants.AdapterGames},
}

type Option func(*Manager)

// WithRand sets the random source used to shuffle merged results
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// WithRoutes replaces DefaultRoutes
func WithRoutes(routes []Route) Option {
	return func(m *Manager) { m.routes = routes }
}

// WithDefaultLimit sets the limit used when a query does not set one
func WithDefaultLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.defaultLimit = n
		}
	}
}

// Manager is safe for concurrent use
type Manager struct {
	adapters     []sources.Adapter
	byName       map[string]sources.Adapter
	routes       []Route
	defaultLimit int
	log          *log.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(adapters []sources.Adapter, opts ...Option) *Manager {
	m := &Manager{
		adapters:     adapters,
		byName:       make(map[string]sources.Adapter, len(adapters)),
		routes:       DefaultRoutes,
		defaultLimit: constants.DefaultSearchLimit,
		log:          logger.Component("aggregator"),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, a := range adapters {
		m.byName[a.Name()] = a
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Adapters lists the registered adapter names in registration order
func (m *Manager) Adapters() []string {
	names := make([]string, len(m.adapters))
	for i, a := range m.adapters {
		names[i] = a.Name()
	}
	return names
}

// GetActivities queries a single adapter by name, with fallback
func (m *Manager) GetActivities(ctx context.Context, adapter string, filters models.SearchFilters) (models.ActivityResponse, bool) {
	a, ok := m.byName[adapter]
	if !ok {
		return models.ActivityResponse{}, false
	}
	return sources.GetActivities(ctx, a, filters.WithDefaults(m.defaultLimit)), true
}

// GetMixedActivities queries every adapter concurrently and merges the
// results
func (m *Manager) GetMixedActivities(ctx context.Context, filters models.SearchFilters) models.ActivityResponse {
	filters = filters.WithDefaults(m.defaultLimit)
	return m.merge(m.fanOut(ctx, m.adapters, filters), filters.Limit)
}

// GetSmartRecommendations queries only the adapters the routing table picks
// for the requested moods. Without moods, or when no route matches, every
// adapter is used.
func (m *Manager) GetSmartRecommendations(ctx context.Context, filters models.SearchFilters) models.ActivityResponse {
	filters = filters.WithDefaults(m.defaultLimit)
	picked := m.route(filters.Moods)
	m.log.Debug("Routing recommendations", "moods", filters.Moods, "adapters", names(picked))
	return m.merge(m.fanOut(ctx, picked, filters), filters.Limit)
}

// route resolves moods to adapters, keeping first-seen order
func (m *Manager) route(moods []models.Mood) []sources.Adapter {
	var picked []sources.Adapter
	seen := make(map[string]bool)
	for _, mood := range moods {
		for _, r := range m.routes {
			if r.Mood != mood {
				continue
			}
			a, ok := m.byName[r.Adapter]
			if !ok {
				continue
			}
			if !seen[r.Adapter] {
				seen[r.Adapter] = true
				picked = append(picked, a)
			}
			break
		}
	}
	if len(picked) == 0 {
		return m.adapters
	}
	return picked
}

// fanOut waits for every adapter. Each adapter's fallback keeps a slow or
// failing upstream from affecting the others.
func (m *Manager) fanOut(ctx context.Context, adapters []sources.Adapter, filters models.SearchFilters) []models.ActivityResponse {
	results := make([]models.ActivityResponse, len(adapters))
	var g errgroup.Group
	for i, a := range adapters {
		i, a := i, a
		g.Go(func() error {
			results[i] = sources.GetActivities(ctx, a, filters)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (m *Manager) merge(results []models.ActivityResponse, limit int) models.ActivityResponse {
	merged := []models.Activity{}
	seen := make(map[string]bool)
	source := ""
	for _, r := range results {
		if !r.Success {
			continue
		}
		switch source {
		case "":
			source = r.Source
		case r.Source:
		default:
			source = constants.SourceMixed
		}
		for _, a := range r.Data {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			merged = append(merged, a)
		}
	}

	if len(merged) == 0 {
		resp := models.Fail[[]models.Activity](errors.New("no activities available"), constants.SourceFallback)
		resp.Data = merged
		return resp
	}

	m.rngMu.Lock()
	m.rng.Shuffle(len(merged), func(i, j int) { merged[i], merged[j] = merged[j], merged[i] })
	m.rngMu.Unlock()

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return models.OK(merged, source)
}

func names(adapters []sources.Adapter) []string {
	out := make([]string, len(adapters))
	for i, a := range adapters {
		out[i] = a.Name()
	}
	return out
}
