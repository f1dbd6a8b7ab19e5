// Package sources holds the upstream activity adapters. Each adapter turns
// one upstream response shape into models.Activity and can answer from the
// static catalog when the upstream cannot.
package sources

import (
	"context"
	"errors"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/fetch"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
)

var ErrLocationRequired = errors.New("location is required for this source")

// Adapter is one upstream activity source
type Adapter interface {
	Name() string
	// SearchActivities queries the upstream only. It never falls back and
	// reports every failure as an unsuccessful response.
	SearchActivities(ctx context.Context, filters models.SearchFilters) models.ActivityResponse
	// FallbackData answers filters from the static catalog
	FallbackData(filters models.SearchFilters) []models.Activity
}

// GetActivities returns live results when the upstream succeeds with at
// least one activity and fallback data otherwise. The response is only
// unsuccessful when the fallback catalog has nothing for filters either.
func GetActivities(ctx context.Context, a Adapter, filters models.SearchFilters) models.ActivityResponse {
	filters = filters.WithDefaults(constants.DefaultSearchLimit)

	return a.SearchActivities(ctx, filters).OrElse(models.NonEmpty, func() models.ActivityResponse {
		fetch.RecordFallback(a.Name())
		data := a.FallbackData(filters)
		logger.Info("Using fallback data", "adapter", a.Name(), "count", len(data))
		if len(data) == 0 {
			resp := models.Fail[[]models.Activity](errors.New("no activities match the filters"), constants.SourceFallback)
			resp.Data = []models.Activity{}
			return resp
		}
		return models.OK(data, constants.SourceFallback)
	})
}

// base carries what every adapter shares
type base struct {
	name       string
	catalog    *catalog.Catalog
	categories []models.Category
}

func (b *base) Name() string {
	return b.name
}

func (b *base) FallbackData(filters models.SearchFilters) []models.Activity {
	return b.catalog.Fallback(filters.WithDefaults(constants.DefaultSearchLimit), b.categories...)
}

// serves reports whether the adapter can produce activities of category c
func (b *base) serves(c models.Category) bool {
	if c == "" {
		return true
	}
	for _, known := range b.categories {
		if known == c {
			return true
		}
	}
	return false
}

// finish validates normalized rows, runs the shared filter pipeline and
// wraps the result
func (b *base) finish(rows []models.Activity, filters models.SearchFilters) models.ActivityResponse {
	valid := make([]models.Activity, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, a := range rows {
		if err := a.Validate(); err != nil {
			logger.Debug("Dropping upstream row", "adapter", b.name, "error", err)
			continue
		}
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		valid = append(valid, a)
	}
	return models.OK(catalog.Apply(valid, filters), constants.SourceAPI)
}

func (b *base) fail(err error) models.ActivityResponse {
	return models.Fail[[]models.Activity](err, constants.SourceAPI)
}
