package sources

import (
	"context"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/models"
)

// Fixture is a synthetic source for offline use and demos. It makes no
// network calls and labels its results with source "fixture".
type Fixture struct {
	base
}

func NewFixture(cat *catalog.Catalog) *Fixture {
	return &Fixture{
		base: base{name: constants.AdapterFixture, catalog: cat, categories: models.Categories},
	}
}

// SearchActivities derives sample activities from the catalog. The output
// is deterministic for a given catalog and filters.
func (f *Fixture) SearchActivities(ctx context.Context, filters models.SearchFilters) models.ActivityResponse {
	if err := ctx.Err(); err != nil {
		return f.fail(err)
	}
	filters = filters.WithDefaults(constants.DefaultSearchLimit)

	matches := f.catalog.Search(filters)
	out := make([]models.Activity, 0, len(matches))
	for _, a := range matches {
		s := a
		s.ID = "fixture-" + a.ID
		s.Description = "[sample] " + a.Description
		s.Mood = append([]models.Mood(nil), a.Mood...)
		s.Tags = append(append([]string(nil), a.Tags...), "sample")
		out = append(out, s)
	}
	return models.OK(out, constants.SourceFixture)
}
