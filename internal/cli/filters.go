package cli

import (
	"fmt"

	"github.com/julianstephens/weekendly/internal/models"
)

// FilterFlags are the search flags shared by browse and recommend
type FilterFlags struct {
	Category  string   `help:"Only show activities of this category." short:"c"`
	Mood      []string `help:"Moods to match, repeatable or comma separated." short:"m"`
	Query     string   `help:"Free text to match against title, description and tags." short:"q"`
	MaxPrice  string   `help:"Most expensive price level to include (free, low, medium, high)." name:"max-price"`
	TimeOfDay string   `help:"Part of the day (morning, afternoon, evening)." name:"time-of-day"`
	Indoor    bool     `help:"Only show activities that do not depend on the weather."`
	Limit     int      `help:"Maximum number of results. Defaults to the stored setting." short:"n"`
}

// Filters validates the flags and fills location and radius from settings
func (f FilterFlags) Filters(settings models.Settings) (models.SearchFilters, error) {
	filters := models.SearchFilters{
		Query:        f.Query,
		Location:     settings.Home(),
		RadiusMeters: settings.RadiusMeters,
		IndoorOnly:   f.Indoor,
		Limit:        f.Limit,
	}

	if f.Category != "" {
		cat, ok := models.ParseCategory(f.Category)
		if !ok {
			return models.SearchFilters{}, fmt.Errorf("unknown category %q", f.Category)
		}
		filters.Category = cat
	}

	for _, raw := range f.Mood {
		mood, ok := models.ParseMood(raw)
		if !ok {
			return models.SearchFilters{}, fmt.Errorf("unknown mood %q", raw)
		}
		filters.Moods = append(filters.Moods, mood)
	}

	if f.MaxPrice != "" {
		price, ok := models.ParsePriceLevel(f.MaxPrice)
		if !ok {
			return models.SearchFilters{}, fmt.Errorf("unknown price level %q", f.MaxPrice)
		}
		filters.MaxPrice = price
	}

	tod, ok := models.ParseTimeOfDay(f.TimeOfDay)
	if !ok {
		return models.SearchFilters{}, fmt.Errorf("unknown time of day %q", f.TimeOfDay)
	}
	filters.TimeOfDay = tod

	if filters.Limit < 0 {
		return models.SearchFilters{}, fmt.Errorf("limit must not be negative")
	}
	return filters.WithDefaults(settings.DefaultLimit), nil
}
