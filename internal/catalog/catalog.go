// Package catalog holds the static activity catalog used when upstream
// sources are unavailable, and the filter pipeline every source applies.
package catalog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekendly/internal/models"
)

// Catalog is an immutable, ordered set of activities with unique ids
type Catalog struct {
	items []models.Activity
	index map[string]int
}

// New validates items and rejects duplicate ids
func New(items []models.Activity) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.Activity, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, a := range items {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", models.ErrInvalidActivity, a.ID)
		}
		c.index[a.ID] = len(c.items)
		c.items = append(c.items, a)
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Merge returns a catalog with front placed ahead of c. Entries in front
// shadow entries of c that share an id.
func (c *Catalog) Merge(front []models.Activity) (*Catalog, error) {
	head, err := New(front)
	if err != nil {
		return nil, err
	}
	merged := append([]models.Activity{}, head.items...)
	for _, a := range c.items {
		if _, shadowed := head.index[a.ID]; !shadowed {
			merged = append(merged, a)
		}
	}
	return New(merged)
}

// All returns a copy of every activity in catalog order
func (c *Catalog) All() []models.Activity {
	return append([]models.Activity(nil), c.items...)
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Get looks up an activity by id
func (c *Catalog) Get(id string) (models.Activity, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Activity{}, false
	}
	return c.items[i], true
}

// Search runs the filter pipeline over the catalog
func (c *Catalog) Search(filters models.SearchFilters) []models.Activity {
	return Apply(c.items, filters)
}

// Fallback returns catalog data for filters. When filters has no category,
// results are restricted to defaultCategories (all categories if empty). If
// the mood filter, then the query filter, would leave nothing, each is
// dropped in turn. The result may still be empty when price, weather or
// time of day exclude everything.
func (c *Catalog) Fallback(filters models.SearchFilters, defaultCategories ...models.Category) []models.Activity {
	pool := c.items
	if filters.Category == "" && len(defaultCategories) > 0 {
		pool = inCategories(c.items, defaultCategories)
	}

	attempts := []models.SearchFilters{filters}
	relaxed := filters
	if len(relaxed.Moods) > 0 {
		relaxed.Moods = nil
		attempts = append(attempts, relaxed)
	}
	if relaxed.Query != "" {
		relaxed.Query = ""
		attempts = append(attempts, relaxed)
	}

	for _, f := range attempts {
		if out := Apply(pool, f); len(out) > 0 {
			return out
		}
	}
	return []models.Activity{}
}

// Apply filters list by category, mood overlap, free-text query, maximum
// price, weather and time of day, then truncates to the limit. The input is
// not modified and the result is never nil.
func Apply(list []models.Activity, filters models.SearchFilters) []models.Activity {
	query := strings.ToLower(strings.TrimSpace(filters.Query))
	maxRank := -1
	if filters.MaxPrice != "" {
		maxRank = filters.MaxPrice.Rank()
	}

	out := []models.Activity{}
	for _, a := range list {
		if filters.Category != "" && a.Category != filters.Category {
			continue
		}
		if len(filters.Moods) > 0 && !a.HasMood(filters.Moods...) {
			continue
		}
		if query != "" && !matchesQuery(a, query) {
			continue
		}
		if maxRank >= 0 && a.Price.Rank() > maxRank {
			continue
		}
		if filters.IndoorOnly && a.WeatherDependent {
			continue
		}
		if !suitsTimeOfDay(a, filters.TimeOfDay) {
			continue
		}
		out = append(out, a)
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
	}
	return out
}

func inCategories(list []models.Activity, cats []models.Category) []models.Activity {
	var out []models.Activity
	for _, a := range list {
		for _, c := range cats {
			if a.Category == c {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

func matchesQuery(a models.Activity, query string) bool {
	if strings.Contains(strings.ToLower(a.Title), query) ||
		strings.Contains(strings.ToLower(a.Description), query) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// suitsTimeOfDay treats activities without a morning/afternoon/evening tag
// as suitable at any time.
func suitsTimeOfDay(a models.Activity, tod models.TimeOfDay) bool {
	if tod == models.TimeOfDayAny {
		return true
	}
	tagged := false
	for _, tag := range a.Tags {
		switch models.TimeOfDay(strings.ToLower(tag)) {
		case tod:
			return true
		case models.TimeOfDayMorning, models.TimeOfDayAfternoon, models.TimeOfDayEvening:
			tagged = true
		}
	}
	return !tagged
}
