package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/weekendly/internal/models"
)

type fileActivity struct {
	ID               string           `yaml:"id"`
	Title            string           `yaml:"title"`
	Description      string           `yaml:"description"`
	Category         string           `yaml:"category"`
	Mood             []string         `yaml:"mood"`
	Duration         int              `yaml:"duration"`
	Price            string           `yaml:"price"`
	Cost             *float64         `yaml:"cost"` // numeric estimate, used when price is empty
	Location         *models.Location `yaml:"location"`
	WeatherDependent bool             `yaml:"weather_dependent"`
	Tags             []string         `yaml:"tags"`
}

type catalogFile struct {
	Activities []fileActivity `yaml:"activities"`
}

// LoadFile reads a YAML catalog of the form
//
//	activities:
//	  - id: pottery
//	    title: Pottery Class
//	    category: cultural
//	    mood: [creative, relaxed]
//	    duration: 120
//	    cost: 35
//
// Moods are normalized, every entry is validated and duplicate ids are
// rejected.
func LoadFile(path string) ([]models.Activity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	out := make([]models.Activity, 0, len(f.Activities))
	seen := make(map[string]bool, len(f.Activities))
	for i, raw := range f.Activities {
		a, err := raw.toActivity()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("catalog entry %d: %w: duplicate id %s", i+1, models.ErrInvalidActivity, a.ID)
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out, nil
}

// Load returns the built-in catalog with the activities of path merged in
// front. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Default().Merge(extra)
}

func (f fileActivity) toActivity() (models.Activity, error) {
	cat, ok := models.ParseCategory(f.Category)
	if !ok {
		return models.Activity{}, fmt.Errorf("%w: unknown category %q for %s", models.ErrInvalidActivity, f.Category, f.ID)
	}

	price := models.PriceLow
	switch {
	case f.Price != "":
		p, ok := models.ParsePriceLevel(f.Price)
		if !ok {
			return models.Activity{}, fmt.Errorf("%w: unknown price %q for %s", models.ErrInvalidActivity, f.Price, f.ID)
		}
		price = p
	case f.Cost != nil:
		price = models.PriceFromEstimate(*f.Cost)
	}

	a := models.Activity{
		ID:               f.ID,
		Title:            f.Title,
		Description:      f.Description,
		Category:         cat,
		Mood:             models.NormalizeMoods(f.Mood),
		DurationMin:      f.Duration,
		Price:            price,
		Location:         f.Location,
		WeatherDependent: f.WeatherDependent,
		Tags:             f.Tags,
	}
	return a, a.Validate()
}
