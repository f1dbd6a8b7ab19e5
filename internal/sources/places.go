package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/fetch"
	"github.com/julianstephens/weekendly/internal/models"
)

// placesRadiusPath is the OpenTripMap-style radius search endpoint
const placesRadiusPath = "/0.1/en/places/radius"

// kindCategories maps upstream kinds to categories. The first kind of a
// place that appears here decides its category.
var kindCategories = []struct {
	kind     string
	category models.Category
}{
	{"foods", models.CategoryFood},
	{"museums", models.CategoryCultural},
	{"theatres_and_entertainments", models.CategoryCultural},
	{"cultural", models.CategoryCultural},
	{"historic", models.CategoryCultural},
	{"amusements", models.CategoryEntertainment},
	{"sport", models.CategoryOutdoor},
	{"natural", models.CategoryOutdoor},
	{"beaches", models.CategoryOutdoor},
	{"shops", models.CategoryShopping},
}

var placeCategories = []models.Category{
	models.CategoryFood,
	models.CategoryOutdoor,
	models.CategoryCultural,
	models.CategoryEntertainment,
	models.CategoryShopping,
}

var categoryMoods = map[models.Category][]models.Mood{
	models.CategoryFood:          {models.MoodSocial, models.MoodRelaxed},
	models.CategoryOutdoor:       {models.MoodAdventurous, models.MoodEnergetic, models.MoodPeaceful},
	models.CategoryCultural:      {models.MoodCreative, models.MoodPeaceful},
	models.CategoryEntertainment: {models.MoodFun, models.MoodSocial},
	models.CategoryShopping:      {models.MoodFun, models.MoodRelaxed},
}

var categoryDurations = map[models.Category]int{
	models.CategoryFood:          90,
	models.CategoryOutdoor:       120,
	models.CategoryCultural:      120,
	models.CategoryEntertainment: 120,
	models.CategoryShopping:      90,
}

type placePoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type rawPlace struct {
	XID   string     `json:"xid"`
	Name  string     `json:"name"`
	Dist  float64    `json:"dist"`
	Rate  int        `json:"rate"`
	Kinds string     `json:"kinds"`
	Point placePoint `json:"point"`
}

// Places searches points of interest around filters.Location
type Places struct {
	base
	client *fetch.Client
}

func NewPlaces(client *fetch.Client, cat *catalog.Catalog) *Places {
	return &Places{
		base:   base{name: constants.AdapterPlaces, catalog: cat, categories: placeCategories},
		client: client,
	}
}

func (p *Places) SearchActivities(ctx context.Context, filters models.SearchFilters) models.ActivityResponse {
	filters = filters.WithDefaults(constants.DefaultSearchLimit)
	if filters.Location == nil {
		return p.fail(ErrLocationRequired)
	}
	if !p.serves(filters.Category) {
		return models.OK([]models.Activity{}, constants.SourceAPI)
	}

	radius := filters.RadiusMeters
	if radius <= 0 {
		radius = constants.DefaultRadiusMeters
	}
	params := map[string]string{
		"lat":    strconv.FormatFloat(filters.Location.Lat, 'f', 5, 64),
		"lon":    strconv.FormatFloat(filters.Location.Lon, 'f', 5, 64),
		"radius": strconv.Itoa(radius),
		"format": "json",
		// over-fetch so local filtering still has enough to work with
		"limit": strconv.Itoa(filters.Limit * 5),
	}
	if kinds := kindsFor(filters.Category); kinds != "" {
		params["kinds"] = kinds
	}

	var raw []rawPlace
	if err := p.client.Get(ctx, placesRadiusPath, params, &raw); err != nil {
		return p.fail(err)
	}

	rows := make([]models.Activity, 0, len(raw))
	for _, r := range raw {
		if a, ok := normalizePlace(r); ok {
			rows = append(rows, a)
		}
	}
	return p.finish(rows, filters)
}

func normalizePlace(r rawPlace) (models.Activity, bool) {
	name := strings.TrimSpace(r.Name)
	if r.XID == "" || name == "" {
		return models.Activity{}, false
	}
	kinds := strings.Split(r.Kinds, ",")
	cat, ok := categoryForKinds(kinds)
	if !ok {
		return models.Activity{}, false
	}

	lat, lon := r.Point.Lat, r.Point.Lon
	price := models.PriceLow
	if cat == models.CategoryOutdoor {
		price = models.PriceFree
	}

	return models.Activity{
		ID:               "places-" + r.XID,
		Title:            name,
		Description:      fmt.Sprintf("%.1f km away", r.Dist/1000),
		Category:         cat,
		Mood:             append([]models.Mood(nil), categoryMoods[cat]...),
		DurationMin:      categoryDurations[cat],
		Price:            price,
		Location:         &models.Location{Name: name, Lat: &lat, Lon: &lon},
		WeatherDependent: cat == models.CategoryOutdoor,
		Tags:             kinds,
	}, true
}

func categoryForKinds(kinds []string) (models.Category, bool) {
	for _, kc := range kindCategories {
		for _, k := range kinds {
			if strings.TrimSpace(k) == kc.kind {
				return kc.category, true
			}
		}
	}
	return "", false
}

func kindsFor(c models.Category) string {
	if c == "" {
		return ""
	}
	var kinds []string
	for _, kc := range kindCategories {
		if kc.category == c {
			kinds = append(kinds, kc.kind)
		}
	}
	return strings.Join(kinds, ",")
}
