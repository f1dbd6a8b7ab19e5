package sources

import (
	"context"
	"strconv"
	"strings"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/fetch"
	"github.com/julianstephens/weekendly/internal/models"
)

const (
	gamesListPath      = "/games"
	minGameSessionMins = 60
	maxGameSessionMins = 240
)

var gameGenreMoods = map[string][]models.Mood{
	"action":                 {models.MoodEnergetic},
	"adventure":              {models.MoodAdventurous},
	"arcade":                 {models.MoodFun, models.MoodEnergetic},
	"board-games":            {models.MoodSocial, models.MoodCozy},
	"card":                   {models.MoodSocial, models.MoodRelaxed},
	"casual":                 {models.MoodRelaxed, models.MoodCozy},
	"educational":            {models.MoodProductive},
	"family":                 {models.MoodCozy, models.MoodSocial},
	"indie":                  {models.MoodCreative},
	"massively-multiplayer":  {models.MoodSocial},
	"platformer":             {models.MoodFun},
	"puzzle":                 {models.MoodProductive, models.MoodPeaceful},
	"racing":                 {models.MoodEnergetic, models.MoodFun},
	"role-playing-games-rpg": {models.MoodAdventurous},
	"shooter":                {models.MoodEnergetic},
	"simulation":             {models.MoodPeaceful, models.MoodCreative},
	"sports":                 {models.MoodEnergetic, models.MoodSocial},
	"strategy":               {models.MoodProductive},
}

type rawNamed struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type rawGame struct {
	ID       int        `json:"id"`
	Slug     string     `json:"slug"`
	Name     string     `json:"name"`
	Released string     `json:"released"`
	Rating   float64    `json:"rating"`
	Playtime int        `json:"playtime"` // hours
	Genres   []rawNamed `json:"genres"`
	Tags     []rawNamed `json:"tags"`
}

type rawGamePage struct {
	Count   int       `json:"count"`
	Results []rawGame `json:"results"`
}

// Games lists popular video games, filtered by the query when set
type Games struct {
	base
	client *fetch.Client
}

func NewGames(client *fetch.Client, cat *catalog.Catalog) *Games {
	return &Games{
		base:   base{name: constants.AdapterGames, catalog: cat, categories: []models.Category{models.CategoryGaming}},
		client: client,
	}
}

func (g *Games) SearchActivities(ctx context.Context, filters models.SearchFilters) models.ActivityResponse {
	filters = filters.WithDefaults(constants.DefaultSearchLimit)
	if !g.serves(filters.Category) {
		return models.OK([]models.Activity{}, constants.SourceAPI)
	}

	params := map[string]string{
		"page_size": strconv.Itoa(filters.Limit * 2),
		"ordering":  "-rating",
	}
	local := filters
	if q := strings.TrimSpace(filters.Query); q != "" {
		params["search"] = q
		local.Query = ""
	}

	var page rawGamePage
	if err := g.client.Get(ctx, gamesListPath, params, &page); err != nil {
		return g.fail(err)
	}

	rows := make([]models.Activity, 0, len(page.Results))
	for _, r := range page.Results {
		if a, ok := normalizeGame(r); ok {
			rows = append(rows, a)
		}
	}
	return g.finish(rows, local)
}

func normalizeGame(r rawGame) (models.Activity, bool) {
	name := strings.TrimSpace(r.Name)
	if r.ID == 0 || name == "" {
		return models.Activity{}, false
	}

	var moods []string
	tags := []string{"video games"}
	for _, genre := range r.Genres {
		tags = append(tags, strings.ToLower(genre.Name))
		for _, m := range gameGenreMoods[genre.Slug] {
			moods = append(moods, string(m))
		}
	}

	price := models.PriceLow
	for _, t := range r.Tags {
		if t.Slug == "free-to-play" {
			price = models.PriceFree
		}
		if t.Slug == "multiplayer" || t.Slug == "co-op" {
			moods = append(moods, string(models.MoodSocial))
		}
	}

	return models.Activity{
		ID:          "games-" + strconv.Itoa(r.ID),
		Title:       name,
		Description: describeGame(r),
		Category:    models.CategoryGaming,
		Mood:        models.NormalizeMoods(moods),
		DurationMin: sessionMinutes(r.Playtime),
		Price:       price,
		Tags:        tags,
	}, true
}

// sessionMinutes turns total playtime hours into one sitting
func sessionMinutes(hours int) int {
	m := hours * 60
	if m < minGameSessionMins {
		return minGameSessionMins
	}
	if m > maxGameSessionMins {
		return maxGameSessionMins
	}
	return m
}

func describeGame(r rawGame) string {
	var b strings.Builder
	b.WriteString("Rated ")
	b.WriteString(strconv.FormatFloat(r.Rating, 'f', 1, 64))
	if r.Released != "" {
		b.WriteString(", released ")
		b.WriteString(r.Released)
	}
	return b.String()
}
