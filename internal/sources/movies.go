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
	moviesNowPlayingPath = "/movie/now_playing"
	moviesSearchPath     = "/search/movie"
	defaultMovieMinutes  = 150
)

type genre struct {
	name  string
	moods []models.Mood
}

var movieGenres = map[int]genre{
	28:    {"action", []models.Mood{models.MoodEnergetic, models.MoodAdventurous}},
	12:    {"adventure", []models.Mood{models.MoodAdventurous}},
	16:    {"animation", []models.Mood{models.MoodFun, models.MoodCozy}},
	35:    {"comedy", []models.Mood{models.MoodFun}},
	80:    {"crime", []models.Mood{models.MoodAdventurous}},
	99:    {"documentary", []models.Mood{models.MoodProductive}},
	18:    {"drama", []models.Mood{models.MoodPeaceful}},
	10751: {"family", []models.Mood{models.MoodCozy, models.MoodSocial}},
	14:    {"fantasy", []models.Mood{models.MoodCreative}},
	27:    {"horror", []models.Mood{models.MoodAdventurous}},
	10402: {"music", []models.Mood{models.MoodEnergetic, models.MoodCreative}},
	9648:  {"mystery", []models.Mood{models.MoodCreative}},
	10749: {"romance", []models.Mood{models.MoodRomantic}},
	878:   {"science fiction", []models.Mood{models.MoodCreative, models.MoodAdventurous}},
	53:    {"thriller", []models.Mood{models.MoodEnergetic}},
}

type rawMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
}

type rawMoviePage struct {
	Page    int        `json:"page"`
	Results []rawMovie `json:"results"`
}

// Movies lists films in theaters, or searches by title when a query is set
type Movies struct {
	base
	client *fetch.Client
}

func NewMovies(client *fetch.Client, cat *catalog.Catalog) *Movies {
	return &Movies{
		base:   base{name: constants.AdapterMovies, catalog: cat, categories: []models.Category{models.CategoryEntertainment}},
		client: client,
	}
}

func (m *Movies) SearchActivities(ctx context.Context, filters models.SearchFilters) models.ActivityResponse {
	filters = filters.WithDefaults(constants.DefaultSearchLimit)
	if !m.serves(filters.Category) {
		return models.OK([]models.Activity{}, constants.SourceAPI)
	}

	path := moviesNowPlayingPath
	params := map[string]string{"page": "1"}
	if q := strings.TrimSpace(filters.Query); q != "" {
		path = moviesSearchPath
		params["query"] = q
	}

	var page rawMoviePage
	if err := m.client.Get(ctx, path, params, &page); err != nil {
		return m.fail(err)
	}

	rows := make([]models.Activity, 0, len(page.Results))
	for _, r := range page.Results {
		if a, ok := normalizeMovie(r); ok {
			rows = append(rows, a)
		}
	}

	// the title search already matched upstream
	local := filters
	local.Query = ""
	return m.finish(rows, local)
}

func normalizeMovie(r rawMovie) (models.Activity, bool) {
	title := strings.TrimSpace(r.Title)
	if r.ID == 0 || title == "" {
		return models.Activity{}, false
	}

	var names []string
	var moods []string
	for _, id := range r.GenreIDs {
		g, ok := movieGenres[id]
		if !ok {
			continue
		}
		names = append(names, g.name)
		for _, mood := range g.moods {
			moods = append(moods, string(mood))
		}
	}

	duration := r.Runtime
	if duration <= 0 {
		duration = defaultMovieMinutes
	}

	return models.Activity{
		ID:          "movies-" + strconv.Itoa(r.ID),
		Title:       title,
		Description: r.Overview,
		Category:    models.CategoryEntertainment,
		Mood:        models.NormalizeMoods(moods),
		DurationMin: duration,
		Price:       models.PriceLow,
		Tags:        append([]string{"movie", "cinema"}, names...),
	}, true
}
