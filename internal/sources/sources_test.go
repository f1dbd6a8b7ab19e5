package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/fetch"
	"github.com/julianstephens/weekendly/internal/models"
)

type brokenTransport struct{}

func (brokenTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("network unreachable")
}

func brokenClient(name string) *fetch.Client {
	return fetch.New(fetch.Config{
		Name:       name,
		BaseURL:    "http://upstream.invalid",
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
		Transport:  brokenTransport{},
	})
}

func serve(t *testing.T, body string, seen *url.URL) *fetch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = *r.URL
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return fetch.New(fetch.Config{Name: "test", BaseURL: srv.URL, RetryDelay: time.Millisecond})
}

var home = &models.Coordinates{Lat: 40.7128, Lon: -74.006}

func TestGetActivities_FailingTransportFallsBack(t *testing.T) {
	places := NewPlaces(brokenClient("places-broken"), catalog.Default())

	resp := GetActivities(context.Background(), places, models.SearchFilters{Category: models.CategoryFood, Limit: 5, Location: home})

	require.True(t, resp.Success)
	assert.Equal(t, constants.SourceFallback, resp.Source)
	assert.NotEmpty(t, resp.Data)
	assert.LessOrEqual(t, len(resp.Data), 5)
	for _, a := range resp.Data {
		assert.Equal(t, models.CategoryFood, a.Category, a.ID)
	}
}

func TestGetActivities_FallbackForEveryCategory(t *testing.T) {
	cat := catalog.Default()
	adapters := []Adapter{
		NewPlaces(brokenClient("places-every"), cat),
		NewMovies(brokenClient("movies-every"), cat),
		NewGames(brokenClient("games-every"), cat),
	}

	for _, a := range adapters {
		for _, c := range models.Categories {
			resp := GetActivities(context.Background(), a, models.SearchFilters{Category: c, Location: home})
			require.True(t, resp.Success, "%s/%s", a.Name(), c)
			assert.Equal(t, constants.SourceFallback, resp.Source)
			require.NotEmpty(t, resp.Data, "%s/%s", a.Name(), c)
			for _, act := range resp.Data {
				assert.Equal(t, c, act.Category)
			}
		}
	}
}

func TestGetActivities_EmptyFallbackIsUnsuccessful(t *testing.T) {
	games := NewGames(brokenClient("games-empty"), catalog.Default())

	// every outdoor activity depends on the weather
	resp := GetActivities(context.Background(), games, models.SearchFilters{
		Category:   models.CategoryOutdoor,
		IndoorOnly: true,
	})

	assert.False(t, resp.Success)
	assert.Equal(t, constants.SourceFallback, resp.Source)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.NotEmpty(t, resp.Error)
}

func TestPlaces_RequiresLocation(t *testing.T) {
	places := NewPlaces(brokenClient("places-noloc"), catalog.Default())

	resp := places.SearchActivities(context.Background(), models.SearchFilters{Category: models.CategoryFood})
	assert.False(t, resp.Success)
	assert.Equal(t, constants.SourceAPI, resp.Source)
	assert.Contains(t, resp.Error, ErrLocationRequired.Error())

	wrapped := GetActivities(context.Background(), places, models.SearchFilters{Category: models.CategoryFood})
	assert.True(t, wrapped.Success)
	assert.Equal(t, constants.SourceFallback, wrapped.Source)
}

func TestPlaces_Normalizes(t *testing.T) {
	body := `[
		{"xid":"N1","name":"Joe's Pizza","dist":450.5,"rate":3,"kinds":"foods,restaurants","point":{"lon":-74.0,"lat":40.71}},
		{"xid":"N2","name":"","dist":100,"kinds":"foods","point":{"lon":0,"lat":0}},
		{"xid":"N3","name":"Parking Lot","dist":10,"kinds":"transport","point":{"lon":0,"lat":0}},
		{"xid":"N4","name":"Central Park","dist":1200,"kinds":"natural,urban_environment","point":{"lon":-73.96,"lat":40.78}}
	]`
	var seen url.URL
	places := NewPlaces(serve(t, body, &seen), catalog.Default())

	resp := places.SearchActivities(context.Background(), models.SearchFilters{Location: home, RadiusMeters: 2000})
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, constants.SourceAPI, resp.Source)
	require.Len(t, resp.Data, 2)

	pizza := resp.Data[0]
	assert.Equal(t, "places-N1", pizza.ID)
	assert.Equal(t, models.CategoryFood, pizza.Category)
	assert.Equal(t, 90, pizza.DurationMin)
	assert.Equal(t, "0.5 km away", pizza.Description)
	require.NotNil(t, pizza.Location)
	assert.InDelta(t, 40.71, *pizza.Location.Lat, 1e-9)

	park := resp.Data[1]
	assert.Equal(t, models.CategoryOutdoor, park.Category)
	assert.True(t, park.WeatherDependent)
	assert.Equal(t, models.PriceFree, park.Price)

	assert.Equal(t, placesRadiusPath, seen.Path)
	assert.Equal(t, "2000", seen.Query().Get("radius"))
	assert.Equal(t, "40.71280", seen.Query().Get("lat"))
}

func TestPlaces_CategoryKinds(t *testing.T) {
	var seen url.URL
	places := NewPlaces(serve(t, `[]`, &seen), catalog.Default())

	resp := places.SearchActivities(context.Background(), models.SearchFilters{Location: home, Category: models.CategoryShopping})
	require.True(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.Equal(t, "shops", seen.Query().Get("kinds"))

	// an empty live result triggers fallback in the wrapper
	wrapped := GetActivities(context.Background(), places, models.SearchFilters{Location: home, Category: models.CategoryShopping})
	assert.Equal(t, constants.SourceFallback, wrapped.Source)
}

func TestMovies_Normalizes(t *testing.T) {
	body := `{"page":1,"results":[
		{"id":101,"title":"Space Romance","overview":"Love among the stars","genre_ids":[10749,878],"vote_average":7.1},
		{"id":102,"title":"Mystery Genre","overview":"Unknown genre","genre_ids":[424242]},
		{"id":0,"title":"No ID"}
	]}`
	var seen url.URL
	movies := NewMovies(serve(t, body, &seen), catalog.Default())

	resp := movies.SearchActivities(context.Background(), models.SearchFilters{})
	require.True(t, resp.Success, resp.Error)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, moviesNowPlayingPath, seen.Path)

	first := resp.Data[0]
	assert.Equal(t, "movies-101", first.ID)
	assert.Equal(t, models.CategoryEntertainment, first.Category)
	assert.Equal(t, defaultMovieMinutes, first.DurationMin)
	assert.Equal(t, models.PriceLow, first.Price)
	assert.Equal(t, []models.Mood{models.MoodRomantic, models.MoodCreative, models.MoodAdventurous}, first.Mood)
	assert.Contains(t, first.Tags, "science fiction")

	assert.Equal(t, []models.Mood{models.DefaultMood}, resp.Data[1].Mood)
}

func TestMovies_QueryUsesSearch(t *testing.T) {
	var seen url.URL
	movies := NewMovies(serve(t, `{"results":[{"id":7,"title":"Heist","genre_ids":[80]}]}`, &seen), catalog.Default())

	resp := movies.SearchActivities(context.Background(), models.SearchFilters{Query: "heist"})
	require.True(t, resp.Success)
	assert.Equal(t, moviesSearchPath, seen.Path)
	assert.Equal(t, "heist", seen.Query().Get("query"))
	assert.Len(t, resp.Data, 1)
}

func TestMovies_OtherCategorySkipsNetwork(t *testing.T) {
	movies := NewMovies(brokenClient("movies-skip"), catalog.Default())
	resp := movies.SearchActivities(context.Background(), models.SearchFilters{Category: models.CategoryFood})
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestMovies_MalformedPayload(t *testing.T) {
	movies := NewMovies(serve(t, `{"results":`, nil), catalog.Default())
	resp := movies.SearchActivities(context.Background(), models.SearchFilters{})
	assert.False(t, resp.Success)
	assert.Equal(t, constants.SourceAPI, resp.Source)
	assert.Contains(t, resp.Error, fetch.ErrMalformedPayload.Error())
}

func TestGames_Normalizes(t *testing.T) {
	body := `{"count":3,"results":[
		{"id":1,"name":"Quick Puzzle","playtime":0,"rating":4.2,"genres":[{"name":"Puzzle","slug":"puzzle"}],"tags":[{"name":"Free to Play","slug":"free-to-play"}]},
		{"id":2,"name":"Epic RPG","playtime":80,"rating":4.6,"genres":[{"name":"RPG","slug":"role-playing-games-rpg"}],"tags":[{"name":"Co-op","slug":"co-op"}]},
		{"id":3,"name":"Racer","playtime":3,"rating":3.9,"released":"2024-05-01","genres":[{"name":"Racing","slug":"racing"}]}
	]}`
	var seen url.URL
	games := NewGames(serve(t, body, &seen), catalog.Default())

	resp := games.SearchActivities(context.Background(), models.SearchFilters{Limit: 5})
	require.True(t, resp.Success, resp.Error)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "10", seen.Query().Get("page_size"))

	assert.Equal(t, 60, resp.Data[0].DurationMin)
	assert.Equal(t, models.PriceFree, resp.Data[0].Price)
	assert.Equal(t, 240, resp.Data[1].DurationMin)
	assert.Equal(t, []models.Mood{models.MoodAdventurous, models.MoodSocial}, resp.Data[1].Mood)
	assert.Equal(t, 180, resp.Data[2].DurationMin)
	assert.Equal(t, "Rated 3.9, released 2024-05-01", resp.Data[2].Description)
	for _, a := range resp.Data {
		assert.Equal(t, models.CategoryGaming, a.Category)
	}
}

func TestGames_MoodFilterAppliedLocally(t *testing.T) {
	body := `{"results":[
		{"id":1,"name":"Calm Sim","playtime":2,"genres":[{"name":"Simulation","slug":"simulation"}]},
		{"id":2,"name":"Loud Shooter","playtime":2,"genres":[{"name":"Shooter","slug":"shooter"}]}
	]}`
	games := NewGames(serve(t, body, nil), catalog.Default())

	resp := games.SearchActivities(context.Background(), models.SearchFilters{Moods: []models.Mood{models.MoodPeaceful}})
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "games-1", resp.Data[0].ID)
}

func TestFixture(t *testing.T) {
	fixture := NewFixture(catalog.Default())
	filters := models.SearchFilters{Category: models.CategoryWellness}

	first := fixture.SearchActivities(context.Background(), filters)
	second := fixture.SearchActivities(context.Background(), filters)

	require.True(t, first.Success)
	assert.Equal(t, constants.SourceFixture, first.Source)
	assert.Equal(t, first.Data, second.Data)
	require.NotEmpty(t, first.Data)
	for _, a := range first.Data {
		assert.Contains(t, a.ID, "fixture-")
		assert.Contains(t, a.Tags, "sample")
		assert.Equal(t, models.CategoryWellness, a.Category)
	}

	// source data is untouched
	orig, ok := catalog.Default().Get("wellness-yoga")
	require.True(t, ok)
	assert.NotContains(t, orig.Tags, "sample")
}

func TestFixture_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fixture := NewFixture(catalog.Default())

	failed := fixture.SearchActivities(ctx, models.SearchFilters{Category: models.CategorySocial})
	assert.False(t, failed.Success)
	assert.Equal(t, constants.SourceAPI, failed.Source)
	assert.NotEmpty(t, failed.Error)

	resp := GetActivities(ctx, fixture, models.SearchFilters{Category: models.CategorySocial})
	assert.True(t, resp.Success)
	assert.Equal(t, constants.SourceFallback, resp.Source)
}
