// Package holidays detects long weekends from a public-holiday API
package holidays

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/fetch"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/models"
)

// Holiday is one public holiday as returned by the upstream
type Holiday struct {
	Date      string   `json:"date"`
	LocalName string   `json:"localName"`
	Name      string   `json:"name"`
	Country   string   `json:"countryCode"`
	Global    bool     `json:"global"`
	Counties  []string `json:"counties"`
	Types     []string `json:"types"`
}

// Weekend is the plannable days of one weekend
type Weekend struct {
	Saturday time.Time         `json:"saturday"`
	Days     []models.Day      `json:"days"`
	Holidays map[string]string `json:"holidays,omitempty"` // day -> holiday name
}

// Service looks up national holidays for a country
type Service struct {
	client  *fetch.Client
	country string
}

func New(client *fetch.Client, country string) *Service {
	if country == "" {
		country = constants.DefaultCountry
	}
	return &Service{client: client, country: strings.ToUpper(country)}
}

// Holidays returns the national holidays of year
func (s *Service) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	var out []Holiday
	path := fmt.Sprintf("/api/v3/PublicHolidays/%d/%s", year, s.country)
	if err := s.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WeekendDays returns the plannable days of the weekend starting on the
// Saturday on or after saturday. Friday and Monday are included when they are national
// holidays. Any upstream failure yields saturday and sunday with source
// "fallback".
func (s *Service) WeekendDays(ctx context.Context, saturday time.Time) models.Response[Weekend] {
	saturday = NextSaturday(saturday)
	friday := saturday.AddDate(0, 0, -1)
	monday := saturday.AddDate(0, 0, 2)

	base := Weekend{Saturday: saturday, Days: append([]models.Day(nil), models.PrimaryDays...)}

	byDate := make(map[string]Holiday)
	years := []int{friday.Year()}
	if monday.Year() != friday.Year() {
		years = append(years, monday.Year())
	}
	for _, y := range years {
		list, err := s.Holidays(ctx, y)
		if err != nil {
			logger.Info("Holiday lookup failed, using plain weekend", "country", s.country, "year", y, "error", err)
			fetch.RecordFallback("holidays")
			return models.OK(base, constants.SourceFallback)
		}
		for _, h := range list {
			if h.Global {
				byDate[h.Date] = h
			}
		}
	}

	w := Weekend{Saturday: saturday}
	if h, ok := byDate[friday.Format(constants.DateFormat)]; ok {
		w.Days = append(w.Days, models.DayFriday)
		w.addHoliday(models.DayFriday, h)
	}
	w.Days = append(w.Days, models.PrimaryDays...)
	for _, d := range []models.Day{models.DaySaturday, models.DaySunday} {
		date := saturday.AddDate(0, 0, d.Index()-models.DaySaturday.Index())
		if h, ok := byDate[date.Format(constants.DateFormat)]; ok {
			w.addHoliday(d, h)
		}
	}
	if h, ok := byDate[monday.Format(constants.DateFormat)]; ok {
		w.Days = append(w.Days, models.DayMonday)
		w.addHoliday(models.DayMonday, h)
	}
	return models.OK(w, constants.SourceAPI)
}

// IsLongWeekend reports whether the weekend includes friday or monday
func (w Weekend) IsLongWeekend() bool {
	return len(w.Days) > len(models.PrimaryDays)
}

func (w *Weekend) addHoliday(d models.Day, h Holiday) {
	if w.Holidays == nil {
		w.Holidays = make(map[string]string)
	}
	name := h.Name
	if name == "" {
		name = h.LocalName
	}
	w.Holidays[string(d)] = name
}

// NextSaturday returns the Saturday on or after t
func NextSaturday(t time.Time) time.Time {
	offset := (int(time.Saturday) - int(t.Weekday()) + 7) % 7
	return startOfDay(t.AddDate(0, 0, offset))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
