package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/julianstephens/weekendly/internal/models"
)

// parseFilters reads SearchFilters from query parameters:
// category, mood (repeatable or comma separated), q, lat, lon, radius,
// maxPrice, timeOfDay, indoor, limit.
func parseFilters(q url.Values) (models.SearchFilters, error) {
	var f models.SearchFilters

	if raw := q.Get("category"); raw != "" {
		c, ok := models.ParseCategory(raw)
		if !ok {
			return f, fmt.Errorf("unknown category %q", raw)
		}
		f.Category = c
	}

	var moods []string
	for _, v := range q["mood"] {
		moods = append(moods, strings.Split(v, ",")...)
	}
	for _, raw := range moods {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		m, ok := models.ParseMood(raw)
		if !ok {
			return f, fmt.Errorf("unknown mood %q", raw)
		}
		f.Moods = append(f.Moods, m)
	}

	f.Query = strings.TrimSpace(q.Get("q"))

	lat, lon := q.Get("lat"), q.Get("lon")
	if lat != "" || lon != "" {
		la, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return f, fmt.Errorf("invalid lat %q", lat)
		}
		lo, err := strconv.ParseFloat(lon, 64)
		if err != nil {
			return f, fmt.Errorf("invalid lon %q", lon)
		}
		f.Location = &models.Coordinates{Lat: la, Lon: lo}
	}

	var err error
	if f.RadiusMeters, err = intParam(q, "radius"); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(q, "limit"); err != nil {
		return f, err
	}

	if raw := q.Get("maxPrice"); raw != "" {
		p, ok := models.ParsePriceLevel(raw)
		if !ok {
			return f, fmt.Errorf("unknown price level %q", raw)
		}
		f.MaxPrice = p
	}

	tod, ok := models.ParseTimeOfDay(q.Get("timeOfDay"))
	if !ok {
		return f, fmt.Errorf("unknown time of day %q", q.Get("timeOfDay"))
	}
	f.TimeOfDay = tod

	if raw := q.Get("indoor"); raw != "" {
		if f.IndoorOnly, err = strconv.ParseBool(raw); err != nil {
			return f, fmt.Errorf("invalid indoor %q", raw)
		}
	}

	return f, nil
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}
