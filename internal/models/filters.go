package models

import "strings"

// TimeOfDay narrows results to activities suited to part of the day
type TimeOfDay string

const (
	TimeOfDayAny       TimeOfDay = ""
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
)

// Coordinates is a WGS84 point
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchFilters is the query accepted by every adapter and the aggregation manager
type SearchFilters struct {
	Category     Category     `json:"category,omitempty"`
	Moods        []Mood       `json:"moods,omitempty"`
	Query        string       `json:"query,omitempty"`
	Location     *Coordinates `json:"location,omitempty"`
	RadiusMeters int          `json:"radius,omitempty"`
	MaxPrice     PriceLevel   `json:"maxPrice,omitempty"`
	TimeOfDay    TimeOfDay    `json:"timeOfDay,omitempty"`
	IndoorOnly   bool         `json:"indoorOnly,omitempty"`
	Limit        int          `json:"limit,omitempty"`
}

// WithDefaults returns a copy with the limit defaulted when unset
func (f SearchFilters) WithDefaults(defaultLimit int) SearchFilters {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	return f
}

// ParseTimeOfDay resolves a part-of-day name. The empty string means any time.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	switch t := TimeOfDay(strings.ToLower(strings.TrimSpace(s))); t {
	case TimeOfDayAny, TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening:
		return t, true
	}
	return "", false
}
