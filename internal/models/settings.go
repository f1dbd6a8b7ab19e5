package models

// Settings holds persisted user preferences
type Settings struct {
	Theme        string   `json:"theme"`         // "light" or "dark"
	HomeName     string   `json:"home_name"`     // display name of the home location
	HomeLat      *float64 `json:"home_lat"`      // home latitude, nil when unset
	HomeLon      *float64 `json:"home_lon"`      // home longitude, nil when unset
	RadiusMeters int      `json:"radius_meters"` // search radius for location-based sources
	DefaultLimit int      `json:"default_limit"` // result limit when a query does not set one
	Country      string   `json:"country"`       // ISO 3166-1 alpha-2 code used for holiday lookups
}

// Home returns the home coordinates when both are set
func (s Settings) Home() *Coordinates {
	if s.HomeLat == nil || s.HomeLon == nil {
		return nil
	}
	return &Coordinates{Lat: *s.HomeLat, Lon: *s.HomeLon}
}
