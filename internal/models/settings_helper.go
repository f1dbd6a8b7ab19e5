package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/weekendly/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys may carry the settings namespace prefix.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for rawKey, value := range data {
		key := strings.TrimPrefix(rawKey, constants.SettingsNamespace)
		switch key {
		case constants.SettingTheme:
			settings.Theme = value
		case constants.SettingHomeName:
			settings.HomeName = value
		case constants.SettingHomeLat:
			if value == "" {
				continue
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing home_lat: %w", err)
			}
			settings.HomeLat = &f
		case constants.SettingHomeLon:
			if value == "" {
				continue
			}
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing home_lon: %w", err)
			}
			settings.HomeLon = &f
		case constants.SettingRadiusMeters:
			if _, err := fmt.Sscanf(value, "%d", &settings.RadiusMeters); err != nil {
				return Settings{}, fmt.Errorf("parsing radius_meters: %w", err)
			}
		case constants.SettingDefaultLimit:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultLimit); err != nil {
				return Settings{}, fmt.Errorf("parsing default_limit: %w", err)
			}
		case constants.SettingCountry:
			settings.Country = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to namespaced key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	ns := constants.SettingsNamespace
	m := map[string]string{
		ns + constants.SettingTheme:        settings.Theme,
		ns + constants.SettingHomeName:     settings.HomeName,
		ns + constants.SettingHomeLat:      "",
		ns + constants.SettingHomeLon:      "",
		ns + constants.SettingRadiusMeters: fmt.Sprintf("%d", settings.RadiusMeters),
		ns + constants.SettingDefaultLimit: fmt.Sprintf("%d", settings.DefaultLimit),
		ns + constants.SettingCountry:      settings.Country,
	}
	if settings.HomeLat != nil {
		m[ns+constants.SettingHomeLat] = strconv.FormatFloat(*settings.HomeLat, 'f', -1, 64)
	}
	if settings.HomeLon != nil {
		m[ns+constants.SettingHomeLon] = strconv.FormatFloat(*settings.HomeLon, 'f', -1, 64)
	}
	return m
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Theme == "" {
		settings.Theme = constants.DefaultTheme
	}
	if settings.RadiusMeters == 0 {
		settings.RadiusMeters = constants.DefaultRadiusMeters
	}
	if settings.DefaultLimit == 0 {
		settings.DefaultLimit = constants.DefaultLimit
	}
	if settings.Country == "" {
		settings.Country = constants.DefaultCountry
	}
}
