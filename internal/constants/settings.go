package constants

const (
	// Preference keys
	SettingTheme        = "theme"
	SettingHomeName     = "home_name"
	SettingHomeLat      = "home_lat"
	SettingHomeLon      = "home_lon"
	SettingRadiusMeters = "radius_meters"
	SettingDefaultLimit = "default_limit"
	SettingCountry      = "country"

	// SettingsNamespace prefixes every key written to the settings table
	SettingsNamespace = "weekendly.v1."

	// Default Settings Values
	DefaultTheme        = "light"
	DefaultRadiusMeters = 5000
	DefaultLimit        = DefaultSearchLimit
	DefaultCountry      = "US"
)
