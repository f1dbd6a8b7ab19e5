package constants

import "time"

const (
	AppName            = "weekendly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/weekendly/weekendly.db"
	Version            = "v0.3.0"

	// TimeFormat is the clock format used for derived start/end times (HH:MM)
	TimeFormat = "15:04"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Upstream request policy
	DefaultMaxRetries     = 2
	DefaultRetryDelay     = 1 * time.Second
	DefaultAttemptTimeout = 8 * time.Second
	DefaultSearchLimit    = 10

	// Per-adapter cache TTLs
	PlacesCacheTTL   = 30 * time.Minute
	MoviesCacheTTL   = 6 * time.Hour
	GamesCacheTTL    = 24 * time.Hour
	HolidaysCacheTTL = 7 * 24 * time.Hour

	// CacheSweepSpec is the cron spec used by the server to evict expired cache entries
	CacheSweepSpec = "*/10 * * * *"

	// Response sources
	SourceAPI      = "api"
	SourceFallback = "fallback"
	SourceMixed    = "mixed"
	SourceFixture  = "fixture"

	// Adapter names
	AdapterPlaces  = "places"
	AdapterMovies  = "movies"
	AdapterGames   = "games"
	AdapterFixture = "fixture"

	// SlotConflictMessage is the user-facing text for a slot conflict
	SlotConflictMessage = "this time is already booked"
)
