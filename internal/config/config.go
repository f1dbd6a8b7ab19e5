// Package config reads upstream source and server settings from the
// environment. Variables use the WEEKENDLY_ prefix, e.g. WEEKENDLY_MOVIES_API_KEY.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/fetch"
	"github.com/julianstephens/weekendly/internal/logger"
)

const envPrefix = "WEEKENDLY"

type Config struct {
	// Upstream sources
	PlacesBaseURL   string `envconfig:"PLACES_BASE_URL" default:"https://api.opentripmap.com"`
	PlacesAPIKey    string `envconfig:"PLACES_API_KEY"`
	MoviesBaseURL   string `envconfig:"MOVIES_BASE_URL" default:"https://api.themoviedb.org/3"`
	MoviesAPIKey    string `envconfig:"MOVIES_API_KEY"`
	GamesBaseURL    string `envconfig:"GAMES_BASE_URL" default:"https://api.rawg.io/api"`
	GamesAPIKey     string `envconfig:"GAMES_API_KEY"`
	HolidaysBaseURL string `envconfig:"HOLIDAYS_BASE_URL" default:"https://date.nager.at"`

	// Fixture adds the synthetic sample adapter to the aggregation set
	Fixture bool `envconfig:"FIXTURE" default:"false"`

	// Request policy
	AttemptTimeout time.Duration `envconfig:"ATTEMPT_TIMEOUT" default:"8s"`
	MaxRetries     int           `envconfig:"MAX_RETRIES" default:"2"`
	RetryDelay     time.Duration `envconfig:"RETRY_DELAY" default:"1s"`

	// Cache TTLs
	PlacesTTL   time.Duration `envconfig:"PLACES_TTL" default:"30m"`
	MoviesTTL   time.Duration `envconfig:"MOVIES_TTL" default:"6h"`
	GamesTTL    time.Duration `envconfig:"GAMES_TTL" default:"24h"`
	HolidaysTTL time.Duration `envconfig:"HOLIDAYS_TTL" default:"168h"`

	// Server
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	SweepSpec  string `envconfig:"CACHE_SWEEP" default:"*/10 * * * *"`
}

// New parses the environment. API keys left empty are looked up with
// keyLookup, usually keyring.APIKey; pass nil to skip the lookup.
func New(keyLookup func(adapter string) string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if keyLookup != nil {
		cfg.resolveKeys(keyLookup)
	}

	logger.Debug("Configuration loaded",
		"places_key_present", cfg.PlacesAPIKey != "",
		"movies_key_present", cfg.MoviesAPIKey != "",
		"games_key_present", cfg.GamesAPIKey != "",
		"fixture", cfg.Fixture,
		"max_retries", cfg.MaxRetries,
		"retry_delay", cfg.RetryDelay,
		"attempt_timeout", cfg.AttemptTimeout,
		"listen_addr", cfg.ListenAddr,
	)

	return &cfg, nil
}

// NewForTesting returns the defaults without reading the environment or keyring
func NewForTesting() *Config {
	return &Config{
		PlacesBaseURL:   "http://127.0.0.1:0",
		MoviesBaseURL:   "http://127.0.0.1:0",
		GamesBaseURL:    "http://127.0.0.1:0",
		HolidaysBaseURL: "http://127.0.0.1:0",
		AttemptTimeout:  time.Second,
		MaxRetries:      0,
		PlacesTTL:       constants.PlacesCacheTTL,
		MoviesTTL:       constants.MoviesCacheTTL,
		GamesTTL:        constants.GamesCacheTTL,
		HolidaysTTL:     constants.HolidaysCacheTTL,
		ListenAddr:      "127.0.0.1:0",
		SweepSpec:       constants.CacheSweepSpec,
	}
}

func (c *Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("RETRY_DELAY must not be negative, got %s", c.RetryDelay)
	}
	if c.AttemptTimeout <= 0 {
		return fmt.Errorf("ATTEMPT_TIMEOUT must be positive, got %s", c.AttemptTimeout)
	}
	return nil
}

func (c *Config) resolveKeys(lookup func(string) string) {
	if c.PlacesAPIKey == "" {
		c.PlacesAPIKey = lookup(constants.AdapterPlaces)
	}
	if c.MoviesAPIKey == "" {
		c.MoviesAPIKey = lookup(constants.AdapterMovies)
	}
	if c.GamesAPIKey == "" {
		c.GamesAPIKey = lookup(constants.AdapterGames)
	}
}

func (c *Config) client(name, baseURL string, ttl time.Duration) fetch.Config {
	return fetch.Config{
		Name:           name,
		BaseURL:        baseURL,
		TTL:            ttl,
		MaxRetries:     c.MaxRetries,
		RetryDelay:     c.RetryDelay,
		AttemptTimeout: c.AttemptTimeout,
	}
}

// Places authenticates with an apikey query parameter
func (c *Config) Places() fetch.Config {
	cfg := c.client(constants.AdapterPlaces, c.PlacesBaseURL, c.PlacesTTL)
	if c.PlacesAPIKey != "" {
		cfg.Query = map[string]string{"apikey": c.PlacesAPIKey}
	}
	return cfg
}

// Movies authenticates with a bearer token
func (c *Config) Movies() fetch.Config {
	cfg := c.client(constants.AdapterMovies, c.MoviesBaseURL, c.MoviesTTL)
	if c.MoviesAPIKey != "" {
		cfg.Headers = map[string]string{"Authorization": "Bearer " + c.MoviesAPIKey}
	}
	return cfg
}

// Games authenticates with a key query parameter
func (c *Config) Games() fetch.Config {
	cfg := c.client(constants.AdapterGames, c.GamesBaseURL, c.GamesTTL)
	if c.GamesAPIKey != "" {
		cfg.Query = map[string]string{"key": c.GamesAPIKey}
	}
	return cfg
}

func (c *Config) Holidays() fetch.Config {
	return c.client("holidays", c.HolidaysBaseURL, c.HolidaysTTL)
}
