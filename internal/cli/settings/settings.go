package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekendly/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme        *string  `help:"UI theme (light or dark)."`
	HomeName     *string  `help:"Display name of your home location." name:"home-name"`
	HomeLat      *float64 `help:"Home latitude used by location-based sources." name:"home-lat"`
	HomeLon      *float64 `help:"Home longitude used by location-based sources." name:"home-lon"`
	Radius       *int     `help:"Search radius in meters."`
	DefaultLimit *int     `help:"Number of results when a search does not set a limit." name:"default-limit"`
	Country      *string  `help:"Two-letter country code for holiday lookups."`
	ClearHome    bool     `help:"Forget the stored home location." name:"clear-home"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Theme:          %s\n", settings.Theme)
		fmt.Printf("  Default Limit:  %d\n", settings.DefaultLimit)
		fmt.Printf("  Country:        %s\n", settings.Country)
		fmt.Println("\nLocation:")
		if home := settings.Home(); home != nil {
			name := settings.HomeName
			if name == "" {
				name = "home"
			}
			fmt.Printf("  %-14s  %.4f, %.4f\n", name+":", home.Lat, home.Lon)
		} else {
			fmt.Println("  Home:           not set (places search is disabled)")
		}
		fmt.Printf("  Radius:         %d m\n", settings.RadiusMeters)
		return nil
	}

	updated := false
	if c.Theme != nil {
		theme := strings.ToLower(*c.Theme)
		if theme != "light" && theme != "dark" {
			return fmt.Errorf("theme must be light or dark, got %q", *c.Theme)
		}
		settings.Theme = theme
		updated = true
	}
	if c.HomeName != nil {
		settings.HomeName = *c.HomeName
		updated = true
	}
	if c.HomeLat != nil {
		if *c.HomeLat < -90 || *c.HomeLat > 90 {
			return fmt.Errorf("home latitude must be between -90 and 90")
		}
		settings.HomeLat = c.HomeLat
		updated = true
	}
	if c.HomeLon != nil {
		if *c.HomeLon < -180 || *c.HomeLon > 180 {
			return fmt.Errorf("home longitude must be between -180 and 180")
		}
		settings.HomeLon = c.HomeLon
		updated = true
	}
	if c.ClearHome {
		settings.HomeName = ""
		settings.HomeLat = nil
		settings.HomeLon = nil
		updated = true
	}
	if c.Radius != nil {
		if *c.Radius <= 0 {
			return fmt.Errorf("radius must be positive")
		}
		settings.RadiusMeters = *c.Radius
		updated = true
	}
	if c.DefaultLimit != nil {
		if *c.DefaultLimit <= 0 {
			return fmt.Errorf("default limit must be positive")
		}
		settings.DefaultLimit = *c.DefaultLimit
		updated = true
	}
	if c.Country != nil {
		country := strings.ToUpper(strings.TrimSpace(*c.Country))
		if len(country) != 2 {
			return fmt.Errorf("country must be a two-letter code, got %q", *c.Country)
		}
		settings.Country = country
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
