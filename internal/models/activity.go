package models

import (
	"errors"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryFood          Category = "food"
	CategoryOutdoor       Category = "outdoor"
	CategoryEntertainment Category = "entertainment"
	CategoryCultural      Category = "cultural"
	CategorySocial        Category = "social"
	CategoryWellness      Category = "wellness"
	CategoryGaming        Category = "gaming"
	CategoryShopping      Category = "shopping"
	CategoryTripPlanning  Category = "trip-planning"
)

// Categories lists every supported category in declaration order
var Categories = []Category{
	CategoryFood,
	CategoryOutdoor,
	CategoryEntertainment,
	CategoryCultural,
	CategorySocial,
	CategoryWellness,
	CategoryGaming,
	CategoryShopping,
	CategoryTripPlanning,
}

type Mood string

const (
	MoodRelaxed     Mood = "relaxed"
	MoodAdventurous Mood = "adventurous"
	MoodSocial      Mood = "social"
	MoodRomantic    Mood = "romantic"
	MoodEnergetic   Mood = "energetic"
	MoodCreative    Mood = "creative"
	MoodPeaceful    Mood = "peaceful"
	MoodFun         Mood = "fun"
	MoodProductive  Mood = "productive"
	MoodCozy        Mood = "cozy"
)

// Moods lists every supported mood in declaration order
var Moods = []Mood{
	MoodRelaxed,
	MoodAdventurous,
	MoodSocial,
	MoodRomantic,
	MoodEnergetic,
	MoodCreative,
	MoodPeaceful,
	MoodFun,
	MoodProductive,
	MoodCozy,
}

// DefaultMood is substituted when normalization leaves an activity without moods
const DefaultMood = MoodRelaxed

type PriceLevel string

const (
	PriceFree   PriceLevel = "free"
	PriceLow    PriceLevel = "low"
	PriceMedium PriceLevel = "medium"
	PriceHigh   PriceLevel = "high"
)

var priceRank = map[PriceLevel]int{
	PriceFree:   0,
	PriceLow:    1,
	PriceMedium: 2,
	PriceHigh:   3,
}

var (
	ErrInvalidActivity = errors.New("invalid activity")
)

// Location describes where an activity happens. All fields are optional.
type Location struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Address string   `json:"address,omitempty" yaml:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty" yaml:"lon,omitempty"`
}

// Activity is an immutable catalog entry
type Activity struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description" yaml:"description"`
	Category         Category   `json:"category" yaml:"category"`
	Mood             []Mood     `json:"mood" yaml:"mood"`
	DurationMin      int        `json:"duration" yaml:"duration"` // minutes
	Price            PriceLevel `json:"price" yaml:"price"`
	Location         *Location  `json:"location,omitempty" yaml:"location,omitempty"`
	WeatherDependent bool       `json:"weatherDependent" yaml:"weather_dependent"`
	Tags             []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ParseCategory resolves a category name, tolerating case and '_' or ' ' for '-'
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for _, c := range Categories {
		if string(c) == norm {
			return c, true
		}
	}
	return "", false
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseMood resolves a mood name case-insensitively
func ParseMood(s string) (Mood, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Moods {
		if string(m) == norm {
			return m, true
		}
	}
	return "", false
}

func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// NormalizeMoods drops unknown values and duplicates while keeping the
// original order. The result is never empty.
func NormalizeMoods(raw []string) []Mood {
	seen := make(map[Mood]bool, len(raw))
	out := make([]Mood, 0, len(raw))
	for _, r := range raw {
		m, ok := ParseMood(r)
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	if len(out) == 0 {
		out = append(out, DefaultMood)
	}
	return out
}

// ParsePriceLevel resolves a price level name case-insensitively
func ParsePriceLevel(s string) (PriceLevel, bool) {
	p := PriceLevel(strings.ToLower(strings.TrimSpace(s)))
	_, ok := priceRank[p]
	return p, ok
}

// PriceFromEstimate converts a numeric per-person estimate to a price level
func PriceFromEstimate(amount float64) PriceLevel {
	switch {
	case amount <= 0:
		return PriceFree
	case amount < 15:
		return PriceLow
	case amount < 50:
		return PriceMedium
	default:
		return PriceHigh
	}
}

// Rank orders price levels: free < low < medium < high. Unknown levels rank -1.
func (p PriceLevel) Rank() int {
	r, ok := priceRank[p]
	if !ok {
		return -1
	}
	return r
}

// HasMood reports whether the activity carries any of the given moods
func (a Activity) HasMood(moods ...Mood) bool {
	for _, want := range moods {
		for _, m := range a.Mood {
			if m == want {
				return true
			}
		}
	}
	return false
}

// Validate checks the catalog invariants an activity must satisfy before
// entering the core.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidActivity)
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title is required for %s", ErrInvalidActivity, a.ID)
	}
	if a.DurationMin <= 0 {
		return fmt.Errorf("%w: duration must be positive for %s", ErrInvalidActivity, a.ID)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q for %s", ErrInvalidActivity, a.Category, a.ID)
	}
	if len(a.Mood) == 0 {
		return fmt.Errorf("%w: at least one mood is required for %s", ErrInvalidActivity, a.ID)
	}
	for _, m := range a.Mood {
		if !m.Valid() {
			return fmt.Errorf("%w: unknown mood %q for %s", ErrInvalidActivity, m, a.ID)
		}
	}
	if a.Price.Rank() < 0 {
		return fmt.Errorf("%w: unknown price level %q for %s", ErrInvalidActivity, a.Price, a.ID)
	}
	return nil
}
