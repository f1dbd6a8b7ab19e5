package catalog

import "github.com/julianstephens/weekendly/internal/models"

func act(id, title, desc string, cat models.Category, dur int, price models.PriceLevel, outdoor bool, moods []models.Mood, tags ...string) models.Activity {
	return models.Activity{
		ID:               id,
		Title:            title,
		Description:      desc,
		Category:         cat,
		Mood:             moods,
		DurationMin:      dur,
		Price:            price,
		WeatherDependent: outdoor,
		Tags:             tags,
	}
}

func moods(m ...models.Mood) []models.Mood { return m }

// builtin is the static fallback catalog. Every category and every mood has
// at least three entries.
var builtin = []models.Activity{
	// food
	act("food-farmers-market", "Farmers Market Stroll", "Browse seasonal produce and local bakeries.",
		models.CategoryFood, 90, models.PriceLow, true,
		moods(models.MoodRelaxed, models.MoodSocial), "market", "local", "morning"),
	act("food-brunch", "Weekend Brunch", "Long brunch at a neighborhood cafe.",
		models.CategoryFood, 90, models.PriceMedium, false,
		moods(models.MoodSocial, models.MoodCozy, models.MoodRelaxed), "brunch", "cafe", "morning"),
	act("food-cooking-class", "Cooking Class", "Learn a new cuisine with a local chef.",
		models.CategoryFood, 150, models.PriceHigh, false,
		moods(models.MoodCreative, models.MoodSocial, models.MoodProductive), "class", "cooking", "afternoon"),
	act("food-picnic", "Park Picnic", "Pack sandwiches and a blanket for the park.",
		models.CategoryFood, 120, models.PriceLow, true,
		moods(models.MoodRomantic, models.MoodPeaceful, models.MoodRelaxed), "picnic", "park", "afternoon"),
	act("food-truck-crawl", "Food Truck Crawl", "Sample street food from a row of trucks.",
		models.CategoryFood, 120, models.PriceMedium, true,
		moods(models.MoodFun, models.MoodAdventurous, models.MoodSocial), "street food", "evening"),

	// outdoor
	act("outdoor-hike", "Trail Hike", "A half-day hike on a nearby trail.",
		models.CategoryOutdoor, 180, models.PriceFree, true,
		moods(models.MoodAdventurous, models.MoodEnergetic, models.MoodPeaceful), "hiking", "nature", "morning"),
	act("outdoor-bike-ride", "Bike Ride", "Cycle a scenic loop around town.",
		models.CategoryOutdoor, 120, models.PriceFree, true,
		moods(models.MoodEnergetic, models.MoodFun, models.MoodAdventurous), "cycling", "exercise"),
	act("outdoor-sunset-walk", "Sunset Walk", "Catch the sunset from the waterfront.",
		models.CategoryOutdoor, 60, models.PriceFree, true,
		moods(models.MoodRomantic, models.MoodPeaceful, models.MoodRelaxed), "walk", "sunset", "evening"),
	act("outdoor-kayak", "Kayaking", "Rent a kayak and paddle the lake.",
		models.CategoryOutdoor, 150, models.PriceMedium, true,
		moods(models.MoodAdventurous, models.MoodEnergetic), "water", "rental", "morning"),

	// entertainment
	act("ent-movie-night", "Movie Night", "Pick a film and make popcorn.",
		models.CategoryEntertainment, 150, models.PriceLow, false,
		moods(models.MoodCozy, models.MoodRelaxed, models.MoodRomantic), "film", "home", "evening"),
	act("ent-comedy-show", "Comedy Show", "Stand-up at a local club.",
		models.CategoryEntertainment, 120, models.PriceMedium, false,
		moods(models.MoodFun, models.MoodSocial), "stand-up", "nightlife", "evening"),
	act("ent-live-music", "Live Music", "See a band at a small venue.",
		models.CategoryEntertainment, 180, models.PriceHigh, false,
		moods(models.MoodEnergetic, models.MoodSocial, models.MoodFun), "concert", "music", "evening"),
	act("ent-escape-room", "Escape Room", "Solve puzzles against the clock with friends.",
		models.CategoryEntertainment, 60, models.PriceMedium, false,
		moods(models.MoodAdventurous, models.MoodFun, models.MoodSocial), "puzzle", "team"),

	// cultural
	act("cultural-museum", "Museum Visit", "Spend an afternoon at the city museum.",
		models.CategoryCultural, 120, models.PriceLow, false,
		moods(models.MoodCreative, models.MoodPeaceful, models.MoodRelaxed), "museum", "history", "afternoon"),
	act("cultural-gallery-walk", "Art Gallery Walk", "Tour the galleries in the arts district.",
		models.CategoryCultural, 90, models.PriceFree, false,
		moods(models.MoodCreative, models.MoodRomantic, models.MoodPeaceful), "art", "gallery"),
	act("cultural-theater", "Theater Matinee", "Catch an afternoon play.",
		models.CategoryCultural, 150, models.PriceHigh, false,
		moods(models.MoodRomantic, models.MoodCreative), "theater", "play", "afternoon"),
	act("cultural-walking-tour", "Historic Walking Tour", "Guided tour of the old town.",
		models.CategoryCultural, 120, models.PriceLow, true,
		moods(models.MoodAdventurous, models.MoodProductive), "tour", "history", "morning"),

	// social
	act("social-game-night", "Board Game Night", "Host friends for board games.",
		models.CategorySocial, 180, models.PriceFree, false,
		moods(models.MoodSocial, models.MoodFun, models.MoodCozy), "board games", "friends", "evening"),
	act("social-potluck", "Potluck Dinner", "Everyone brings a dish.",
		models.CategorySocial, 150, models.PriceLow, false,
		moods(models.MoodSocial, models.MoodCozy), "dinner", "friends", "evening"),
	act("social-volunteer", "Community Volunteering", "Help out at a local food bank or cleanup.",
		models.CategorySocial, 180, models.PriceFree, false,
		moods(models.MoodProductive, models.MoodSocial, models.MoodEnergetic), "volunteer", "community", "morning"),

	// wellness
	act("wellness-yoga", "Morning Yoga", "An hour-long flow class.",
		models.CategoryWellness, 60, models.PriceLow, false,
		moods(models.MoodPeaceful, models.MoodRelaxed, models.MoodEnergetic), "yoga", "exercise", "morning"),
	act("wellness-spa", "Spa Afternoon", "Massage and sauna.",
		models.CategoryWellness, 180, models.PriceHigh, false,
		moods(models.MoodRelaxed, models.MoodRomantic, models.MoodCozy), "spa", "self-care", "afternoon"),
	act("wellness-meditation", "Guided Meditation", "A quiet guided session.",
		models.CategoryWellness, 45, models.PriceFree, false,
		moods(models.MoodPeaceful, models.MoodProductive), "mindfulness", "quiet"),

	// gaming
	act("gaming-coop", "Co-op Video Games", "Team up on a co-op campaign.",
		models.CategoryGaming, 120, models.PriceFree, false,
		moods(models.MoodFun, models.MoodSocial, models.MoodCozy), "video games", "co-op", "evening"),
	act("gaming-arcade", "Arcade Night", "Pinball and classic cabinets.",
		models.CategoryGaming, 120, models.PriceLow, false,
		moods(models.MoodFun, models.MoodEnergetic), "arcade", "retro", "evening"),
	act("gaming-puzzle", "Puzzle Marathon", "Finish a 1000-piece jigsaw.",
		models.CategoryGaming, 150, models.PriceFree, false,
		moods(models.MoodCozy, models.MoodPeaceful, models.MoodProductive), "jigsaw", "home"),

	// shopping
	act("shopping-thrift", "Thrift Store Hunt", "Dig for vintage finds.",
		models.CategoryShopping, 120, models.PriceLow, false,
		moods(models.MoodAdventurous, models.MoodCreative, models.MoodFun), "vintage", "thrift"),
	act("shopping-bookstore", "Bookstore Browse", "Wander the shelves of an independent bookstore.",
		models.CategoryShopping, 60, models.PriceLow, false,
		moods(models.MoodCozy, models.MoodPeaceful, models.MoodRelaxed), "books", "reading"),
	act("shopping-flea-market", "Flea Market", "Bargain hunting at the weekend flea market.",
		models.CategoryShopping, 120, models.PriceLow, true,
		moods(models.MoodSocial, models.MoodAdventurous), "market", "bargains", "morning"),

	// trip-planning
	act("trip-day-trip", "Plan a Day Trip", "Pick a destination within two hours and map the route.",
		models.CategoryTripPlanning, 60, models.PriceFree, false,
		moods(models.MoodAdventurous, models.MoodProductive), "planning", "travel"),
	act("trip-road-trip", "Scenic Road Trip", "Drive a scenic route with stops along the way.",
		models.CategoryTripPlanning, 240, models.PriceMedium, true,
		moods(models.MoodAdventurous, models.MoodRomantic, models.MoodFun), "driving", "travel"),
	act("trip-camping-prep", "Camping Trip Prep", "Book a site and pack the gear.",
		models.CategoryTripPlanning, 90, models.PriceMedium, false,
		moods(models.MoodProductive, models.MoodEnergetic, models.MoodAdventurous), "camping", "planning"),
}
