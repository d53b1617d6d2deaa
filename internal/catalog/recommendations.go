// Package catalog holds the built-in downtown Toronto data used when no API is available
package catalog

import (
	"slices"
	"strings"

	"github.com/ngmaloney/citybuddy/internal/models"
)

var foodRecommendations = []models.Recommendation{
	{Name: "Canoe Restaurant", Category: "food", Distance: "0.3 km", Address: "66 Wellington St W, Toronto, ON M5K 1H6", Description: "Upscale Canadian cuisine with stunning CN Tower views. Perfect for special occasions."},
	{Name: "Richmond Station", Category: "food", Distance: "0.5 km", Address: "1 Richmond St W, Toronto, ON M5H 3W4", Description: "Modern Canadian bistro with seasonal menu. Great for lunch or dinner."},
	{Name: "Pai Northern Thai Kitchen", Category: "food", Distance: "0.4 km", Address: "18 Duncan St, Toronto, ON M5H 3G8", Description: "Authentic Thai street food. Budget-friendly and delicious."},
	{Name: "Fresh on Front", Category: "food", Distance: "0.6 km", Address: "147 Spadina Ave, Toronto, ON M5V 2L7", Description: "Healthy vegetarian and vegan options. Great for quick lunch."},
	{Name: "The Keg Steakhouse", Category: "food", Distance: "0.2 km", Address: "515 Front St W, Toronto, ON M5V 0B3", Description: "Classic steakhouse chain. Reliable and family-friendly."},
	{Name: "Terroni", Category: "food", Distance: "0.7 km", Address: "57 Adelaide St E, Toronto, ON M5C 1K6", Description: "Authentic Italian pizzeria. Casual atmosphere, great for groups."},
	{Name: "Banh Mi Boys", Category: "food", Distance: "0.5 km", Address: "392 Queen St W, Toronto, ON M5V 2A9", Description: "Vietnamese sandwiches and Asian fusion. Quick, affordable, and tasty."},
}

var nightlifeRecommendations = []models.Recommendation{
	{Name: "The Ballroom", Category: "nightlife", Distance: "0.4 km", Address: "145 John St, Toronto, ON M5V 2E2", Description: "Bowling alley and bar. Fun atmosphere with drinks and games."},
	{Name: "The Pilot", Category: "nightlife", Distance: "0.6 km", Address: "22 Cumberland St, Toronto, ON M4W 1J5", Description: "Rooftop bar with great views. Popular spot for after-work drinks."},
	{Name: "Baro", Category: "nightlife", Distance: "0.5 km", Address: "485 King St W, Toronto, ON M5V 1K4", Description: "Latin-inspired bar and restaurant. Lively atmosphere with cocktails."},
	{Name: "The Drake Hotel", Category: "nightlife", Distance: "0.8 km", Address: "1150 Queen St W, Toronto, ON M6J 1J3", Description: "Trendy hotel bar with live music. Hipster vibe."},
	{Name: "Crocodile Rock", Category: "nightlife", Distance: "0.3 km", Address: "240 Adelaide St W, Toronto, ON M5H 1W7", Description: "Dive bar with cheap drinks. Casual and unpretentious."},
	{Name: "Bar Hop", Category: "nightlife", Distance: "0.4 km", Address: "391 King St W, Toronto, ON M5V 1K1", Description: "Craft beer bar with extensive selection. Great for beer lovers."},
	{Name: "The Rooftop at the Broadview Hotel", Category: "nightlife", Distance: "1.2 km", Address: "106 Broadview Ave, Toronto, ON M4M 2G1", Description: "Rooftop bar with panoramic city views. Perfect for sunset drinks."},
}

var parksRecommendations = []models.Recommendation{
	{Name: "Harbourfront Centre", Category: "parks", Distance: "0.8 km", Address: "235 Queens Quay W, Toronto, ON M5J 2G8", Description: "Waterfront park with walking trails, events, and lake views. Great for families."},
	{Name: "Trinity Bellwoods Park", Category: "parks", Distance: "1.1 km", Address: "790 Queen St W, Toronto, ON M6J 1G3", Description: "Large park with sports fields, dog park, and community events. Very popular."},
	{Name: "Osgoode Hall", Category: "parks", Distance: "0.3 km", Address: "130 Queen St W, Toronto, ON M5H 2N5", Description: "Historic building with beautiful grounds. Peaceful green space downtown."},
	{Name: "Nathan Phillips Square", Category: "parks", Distance: "0.5 km", Address: "100 Queen St W, Toronto, ON M5H 2N2", Description: "City Hall square with skating rink in winter, events year-round. Iconic Toronto spot."},
	{Name: "Sugar Beach", Category: "parks", Distance: "0.9 km", Address: "11 Dockside Dr, Toronto, ON M5A 1B6", Description: "Urban beach park with pink umbrellas. Great for relaxing by the water."},
	{Name: "Berczy Park", Category: "parks", Distance: "0.4 km", Address: "35 Wellington St E, Toronto, ON M5E 1C6", Description: "Small park with dog fountain. Quaint and charming."},
	{Name: "David Pecaut Square", Category: "parks", Distance: "0.6 km", Address: "215 King St W, Toronto, ON M5V 3A2", Description: "Modern square near theatres. Hosts festivals and events."},
}

var eventsRecommendations = []models.Recommendation{
	{Name: "Roy Thomson Hall", Category: "events", Distance: "0.4 km", Address: "60 Simcoe St, Toronto, ON M5J 2H5", Description: "Concert hall hosting classical music and performances. World-class acoustics."},
	{Name: "Princess of Wales Theatre", Category: "events", Distance: "0.5 km", Address: "300 King St W, Toronto, ON M5V 1J2", Description: "Broadway-style theatre with major productions. Check schedule for shows."},
	{Name: "TIFF Bell Lightbox", Category: "events", Distance: "0.6 km", Address: "350 King St W, Toronto, ON M5V 3X5", Description: "Toronto International Film Festival headquarters. Year-round film screenings."},
	{Name: "Harbourfront Centre", Category: "events", Distance: "0.8 km", Address: "235 Queens Quay W, Toronto, ON M5J 2G8", Description: "Cultural centre with festivals, concerts, and events. Check their calendar."},
	{Name: "The Second City", Category: "events", Distance: "0.7 km", Address: "51 Mercer St, Toronto, ON M5V 9G4", Description: "Comedy club and improv theatre. Famous for launching comedy careers."},
	{Name: "CN Tower", Category: "events", Distance: "0.9 km", Address: "290 Bremner Blvd, Toronto, ON M5V 3L9", Description: "Iconic tower with observation deck. Special events and dining available."},
	{Name: "Ripley's Aquarium of Canada", Category: "events", Distance: "0.8 km", Address: "288 Bremner Blvd, Toronto, ON M5V 3L9", Description: "Aquarium with educational programs and special events. Great for families."},
}

var shoppingRecommendations = []models.Recommendation{
	{Name: "Eaton Centre", Category: "shopping", Distance: "0.7 km", Address: "220 Yonge St, Toronto, ON M5B 2H1", Description: "Major shopping mall with 250+ stores. Everything you need in one place."},
	{Name: "Hudson's Bay", Category: "shopping", Distance: "0.6 km", Address: "176 Yonge St, Toronto, ON M5C 2L7", Description: "Historic department store. Great for clothing, home goods, and more."},
	{Name: "Queen Street West", Category: "shopping", Distance: "0.8 km", Address: "Queen St W, Toronto, ON", Description: "Trendy shopping district with independent boutiques and vintage stores."},
	{Name: "St. Lawrence Market", Category: "shopping", Distance: "0.9 km", Address: "93 Front St E, Toronto, ON M5E 1C3", Description: "Historic market with fresh food, artisanal products, and local vendors."},
	{Name: "Saks Fifth Avenue", Category: "shopping", Distance: "0.5 km", Address: "176 Yonge St, Toronto, ON M5C 2L7", Description: "Luxury department store. High-end fashion and accessories."},
	{Name: "Uniqlo", Category: "shopping", Distance: "0.6 km", Address: "220 Yonge St, Toronto, ON M5B 2H1", Description: "Japanese fast-fashion retailer. Affordable basics and quality clothing."},
	{Name: "Indigo Books & Music", Category: "shopping", Distance: "0.5 km", Address: "220 Yonge St, Toronto, ON M5B 2H1", Description: "Bookstore with gifts, home decor, and stationery. Cozy atmosphere."},
}

var cultureRecommendations = []models.Recommendation{
	{Name: "Art Gallery of Ontario (AGO)", Category: "culture", Distance: "1.2 km", Address: "317 Dundas St W, Toronto, ON M5T 1G4", Description: "Major art museum with Canadian and international collections. Free on Wednesday evenings."},
	{Name: "Royal Ontario Museum (ROM)", Category: "culture", Distance: "1.5 km", Address: "100 Queen's Park, Toronto, ON M5S 2C6", Description: "Natural history and world cultures museum. Fascinating exhibits for all ages."},
	{Name: "Toronto Reference Library", Category: "culture", Distance: "0.9 km", Address: "789 Yonge St, Toronto, ON M4W 2G8", Description: "Beautiful modern library with extensive collections. Great study space."},
	{Name: "Mackenzie House", Category: "culture", Distance: "0.6 km", Address: "82 Bond St, Toronto, ON M5B 1X2", Description: "Historic home of Toronto's first mayor. Museum with guided tours."},
	{Name: "The Distillery District", Category: "culture", Distance: "1.1 km", Address: "55 Mill St, Toronto, ON M5A 3C4", Description: "Historic pedestrian-only district with galleries, shops, and restaurants. Beautiful architecture."},
	{Name: "Gardiner Museum", Category: "culture", Distance: "1.3 km", Address: "111 Queen's Park, Toronto, ON M5S 2C7", Description: "Ceramic art museum. Unique collection in beautiful building."},
	{Name: "Bata Shoe Museum", Category: "culture", Distance: "1.4 km", Address: "327 Bloor St W, Toronto, ON M5S 1W7", Description: "World's largest shoe collection. Quirky and fascinating museum."},
}

// GetByCategory returns a copy of the built-in list for category.
// Matching is case-insensitive and accepts the explorer's display names;
// unknown categories get the food list.
func GetByCategory(category string) []models.Recommendation {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "food", "food & restaurants":
		return slices.Clone(foodRecommendations)
	case "nightlife":
		return slices.Clone(nightlifeRecommendations)
	case "parks", "parks & recreation":
		return slices.Clone(parksRecommendations)
	case "events", "events & activities", "things to do":
		return slices.Clone(eventsRecommendations)
	case "shopping":
		return slices.Clone(shoppingRecommendations)
	case "culture", "culture & arts":
		return slices.Clone(cultureRecommendations)
	default:
		return slices.Clone(foodRecommendations)
	}
}

// FilterByBudget returns items unchanged. The catalog carries no price data yet.
func FilterByBudget(items []models.Recommendation, budget models.Budget) []models.Recommendation {
	return items
}
