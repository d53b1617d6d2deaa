package catalog

import (
	"strings"

	"github.com/ngmaloney/citybuddy/internal/models"
)

// Category is an explorer entry
type Category struct {
	Interest    models.Interest
	DisplayName string
	Icon        string
}

var categories = []Category{
	{Interest: models.InterestFood, DisplayName: "Food & Restaurants", Icon: "🍽"},
	{Interest: models.InterestNightlife, DisplayName: "Nightlife", Icon: "🌙"},
	{Interest: models.InterestParks, DisplayName: "Parks & Recreation", Icon: "🌳"},
	{Interest: models.InterestEvents, DisplayName: "Events & Activities", Icon: "🎭"},
	{Interest: models.InterestShopping, DisplayName: "Shopping", Icon: "🛍"},
	{Interest: models.InterestCulture, DisplayName: "Culture & Arts", Icon: "🎨"},
}

// Categories returns the six explorer categories in display order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// DisplayName returns the explorer label for an interest, or the interest itself
func DisplayName(interest models.Interest) string {
	for _, c := range categories {
		if c.Interest == interest {
			return c.DisplayName
		}
	}
	return string(interest)
}

// Normalize maps a category name or display name to its interest
func Normalize(category string) (models.Interest, bool) {
	key := strings.ToLower(strings.TrimSpace(category))
	switch key {
	case "food & restaurants":
		return models.InterestFood, true
	case "parks & recreation":
		return models.InterestParks, true
	case "events & activities", "things to do":
		return models.InterestEvents, true
	case "culture & arts":
		return models.InterestCulture, true
	}
	interest, err := models.ParseInterest(key)
	if err != nil {
		return "", false
	}
	return interest, true
}
