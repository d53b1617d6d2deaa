package catalog

import (
	"slices"

	"github.com/ngmaloney/citybuddy/internal/models"
)

var roommates = []models.RoommateProfile{
	{
		ID:        "1",
		Name:      "Priya S.",
		Budget:    models.BudgetLow,
		Schedule:  "Early riser, in bed by 11",
		Pets:      false,
		Location:  "Annex",
		Interests: []string{"culture", "food", "yoga"},
		Bio:       "Grad student at U of T. Quiet during the week, loves cooking on Sundays.",
	},
	{
		ID:        "2",
		Name:      "Marcus L.",
		Budget:    models.BudgetMedium,
		Schedule:  "9 to 5, out most evenings",
		Pets:      true,
		Location:  "Liberty Village",
		Interests: []string{"nightlife", "events", "soccer"},
		Bio:       "Software developer with a friendly beagle. Looking for someone easygoing.",
	},
	{
		ID:        "3",
		Name:      "Sofia R.",
		Budget:    models.BudgetMedium,
		Schedule:  "Night shifts three days a week",
		Pets:      false,
		Location:  "Leslieville",
		Interests: []string{"parks", "shopping", "film"},
		Bio:       "Nurse at a downtown hospital. Tidy, respectful, and rarely home on weekends.",
	},
	{
		ID:        "4",
		Name:      "Daniel K.",
		Budget:    models.BudgetHigh,
		Schedule:  "Remote worker, flexible hours",
		Pets:      false,
		Location:  "King West",
		Interests: []string{"food", "culture", "cycling"},
		Bio:       "Recently moved from Vancouver. Enjoys hosting small dinners and exploring galleries.",
	},
	{
		ID:        "5",
		Name:      "Aisha M.",
		Budget:    models.BudgetLow,
		Schedule:  "Classes in the day, studying at night",
		Pets:      true,
		Location:  "Kensington Market",
		Interests: []string{"events", "food", "music"},
		Bio:       "International student with a small cat. Social but values a calm home.",
	},
	{
		ID:        "6",
		Name:      "Tom W.",
		Budget:    models.BudgetMedium,
		Schedule:  "Hospitality job, late nights",
		Pets:      false,
		Location:  "Queen West",
		Interests: []string{"nightlife", "parks", "gaming"},
		Bio:       "Bartender who sleeps in. Clean, splits chores fairly, and keeps the music low.",
	},
}

// Roommates returns the potential roommates shown on the roommate screen
func Roommates() []models.RoommateProfile {
	out := make([]models.RoommateProfile, len(roommates))
	for i, r := range roommates {
		r.Interests = slices.Clone(r.Interests)
		out[i] = r
	}
	return out
}

// RoommateByID finds a roommate by id
func RoommateByID(id string) (models.RoommateProfile, bool) {
	for _, r := range Roommates() {
		if r.ID == id {
			return r, true
		}
	}
	return models.RoommateProfile{}, false
}
