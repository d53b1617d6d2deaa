package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ngmaloney/citybuddy/internal/models"
)

func profileSummary(p models.UserProfile) (userType, interests, budget string) {
	userType = string(p.UserType)
	if userType == "" {
		userType = "newcomer"
	}
	interests = strings.Join(p.InterestNames(), ", ")
	if interests == "" {
		interests = "exploring the city"
	}
	budget = string(p.Budget)
	if budget == "" {
		budget = string(models.BudgetMedium)
	}
	return userType, interests, budget
}

func chatPrompt(req ChatRequest) string {
	userType, interests, budget := profileSummary(req.Profile)

	var b strings.Builder
	fmt.Fprintf(&b, "You are CityBuddy AI, a helpful assistant for a %s in a new city. ", userType)
	fmt.Fprintf(&b, "Their interests are: %s. Budget preference: %s.", interests, budget)
	if req.Profile.PostalCode != "" {
		fmt.Fprintf(&b, " They live near postal code %s.", req.Profile.PostalCode)
	}
	fmt.Fprintf(&b, "\n\nUser question: %s\n\nProvide a helpful, concise answer.", req.Message)
	return b.String()
}

func compatibilityPrompt(req RoommateRequest) string {
	userType, interests, budget := profileSummary(req.Profile)
	r := req.Roommate

	pets := "No"
	if r.Pets {
		pets = "Yes"
	}

	return fmt.Sprintf(`Analyze compatibility between a %s with %s interests and a %s budget, and a roommate profile:
- Name: %s
- Budget: %s
- Schedule: %s
- Pets: %s
- Location: %s
- Interests: %s

Return ONLY a JSON object with this exact format (no markdown, no code blocks):
{
  "score": 85,
  "summary": "Brief 2-3 sentence compatibility summary"
}`, userType, interests, budget, r.Name, r.Budget, r.Schedule, pets, r.Location, strings.Join(r.Interests, ", "))
}

func agreementPrompt(req RoommateRequest) string {
	userType, _, budget := profileSummary(req.Profile)
	return fmt.Sprintf("Generate a brief one-paragraph roommate agreement summary for a %s with a %s budget and %s. "+
		"Include key points about budget, schedule, pets, and shared responsibilities. Keep it concise (3-4 sentences).",
		userType, budget, req.Roommate.Name)
}

const recommendationFormat = `[
  {
    "name": "Place Name",
    "category": "%s",
    "distance": "0.5 km",
    "address": "123 Main St",
    "description": "Brief description"
  }
]`

func recommendationPrompt(req RecommendationRequest) (string, error) {
	userType, interests, budget := profileSummary(req.Profile)
	format := fmt.Sprintf(recommendationFormat, req.Category)

	if len(req.Candidates) > 0 {
		candidates, err := json.MarshalIndent(req.Candidates, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding candidates: %w", err)
		}
		return fmt.Sprintf(`You are a helpful city guide. Re-rank these nearby %s places for a %s with interests in %s and a %s budget preference. Location: %s.
Keep every field of each place unchanged, drop places that are a poor fit, and put the best match first.

Places:
%s

Return ONLY a JSON array with this exact format (no markdown, no code blocks):
%s`, req.Category, userType, interests, budget, req.Location, candidates, format), nil
	}

	return fmt.Sprintf(`You are a helpful city guide. Generate 5-7 local %s recommendations for a %s with interests in %s and a %s budget preference. Location: %s.

Return ONLY a JSON array with this exact format (no markdown, no code blocks):
%s`, req.Category, userType, interests, budget, req.Location, format), nil
}

func emergencyPrompt(req EmergencyRequest) string {
	return fmt.Sprintf(`Generate a list of 5-7 emergency services (hospitals, clinics, police stations) near %s.

Return ONLY a JSON array with this exact format (no markdown, no code blocks):
[
  {
    "name": "Service Name",
    "type": "hospital" or "clinic" or "police",
    "address": "123 Main St",
    "distance": "1.2 km",
    "phone": "123-456-7890"
  }
]`, req.Location)
}
