package models

import (
	"fmt"
	"strings"
)

// UserType describes why the user is in the city
type UserType string

const (
	UserStudent  UserType = "student"
	UserNewcomer UserType = "newcomer"
	UserTourist  UserType = "tourist"
	UserWorker   UserType = "worker"
)

// UserTypes lists every user type in onboarding order
var UserTypes = []UserType{UserStudent, UserNewcomer, UserTourist, UserWorker}

// Interest is one of the fixed explorer categories a user can follow
type Interest string

const (
	InterestFood      Interest = "food"
	InterestNightlife Interest = "nightlife"
	InterestParks     Interest = "parks"
	InterestEvents    Interest = "events"
	InterestShopping  Interest = "shopping"
	InterestCulture   Interest = "culture"
)

// Interests lists every interest in display order
var Interests = []Interest{
	InterestFood,
	InterestNightlife,
	InterestParks,
	InterestEvents,
	InterestShopping,
	InterestCulture,
}

// Budget is a coarse spending preference
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// Budgets lists every budget level from cheapest to most expensive
var Budgets = []Budget{BudgetLow, BudgetMedium, BudgetHigh}

// RoommatePreferences is the optional roommate section of onboarding
type RoommatePreferences struct {
	Budget   Budget `json:"budget"`
	Location string `json:"location,omitempty"`
	Pets     *bool  `json:"pets,omitempty"`
}

// UserProfile holds the onboarding answers.
// It is stored as a single JSON record with camelCase field names.
type UserProfile struct {
	UserType            UserType             `json:"userType"`
	Interests           []Interest           `json:"interests"`
	Budget              Budget               `json:"budget"`
	PostalCode          string               `json:"postalCode,omitempty"`
	Address             string               `json:"address,omitempty"`
	RoommatePreferences *RoommatePreferences `json:"roommatePreferences,omitempty"`
}

// InterestNames returns the interests as plain strings
func (p UserProfile) InterestNames() []string {
	names := make([]string, len(p.Interests))
	for i, interest := range p.Interests {
		names[i] = string(interest)
	}
	return names
}

// HasInterest reports whether the profile follows the given interest
func (p UserProfile) HasInterest(interest Interest) bool {
	for _, i := range p.Interests {
		if i == interest {
			return true
		}
	}
	return false
}

// Validate checks the enum fields of a profile
func (p UserProfile) Validate() error {
	if _, err := ParseUserType(string(p.UserType)); err != nil {
		return err
	}
	for _, interest := range p.Interests {
		if _, err := ParseInterest(string(interest)); err != nil {
			return err
		}
	}
	if _, err := ParseBudget(string(p.Budget)); err != nil {
		return err
	}
	if p.RoommatePreferences != nil {
		if _, err := ParseBudget(string(p.RoommatePreferences.Budget)); err != nil {
			return fmt.Errorf("roommate preferences: %w", err)
		}
	}
	return nil
}

// ParseUserType parses a user type case-insensitively
func ParseUserType(s string) (UserType, error) {
	v := UserType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range UserTypes {
		if v == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

// ParseInterest parses an interest case-insensitively
func ParseInterest(s string) (Interest, error) {
	v := Interest(strings.ToLower(strings.TrimSpace(s)))
	for _, i := range Interests {
		if v == i {
			return i, nil
		}
	}
	return "", fmt.Errorf("unknown interest %q", s)
}

// ParseBudget parses a budget level case-insensitively
func ParseBudget(s string) (Budget, error) {
	v := Budget(strings.ToLower(strings.TrimSpace(s)))
	for _, b := range Budgets {
		if v == b {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown budget %q", s)
}
