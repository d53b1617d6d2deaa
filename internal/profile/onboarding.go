package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/ngmaloney/citybuddy/internal/geocoding"
	"github.com/ngmaloney/citybuddy/internal/models"
)

// OnboardingState is the persisted part of the onboarding flow.
// The in-progress form lives only in the UI.
type OnboardingState int

const (
	NotStarted OnboardingState = iota
	Complete
)

func (s OnboardingState) String() string {
	if s == Complete {
		return "complete"
	}
	return "not started"
}

// DefaultInterests are used when the user picks none
var DefaultInterests = []models.Interest{models.InterestFood, models.InterestParks}

// Submission is the raw onboarding form
type Submission struct {
	UserType      models.UserType
	Interests     []models.Interest
	Budget        models.Budget
	PostalCode    string
	Address       string
	WantsRoommate bool
	Roommate      models.RoommatePreferences
}

// SubmissionFromProfile pre-fills a form from an existing profile
func SubmissionFromProfile(p *models.UserProfile) Submission {
	if p == nil {
		return Submission{}
	}
	sub := Submission{
		UserType:   p.UserType,
		Interests:  append([]models.Interest(nil), p.Interests...),
		Budget:     p.Budget,
		PostalCode: p.PostalCode,
		Address:    p.Address,
	}
	if p.RoommatePreferences != nil {
		sub.WantsRoommate = true
		sub.Roommate = *p.RoommatePreferences
	}
	return sub
}

// Normalize builds the profile a submission produces, without saving it
func (s *Store) Normalize(sub Submission) models.UserProfile {
	p := models.UserProfile{
		UserType:   sub.UserType,
		Interests:  append([]models.Interest(nil), sub.Interests...),
		Budget:     sub.Budget,
		PostalCode: geocoding.NormalizePostalCode(sub.PostalCode),
		Address:    strings.TrimSpace(sub.Address),
	}
	if len(p.Interests) == 0 {
		p.Interests = append([]models.Interest(nil), DefaultInterests...)
	}
	if p.PostalCode == "" {
		p.PostalCode = s.defaultPostalCode
	}
	if sub.WantsRoommate {
		prefs := sub.Roommate
		prefs.Location = strings.TrimSpace(prefs.Location)
		if prefs.Budget == "" {
			prefs.Budget = p.Budget
		}
		p.RoommatePreferences = &prefs
	}
	return p
}

// State returns the persisted onboarding state
func (s *Store) State(ctx context.Context) OnboardingState {
	if s.IsOnboardingComplete(ctx) {
		return Complete
	}
	return NotStarted
}

// CompleteOnboarding saves the normalized profile and marks onboarding complete
func (s *Store) CompleteOnboarding(ctx context.Context, sub Submission) (*models.UserProfile, error) {
	p := s.Normalize(sub)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid onboarding answers: %w", err)
	}
	if err := s.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	if err := s.SetOnboardingComplete(ctx, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// RestartOnboarding clears the completion flag. The stored profile is kept
// so the form can be pre-filled.
func (s *Store) RestartOnboarding(ctx context.Context) error {
	return s.SetOnboardingComplete(ctx, false)
}
