// Package guide combines place search, the assistant and the built-in catalog
// into the results each screen shows.
package guide

import (
	"context"
	"fmt"
	"strings"

	"github.com/ngmaloney/citybuddy/internal/assistant"
	"github.com/ngmaloney/citybuddy/internal/catalog"
	"github.com/ngmaloney/citybuddy/internal/geocoding"
	"github.com/ngmaloney/citybuddy/internal/models"
	"github.com/ngmaloney/citybuddy/internal/profile"
	"github.com/ngmaloney/citybuddy/internal/rank"
	"go.uber.org/zap"
)

// Source names where a result list came from
type Source string

const (
	SourcePlaces    Source = "places"
	SourceAssistant Source = "assistant"
	SourceCatalog   Source = "catalog"
)

// Label is the human-readable form of a source
func (s Source) Label() string {
	switch s {
	case SourcePlaces:
		return "Google Places"
	case SourceAssistant:
		return "Gemini"
	default:
		return "CityBuddy picks"
	}
}

// Result is a sorted list plus the source that produced it
type Result[T any] struct {
	Items  []T
	Source Source
}

// LocationInfo is the user's location for headers and prompts
type LocationInfo struct {
	PostalCode  string
	Location    string
	Coordinates geocoding.Location
}

// ProfileSource loads the stored profile
type ProfileSource interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
}

// PlaceSearcher finds nearby places
type PlaceSearcher interface {
	Enabled() bool
	SearchNearby(ctx context.Context, query, postalCode, category string, radiusMeters int) []models.Recommendation
}

// Advisor is the generative assistant
type Advisor interface {
	Enabled() bool
	Chat(ctx context.Context, req assistant.ChatRequest) string
	CompatibilityScore(ctx context.Context, req assistant.RoommateRequest) models.CompatibilityScore
	RoommateAgreement(ctx context.Context, req assistant.RoommateRequest) string
	Recommendations(ctx context.Context, req assistant.RecommendationRequest) []models.Recommendation
	EmergencyServices(ctx context.Context, req assistant.EmergencyRequest) []models.EmergencyService
}

// Locator resolves coordinates without failing
type Locator interface {
	ResolveCoordinates(ctx context.Context, postalCode string) geocoding.Location
}

// Options holds the city defaults
type Options struct {
	DefaultPostalCode string
	DefaultLocation   string
	RadiusMeters      int
}

// Service is the entry point screens and commands use
type Service struct {
	profiles ProfileSource
	places   PlaceSearcher
	advisor  Advisor
	locator  Locator
	opts     Options
	logger   *zap.Logger
}

// NewService wires the pipeline together
func NewService(profiles ProfileSource, places PlaceSearcher, advisor Advisor, locator Locator, opts Options, logger *zap.Logger) *Service {
	if opts.DefaultPostalCode == "" {
		opts.DefaultPostalCode = profile.DefaultPostalCode
	}
	if opts.DefaultLocation == "" {
		opts.DefaultLocation = "Downtown Toronto, ON"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		places:   places,
		advisor:  advisor,
		locator:  locator,
		opts:     opts,
		logger:   logger,
	}
}

// searchTerms are the place search keywords per category
var searchTerms = map[models.Interest]string{
	models.InterestFood:      "restaurants",
	models.InterestNightlife: "bars",
	models.InterestParks:     "parks",
	models.InterestEvents:    "attractions",
	models.InterestShopping:  "stores",
	models.InterestCulture:   "museums",
}

// emergencyTerms are the place search keywords per service type
var emergencyTerms = map[models.ServiceType]string{
	models.ServiceHospital: "hospital",
	models.ServiceClinic:   "walk-in clinic",
	models.ServicePolice:   "police station",
}

// Profile returns the stored profile, or a default one when none is saved
func (s *Service) Profile(ctx context.Context) models.UserProfile {
	if s.profiles != nil {
		p, err := s.profiles.GetProfile(ctx)
		if err != nil {
			s.logger.Warn("loading profile, using defaults", zap.Error(err))
		} else if p != nil {
			return *p
		}
	}
	return models.UserProfile{
		UserType:   models.UserNewcomer,
		Interests:  append([]models.Interest(nil), profile.DefaultInterests...),
		Budget:     models.BudgetMedium,
		PostalCode: s.opts.DefaultPostalCode,
	}
}

// Location returns the user's postal code, display location and best-effort coordinates
func (s *Service) Location(ctx context.Context) LocationInfo {
	p := s.Profile(ctx)
	info := LocationInfo{
		PostalCode: p.PostalCode,
		Location:   p.Address,
	}
	if info.PostalCode == "" {
		info.PostalCode = s.opts.DefaultPostalCode
	}
	if info.Location == "" {
		info.Location = s.opts.DefaultLocation
	}
	if s.locator != nil {
		info.Coordinates = s.locator.ResolveCoordinates(ctx, info.PostalCode)
	}
	return info
}

// Recommendations returns places for a category, nearest first.
// Place search runs first, then the assistant, then the built-in catalog.
func (s *Service) Recommendations(ctx context.Context, category string) Result[models.Recommendation] {
	p := s.Profile(ctx)
	postalCode := p.PostalCode
	if postalCode == "" {
		postalCode = s.opts.DefaultPostalCode
	}

	key := strings.ToLower(strings.TrimSpace(category))
	term := key
	if interest, ok := catalog.Normalize(category); ok {
		key = string(interest)
		term = searchTerms[interest]
	}

	var items []models.Recommendation
	source := SourceCatalog

	if s.places != nil && s.places.Enabled() {
		items = s.places.SearchNearby(ctx, term, postalCode, key, s.opts.RadiusMeters)
		if len(items) > 0 {
			source = SourcePlaces
		}
	}

	if s.advisor != nil && s.advisor.Enabled() {
		ranked := s.advisor.Recommendations(ctx, assistant.RecommendationRequest{
			Category:   key,
			Profile:    p,
			Location:   postalCode,
			Candidates: items,
		})
		if len(ranked) > 0 {
			if len(items) == 0 {
				source = SourceAssistant
			}
			items = ranked
		}
	}

	if len(items) == 0 {
		items = catalog.FilterByBudget(catalog.GetByCategory(category), p.Budget)
		source = SourceCatalog
	}

	s.logger.Debug("recommendations ready",
		zap.String("category", key),
		zap.String("source", string(source)),
		zap.Int("count", len(items)))

	return Result[models.Recommendation]{
		Items:  rank.SortByDistance(items),
		Source: source,
	}
}

// EmergencyServices returns hospitals, clinics and police stations, nearest first
func (s *Service) EmergencyServices(ctx context.Context) Result[models.EmergencyService] {
	p := s.Profile(ctx)
	postalCode := p.PostalCode
	if postalCode == "" {
		postalCode = s.opts.DefaultPostalCode
	}

	var items []models.EmergencyService
	source := SourceCatalog

	if s.places != nil && s.places.Enabled() {
		for _, serviceType := range models.ServiceTypes {
			for _, place := range s.places.SearchNearby(ctx, emergencyTerms[serviceType], postalCode, "", s.opts.RadiusMeters) {
				items = append(items, models.EmergencyService{
					Name:     place.Name,
					Type:     serviceType,
					Address:  place.Address,
					Distance: place.Distance,
				})
			}
		}
		if len(items) > 0 {
			source = SourcePlaces
		}
	}

	if len(items) == 0 && s.advisor != nil && s.advisor.Enabled() {
		location := p.Address
		if location == "" {
			location = s.opts.DefaultLocation
		}
		items = s.advisor.EmergencyServices(ctx, assistant.EmergencyRequest{
			Location: fmt.Sprintf("%s (%s)", location, postalCode),
		})
		if len(items) > 0 {
			source = SourceAssistant
		}
	}

	if len(items) == 0 {
		items = catalog.EmergencyServices(postalCode)
		source = SourceCatalog
	}

	return Result[models.EmergencyService]{
		Items:  rank.SortByDistance(items),
		Source: source,
	}
}

// Roommates returns the potential roommates
func (s *Service) Roommates() []models.RoommateProfile {
	return catalog.Roommates()
}

// Compatibility scores the user against a roommate
func (s *Service) Compatibility(ctx context.Context, roommate models.RoommateProfile) models.CompatibilityScore {
	return s.advisorOrFallback().CompatibilityScore(ctx, assistant.RoommateRequest{
		Profile:  s.Profile(ctx),
		Roommate: roommate,
	})
}

// Agreement drafts a roommate agreement
func (s *Service) Agreement(ctx context.Context, roommate models.RoommateProfile) string {
	return s.advisorOrFallback().RoommateAgreement(ctx, assistant.RoommateRequest{
		Profile:  s.Profile(ctx),
		Roommate: roommate,
	})
}

// Chat answers a question with the user's profile as context
func (s *Service) Chat(ctx context.Context, message string) string {
	return s.advisorOrFallback().Chat(ctx, assistant.ChatRequest{
		Message: message,
		Profile: s.Profile(ctx),
	})
}

// AssistantEnabled reports whether answers come from a model
func (s *Service) AssistantEnabled() bool {
	return s.advisor != nil && s.advisor.Enabled()
}

// PlacesEnabled reports whether live place search is available
func (s *Service) PlacesEnabled() bool {
	return s.places != nil && s.places.Enabled()
}

func (s *Service) advisorOrFallback() Advisor {
	if s.advisor != nil {
		return s.advisor
	}
	return assistant.New(nil, s.logger)
}
