// Package assistant wraps a text-generation model for chat, roommate matching
// and place suggestions. Every operation has a fixed fallback, so callers never see an error.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"strings"

	"github.com/ngmaloney/citybuddy/internal/models"
	"go.uber.org/zap"
)

// Fallback values returned when the model is unavailable or answers badly
const (
	FallbackChatReply            = "I apologize, but I'm having trouble processing your request right now. Please try again."
	FallbackCompatibilitySummary = "Good match! Similar interests and budget preferences."
	FallbackAgreement            = "This is a sample roommate agreement. Both parties agree to respect shared spaces, split utilities equally, and maintain a clean living environment."

	// fallback compatibility scores fall in [fallbackScoreMin, fallbackScoreMin+fallbackScoreSpan)
	fallbackScoreMin  = 70
	fallbackScoreSpan = 30

	defaultLocation = "downtown"
)

// ErrNoGenerator is logged when an operation runs without a configured model
var ErrNoGenerator = errors.New("no text generator configured")

// Generator produces a text completion for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatRequest is a free-form question from the user
type ChatRequest struct {
	Message string
	Profile models.UserProfile
}

// RoommateRequest pairs the user with a potential roommate
type RoommateRequest struct {
	Profile  models.UserProfile
	Roommate models.RoommateProfile
}

// RecommendationRequest asks for places in a category.
// When Candidates is non-empty the model re-ranks them instead of inventing new places.
type RecommendationRequest struct {
	Category   string
	Profile    models.UserProfile
	Location   string
	Candidates []models.Recommendation
}

// EmergencyRequest asks for emergency services near a location
type EmergencyRequest struct {
	Location string
}

// Option configures an Assistant
type Option func(*Assistant)

// WithRand replaces the random source used for fallback compatibility scores
func WithRand(intn func(n int) int) Option {
	return func(a *Assistant) {
		a.intn = intn
	}
}

// Assistant answers questions and generates suggestions through a Generator
type Assistant struct {
	gen    Generator
	logger *zap.Logger
	intn   func(n int) int
}

// New creates an Assistant. A nil generator means no API key is configured
// and every operation returns its fallback.
func New(gen Generator, logger *zap.Logger, opts ...Option) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Assistant{
		gen:    gen,
		logger: logger,
		intn:   rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Enabled reports whether a generator is configured
func (a *Assistant) Enabled() bool {
	return a.gen != nil
}

// Chat answers a question in the CityBuddy persona
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) string {
	if strings.TrimSpace(req.Message) == "" {
		return FallbackChatReply
	}

	text, err := a.generate(ctx, chatPrompt(req))
	if err != nil {
		a.fallback("chat", err)
		return FallbackChatReply
	}
	return text
}

// CompatibilityScore rates how well the user and a roommate would live together.
// It always returns a valid score; failures yield a random score from 70 to 99.
func (a *Assistant) CompatibilityScore(ctx context.Context, req RoommateRequest) models.CompatibilityScore {
	text, err := a.generate(ctx, compatibilityPrompt(req))
	if err != nil {
		a.fallback("compatibility", err)
		return a.fallbackScore()
	}

	score, err := parseCompatibility(text)
	if err != nil {
		a.fallback("compatibility", err)
		return a.fallbackScore()
	}
	return score
}

// RoommateAgreement drafts a short agreement between the user and a roommate
func (a *Assistant) RoommateAgreement(ctx context.Context, req RoommateRequest) string {
	text, err := a.generate(ctx, agreementPrompt(req))
	if err != nil {
		a.fallback("agreement", err)
		return FallbackAgreement
	}
	return text
}

// Recommendations generates or re-ranks places for a category.
// Failures return an empty list so the caller can fall back to other sources.
func (a *Assistant) Recommendations(ctx context.Context, req RecommendationRequest) []models.Recommendation {
	if req.Location == "" {
		req.Location = defaultLocation
	}

	prompt, err := recommendationPrompt(req)
	if err != nil {
		a.fallback("recommendations", err)
		return []models.Recommendation{}
	}

	text, err := a.generate(ctx, prompt)
	if err != nil {
		a.fallback("recommendations", err)
		return []models.Recommendation{}
	}

	var raw []models.Recommendation
	if err := decodeList(text, &raw); err != nil {
		a.fallback("recommendations", err)
		return []models.Recommendation{}
	}

	recs := make([]models.Recommendation, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		if r.Category == "" {
			r.Category = req.Category
		}
		recs = append(recs, r)
	}
	return recs
}

// EmergencyServices lists hospitals, clinics and police stations near a location.
// Entries with an unknown type are dropped.
func (a *Assistant) EmergencyServices(ctx context.Context, req EmergencyRequest) []models.EmergencyService {
	if req.Location == "" {
		req.Location = defaultLocation
	}

	text, err := a.generate(ctx, emergencyPrompt(req))
	if err != nil {
		a.fallback("emergency services", err)
		return []models.EmergencyService{}
	}

	var raw []struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Address  string `json:"address"`
		Distance string `json:"distance"`
		Phone    string `json:"phone"`
	}
	if err := decodeList(text, &raw); err != nil {
		a.fallback("emergency services", err)
		return []models.EmergencyService{}
	}

	services := make([]models.EmergencyService, 0, len(raw))
	for _, r := range raw {
		serviceType, err := models.ParseServiceType(r.Type)
		if err != nil || strings.TrimSpace(r.Name) == "" {
			a.logger.Debug("dropping emergency entry", zap.String("name", r.Name), zap.String("type", r.Type))
			continue
		}
		services = append(services, models.EmergencyService{
			Name:     r.Name,
			Type:     serviceType,
			Address:  r.Address,
			Distance: r.Distance,
			Phone:    r.Phone,
		})
	}
	return services
}

func (a *Assistant) generate(ctx context.Context, prompt string) (string, error) {
	if a.gen == nil {
		return "", ErrNoGenerator
	}
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

func (a *Assistant) fallback(op string, err error) {
	if errors.Is(err, ErrNoGenerator) {
		a.logger.Debug("assistant not configured, using fallback", zap.String("op", op))
		return
	}
	a.logger.Warn("assistant call failed, using fallback", zap.String("op", op), zap.Error(err))
}

func (a *Assistant) fallbackScore() models.CompatibilityScore {
	return models.CompatibilityScore{
		Score:   fallbackScoreMin + a.intn(fallbackScoreSpan),
		Summary: FallbackCompatibilitySummary,
	}
}

func parseCompatibility(text string) (models.CompatibilityScore, error) {
	var raw struct {
		Score   float64 `json:"score"`
		Summary string  `json:"summary"`
	}
	if err := decodeObject(text, &raw); err != nil {
		return models.CompatibilityScore{}, err
	}

	score := models.CompatibilityScore{
		Score:   int(math.Round(raw.Score)),
		Summary: strings.TrimSpace(raw.Summary),
	}
	if !score.Valid() {
		return models.CompatibilityScore{}, fmt.Errorf("invalid compatibility score %v", raw.Score)
	}
	return score, nil
}

// decodeList parses a JSON array, falling back to the first array embedded in the text
func decodeList(text string, v any) error {
	return decode(text, '[', v)
}

func decodeObject(text string, v any) error {
	return decode(text, '{', v)
}

// decode unmarshals text into v, a non-nil pointer. When the whole text is
// not valid JSON, each opening delimiter is tried in turn because prose
// around the payload may hold brackets of its own.
func decode(text string, openDelim byte, v any) error {
	cleaned := cleanJSON(text)
	err := json.Unmarshal([]byte(cleaned), v)
	if err == nil {
		return nil
	}

	target := reflect.ValueOf(v).Elem()
	found := false
	for i := strings.IndexByte(cleaned, openDelim); i >= 0; {
		found = true
		fresh := reflect.New(target.Type())
		if json.NewDecoder(strings.NewReader(cleaned[i:])).Decode(fresh.Interface()) == nil {
			target.Set(fresh.Elem())
			return nil
		}

		next := strings.IndexByte(cleaned[i+1:], openDelim)
		if next < 0 {
			break
		}
		i += next + 1
	}

	if !found {
		return fmt.Errorf("parsing response: %w", err)
	}
	return fmt.Errorf("parsing extracted response: %w", err)
}

// cleanJSON strips a surrounding ``` or ```json fence
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimPrefix(text, "JSON")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
