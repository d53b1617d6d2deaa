package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/citybuddy/internal/guide"
	"github.com/ngmaloney/citybuddy/internal/models"
	"github.com/ngmaloney/citybuddy/internal/profile"
)

// loadTimeout bounds every screen load
const loadTimeout = 30 * time.Second

// profileLoadedMsg is sent once the stored profile and onboarding flag are read
type profileLoadedMsg struct {
	state    profile.OnboardingState
	profile  *models.UserProfile
	location guide.LocationInfo
	err      error
}

// onboardingSavedMsg is sent when the onboarding answers are stored
type onboardingSavedMsg struct {
	profile  *models.UserProfile
	location guide.LocationInfo
	err      error
}

// onboardingRestartedMsg is sent when the completion flag is cleared
type onboardingRestartedMsg struct {
	profile *models.UserProfile
	err     error
}

// settingsSavedMsg is sent when settings edits are stored
type settingsSavedMsg struct {
	profile  *models.UserProfile
	location guide.LocationInfo
	err      error
}

// recommendationsMsg carries the places for a category
type recommendationsMsg struct {
	category string
	result   guide.Result[models.Recommendation]
}

// emergencyMsg carries nearby emergency services
type emergencyMsg struct {
	result guide.Result[models.EmergencyService]
}

// compatibilityMsg carries a roommate's score
type compatibilityMsg struct {
	roommateID string
	score      models.CompatibilityScore
}

// agreementMsg carries a drafted roommate agreement
type agreementMsg struct {
	roommateID string
	text       string
}

// chatReplyMsg carries the assistant's answer to a chat message
type chatReplyMsg struct {
	replyTo string
	text    string
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

func loadProfile(store *profile.Store, svc *guide.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		p, err := store.GetProfile(ctx)
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		return profileLoadedMsg{
			state:    store.State(ctx),
			profile:  p,
			location: svc.Location(ctx),
		}
	}
}

func completeOnboarding(store *profile.Store, svc *guide.Service, sub profile.Submission) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		p, err := store.CompleteOnboarding(ctx, sub)
		if err != nil {
			return onboardingSavedMsg{err: err}
		}
		return onboardingSavedMsg{profile: p, location: svc.Location(ctx)}
	}
}

func restartOnboarding(store *profile.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		if err := store.RestartOnboarding(ctx); err != nil {
			return onboardingRestartedMsg{err: err}
		}
		p, err := store.GetProfile(ctx)
		return onboardingRestartedMsg{profile: p, err: err}
	}
}

func saveSettings(store *profile.Store, svc *guide.Service, postalCode string, interests []models.Interest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		p, err := store.UpdateSettings(ctx, postalCode, interests)
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{profile: p, location: svc.Location(ctx)}
	}
}

func fetchRecommendations(svc *guide.Service, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return recommendationsMsg{category: category, result: svc.Recommendations(ctx, category)}
	}
}

func fetchEmergencyServices(svc *guide.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return emergencyMsg{result: svc.EmergencyServices(ctx)}
	}
}

func fetchCompatibility(svc *guide.Service, roommate models.RoommateProfile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return compatibilityMsg{roommateID: roommate.ID, score: svc.Compatibility(ctx, roommate)}
	}
}

func fetchAgreement(svc *guide.Service, roommate models.RoommateProfile) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return agreementMsg{roommateID: roommate.ID, text: svc.Agreement(ctx, roommate)}
	}
}

func sendChat(svc *guide.Service, id, message string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return chatReplyMsg{replyTo: id, text: svc.Chat(ctx, message)}
	}
}
