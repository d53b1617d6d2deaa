package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/ngmaloney/citybuddy/internal/guide"
	"github.com/ngmaloney/citybuddy/internal/models"
	"github.com/ngmaloney/citybuddy/internal/profile"
	"go.uber.org/zap"
)

// AppState represents the current screen
type AppState int

const (
	StateLoading         AppState = iota // Waiting on a background load
	StateOnboarding                      // First-run questionnaire
	StateHome                            // Main menu
	StateExplore                         // Category picker
	StateRecommendations                 // Places for one category
	StateEmergency                       // Hospitals, clinics, police
	StateRoommates                       // Roommate matching
	StateChat                            // Free-form assistant chat
	StateSettings                        // Profile edits
	StateError                           // Error state
)

// chatRole says who wrote a chat message
type chatRole int

const (
	roleUser chatRole = iota
	roleAssistant
)

// chatMessage is one line of the chat transcript
type chatMessage struct {
	id      string
	role    chatRole
	text    string
	replyTo string
}

const liveResultsHint = "Set GOOGLE_MAPS_API_KEY or GEMINI_API_KEY for live results"

const welcomeMessage = "Hi! I'm CityBuddy, your Toronto guide. Ask me about neighbourhoods, transit, food or anything else about the city."

// settings focus targets
const (
	focusPostalCode = iota
	focusInterests
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	guide    *guide.Service
	profiles *profile.Store
	logger   *zap.Logger

	profile  *models.UserProfile
	location guide.LocationInfo

	// Onboarding
	form onboardingForm

	// Navigation
	menu       list.Model
	categories list.Model

	// Recommendations
	category        string
	returnState     AppState
	recommendations guide.Result[models.Recommendation]

	// Emergency
	emergency guide.Result[models.EmergencyService]

	// Roommates
	roommates      []models.RoommateProfile
	roommateCursor int
	scores         map[string]models.CompatibilityScore
	scoring        map[string]bool
	agreement      string
	agreementFor   string

	// Chat
	chatInput textinput.Model
	messages  []chatMessage
	waiting   bool
	pending   string // id of the user message awaiting a reply

	// Settings
	settingsInput     textinput.Model
	settingsInterests map[models.Interest]bool
	settingsCursor    int
	settingsFocus     int
	notice            string

	// Loading
	spinner     spinner.Model
	loadingText string
}

// NewModel creates a new application model
func NewModel(svc *guide.Service, store *profile.Store, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	chat := textinput.New()
	chat.Placeholder = "Ask about Toronto..."
	chat.CharLimit = 500
	chat.Width = 60

	settings := textinput.New()
	settings.Placeholder = store.DefaultPostalCode()
	settings.CharLimit = 10
	settings.Width = 20

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		state:         StateLoading,
		guide:         svc,
		profiles:      store,
		logger:        logger,
		menu:          createHomeMenu(60, 24),
		categories:    createCategoryList(60, 24),
		roommates:     svc.Roommates(),
		scores:        make(map[string]models.CompatibilityScore),
		scoring:       make(map[string]bool),
		chatInput:     chat,
		settingsInput: settings,
		spinner:       s,
		loadingText:   "Loading your profile...",
		messages: []chatMessage{
			{id: uuid.NewString(), role: roleAssistant, text: welcomeMessage},
		},
	}
}

// Init loads the stored profile
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadProfile(m.profiles, m.guide))
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-6)
		m.categories.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch msg := msg.(type) {
	case errMsg:
		m.err = msg.err
		m.state = StateError
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("couldn't read your profile: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.profile = msg.profile
		m.location = msg.location
		if msg.state != profile.Complete || msg.profile == nil {
			return m.startOnboarding()
		}
		m.state = StateHome
		return m, nil

	case onboardingSavedMsg:
		if msg.err != nil {
			m.form.err = "Couldn't save your answers. Please try again."
			m.logger.Warn("saving onboarding", zap.Error(msg.err))
			m.state = StateOnboarding
			return m, nil
		}
		m.profile = msg.profile
		m.location = msg.location
		m.state = StateHome
		return m, nil

	case onboardingRestartedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("couldn't restart onboarding: %w", msg.err)
			m.state = StateError
			return m, nil
		}
		m.profile = msg.profile
		return m.startOnboarding()

	case settingsSavedMsg:
		if msg.err != nil {
			m.notice = "Couldn't save settings"
			m.logger.Warn("saving settings", zap.Error(msg.err))
			return m, nil
		}
		m.profile = msg.profile
		m.location = msg.location
		m.resetSettings()
		m.notice = "Settings saved"
		return m, nil

	case recommendationsMsg:
		if m.state != StateLoading || msg.category != m.category {
			return m, nil
		}
		m.recommendations = msg.result
		m.state = StateRecommendations
		return m, nil

	case emergencyMsg:
		if m.state != StateLoading {
			return m, nil
		}
		m.emergency = msg.result
		m.state = StateEmergency
		return m, nil

	case compatibilityMsg:
		delete(m.scoring, msg.roommateID)
		m.scores[msg.roommateID] = msg.score
		return m, nil

	case agreementMsg:
		delete(m.scoring, msg.roommateID)
		m.agreement = msg.text
		m.agreementFor = msg.roommateID
		return m, nil

	case chatReplyMsg:
		if !m.waiting || msg.replyTo != m.pending {
			return m, nil
		}
		m.waiting = false
		m.pending = ""
		m.messages = append(m.messages, chatMessage{
			id:      uuid.NewString(),
			role:    roleAssistant,
			text:    msg.text,
			replyTo: msg.replyTo,
		})
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Global keys
		if keyMsg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if keyMsg.String() == "q" && !m.typing() {
			return m, tea.Quit
		}

		switch m.state {
		case StateOnboarding:
			return m.handleOnboarding(keyMsg)
		case StateHome:
			return m.handleHome(msg)
		case StateExplore:
			return m.handleExplore(msg)
		case StateRecommendations:
			return m.handleRecommendations(keyMsg)
		case StateEmergency:
			return m.handleEmergency(keyMsg)
		case StateRoommates:
			return m.handleRoommates(keyMsg)
		case StateChat:
			return m.handleChat(keyMsg)
		case StateSettings:
			return m.handleSettings(keyMsg)
		case StateError:
			// Any key returns home (except quit keys)
			m.err = nil
			if m.profile == nil {
				return m.startOnboarding()
			}
			m.state = StateHome
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateOnboarding:
		if m.form.step == stepPostalCode {
			m.form.postalInput, cmd = m.form.postalInput.Update(msg)
		} else if m.form.step == stepAddress {
			m.form.addressInput, cmd = m.form.addressInput.Update(msg)
		}
	case StateChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
	case StateSettings:
		m.settingsInput, cmd = m.settingsInput.Update(msg)
	}
	return m, cmd
}

// typing reports whether the focused screen takes free text, so 'q' is a letter
func (m Model) typing() bool {
	switch m.state {
	case StateOnboarding:
		return m.form.typing()
	case StateChat:
		return true
	case StateSettings:
		return m.settingsFocus == focusPostalCode
	}
	return false
}

func (m Model) startOnboarding() (tea.Model, tea.Cmd) {
	m.form = newOnboardingForm(profile.SubmissionFromProfile(m.profile))
	m.state = StateOnboarding
	return m, nil
}

func (m Model) handleOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, done, cmd := m.form.Update(msg)
	m.form = form
	if !done {
		return m, cmd
	}
	m.state = StateLoading
	m.loadingText = "Saving your profile..."
	return m, tea.Batch(m.spinner.Tick, completeOnboarding(m.profiles, m.guide, form.submission()))
}

func (m Model) handleHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if item, ok := m.menu.SelectedItem().(menuItem); ok {
				return m.selectMenu(item.action)
			}
			return m, nil
		case "e":
			return m.selectMenu(actionEmergency)
		case "c":
			return m.selectMenu(actionChat)
		case "s":
			return m.selectMenu(actionSettings)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) selectMenu(action menuAction) (tea.Model, tea.Cmd) {
	switch action {
	case actionExplore:
		m.state = StateExplore
		return m, nil
	case actionEmergency:
		return m.loadEmergency()
	case actionFood:
		return m.loadRecommendations("food", StateHome)
	case actionThingsToDo:
		return m.loadRecommendations("things to do", StateHome)
	case actionRoommates:
		m.state = StateRoommates
		return m, nil
	case actionChat:
		m.state = StateChat
		m.chatInput.Focus()
		return m, textinput.Blink
	case actionSettings:
		m.resetSettings()
		m.notice = ""
		m.state = StateSettings
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) handleExplore(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = StateHome
			return m, nil
		case tea.KeyEnter:
			if item, ok := m.categories.SelectedItem().(categoryItem); ok {
				return m.loadRecommendations(item.category.DisplayName, StateExplore)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

func (m Model) loadRecommendations(category string, from AppState) (tea.Model, tea.Cmd) {
	m.category = category
	m.returnState = from
	m.recommendations = guide.Result[models.Recommendation]{}
	m.state = StateLoading
	m.loadingText = "Finding places near you..."
	return m, tea.Batch(m.spinner.Tick, fetchRecommendations(m.guide, category))
}

func (m Model) loadEmergency() (tea.Model, tea.Cmd) {
	m.emergency = guide.Result[models.EmergencyService]{}
	m.state = StateLoading
	m.loadingText = "Finding emergency services near you..."
	return m, tea.Batch(m.spinner.Tick, fetchEmergencyServices(m.guide))
}

func (m Model) handleRecommendations(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateHome
	case "b":
		m.state = m.returnState
	case "r":
		return m.loadRecommendations(m.category, m.returnState)
	}
	return m, nil
}

func (m Model) handleEmergency(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.state = StateHome
	case "r":
		return m.loadEmergency()
	}
	return m, nil
}

func (m Model) handleRoommates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.state = StateHome
	case "up", "k":
		if m.roommateCursor > 0 {
			m.roommateCursor--
		}
	case "down", "j":
		if m.roommateCursor < len(m.roommates)-1 {
			m.roommateCursor++
		}
	case "enter":
		if roommate, ok := m.selectedRoommate(); ok && !m.scoring[roommate.ID] {
			m.scoring[roommate.ID] = true
			return m, fetchCompatibility(m.guide, roommate)
		}
	case "a":
		if roommate, ok := m.selectedRoommate(); ok && !m.scoring[roommate.ID] {
			m.scoring[roommate.ID] = true
			m.agreement = ""
			m.agreementFor = ""
			return m, fetchAgreement(m.guide, roommate)
		}
	}
	return m, nil
}

func (m Model) selectedRoommate() (models.RoommateProfile, bool) {
	if m.roommateCursor < 0 || m.roommateCursor >= len(m.roommates) {
		return models.RoommateProfile{}, false
	}
	return m.roommates[m.roommateCursor], true
}

func (m Model) handleChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.chatInput.Blur()
		m.waiting = false
		m.pending = ""
		m.state = StateHome
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" || m.waiting {
			return m, nil
		}
		id := uuid.NewString()
		m.messages = append(m.messages, chatMessage{id: id, role: roleUser, text: text})
		m.chatInput.SetValue("")
		m.waiting = true
		m.pending = id
		return m, sendChat(m.guide, id, text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// resetSettings loads the stored profile into the settings form
func (m *Model) resetSettings() {
	m.settingsInterests = make(map[models.Interest]bool)
	m.settingsInput.SetValue("")
	if m.profile != nil {
		m.settingsInput.SetValue(m.profile.PostalCode)
		for _, interest := range m.profile.Interests {
			m.settingsInterests[interest] = true
		}
	}
	m.settingsCursor = 0
	m.settingsFocus = focusPostalCode
	m.settingsInput.Focus()
}

func (m Model) handleSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.settingsInput.Blur()
		m.state = StateHome
		return m, nil
	case tea.KeyTab:
		if m.settingsFocus == focusPostalCode {
			m.settingsFocus = focusInterests
			m.settingsInput.Blur()
			return m, nil
		}
		m.settingsFocus = focusPostalCode
		m.settingsInput.Focus()
		return m, textinput.Blink
	case tea.KeyEnter:
		if m.profile == nil {
			m.notice = "Complete onboarding first"
			return m, nil
		}
		m.notice = "Saving..."
		return m, saveSettings(m.profiles, m.guide, m.settingsInput.Value(), m.selectedInterests())
	}

	if m.settingsFocus == focusPostalCode {
		var cmd tea.Cmd
		m.settingsInput, cmd = m.settingsInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down", "j":
		if m.settingsCursor < len(models.Interests)-1 {
			m.settingsCursor++
		}
	case " ":
		interest := models.Interests[m.settingsCursor]
		m.settingsInterests[interest] = !m.settingsInterests[interest]
	case "r":
		m.state = StateLoading
		m.loadingText = "Restarting onboarding..."
		return m, tea.Batch(m.spinner.Tick, restartOnboarding(m.profiles))
	}
	return m, nil
}

func (m Model) selectedInterests() []models.Interest {
	var out []models.Interest
	for _, interest := range models.Interests {
		if m.settingsInterests[interest] {
			out = append(out, interest)
		}
	}
	return out
}
