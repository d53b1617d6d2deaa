package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/ngmaloney/citybuddy/internal/assistant"
	"github.com/ngmaloney/citybuddy/internal/database"
	"github.com/ngmaloney/citybuddy/internal/guide"
	"github.com/ngmaloney/citybuddy/internal/models"
	"github.com/ngmaloney/citybuddy/internal/profile"
	"github.com/ngmaloney/citybuddy/internal/rank"
	"go.uber.org/zap/zaptest"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T) (Model, *profile.Store) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "citybuddy.db"))
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := zaptest.NewLogger(t)
	store := profile.NewStore(db, "", logger)
	svc := guide.NewService(store, nil, nil, nil, guide.Options{}, logger)

	m := NewModel(svc, store, logger)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, store
}

// newHomeModel returns a model for a user who already finished onboarding
func newHomeModel(t *testing.T) (Model, *profile.Store) {
	t.Helper()
	m, store := newTestModel(t)

	_, err := store.CompleteOnboarding(context.Background(), profile.Submission{
		UserType:   models.UserStudent,
		Interests:  []models.Interest{models.InterestFood},
		Budget:     models.BudgetLow,
		PostalCode: "M5V 3L9",
		Address:    "King St W",
	})
	if err != nil {
		t.Fatalf("CompleteOnboarding() error = %v", err)
	}

	m = run(t, m, loadProfile(store, m.guide))
	if m.state != StateHome {
		t.Fatalf("after profile load, state = %v, want StateHome", m.state)
	}
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and feeds the resulting app messages back into the model
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		var next tea.Cmd
		m, next = update(t, m, msg)
		m = run(t, m, next)
	}
	return m
}

// collect runs cmd and keeps only the messages this package defines.
// Spinner ticks and cursor blinks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case profileLoadedMsg, onboardingSavedMsg, onboardingRestartedMsg, settingsSavedMsg,
		recommendationsMsg, emergencyMsg, compatibilityMsg, agreementMsg, chatReplyMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, keyRune(r))
	}
	return m
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)

	if m.state != StateLoading {
		t.Errorf("NewModel() state = %v, want StateLoading", m.state)
	}
	if len(m.messages) != 1 || m.messages[0].role != roleAssistant {
		t.Errorf("NewModel() messages = %+v, want the welcome message", m.messages)
	}
	if len(m.roommates) == 0 {
		t.Error("NewModel() roommates should not be empty")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.width != 100 || m.height != 30 {
		t.Errorf("After WindowSizeMsg, size = %dx%d, want 100x30", m.width, m.height)
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = StateChat

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected Ctrl+C to return quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected Ctrl+C to quit")
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	m, _ := newHomeModel(t)

	m, _ = update(t, m, errMsg{err: tea.ErrProgramKilled})
	if m.state != StateError {
		t.Fatalf("After errMsg, state = %v, want StateError", m.state)
	}
	if !strings.Contains(m.View(), "Something went wrong") {
		t.Error("Error view should explain what happened")
	}

	// any key returns home
	m, _ = update(t, m, keyRune('x'))
	if m.state != StateHome {
		t.Errorf("After key in error state, state = %v, want StateHome", m.state)
	}
	if m.err != nil {
		t.Errorf("After leaving error state, err = %v, want nil", m.err)
	}
}

func TestInit_NoProfileStartsOnboarding(t *testing.T) {
	m, store := newTestModel(t)

	m = run(t, m, loadProfile(store, m.guide))

	if m.state != StateOnboarding {
		t.Fatalf("state = %v, want StateOnboarding", m.state)
	}
	if m.form.step != stepUserType {
		t.Errorf("form step = %v, want stepUserType", m.form.step)
	}
	if m.location.PostalCode != profile.DefaultPostalCode {
		t.Errorf("location postal code = %q, want %q", m.location.PostalCode, profile.DefaultPostalCode)
	}
}

func TestOnboarding_FullFlow(t *testing.T) {
	m, store := newTestModel(t)
	m = run(t, m, loadProfile(store, m.guide))

	// Step 1: newcomer
	m, _ = update(t, m, keyDown)
	m, _ = update(t, m, keyEnter)
	if m.form.step != stepInterests {
		t.Fatalf("after user type, step = %v, want stepInterests", m.form.step)
	}

	// Step 2: culture is the last interest
	for range models.Interests[1:] {
		m, _ = update(t, m, keyDown)
	}
	m, _ = update(t, m, keySpace)
	m, _ = update(t, m, keyEnter)

	// Step 3: medium budget
	m, _ = update(t, m, keyDown)
	m, _ = update(t, m, keyEnter)
	if !m.typing() {
		t.Fatal("postal code step should take text input")
	}

	// Step 4 and 5: postal code and address
	m = typeText(t, m, "m5v3l9")
	m, _ = update(t, m, keyEnter)
	m = typeText(t, m, "  King St W ")
	m, _ = update(t, m, keyEnter)
	if m.form.step != stepRoommate {
		t.Fatalf("after address, step = %v, want stepRoommate", m.form.step)
	}

	// Step 6: wants a roommate, pets ok
	m, _ = update(t, m, keyDown)
	m, cmd := update(t, m, keyEnter)
	if m.state != StateLoading {
		t.Fatalf("after last step, state = %v, want StateLoading", m.state)
	}
	m = run(t, m, cmd)

	if m.state != StateHome {
		t.Fatalf("after saving, state = %v, want StateHome", m.state)
	}

	ctx := context.Background()
	if !store.IsOnboardingComplete(ctx) {
		t.Error("onboarding should be marked complete")
	}
	p, err := store.GetProfile(ctx)
	if err != nil || p == nil {
		t.Fatalf("GetProfile() = %v, %v", p, err)
	}
	if p.UserType != models.UserNewcomer {
		t.Errorf("UserType = %v, want newcomer", p.UserType)
	}
	if len(p.Interests) != 1 || p.Interests[0] != models.InterestCulture {
		t.Errorf("Interests = %v, want [culture]", p.Interests)
	}
	if p.Budget != models.BudgetMedium {
		t.Errorf("Budget = %v, want medium", p.Budget)
	}
	if p.PostalCode != "M5V 3L9" {
		t.Errorf("PostalCode = %q, want M5V 3L9", p.PostalCode)
	}
	if p.Address != "King St W" {
		t.Errorf("Address = %q, want King St W", p.Address)
	}
	prefs := p.RoommatePreferences
	if prefs == nil || prefs.Budget != models.BudgetMedium || prefs.Pets == nil || !*prefs.Pets || prefs.Location != "King St W" {
		t.Errorf("RoommatePreferences = %+v, want medium budget, pets ok, King St W", prefs)
	}
}

func TestOnboarding_InvalidPostalCode(t *testing.T) {
	m, store := newTestModel(t)
	m = run(t, m, loadProfile(store, m.guide))
	m.form.goTo(stepPostalCode)

	m = typeText(t, m, "hello")
	m, _ = update(t, m, keyEnter)

	if m.form.step != stepPostalCode {
		t.Errorf("step = %v, want to stay on stepPostalCode", m.form.step)
	}
	if m.form.err == "" {
		t.Error("expected a postal code hint")
	}
}

func TestOnboarding_EscGoesBack(t *testing.T) {
	m, store := newTestModel(t)
	m = run(t, m, loadProfile(store, m.guide))

	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keyEsc)

	if m.form.step != stepUserType {
		t.Errorf("after esc, step = %v, want stepUserType", m.form.step)
	}
	if m.state != StateOnboarding {
		t.Errorf("after esc, state = %v, want StateOnboarding", m.state)
	}
}

func TestQuitKey_OnlyOutsideTextFields(t *testing.T) {
	m, store := newTestModel(t)
	m = run(t, m, loadProfile(store, m.guide))

	_, cmd := update(t, m, keyRune('q'))
	if cmd == nil {
		t.Fatal("q on a choice step should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q on a choice step should quit")
	}

	m.form.goTo(stepPostalCode)
	m, _ = update(t, m, keyRune('q'))
	if m.state != StateOnboarding {
		t.Errorf("state = %v, want StateOnboarding", m.state)
	}
	if got := m.form.postalInput.Value(); got != "q" {
		t.Errorf("postal input = %q, want q", got)
	}
}

func TestRestartOnboarding_PrefillsForm(t *testing.T) {
	m, store := newHomeModel(t)
	ctx := context.Background()

	m, _ = update(t, m, keyRune('s'))
	if m.state != StateSettings {
		t.Fatalf("state = %v, want StateSettings", m.state)
	}
	m, _ = update(t, m, keyTab)
	m, cmd := update(t, m, keyRune('r'))
	m = run(t, m, cmd)

	if m.state != StateOnboarding {
		t.Fatalf("after restart, state = %v, want StateOnboarding", m.state)
	}
	if store.IsOnboardingComplete(ctx) {
		t.Error("restart should clear the completion flag")
	}
	if p, _ := store.GetProfile(ctx); p == nil {
		t.Error("restart should keep the stored profile")
	}

	// the form starts from the previous answers
	if m.form.sub.UserType != models.UserStudent {
		t.Errorf("prefilled user type = %v, want student", m.form.sub.UserType)
	}
	if m.form.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (student)", m.form.cursor)
	}
	if !m.form.selected[models.InterestFood] || len(m.form.interests()) != 1 {
		t.Errorf("prefilled interests = %v, want [food]", m.form.interests())
	}
	if got := m.form.postalInput.Value(); got != "M5V 3L9" {
		t.Errorf("prefilled postal code = %q, want M5V 3L9", got)
	}
	if got := m.form.addressInput.Value(); got != "King St W" {
		t.Errorf("prefilled address = %q, want King St W", got)
	}

	// budget step lands on the stored budget
	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keyEnter)
	if m.form.step != stepBudget || m.form.cursor != 0 {
		t.Errorf("budget step cursor = %d, want 0 (low)", m.form.cursor)
	}
}

func TestHome_FoodRecommendations(t *testing.T) {
	m, _ := newHomeModel(t)

	m.menu.Select(int(actionFood))
	m, cmd := update(t, m, keyEnter)
	if m.state != StateLoading {
		t.Fatalf("state = %v, want StateLoading", m.state)
	}
	m = run(t, m, cmd)

	if m.state != StateRecommendations {
		t.Fatalf("state = %v, want StateRecommendations", m.state)
	}
	items := m.recommendations.Items
	if len(items) != 7 {
		t.Fatalf("got %d recommendations, want 7", len(items))
	}
	for i := 1; i < len(items); i++ {
		if rank.ParseDistanceKm(items[i-1].Distance) > rank.ParseDistanceKm(items[i].Distance) {
			t.Errorf("recommendations not sorted: %s before %s", items[i-1].Distance, items[i].Distance)
		}
	}
	if m.recommendations.Source != guide.SourceCatalog {
		t.Errorf("source = %v, want catalog", m.recommendations.Source)
	}

	view := m.View()
	if !strings.Contains(view, "Food & Restaurants") || !strings.Contains(view, "The Keg Steakhouse") {
		t.Error("recommendations view should show the category and places")
	}

	m, _ = update(t, m, keyRune('b'))
	if m.state != StateHome {
		t.Errorf("after b, state = %v, want StateHome", m.state)
	}
}

func TestExplore_CategoryRecommendations(t *testing.T) {
	m, _ := newHomeModel(t)

	m.menu.Select(int(actionExplore))
	m, _ = update(t, m, keyEnter)
	if m.state != StateExplore {
		t.Fatalf("state = %v, want StateExplore", m.state)
	}

	m.categories.Select(2)
	m, cmd := update(t, m, keyEnter)
	m = run(t, m, cmd)

	if m.state != StateRecommendations {
		t.Fatalf("state = %v, want StateRecommendations", m.state)
	}
	if m.category != "Parks & Recreation" {
		t.Errorf("category = %q, want Parks & Recreation", m.category)
	}
	if got := m.recommendations.Items[0].Name; got != "Osgoode Hall" {
		t.Errorf("nearest park = %q, want Osgoode Hall", got)
	}

	m, _ = update(t, m, keyRune('b'))
	if m.state != StateExplore {
		t.Errorf("after b, state = %v, want StateExplore", m.state)
	}
	m, _ = update(t, m, keyEsc)
	if m.state != StateHome {
		t.Errorf("after esc, state = %v, want StateHome", m.state)
	}
}

func TestStaleResultsIgnored(t *testing.T) {
	m, _ := newHomeModel(t)

	m, _ = update(t, m, recommendationsMsg{category: "food"})
	if m.state != StateHome {
		t.Errorf("late recommendations moved state to %v", m.state)
	}
	m, _ = update(t, m, emergencyMsg{})
	if m.state != StateHome {
		t.Errorf("late emergency results moved state to %v", m.state)
	}
}

func TestEmergencyScreen(t *testing.T) {
	m, _ := newHomeModel(t)

	m, cmd := update(t, m, keyRune('e'))
	m = run(t, m, cmd)

	if m.state != StateEmergency {
		t.Fatalf("state = %v, want StateEmergency", m.state)
	}
	if len(m.emergency.Items) != 12 {
		t.Errorf("got %d services, want 12", len(m.emergency.Items))
	}
	view := m.View()
	if !strings.Contains(view, "911") {
		t.Error("emergency view should mention 911")
	}
	if !strings.Contains(view, "HOSPITAL") || !strings.Contains(view, "POLICE") {
		t.Error("emergency view should label service types")
	}
}

func TestRoommates_CompatibilityAndAgreement(t *testing.T) {
	m, _ := newHomeModel(t)

	m.menu.Select(int(actionRoommates))
	m, _ = update(t, m, keyEnter)
	if m.state != StateRoommates {
		t.Fatalf("state = %v, want StateRoommates", m.state)
	}

	m, _ = update(t, m, keyDown)
	roommate := m.roommates[1]

	m, cmd := update(t, m, keyEnter)
	if !m.scoring[roommate.ID] {
		t.Error("roommate should be marked as scoring")
	}
	m = run(t, m, cmd)

	score, ok := m.scores[roommate.ID]
	if !ok {
		t.Fatal("expected a compatibility score")
	}
	if score.Score < 70 || score.Score > 99 {
		t.Errorf("fallback score = %d, want 70-99", score.Score)
	}

	m, cmd = update(t, m, keyRune('a'))
	m = run(t, m, cmd)
	if m.agreement != assistant.FallbackAgreement {
		t.Errorf("agreement = %q, want the fallback agreement", m.agreement)
	}
	if !strings.Contains(m.View(), "Agreement with "+roommate.Name) {
		t.Error("roommate view should show the agreement")
	}
}

func TestChat_SendAndReply(t *testing.T) {
	m, _ := newHomeModel(t)

	m, _ = update(t, m, keyRune('c'))
	if m.state != StateChat {
		t.Fatalf("state = %v, want StateChat", m.state)
	}

	m = typeText(t, m, "best queso?")
	if m.state != StateChat {
		t.Fatalf("typing q should not leave chat, state = %v", m.state)
	}

	m, cmd := update(t, m, keyEnter)
	if !m.waiting {
		t.Error("model should wait for a reply")
	}
	if m.chatInput.Value() != "" {
		t.Errorf("chat input = %q, want cleared", m.chatInput.Value())
	}
	sent := m.messages[len(m.messages)-1]
	if sent.role != roleUser || sent.text != "best queso?" {
		t.Errorf("last message = %+v, want the user's question", sent)
	}
	if _, err := uuid.Parse(sent.id); err != nil {
		t.Errorf("message id %q is not a uuid: %v", sent.id, err)
	}

	m = run(t, m, cmd)
	reply := m.messages[len(m.messages)-1]
	if reply.role != roleAssistant || reply.replyTo != sent.id {
		t.Errorf("reply = %+v, want an answer to %s", reply, sent.id)
	}
	if reply.text != assistant.FallbackChatReply {
		t.Errorf("reply text = %q, want the fallback reply", reply.text)
	}
	if reply.id == sent.id {
		t.Error("reply should have its own id")
	}
	if m.waiting {
		t.Error("model should stop waiting after the reply")
	}

	m, _ = update(t, m, keyEsc)
	if m.state != StateHome {
		t.Errorf("after esc, state = %v, want StateHome", m.state)
	}
}

func TestChat_StaleReplyDropped(t *testing.T) {
	m, _ := newHomeModel(t)
	m, _ = update(t, m, keyRune('c'))
	m = typeText(t, m, "where is kensington market?")
	m, _ = update(t, m, keyEnter)
	sent := m.messages[len(m.messages)-1]
	before := len(m.messages)

	m, _ = update(t, m, chatReplyMsg{replyTo: uuid.NewString(), text: "wrong question"})
	if len(m.messages) != before {
		t.Errorf("reply to another message was appended: %+v", m.messages[len(m.messages)-1])
	}
	if !m.waiting {
		t.Error("model should keep waiting for the matching reply")
	}

	// Leaving chat abandons the pending question.
	m, _ = update(t, m, keyEsc)
	if m.waiting {
		t.Error("leaving chat should stop waiting")
	}
	m, _ = update(t, m, chatReplyMsg{replyTo: sent.id, text: "late answer"})
	if len(m.messages) != before {
		t.Error("reply arriving after leaving chat should be dropped")
	}

	m, _ = update(t, m, keyRune('c'))
	m = typeText(t, m, "and the islands?")
	m, _ = update(t, m, keyEnter)
	next := m.messages[len(m.messages)-1]
	m, _ = update(t, m, chatReplyMsg{replyTo: next.id, text: "Take the ferry."})
	reply := m.messages[len(m.messages)-1]
	if reply.text != "Take the ferry." || reply.replyTo != next.id {
		t.Errorf("reply = %+v, want the answer to %s", reply, next.id)
	}
	if m.waiting {
		t.Error("model should stop waiting after the matching reply")
	}
}

func TestChat_BlankMessageIgnored(t *testing.T) {
	m, _ := newHomeModel(t)
	m, _ = update(t, m, keyRune('c'))
	before := len(m.messages)

	m, cmd := update(t, m, keyEnter)
	if cmd != nil || len(m.messages) != before {
		t.Error("blank chat message should be ignored")
	}
}

func TestSettings_SaveBackfillsPostalCode(t *testing.T) {
	m, store := newHomeModel(t)

	m.menu.Select(int(actionSettings))
	m, _ = update(t, m, keyEnter)
	if got := m.settingsInput.Value(); got != "M5V 3L9" {
		t.Fatalf("settings postal code = %q, want M5V 3L9", got)
	}

	m.settingsInput.SetValue("")
	m, _ = update(t, m, keyTab)
	m, _ = update(t, m, keyDown)
	m, _ = update(t, m, keySpace)
	m, cmd := update(t, m, keyEnter)
	m = run(t, m, cmd)

	if m.notice != "Settings saved" {
		t.Errorf("notice = %q, want Settings saved", m.notice)
	}
	if m.profile.PostalCode != profile.DefaultPostalCode {
		t.Errorf("postal code = %q, want the default", m.profile.PostalCode)
	}
	if m.location.PostalCode != profile.DefaultPostalCode {
		t.Errorf("location postal code = %q, want the default", m.location.PostalCode)
	}

	p, _ := store.GetProfile(context.Background())
	want := []models.Interest{models.InterestFood, models.InterestNightlife}
	if len(p.Interests) != 2 || p.Interests[0] != want[0] || p.Interests[1] != want[1] {
		t.Errorf("stored interests = %v, want %v", p.Interests, want)
	}
}

func TestViews_RenderEveryState(t *testing.T) {
	m, _ := newHomeModel(t)

	for _, state := range []AppState{
		StateLoading, StateHome, StateExplore, StateRecommendations, StateEmergency,
		StateRoommates, StateChat, StateSettings, StateError,
	} {
		m.state = state
		if m.View() == "" {
			t.Errorf("View() in state %v is empty", state)
		}
	}

	m.width = 0
	if m.View() != "Loading..." {
		t.Error("View() before the first window size should be Loading...")
	}
}
