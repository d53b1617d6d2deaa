package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/citybuddy/internal/catalog"
	"github.com/ngmaloney/citybuddy/internal/guide"
	"github.com/ngmaloney/citybuddy/internal/models"
	"github.com/ngmaloney/citybuddy/internal/places"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateOnboarding:
		return m.form.View()
	case StateHome:
		return m.viewHome()
	case StateExplore:
		return m.viewExplore()
	case StateRecommendations:
		return m.viewRecommendations()
	case StateEmergency:
		return m.viewEmergency()
	case StateRoommates:
		return m.viewRoommates()
	case StateChat:
		return m.viewChat()
	case StateSettings:
		return m.viewSettings()
	case StateError:
		return m.viewError()
	}

	return ""
}

// contentWidth is the wrap width for free text
func (m Model) contentWidth() int {
	if m.width > 84 {
		return 80
	}
	if m.width > 24 {
		return m.width - 4
	}
	return 20
}

func (m Model) viewLoading() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		titleStyle.Render("🍁 CityBuddy"),
		"",
		fmt.Sprintf("%s %s", m.spinner.View(), mutedStyle.Render(m.loadingText)),
	)
}

func (m Model) viewError() string {
	title := errorStyle.Render("✗ Something went wrong")

	errorMsg := "An unknown error occurred"
	if m.err != nil {
		errorMsg = m.err.Error()
	}

	help := helpStyle.Render("Press any key to continue • Q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

// header is the title plus the user's location
func (m Model) header(title string) []string {
	location := m.location.Location
	if m.location.PostalCode != "" {
		location = fmt.Sprintf("%s (%s)", location, m.location.PostalCode)
	}
	return []string{
		titleStyle.Render(title),
		mutedStyle.Render("📍 " + location),
	}
}

func (m Model) viewHome() string {
	sections := m.header("🍁 CityBuddy")
	if m.profile != nil {
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("Welcome, %s • Budget: %s",
			strings.ToLower(userTypeLabels[m.profile.UserType]), budgetLabels[m.profile.Budget])))
	}
	sections = append(sections,
		"",
		m.menu.View(),
		helpStyle.Render("↑/↓: Navigate • Enter: Select • E: Emergency • C: Chat • S: Settings • Q: Quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewExplore() string {
	sections := m.header("🗺 Explore My Area")
	sections = append(sections,
		"",
		m.categories.View(),
		helpStyle.Render("↑/↓: Navigate • Enter: Show places • Esc: Home • Q: Quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) sourceLine(source guide.Source) string {
	line := "Source: " + source.Label()
	if source == guide.SourceCatalog && !m.guide.PlacesEnabled() && !m.guide.AssistantEnabled() {
		line += " • " + liveResultsHint
	}
	return mutedStyle.Render(line)
}

func (m Model) viewRecommendations() string {
	title := m.category
	if interest, ok := catalog.Normalize(m.category); ok {
		title = catalog.DisplayName(interest)
	}

	sections := m.header("✨ " + title)
	sections = append(sections, m.sourceLine(m.recommendations.Source), "")

	if len(m.recommendations.Items) == 0 {
		sections = append(sections, mutedStyle.Render("Nothing found nearby. Press R to try again."))
	}

	width := m.contentWidth()
	for i, r := range m.recommendations.Items {
		sections = append(sections, m.renderRecommendation(i+1, r, width), "")
	}

	sections = append(sections, helpStyle.Render("R: Refresh • B: Back • Esc: Home • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderRecommendation(n int, r models.Recommendation, width int) string {
	lines := []string{
		fmt.Sprintf("%d. %s  %s", n, nameStyle.Render(r.Name), mutedStyle.Render(r.Distance)),
	}
	if r.Address != "" {
		lines = append(lines, "   "+r.Address)
	}
	if r.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Width(width).PaddingLeft(3).Render(r.Description))
	}
	lines = append(lines, "   "+linkStyle.Render(places.SearchURL(r.Name, m.location.PostalCode)))
	return strings.Join(lines, "\n")
}

func (m Model) viewEmergency() string {
	sections := m.header("🚨 Emergency Help")
	sections = append(sections,
		errorStyle.Render("In an emergency call 911"),
		m.sourceLine(m.emergency.Source),
		"",
	)

	if len(m.emergency.Items) == 0 {
		sections = append(sections, mutedStyle.Render("No services found. Press R to try again."))
	}

	from := m.location.PostalCode
	if m.profile != nil && m.profile.Address != "" {
		from = m.profile.Address
	}

	for _, s := range m.emergency.Items {
		label := serviceStyle(string(s.Type)).Render(strings.ToUpper(string(s.Type)))
		lines := []string{
			fmt.Sprintf("%s  %s  %s", label, nameStyle.Render(s.Name), mutedStyle.Render(s.Distance)),
			"   " + s.Address,
		}
		if s.Phone != "" {
			lines = append(lines, "   ☎ "+s.Phone)
		}
		lines = append(lines, "   "+linkStyle.Render(places.DirectionsURL(from, s.Address)))
		sections = append(sections, strings.Join(lines, "\n"), "")
	}

	sections = append(sections, helpStyle.Render("R: Refresh • Esc: Home • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewRoommates() string {
	sections := m.header("🏠 Roommate Finder")
	sections = append(sections, "")

	width := m.contentWidth()
	for i, r := range m.roommates {
		cursor := "  "
		name := r.Name
		if i == m.roommateCursor {
			cursor = cursorStyle.Render("> ")
			name = cursorStyle.Render(name)
		} else {
			name = nameStyle.Render(name)
		}

		pets := "No pets"
		if r.Pets {
			pets = "Pet friendly"
		}
		lines := []string{
			cursor + name + "  " + mutedStyle.Render(fmt.Sprintf("%s • %s budget • %s", r.Location, r.Budget, r.Schedule)),
			"  " + mutedStyle.Render(pets+" • "+strings.Join(r.Interests, ", ")),
		}

		if m.scoring[r.ID] {
			lines = append(lines, "  "+mutedStyle.Render("Asking Gemini..."))
		} else if score, ok := m.scores[r.ID]; ok {
			lines = append(lines, "  "+successStyle.Render(fmt.Sprintf("%d%% match", score.Score))+" "+score.Summary)
		}
		if i == m.roommateCursor {
			lines = append(lines, lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(r.Bio))
		}
		sections = append(sections, strings.Join(lines, "\n"), "")
	}

	if m.agreement != "" {
		for _, r := range m.roommates {
			if r.ID == m.agreementFor {
				sections = append(sections, sectionHeaderStyle.Render("📝 Agreement with "+r.Name))
				break
			}
		}
		sections = append(sections, lipgloss.NewStyle().Width(width).Render(m.agreement), "")
	}

	sections = append(sections, helpStyle.Render("↑/↓: Navigate • Enter: Compatibility • A: Draft agreement • Esc: Home • Q: Quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewChat() string {
	sections := []string{titleStyle.Render("💬 Talk to Gemini")}
	if !m.guide.AssistantEnabled() {
		sections = append(sections, mutedStyle.Render("Set GEMINI_API_KEY to chat with the live assistant"))
	}
	sections = append(sections, "")

	width := m.contentWidth()
	var transcript []string
	for _, msg := range m.messages {
		if msg.role == roleUser {
			transcript = append(transcript, lipgloss.NewStyle().Width(width).Align(lipgloss.Right).
				Render(userBubbleStyle.Render(msg.text)))
		} else {
			transcript = append(transcript, assistantBubbleStyle.Width(width-4).Render(msg.text))
		}
	}
	if m.waiting {
		transcript = append(transcript, mutedStyle.Render("CityBuddy is typing..."))
	}

	// keep the tail of the transcript on screen
	if m.height > 0 {
		budget := m.height - 10
		for len(transcript) > 1 && lipgloss.Height(strings.Join(transcript, "\n")) > budget {
			transcript = transcript[1:]
		}
	}

	sections = append(sections, transcript...)
	sections = append(sections,
		"",
		inputBoxStyle.Render(m.chatInput.View()),
		helpStyle.Render("Enter: Send • Esc: Home • Ctrl+C: Quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewSettings() string {
	sections := []string{titleStyle.Render("⚙ Settings"), ""}

	if m.profile != nil {
		sections = append(sections,
			labelStyle.Render("User type: ")+valueStyle.Render(userTypeLabels[m.profile.UserType]),
			labelStyle.Render("Budget: ")+valueStyle.Render(budgetLabels[m.profile.Budget]),
		)
		if m.profile.Address != "" {
			sections = append(sections, labelStyle.Render("Address: ")+valueStyle.Render(m.profile.Address))
		}
		if prefs := m.profile.RoommatePreferences; prefs != nil {
			pets := "No preference"
			if prefs.Pets != nil && *prefs.Pets {
				pets = "Yes"
			} else if prefs.Pets != nil {
				pets = "No"
			}
			sections = append(sections,
				labelStyle.Render("Roommate budget: ")+valueStyle.Render(budgetLabels[prefs.Budget]),
				labelStyle.Render("Open to pets: ")+valueStyle.Render(pets),
			)
		}
	}

	sections = append(sections, sectionHeaderStyle.Render("Postal code"), inputBoxStyle.Render(m.settingsInput.View()))
	if m.location.PostalCode != "" {
		sections = append(sections, linkStyle.Render(places.OpenStreetMapURL(m.location.PostalCode)))
	}

	sections = append(sections, sectionHeaderStyle.Render("Interests"))
	for i, interest := range models.Interests {
		box := "[ ]"
		if m.settingsInterests[interest] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, catalog.DisplayName(interest))
		if m.settingsFocus == focusInterests && i == m.settingsCursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sections = append(sections, line)
	}

	if m.notice != "" {
		sections = append(sections, "", successStyle.Render(m.notice))
	}

	help := "Tab: Switch field • Enter: Save • Esc: Home • Ctrl+C: Quit"
	if m.settingsFocus == focusInterests {
		help = "Tab: Switch field • Space: Toggle • Enter: Save • R: Redo onboarding • Esc: Home • Q: Quit"
	}
	sections = append(sections, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
