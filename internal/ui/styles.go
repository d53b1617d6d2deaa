package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#E31837") // TTC red
	colorSecondary = lipgloss.Color("#5BC2E7") // Lake blue
	colorDanger    = lipgloss.Color("#FF6B6B")
	colorWarning   = lipgloss.Color("#FFD93D")
	colorSuccess   = lipgloss.Color("#6BCF7F")
	colorMuted     = lipgloss.Color("#6C757D")
	colorBorder    = lipgloss.Color("#4A90E2")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	nameStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorBorder).
			Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Emergency service styles
	hospitalStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	clinicStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	policeStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginTop(1)

	// Chat bubbles
	userBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorBorder).
			Padding(0, 1)

	assistantBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSecondary).
				Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// serviceStyle picks the label style for an emergency service type
func serviceStyle(label string) lipgloss.Style {
	switch label {
	case "hospital":
		return hospitalStyle
	case "clinic":
		return clinicStyle
	default:
		return policeStyle
	}
}
