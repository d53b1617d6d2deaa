package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/citybuddy/internal/geocoding"
	"github.com/ngmaloney/citybuddy/internal/models"
	"github.com/ngmaloney/citybuddy/internal/profile"
)

type onboardingStep int

const (
	stepUserType onboardingStep = iota
	stepInterests
	stepBudget
	stepPostalCode
	stepAddress
	stepRoommate
)

var userTypeLabels = map[models.UserType]string{
	models.UserStudent:  "Student",
	models.UserNewcomer: "Newcomer to Toronto",
	models.UserTourist:  "Tourist",
	models.UserWorker:   "Working professional",
}

var budgetLabels = map[models.Budget]string{
	models.BudgetLow:    "Low ($)",
	models.BudgetMedium: "Medium ($$)",
	models.BudgetHigh:   "High ($$$)",
}

// roommate step choices
const (
	roommateNo = iota
	roommateWithPets
	roommateNoPets
)

var roommateLabels = []string{"No thanks", "Yes, and I'm fine with pets", "Yes, but no pets"}

// onboardingForm is the in-progress onboarding questionnaire.
// Nothing is stored until the last step is confirmed.
type onboardingForm struct {
	step         onboardingStep
	cursor       int
	sub          profile.Submission
	selected     map[models.Interest]bool
	postalInput  textinput.Model
	addressInput textinput.Model
	err          string
}

// newOnboardingForm starts the questionnaire, pre-filled from sub
func newOnboardingForm(sub profile.Submission) onboardingForm {
	postal := textinput.New()
	postal.Placeholder = "M5H 2N2"
	postal.CharLimit = 10
	postal.Width = 20
	postal.SetValue(sub.PostalCode)

	address := textinput.New()
	address.Placeholder = "Street address (optional)"
	address.CharLimit = 100
	address.Width = 50
	address.SetValue(sub.Address)

	selected := make(map[models.Interest]bool, len(sub.Interests))
	for _, interest := range sub.Interests {
		selected[interest] = true
	}

	f := onboardingForm{
		sub:          sub,
		selected:     selected,
		postalInput:  postal,
		addressInput: address,
	}
	f.cursor = f.initialCursor()
	return f
}

// typing reports whether keys go to a text field
func (f onboardingForm) typing() bool {
	return f.step == stepPostalCode || f.step == stepAddress
}

// optionCount is the number of choices on the current step
func (f onboardingForm) optionCount() int {
	switch f.step {
	case stepUserType:
		return len(models.UserTypes)
	case stepInterests:
		return len(models.Interests)
	case stepBudget:
		return len(models.Budgets)
	case stepRoommate:
		return len(roommateLabels)
	}
	return 0
}

// initialCursor points at the pre-filled answer for the current step
func (f onboardingForm) initialCursor() int {
	switch f.step {
	case stepUserType:
		for i, t := range models.UserTypes {
			if t == f.sub.UserType {
				return i
			}
		}
	case stepBudget:
		for i, b := range models.Budgets {
			if b == f.sub.Budget {
				return i
			}
		}
	case stepRoommate:
		if !f.sub.WantsRoommate {
			return roommateNo
		}
		if f.sub.Roommate.Pets != nil && !*f.sub.Roommate.Pets {
			return roommateNoPets
		}
		return roommateWithPets
	}
	return 0
}

// Update handles a key press. done is true once the last step is confirmed.
func (f onboardingForm) Update(msg tea.KeyMsg) (form onboardingForm, done bool, cmd tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if f.step > stepUserType {
			f.goTo(f.step - 1)
		}
		return f, false, nil
	}

	if f.typing() {
		if msg.Type == tea.KeyEnter {
			return f.confirmText()
		}
		if f.step == stepPostalCode {
			f.postalInput, cmd = f.postalInput.Update(msg)
		} else {
			f.addressInput, cmd = f.addressInput.Update(msg)
		}
		f.err = ""
		return f, false, cmd
	}

	switch msg.String() {
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < f.optionCount()-1 {
			f.cursor++
		}
	case " ":
		if f.step == stepInterests {
			interest := models.Interests[f.cursor]
			f.selected[interest] = !f.selected[interest]
		}
	case "enter":
		return f.confirmChoice()
	}
	return f, false, nil
}

func (f onboardingForm) confirmChoice() (onboardingForm, bool, tea.Cmd) {
	switch f.step {
	case stepUserType:
		f.sub.UserType = models.UserTypes[f.cursor]
		f.goTo(stepInterests)
	case stepInterests:
		f.sub.Interests = f.interests()
		f.goTo(stepBudget)
	case stepBudget:
		f.sub.Budget = models.Budgets[f.cursor]
		f.goTo(stepPostalCode)
		return f, false, textinput.Blink
	case stepRoommate:
		f.sub.WantsRoommate = f.cursor != roommateNo
		f.sub.Roommate = models.RoommatePreferences{Location: f.sub.Address}
		if f.sub.WantsRoommate {
			pets := f.cursor == roommateWithPets
			f.sub.Roommate.Pets = &pets
		}
		return f, true, nil
	}
	return f, false, nil
}

func (f onboardingForm) confirmText() (onboardingForm, bool, tea.Cmd) {
	if f.step == stepPostalCode {
		code := strings.TrimSpace(f.postalInput.Value())
		if code != "" && !geocoding.IsPostalCode(code) {
			f.err = "Enter a postal code like M5H 2N2, or leave it blank"
			return f, false, nil
		}
		f.sub.PostalCode = code
		f.goTo(stepAddress)
		return f, false, textinput.Blink
	}

	f.sub.Address = strings.TrimSpace(f.addressInput.Value())
	f.goTo(stepRoommate)
	return f, false, nil
}

func (f *onboardingForm) goTo(step onboardingStep) {
	f.step = step
	f.err = ""
	f.cursor = f.initialCursor()
	f.postalInput.Blur()
	f.addressInput.Blur()
	switch step {
	case stepPostalCode:
		f.postalInput.Focus()
	case stepAddress:
		f.addressInput.Focus()
	}
}

// interests returns the selection in display order
func (f onboardingForm) interests() []models.Interest {
	var out []models.Interest
	for _, interest := range models.Interests {
		if f.selected[interest] {
			out = append(out, interest)
		}
	}
	return out
}

// submission returns the answers gathered so far
func (f onboardingForm) submission() profile.Submission {
	return f.sub
}

func (f onboardingForm) View() string {
	title := titleStyle.Render("🍁 Welcome to CityBuddy")
	progress := mutedStyle.Render(fmt.Sprintf("Step %d of %d", int(f.step)+1, int(stepRoommate)+1))

	var question string
	var body []string

	switch f.step {
	case stepUserType:
		question = "What brings you to Toronto?"
		for i, t := range models.UserTypes {
			body = append(body, f.option(i, userTypeLabels[t]))
		}
	case stepInterests:
		question = "What are you interested in? (space to toggle)"
		for i, interest := range models.Interests {
			box := "[ ]"
			if f.selected[interest] {
				box = "[x]"
			}
			body = append(body, f.option(i, box+" "+strings.ToUpper(string(interest[:1]))+string(interest[1:])))
		}
		if len(f.interests()) == 0 {
			body = append(body, "", mutedStyle.Render("Nothing selected: we'll start you with food and parks"))
		}
	case stepBudget:
		question = "What's your budget?"
		for i, b := range models.Budgets {
			body = append(body, f.option(i, budgetLabels[b]))
		}
	case stepPostalCode:
		question = "What's your postal code?"
		body = append(body, inputBoxStyle.Render(f.postalInput.View()),
			mutedStyle.Render("Leave blank to use downtown Toronto"))
	case stepAddress:
		question = "Your address or neighbourhood"
		body = append(body, inputBoxStyle.Render(f.addressInput.View()))
	case stepRoommate:
		question = "Looking for a roommate?"
		for i, label := range roommateLabels {
			body = append(body, f.option(i, label))
		}
	}

	sections := []string{title, progress, "", labelStyle.Render(question), ""}
	sections = append(sections, body...)
	if f.err != "" {
		sections = append(sections, "", errorStyle.Render("✗ "+f.err))
	}

	help := "↑/↓: Choose • Enter: Next • Esc: Back • Q: Quit"
	if f.typing() {
		help = "Enter: Next • Esc: Back • Ctrl+C: Quit"
	}
	sections = append(sections, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (f onboardingForm) option(i int, label string) string {
	if i == f.cursor {
		return cursorStyle.Render("> " + label)
	}
	return "  " + label
}
