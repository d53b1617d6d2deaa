package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/citybuddy/internal/catalog"
)

// menuAction is what selecting a home menu entry does
type menuAction int

const (
	actionExplore menuAction = iota
	actionEmergency
	actionFood
	actionThingsToDo
	actionRoommates
	actionChat
	actionSettings
)

// menuItem is an entry on the home screen
type menuItem struct {
	icon     string
	title    string
	subtitle string
	action   menuAction
}

// FilterValue implements list.Item
func (i menuItem) FilterValue() string {
	return i.title
}

// Title implements list.DefaultItem
func (i menuItem) Title() string {
	return i.icon + " " + i.title
}

// Description implements list.DefaultItem
func (i menuItem) Description() string {
	return i.subtitle
}

var homeMenu = []menuItem{
	{icon: "🗺", title: "Explore My Area", subtitle: "Discover local places", action: actionExplore},
	{icon: "🚨", title: "Emergency Help", subtitle: "Hospitals, clinics, police", action: actionEmergency},
	{icon: "🍽", title: "Food & Groceries", subtitle: "Restaurants and stores", action: actionFood},
	{icon: "🎭", title: "Things to Do", subtitle: "Events and activities", action: actionThingsToDo},
	{icon: "🏠", title: "Roommate Finder", subtitle: "Find compatible roommates", action: actionRoommates},
	{icon: "💬", title: "Talk to Gemini", subtitle: "AI city guide chat", action: actionChat},
	{icon: "⚙", title: "Settings", subtitle: "Postal code, interests, profile", action: actionSettings},
}

// categoryItem wraps an explorer category for use in a list
type categoryItem struct {
	category catalog.Category
}

// FilterValue implements list.Item
func (c categoryItem) FilterValue() string {
	return c.category.DisplayName
}

// Title implements list.DefaultItem
func (c categoryItem) Title() string {
	return c.category.Icon + " " + c.category.DisplayName
}

// Description implements list.DefaultItem
func (c categoryItem) Description() string {
	return "Places near you"
}

func createHomeMenu(width, height int) list.Model {
	items := make([]list.Item, len(homeMenu))
	for i, item := range homeMenu {
		items[i] = item
	}
	return newList(items, "What would you like to do?", width, height)
}

func createCategoryList(width, height int) list.Model {
	categories := catalog.Categories()
	items := make([]list.Item, len(categories))
	for i, c := range categories {
		items[i] = categoryItem{category: c}
	}
	return newList(items, "Explore Toronto", width, height)
}

func newList(items []list.Item, title string, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
