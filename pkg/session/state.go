// Package session holds the per-viewer UI state: the active filter criteria
// and display preferences, updated through a reducer and persisted for the
// lifetime of the process.
package session

import (
	"strings"

	"github.com/sail-dex/pokedex/pkg/filter"
)

// Preferences are the persisted display settings.
type Preferences struct {
	SearchText string `json:"search"`
	ShowBack   bool   `json:"show_back"`
	ShowShiny  bool   `json:"show_shiny"`
	DarkMode   bool   `json:"dark_mode"`
}

// State is the whole UI state of one viewer. It is a value: Reduce returns a
// new State and never modifies its input.
type State struct {
	Criteria filter.Criteria `json:"criteria"`
	Prefs    Preferences     `json:"prefs"`
}

// Action is a user input that changes the state.
type Action interface {
	apply(State) State
}

// SearchChanged sets the name query. The text is stored lowercased.
type SearchChanged struct{ Text string }

// TypeSelected sets or, with an empty Name, clears the type filter.
type TypeSelected struct{ Name string }

// RegionSelected sets or clears the region filter.
type RegionSelected struct{ Name string }

// FormSelected sets or clears the form-group filter.
type FormSelected struct{ Group filter.FormGroup }

// Reset clears every criterion and the stored search text. Toggles are kept.
type Reset struct{}

type (
	ToggleBack     struct{}
	ToggleShiny    struct{}
	ToggleDarkMode struct{}
)

func (a SearchChanged) apply(s State) State {
	text := strings.ToLower(a.Text)
	s.Prefs.SearchText = text
	s.Criteria.NameQuery = text
	return s
}

func (a TypeSelected) apply(s State) State {
	s.Criteria.TypeName = a.Name
	return s
}

func (a RegionSelected) apply(s State) State {
	s.Criteria.RegionName = a.Name
	return s
}

func (a FormSelected) apply(s State) State {
	s.Criteria.FormGroup = a.Group
	return s
}

func (Reset) apply(s State) State {
	s.Criteria = filter.Criteria{}
	s.Prefs.SearchText = ""
	return s
}

func (ToggleBack) apply(s State) State {
	s.Prefs.ShowBack = !s.Prefs.ShowBack
	return s
}

func (ToggleShiny) apply(s State) State {
	s.Prefs.ShowShiny = !s.Prefs.ShowShiny
	return s
}

func (ToggleDarkMode) apply(s State) State {
	s.Prefs.DarkMode = !s.Prefs.DarkMode
	return s
}

// Reduce applies actions in order and returns the resulting state.
func Reduce(s State, actions ...Action) State {
	for _, a := range actions {
		if a != nil {
			s = a.apply(s)
		}
	}
	return s
}

// ToggleFor maps a toggle name (back, shiny, dark) to its action.
func ToggleFor(name string) (Action, bool) {
	switch name {
	case "back":
		return ToggleBack{}, true
	case "shiny":
		return ToggleShiny{}, true
	case "dark":
		return ToggleDarkMode{}, true
	}
	return nil, false
}
