// Package forms maps a species to the artwork tabs it offers (base form,
// megas, gigantamax, regional variants and a few one-offs) and builds the
// artwork URLs for each tab.
package forms

import "strings"

// FormTab is one selectable artwork variant.
type FormTab struct {
	Key           string        `json:"key"`
	Label         string        `json:"label"`
	ArtworkSuffix string        `json:"suffix"`
	Shiny         func() string `json:"-"`
}

// HasShiny reports whether the tab carries its own shiny art.
func (t FormTab) HasShiny() bool {
	return t.Shiny != nil
}

// BaseKey is the key of the tab every species has.
const BaseKey = "normal"

// Base is the default tab.
var Base = FormTab{Key: BaseKey, Label: "Normal"}

// TabsFor returns the tabs of a species: the base tab, then the fixed
// multi-form tabs, then the single mega tab, then regional tabs. Keys are
// not deduplicated. slug is the lowercase species name used by shiny URLs.
func TabsFor(speciesID int, slug string) []FormTab {
	tabs := []FormTab{Base}

	for _, spec := range fixedTabs[speciesID] {
		tabs = append(tabs, spec.tab())
	}

	if _, ok := singleMega[speciesID]; ok {
		url := shinyHost + slug + "-mega.jpg"
		tabs = append(tabs, FormTab{
			Key:           "mega",
			Label:         "Mega",
			ArtworkSuffix: "_f2",
			Shiny:         func() string { return url },
		})
	}

	for _, rf := range regionalForms[speciesID] {
		url := shinyHost + slug + "-" + rf.region + ".jpg"
		tabs = append(tabs, FormTab{
			Key:           rf.region,
			Label:         strings.ToUpper(rf.region[:1]) + rf.region[1:],
			ArtworkSuffix: rf.suffix,
			Shiny:         func() string { return url },
		})
	}
	return tabs
}

func (s tabSpec) tab() FormTab {
	t := FormTab{Key: s.key, Label: s.label, ArtworkSuffix: s.suffix}
	if s.shiny != "" {
		url := s.shiny
		t.Shiny = func() string { return url }
	}
	return t
}

// ActiveTab returns the first tab with key, or the first tab when none
// matches. An empty list yields Base.
func ActiveTab(tabs []FormTab, key string) FormTab {
	for _, t := range tabs {
		if t.Key == key {
			return t
		}
	}
	if len(tabs) == 0 {
		return Base
	}
	return tabs[0]
}

// Keys lists the tab keys in order.
func Keys(tabs []FormTab) []string {
	keys := make([]string, len(tabs))
	for i, t := range tabs {
		keys[i] = t.Key
	}
	return keys
}
