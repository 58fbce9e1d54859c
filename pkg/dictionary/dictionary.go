// Package dictionary loads the filter vocabularies: the selectable types and
// regions.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"golang.org/x/sync/errgroup"
)

// Entry is one selectable vocabulary value.
type Entry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Dictionaries holds both vocabularies. A vocabulary whose fetch failed is
// nil.
type Dictionaries struct {
	Types   []Entry `json:"types"`
	Regions []Entry `json:"regions"`
}

// Source lists types and generations.
type Source interface {
	Types(ctx context.Context) ([]pokeapi.NamedResource, error)
	Generations(ctx context.Context) ([]pokeapi.NamedResource, error)
}

// hiddenTypes are never offered as a filter.
var hiddenTypes = map[string]struct{}{
	"shadow":  {},
	"unknown": {},
}

// regionLabels name generations by position in the API listing.
var regionLabels = []string{
	"Kanto (Gen I)", "Johto (Gen II)", "Hoenn (Gen III)",
	"Sinnoh (Gen IV)", "Unova (Gen V)", "Kalos (Gen VI)",
	"Alola (Gen VII)", "Galar (Gen VIII)", "Paldea (Gen IX)",
}

// Load fetches both vocabularies concurrently. A failure in one does not stop
// the other: whatever succeeded is returned, and the error joins the
// failures.
func Load(ctx context.Context, src Source) (Dictionaries, error) {
	var (
		d    Dictionaries
		mu   sync.Mutex
		errs []error
	)
	addError := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	var eg errgroup.Group

	eg.Go(func() error {
		items, err := src.Types(ctx)
		if err != nil {
			addError(fmt.Errorf("types: %w", err))
			return nil
		}
		d.Types = TypeEntries(items)
		return nil
	})

	eg.Go(func() error {
		items, err := src.Generations(ctx)
		if err != nil {
			addError(fmt.Errorf("regions: %w", err))
			return nil
		}
		d.Regions = RegionEntries(items)
		return nil
	})

	_ = eg.Wait()
	return d, errors.Join(errs...)
}

// TypeEntries drops the hidden types and labels the rest.
func TypeEntries(items []pokeapi.NamedResource) []Entry {
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		if _, hidden := hiddenTypes[it.Name]; hidden {
			continue
		}
		out = append(out, Entry{Name: it.Name, Label: title(it.Name)})
	}
	return out
}

// RegionEntries labels generations by position, falling back to the
// generation name past the known list.
func RegionEntries(items []pokeapi.NamedResource) []Entry {
	out := make([]Entry, 0, len(items))
	for i, it := range items {
		label := it.Name
		if i < len(regionLabels) {
			label = regionLabels[i]
		}
		out = append(out, Entry{Name: it.Name, Label: label})
	}
	return out
}

// Has reports whether name is one of entries.
func Has(entries []Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
