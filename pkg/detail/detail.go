// Package detail assembles everything the detail view shows for one record:
// the record itself, its flavor text, its evolution chain and its form tabs.
package detail

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sail-dex/pokedex/pkg/evolution"
	"github.com/sail-dex/pokedex/pkg/filter"
	"github.com/sail-dex/pokedex/pkg/forms"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
)

// Source is the part of the API the resolver reads.
type Source interface {
	Pokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error)
	Species(ctx context.Context, url string) (*pokeapi.Species, error)
	EvolutionChain(ctx context.Context, url string) (*pokeapi.ChainLink, error)
}

// Page is the assembled detail view.
type Page struct {
	Record     pokeapi.Pokemon   `json:"record"`
	FlavorText string            `json:"flavor_text"`
	Chain      []pokeapi.Pokemon `json:"chain"`
	Tabs       []forms.FormTab   `json:"tabs"`
}

// Slug is the lowercase species name used to build shiny art URLs.
func (p *Page) Slug() string {
	return strings.ToLower(p.Record.SpeciesName)
}

// State is what a view needs to show progress. Err is only set by a failed
// load and is independent of Loading.
type State struct {
	Loading bool
	Err     error
}

// Resolver loads detail pages. Every Load fetches afresh; nothing is cached
// and nothing is retried.
type Resolver struct {
	src Source
	log pokeapi.Logger

	seq   filter.Sequencer
	mu    sync.Mutex
	state State
}

// NewResolver returns a resolver reading from src. log may be nil.
func NewResolver(src Source, log pokeapi.Logger) *Resolver {
	if log == nil {
		log = pokeapi.NopLogger{}
	}
	return &Resolver{src: src, log: log}
}

// State returns the state left by the newest Load.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resolver) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Load builds the page for name. When the record itself cannot be fetched it
// returns a nil page. When the species metadata or evolution chain fails the
// page is still returned, with an empty chain, together with the error.
func (r *Resolver) Load(ctx context.Context, name string) (*Page, error) {
	ticket := r.seq.Begin()
	r.seq.Commit(ticket, func() { r.setState(State{Loading: true}) })

	page, err := r.load(ctx, strings.ToLower(strings.TrimSpace(name)))

	r.seq.Commit(ticket, func() { r.setState(State{Err: err}) })
	return page, err
}

// Navigate loads another species reached from the evolution chain. It is a
// plain Load: no previously fetched record is reused.
func (r *Resolver) Navigate(ctx context.Context, name string) (*Page, error) {
	return r.Load(ctx, name)
}

func (r *Resolver) load(ctx context.Context, name string) (*Page, error) {
	rec, err := r.src.Pokemon(ctx, name)
	if err != nil {
		r.log.Warnf("detail %s: record: %v", name, err)
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	page := &Page{Record: *rec, Chain: []pokeapi.Pokemon{}}
	page.Tabs = forms.TabsFor(rec.ID, page.Slug())

	sp, err := r.src.Species(ctx, rec.SpeciesURL)
	if err != nil {
		r.log.Warnf("detail %s: species: %v", name, err)
		return page, fmt.Errorf("load %s species: %w", name, err)
	}
	page.FlavorText = FlavorText(sp.FlavorEntries)

	link, err := r.src.EvolutionChain(ctx, sp.EvolutionChainURL)
	if err != nil {
		r.log.Warnf("detail %s: evolution chain: %v", name, err)
		return page, fmt.Errorf("load %s evolution chain: %w", name, err)
	}
	chain, err := evolution.Walk(ctx, evolution.FromChain(link), r.src)
	if err != nil {
		r.log.Warnf("detail %s: %v", name, err)
		return page, fmt.Errorf("load %s: %w", name, err)
	}
	if chain != nil {
		page.Chain = chain
	}
	r.log.Debugf("detail %s: %d tabs, %d chain entries", name, len(page.Tabs), len(page.Chain))
	return page, nil
}

// FlavorText returns the first English entry with form feeds turned into
// spaces, or "" when there is none.
func FlavorText(entries []pokeapi.FlavorEntry) string {
	for _, e := range entries {
		if e.Language == "en" {
			return strings.ReplaceAll(e.Text, "\f", " ")
		}
	}
	return ""
}
