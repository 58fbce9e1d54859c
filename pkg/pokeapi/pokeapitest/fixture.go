// Package pokeapitest provides a deterministic in-memory pokeapi.API for
// tests and demos.
package pokeapitest

import (
	"context"
	"fmt"
	"sync"

	"github.com/sail-dex/pokedex/pkg/pokeapi"
)

const base = "https://pokeapi.test/api/v2"

// Fixture answers every pokeapi.API call from its maps. Keys of Fail are
// "<method>:<argument>" (e.g. "type:fire", "pokemon:ivysaur") and force that
// call to return the error.
type Fixture struct {
	RosterItems         []pokeapi.NamedResource
	TypeItems           []pokeapi.NamedResource
	GenerationItems     []pokeapi.NamedResource
	TypeMembersOf       map[string][]string
	GenerationMembersOf map[string][]string
	Records             map[string]*pokeapi.Pokemon
	SpeciesByURL        map[string]*pokeapi.Species
	ChainsByURL         map[string]*pokeapi.ChainLink
	Fail                map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *Fixture) record(method, arg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + ":" + arg
	f.calls = append(f.calls, key)
	if err, ok := f.Fail[key]; ok {
		return err
	}
	return nil
}

// Calls returns every call made so far, in order.
func (f *Fixture) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fixture) Roster(ctx context.Context, limit int) ([]pokeapi.NamedResource, error) {
	if err := f.record("roster", fmt.Sprint(limit)); err != nil {
		return nil, err
	}
	items := f.RosterItems
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return append([]pokeapi.NamedResource(nil), items...), nil
}

func (f *Fixture) Types(ctx context.Context) ([]pokeapi.NamedResource, error) {
	if err := f.record("types", ""); err != nil {
		return nil, err
	}
	return append([]pokeapi.NamedResource(nil), f.TypeItems...), nil
}

func (f *Fixture) Generations(ctx context.Context) ([]pokeapi.NamedResource, error) {
	if err := f.record("generations", ""); err != nil {
		return nil, err
	}
	return append([]pokeapi.NamedResource(nil), f.GenerationItems...), nil
}

func (f *Fixture) TypeMembers(ctx context.Context, typeName string) ([]string, error) {
	if err := f.record("type", typeName); err != nil {
		return nil, err
	}
	m, ok := f.TypeMembersOf[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %w: type %s", pokeapi.ErrNetwork, pokeapi.ErrNotFound, typeName)
	}
	return append([]string(nil), m...), nil
}

func (f *Fixture) GenerationMembers(ctx context.Context, generation string) ([]string, error) {
	if err := f.record("generation", generation); err != nil {
		return nil, err
	}
	m, ok := f.GenerationMembersOf[generation]
	if !ok {
		return nil, fmt.Errorf("%w: %w: generation %s", pokeapi.ErrNetwork, pokeapi.ErrNotFound, generation)
	}
	return append([]string(nil), m...), nil
}

func (f *Fixture) Pokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error) {
	if err := f.record("pokemon", nameOrID); err != nil {
		return nil, err
	}
	p, ok := f.Records[nameOrID]
	if !ok {
		return nil, fmt.Errorf("%w: %w: pokemon %s", pokeapi.ErrNetwork, pokeapi.ErrNotFound, nameOrID)
	}
	cp := *p
	return &cp, nil
}

func (f *Fixture) Species(ctx context.Context, url string) (*pokeapi.Species, error) {
	if err := f.record("species", url); err != nil {
		return nil, err
	}
	s, ok := f.SpeciesByURL[url]
	if !ok {
		return nil, fmt.Errorf("%w: %w: species %s", pokeapi.ErrNetwork, pokeapi.ErrNotFound, url)
	}
	cp := *s
	return &cp, nil
}

func (f *Fixture) EvolutionChain(ctx context.Context, url string) (*pokeapi.ChainLink, error) {
	if err := f.record("evolution_chain", url); err != nil {
		return nil, err
	}
	c, ok := f.ChainsByURL[url]
	if !ok {
		return nil, fmt.Errorf("%w: %w: evolution chain %s", pokeapi.ErrNetwork, pokeapi.ErrNotFound, url)
	}
	return c, nil
}

var _ pokeapi.API = (*Fixture)(nil)

// SpeciesURL is the species URL the sample records point at.
func SpeciesURL(id int) string { return fmt.Sprintf("%s/pokemon-species/%d/", base, id) }

// ChainURL is the evolution-chain URL the sample species point at.
func ChainURL(id int) string { return fmt.Sprintf("%s/evolution-chain/%d/", base, id) }

func pokemonURL(id int) string { return fmt.Sprintf("%s/pokemon/%d/", base, id) }

type sample struct {
	id    int
	name  string
	types []string
	chain int
}

var samples = []sample{
	{1, "bulbasaur", []string{"grass", "poison"}, 1},
	{2, "ivysaur", []string{"grass", "poison"}, 1},
	{3, "venusaur", []string{"grass", "poison"}, 1},
	{4, "charmander", []string{"fire"}, 2},
	{5, "charmeleon", []string{"fire"}, 2},
	{6, "charizard", []string{"fire", "flying"}, 2},
	{19, "rattata", []string{"normal"}, 10},
	{20, "raticate", []string{"normal"}, 10},
	{52, "meowth", []string{"normal"}, 28},
	{133, "eevee", []string{"normal"}, 67},
	{134, "vaporeon", []string{"water"}, 67},
	{135, "jolteon", []string{"electric"}, 67},
	{487, "giratina-altered", []string{"ghost", "dragon"}, 250},
}

// Kanto returns a small but complete fixture: a roster in dex order, two
// generations, type membership, full records with species metadata and
// evolution chains (including the branching eevee chain and giratina, whose
// base form is requested as "giratina-altered").
func Kanto() *Fixture {
	f := &Fixture{
		TypeMembersOf:       map[string][]string{},
		GenerationMembersOf: map[string][]string{},
		Records:             map[string]*pokeapi.Pokemon{},
		SpeciesByURL:        map[string]*pokeapi.Species{},
		ChainsByURL:         map[string]*pokeapi.ChainLink{},
		Fail:                map[string]error{},
		TypeItems: []pokeapi.NamedResource{
			{Name: "normal"}, {Name: "fire"}, {Name: "water"}, {Name: "grass"},
			{Name: "electric"}, {Name: "poison"}, {Name: "flying"}, {Name: "ghost"},
			{Name: "dragon"}, {Name: "unknown"}, {Name: "shadow"},
		},
		GenerationItems: []pokeapi.NamedResource{
			{Name: "generation-i"}, {Name: "generation-iv"},
		},
	}

	for _, s := range samples {
		f.RosterItems = append(f.RosterItems, pokeapi.NamedResource{Name: s.name, URL: pokemonURL(s.id)})
		for _, t := range s.types {
			f.TypeMembersOf[t] = append(f.TypeMembersOf[t], s.name)
		}

		speciesName := s.name
		if s.name == "giratina-altered" {
			speciesName = "giratina"
		}
		gen := "generation-i"
		if s.id > 151 {
			gen = "generation-iv"
		}
		f.GenerationMembersOf[gen] = append(f.GenerationMembersOf[gen], speciesName)

		rec := &pokeapi.Pokemon{
			ID:          s.id,
			Name:        s.name,
			SpeciesName: speciesName,
			SpeciesURL:  SpeciesURL(s.id),
			Height:      10 + s.id%7,
			Weight:      60 + s.id,
			Types:       s.types,
			Abilities:   []string{"ability-" + speciesName},
			Sprites: pokeapi.Sprites{
				FrontDefault: fmt.Sprintf("https://sprites.test/%d.png", s.id),
				FrontShiny:   fmt.Sprintf("https://sprites.test/shiny/%d.png", s.id),
				BackDefault:  fmt.Sprintf("https://sprites.test/back/%d.png", s.id),
			},
		}
		f.Records[s.name] = rec
		f.Records[fmt.Sprint(s.id)] = rec

		f.SpeciesByURL[SpeciesURL(s.id)] = &pokeapi.Species{
			Name: speciesName,
			FlavorEntries: []pokeapi.FlavorEntry{
				{Language: "ja", Text: "ポケモン"},
				{Language: "en", Text: "A " + speciesName + " entry.\fIt lives in the tall grass."},
				{Language: "en", Text: "A later English entry."},
			},
			EvolutionChainURL: ChainURL(s.chain),
		}
	}

	f.ChainsByURL[ChainURL(1)] = linear("bulbasaur", "ivysaur", "venusaur")
	f.ChainsByURL[ChainURL(2)] = linear("charmander", "charmeleon", "charizard")
	f.ChainsByURL[ChainURL(10)] = linear("rattata", "raticate")
	f.ChainsByURL[ChainURL(28)] = linear("meowth")
	f.ChainsByURL[ChainURL(67)] = &pokeapi.ChainLink{
		SpeciesName: "eevee",
		EvolvesTo: []*pokeapi.ChainLink{
			{SpeciesName: "vaporeon"},
			{SpeciesName: "jolteon"},
		},
	}
	f.ChainsByURL[ChainURL(250)] = linear("giratina")
	return f
}

func linear(names ...string) *pokeapi.ChainLink {
	var root, tail *pokeapi.ChainLink
	for _, n := range names {
		link := &pokeapi.ChainLink{SpeciesName: n}
		if root == nil {
			root = link
		} else {
			tail.EvolvesTo = []*pokeapi.ChainLink{link}
		}
		tail = link
	}
	return root
}
