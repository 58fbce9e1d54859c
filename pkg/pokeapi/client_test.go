package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sail-dex/pokedex/pkg/whttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.RequestURI()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if body == "!500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	hc, err := whttp.NewClient(whttp.ClientOptions{RetryMax: 0})
	require.NoError(t, err)
	return NewClient(srv.URL, hc, nil)
}

func TestRosterParsesResults(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/pokemon?limit=2": `{"count":1302,"results":[
			{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"},
			{"name":"ivysaur","url":"https://pokeapi.co/api/v2/pokemon/2/"}]}`,
	})

	got, err := c.Roster(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []NamedResource{
		{Name: "bulbasaur", URL: "https://pokeapi.co/api/v2/pokemon/1/"},
		{Name: "ivysaur", URL: "https://pokeapi.co/api/v2/pokemon/2/"},
	}, got)
}

func TestRosterWithoutResultsIsDataShapeFailure(t *testing.T) {
	c := newTestClient(t, map[string]string{"/pokemon?limit=5": `{"count":0}`})
	_, err := c.Roster(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataShape))
}

func TestMembershipEndpoints(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/type/fire": `{"name":"fire","pokemon":[{"pokemon":{"name":"charmander"},"slot":1},{"pokemon":{"name":"charizard"},"slot":1}]}`,
		"/generation/generation-i": `{"pokemon_species":[{"name":"bulbasaur"},{"name":"mew"}]}`,
		"/type":                    `{"results":[{"name":"normal","url":"u1"},{"name":"fire","url":"u2"}]}`,
		"/generation":              `{"results":[{"name":"generation-i","url":"g1"}]}`,
	})
	ctx := context.Background()

	fire, err := c.TypeMembers(ctx, "fire")
	require.NoError(t, err)
	assert.Equal(t, []string{"charmander", "charizard"}, fire)

	gen, err := c.GenerationMembers(ctx, "generation-i")
	require.NoError(t, err)
	assert.Equal(t, []string{"bulbasaur", "mew"}, gen)

	types, err := c.Types(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)

	gens, err := c.Generations(ctx)
	require.NoError(t, err)
	assert.Equal(t, "generation-i", gens[0].Name)
}

func TestPokemonRecord(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/pokemon/charizard": `{
			"id": 6, "name": "charizard", "height": 17, "weight": 905,
			"types": [{"slot":1,"type":{"name":"fire"}},{"slot":2,"type":{"name":"flying"}}],
			"abilities": [{"ability":{"name":"blaze"}},{"ability":{"name":"solar-power"}}],
			"sprites": {"front_default":"f.png","front_shiny":"s.png","back_default":null},
			"species": {"name":"charizard","url":"https://pokeapi.co/api/v2/pokemon-species/6/"}
		}`,
	})

	p, err := c.Pokemon(context.Background(), "Charizard")
	require.NoError(t, err)
	assert.Equal(t, 6, p.ID)
	assert.Equal(t, 17, p.Height)
	assert.Equal(t, 905, p.Weight)
	assert.Equal(t, []string{"fire", "flying"}, p.Types)
	assert.Equal(t, []string{"blaze", "solar-power"}, p.Abilities)
	assert.Equal(t, "s.png", p.Sprites.FrontShiny)
	assert.Empty(t, p.Sprites.BackDefault)
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon-species/6/", p.SpeciesURL)
}

func TestSpeciesAndChainFollowAbsoluteURLs(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon-species/133/":
			w.Write([]byte(`{"name":"eevee",
				"flavor_text_entries":[{"flavor_text":"Its genetic code\fis irregular.","language":{"name":"en"}}],
				"evolution_chain":{"url":"` + srv.URL + `/evolution-chain/67/"}}`))
		case "/evolution-chain/67/":
			w.Write([]byte(`{"chain":{"species":{"name":"eevee"},"evolves_to":[
				{"species":{"name":"vaporeon"},"evolves_to":[]},
				{"species":{"name":"jolteon"},"evolves_to":[]}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	hc, err := whttp.NewClient(whttp.ClientOptions{})
	require.NoError(t, err)
	c := NewClient("http://unused.invalid", hc, nil)

	s, err := c.Species(context.Background(), srv.URL+"/pokemon-species/133/")
	require.NoError(t, err)
	assert.Equal(t, "eevee", s.Name)
	require.Len(t, s.FlavorEntries, 1)
	assert.Equal(t, "en", s.FlavorEntries[0].Language)
	assert.Equal(t, srv.URL+"/evolution-chain/67/", s.EvolutionChainURL)

	chain, err := c.EvolutionChain(context.Background(), s.EvolutionChainURL)
	require.NoError(t, err)
	assert.Equal(t, "eevee", chain.SpeciesName)
	require.Len(t, chain.EvolvesTo, 2)
	assert.Equal(t, "vaporeon", chain.EvolvesTo[0].SpeciesName)
	assert.Equal(t, "jolteon", chain.EvolvesTo[1].SpeciesName)
}

func TestErrorTaxonomy(t *testing.T) {
	c := newTestClient(t, map[string]string{
		"/pokemon/broken":  "!500",
		"/pokemon/garbled": "<html>",
		"/pokemon/empty":   `{"weight": 1}`,
	})
	ctx := context.Background()

	_, err := c.Pokemon(ctx, "missingno")
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.Pokemon(ctx, "broken")
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.False(t, errors.Is(err, ErrNotFound))

	_, err = c.Pokemon(ctx, "garbled")
	assert.True(t, errors.Is(err, ErrDataShape))

	_, err = c.Pokemon(ctx, "empty")
	assert.True(t, errors.Is(err, ErrDataShape))

	_, err = c.Species(ctx, "")
	assert.True(t, errors.Is(err, ErrDataShape))
}
