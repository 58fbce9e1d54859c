package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sail-dex/pokedex/internal/metrics"
	"github.com/sail-dex/pokedex/pkg/whttp"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	// DefaultRosterLimit covers the national dex through generation IX.
	DefaultRosterLimit = 1025
)

type Client struct {
	base string
	http *retryablehttp.Client
	log  Logger
}

// NewClient talks to the API rooted at base (DefaultBaseURL when empty).
func NewClient(base string, httpClient *retryablehttp.Client, log Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if log == nil {
		log = NopLogger{}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: httpClient, log: log}
}

// get fetches u and returns the body of a 2xx JSON response. endpoint is the
// metrics label.
func (c *Client) get(ctx context.Context, endpoint, u string) (string, error) {
	start := time.Now()
	c.log.Debugf("GET %s", u)

	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{Method: http.MethodGet, URL: u}, c.http)
	if err != nil {
		metrics.ObserveUpstream(endpoint, metrics.OutcomeError, time.Since(start))
		return "", fmt.Errorf("%w: GET %s: %v", ErrNetwork, u, err)
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		metrics.ObserveUpstream(endpoint, metrics.OutcomeNotFound, time.Since(start))
		return "", fmt.Errorf("%w: %w: GET %s", ErrNetwork, ErrNotFound, u)
	case res.StatusCode < 200 || res.StatusCode > 299:
		metrics.ObserveUpstream(endpoint, metrics.OutcomeError, time.Since(start))
		return "", fmt.Errorf("%w: GET %s: status %d", ErrNetwork, u, res.StatusCode)
	}

	if !gjson.Valid(res.BodyString) {
		metrics.ObserveUpstream(endpoint, metrics.OutcomeError, time.Since(start))
		return "", fmt.Errorf("%w: GET %s: body is not JSON", ErrDataShape, u)
	}

	metrics.ObserveUpstream(endpoint, metrics.OutcomeOK, time.Since(start))
	return res.BodyString, nil
}

func namedResources(body, path string) []NamedResource {
	var out []NamedResource
	gjson.Get(body, path).ForEach(func(_, value gjson.Result) bool {
		out = append(out, NamedResource{
			Name: value.Get("name").String(),
			URL:  value.Get("url").String(),
		})
		return true
	})
	return out
}

func (c *Client) Roster(ctx context.Context, limit int) ([]NamedResource, error) {
	if limit <= 0 {
		limit = DefaultRosterLimit
	}
	body, err := c.get(ctx, "roster", fmt.Sprintf("%s/pokemon?limit=%d", c.base, limit))
	if err != nil {
		return nil, err
	}
	if !gjson.Get(body, "results").IsArray() {
		return nil, fmt.Errorf("%w: roster has no results", ErrDataShape)
	}
	return namedResources(body, "results"), nil
}

func (c *Client) Types(ctx context.Context) ([]NamedResource, error) {
	body, err := c.get(ctx, "types", c.base+"/type")
	if err != nil {
		return nil, err
	}
	return namedResources(body, "results"), nil
}

func (c *Client) Generations(ctx context.Context) ([]NamedResource, error) {
	body, err := c.get(ctx, "generations", c.base+"/generation")
	if err != nil {
		return nil, err
	}
	return namedResources(body, "results"), nil
}

func (c *Client) TypeMembers(ctx context.Context, typeName string) ([]string, error) {
	body, err := c.get(ctx, "type", c.base+"/type/"+url.PathEscape(typeName))
	if err != nil {
		return nil, err
	}
	members := gjson.Get(body, "pokemon")
	if !members.IsArray() {
		return nil, fmt.Errorf("%w: type %s has no pokemon list", ErrDataShape, typeName)
	}
	var names []string
	for _, n := range gjson.Get(body, "pokemon.#.pokemon.name").Array() {
		names = append(names, n.String())
	}
	return names, nil
}

func (c *Client) GenerationMembers(ctx context.Context, generation string) ([]string, error) {
	body, err := c.get(ctx, "generation", c.base+"/generation/"+url.PathEscape(generation))
	if err != nil {
		return nil, err
	}
	if !gjson.Get(body, "pokemon_species").IsArray() {
		return nil, fmt.Errorf("%w: generation %s has no species list", ErrDataShape, generation)
	}
	var names []string
	for _, n := range gjson.Get(body, "pokemon_species.#.name").Array() {
		names = append(names, n.String())
	}
	return names, nil
}

func (c *Client) Pokemon(ctx context.Context, nameOrID string) (*Pokemon, error) {
	body, err := c.get(ctx, "pokemon", c.base+"/pokemon/"+url.PathEscape(strings.ToLower(nameOrID)))
	if err != nil {
		return nil, err
	}
	return ParsePokemon(body)
}

// ParsePokemon decodes a /pokemon/{nameOrId} body.
func ParsePokemon(body string) (*Pokemon, error) {
	data := gjson.GetMany(body, "id", "name", "height", "weight", "species.name", "species.url")
	if !data[0].Exists() || data[1].String() == "" {
		return nil, fmt.Errorf("%w: pokemon record lacks id or name", ErrDataShape)
	}

	p := &Pokemon{
		ID:          int(data[0].Int()),
		Name:        data[1].String(),
		Height:      int(data[2].Int()),
		Weight:      int(data[3].Int()),
		SpeciesName: data[4].String(),
		SpeciesURL:  data[5].String(),
		Sprites: Sprites{
			FrontDefault: gjson.Get(body, "sprites.front_default").String(),
			FrontShiny:   gjson.Get(body, "sprites.front_shiny").String(),
			BackDefault:  gjson.Get(body, "sprites.back_default").String(),
			BackShiny:    gjson.Get(body, "sprites.back_shiny").String(),
		},
	}
	if p.SpeciesName == "" {
		p.SpeciesName = p.Name
	}
	for _, t := range gjson.Get(body, "types.#.type.name").Array() {
		p.Types = append(p.Types, t.String())
	}
	for _, a := range gjson.Get(body, "abilities.#.ability.name").Array() {
		p.Abilities = append(p.Abilities, a.String())
	}
	return p, nil
}

// Species fetches the species resource at u, an absolute URL taken from a
// Pokemon record.
func (c *Client) Species(ctx context.Context, u string) (*Species, error) {
	if u == "" {
		return nil, fmt.Errorf("%w: empty species url", ErrDataShape)
	}
	body, err := c.get(ctx, "species", u)
	if err != nil {
		return nil, err
	}

	s := &Species{
		Name:              gjson.Get(body, "name").String(),
		EvolutionChainURL: gjson.Get(body, "evolution_chain.url").String(),
	}
	gjson.Get(body, "flavor_text_entries").ForEach(func(_, value gjson.Result) bool {
		s.FlavorEntries = append(s.FlavorEntries, FlavorEntry{
			Language: value.Get("language.name").String(),
			Text:     value.Get("flavor_text").String(),
		})
		return true
	})
	return s, nil
}

// EvolutionChain fetches and decodes the chain at u.
func (c *Client) EvolutionChain(ctx context.Context, u string) (*ChainLink, error) {
	if u == "" {
		return nil, fmt.Errorf("%w: empty evolution chain url", ErrDataShape)
	}
	body, err := c.get(ctx, "evolution_chain", u)
	if err != nil {
		return nil, err
	}
	chain := gjson.Get(body, "chain")
	if !chain.Exists() || chain.Get("species.name").String() == "" {
		return nil, fmt.Errorf("%w: evolution chain has no root species", ErrDataShape)
	}
	return parseLink(chain), nil
}

func parseLink(r gjson.Result) *ChainLink {
	link := &ChainLink{SpeciesName: r.Get("species.name").String()}
	for _, child := range r.Get("evolves_to").Array() {
		link.EvolvesTo = append(link.EvolvesTo, parseLink(child))
	}
	return link
}
