package pokeapi

import (
	"context"
	"errors"
)

var (
	// ErrNetwork covers transport failures and non-2xx responses.
	ErrNetwork = errors.New("network failure")
	// ErrNotFound is joined with ErrNetwork when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrDataShape means a response lacked a field we rely on.
	ErrDataShape = errors.New("unexpected response shape")
)

// NamedResource is the {name, url} pair the list endpoints return.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Sprites holds the sprite URLs of a record; any of them may be empty.
type Sprites struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
	BackDefault  string `json:"back_default"`
	BackShiny    string `json:"back_shiny"`
}

// Pokemon is the full record returned by /pokemon/{nameOrId}.
type Pokemon struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	SpeciesName string   `json:"species_name"`
	SpeciesURL  string   `json:"species_url"`
	Height      int      `json:"height"`
	Weight      int      `json:"weight"`
	Types       []string `json:"types"`
	Abilities   []string `json:"abilities"`
	Sprites     Sprites  `json:"sprites"`
}

// FlavorEntry is one flavor_text_entries item.
type FlavorEntry struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// Species is the species-level metadata reached through Pokemon.SpeciesURL.
type Species struct {
	Name              string        `json:"name"`
	FlavorEntries     []FlavorEntry `json:"flavor_entries"`
	EvolutionChainURL string        `json:"evolution_chain_url"`
}

// ChainLink mirrors one node of an evolution-chain response.
type ChainLink struct {
	SpeciesName string       `json:"species_name"`
	EvolvesTo   []*ChainLink `json:"evolves_to"`
}

// Logger abstracts logging so callers can hand in logrus or nothing at all.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// NopLogger silently discards all messages.
type NopLogger struct{}

func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
func (NopLogger) Debugf(string, ...interface{}) {}

// API is everything the viewer reads from the creature database. *Client
// implements it against the network; pokeapitest.Fixture implements it in
// memory.
type API interface {
	Roster(ctx context.Context, limit int) ([]NamedResource, error)
	Types(ctx context.Context) ([]NamedResource, error)
	Generations(ctx context.Context) ([]NamedResource, error)
	TypeMembers(ctx context.Context, typeName string) ([]string, error)
	GenerationMembers(ctx context.Context, generation string) ([]string, error)
	Pokemon(ctx context.Context, nameOrID string) (*Pokemon, error)
	Species(ctx context.Context, url string) (*Species, error)
	EvolutionChain(ctx context.Context, url string) (*ChainLink, error)
}
