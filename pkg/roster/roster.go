// Package roster holds the species directory: the full list of species
// references fetched once at startup, in API order, with O(1) lookups by name
// and by id.
package roster

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
)

// SpeciesRef identifies one roster entry.
type SpeciesRef struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
	URL  string `json:"url"`
}

// Directory is read-only once built.
type Directory struct {
	refs   []SpeciesRef
	byName map[string]int
	byID   map[int]int
}

// Source lists the roster.
type Source interface {
	Roster(ctx context.Context, limit int) ([]pokeapi.NamedResource, error)
}

// New builds a directory from refs. When a name or id repeats, the first
// occurrence wins and later ones are dropped.
func New(refs []SpeciesRef) *Directory {
	d := &Directory{
		refs:   make([]SpeciesRef, 0, len(refs)),
		byName: make(map[string]int, len(refs)),
		byID:   make(map[int]int, len(refs)),
	}
	for _, r := range refs {
		if _, dup := d.byName[r.Name]; dup {
			continue
		}
		if _, dup := d.byID[r.ID]; dup {
			continue
		}
		d.byName[r.Name] = len(d.refs)
		d.byID[r.ID] = len(d.refs)
		d.refs = append(d.refs, r)
	}
	return d
}

// FromResources converts the {name, url} list into a directory.
func FromResources(items []pokeapi.NamedResource) (*Directory, error) {
	refs := make([]SpeciesRef, 0, len(items))
	for _, it := range items {
		id, err := IDFromURL(it.URL)
		if err != nil {
			return nil, fmt.Errorf("roster entry %q: %w", it.Name, err)
		}
		refs = append(refs, SpeciesRef{Name: strings.ToLower(it.Name), ID: id, URL: it.URL})
	}
	return New(refs), nil
}

// Load fetches the roster and builds the directory.
func Load(ctx context.Context, src Source, limit int) (*Directory, error) {
	items, err := src.Roster(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return FromResources(items)
}

// IDFromURL extracts the numeric id from a reference URL such as
// "https://pokeapi.co/api/v2/pokemon/6/".
func IDFromURL(u string) (int, error) {
	trimmed := strings.TrimSuffix(u, "/")
	seg := trimmed[strings.LastIndex(trimmed, "/")+1:]
	id, err := strconv.Atoi(seg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: no numeric id in %q", pokeapi.ErrDataShape, u)
	}
	return id, nil
}

func (d *Directory) Len() int { return len(d.refs) }

// Refs returns a copy of the directory in API order.
func (d *Directory) Refs() []SpeciesRef {
	return append([]SpeciesRef(nil), d.refs...)
}

// Names returns every name in API order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.refs))
	for i, r := range d.refs {
		out[i] = r.Name
	}
	return out
}

func (d *Directory) Lookup(name string) (SpeciesRef, bool) {
	i, ok := d.byName[name]
	if !ok {
		return SpeciesRef{}, false
	}
	return d.refs[i], true
}

func (d *Directory) ByID(id int) (SpeciesRef, bool) {
	i, ok := d.byID[id]
	if !ok {
		return SpeciesRef{}, false
	}
	return d.refs[i], true
}

// Suggest returns up to n roster names closest to name by edit distance,
// nearest first, ties in directory order.
func (d *Directory) Suggest(name string, n int) []string {
	if n <= 0 || len(d.refs) == 0 {
		return nil
	}
	name = strings.ToLower(strings.TrimSpace(name))

	type scored struct {
		idx  int
		dist int
	}
	all := make([]scored, len(d.refs))
	for i, r := range d.refs {
		all[i] = scored{idx: i, dist: levenshtein.ComputeDistance(name, r.Name)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	if n > len(all) {
		n = len(all)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = d.refs[all[i].idx].Name
	}
	return out
}
