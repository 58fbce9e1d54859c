// Package evolution walks an evolution tree from its root along the first
// child at every level, fetching the full record for each species on the
// way.
package evolution

import (
	"context"
	"fmt"

	"github.com/sail-dex/pokedex/pkg/pokeapi"
)

// Node is one species in an evolution tree.
type Node struct {
	SpeciesName string  `json:"species_name"`
	Children    []*Node `json:"children,omitempty"`
}

// FromChain converts an API chain into a tree of Nodes.
func FromChain(link *pokeapi.ChainLink) *Node {
	if link == nil {
		return nil
	}
	root := &Node{SpeciesName: link.SpeciesName}
	type pair struct {
		src *pokeapi.ChainLink
		dst *Node
	}
	stack := []pair{{link, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range p.src.EvolvesTo {
			if child == nil {
				continue
			}
			n := &Node{SpeciesName: child.SpeciesName}
			p.dst.Children = append(p.dst.Children, n)
			stack = append(stack, pair{child, n})
		}
	}
	return root
}

// Flatten lists the species names from root down the first-child path.
// Later siblings are never visited.
func Flatten(root *Node) []string {
	var names []string
	for n := root; n != nil; n = first(n) {
		names = append(names, n.SpeciesName)
	}
	return names
}

func first(n *Node) *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// requestNames maps species whose default record is not named after the
// species.
var requestNames = map[string]string{
	"giratina":   "giratina-altered",
	"deoxys":     "deoxys-normal",
	"keldeo":     "keldeo-ordinary",
	"toxtricity": "toxtricity-amped",
}

// RequestName returns the record name to fetch for a species.
func RequestName(species string) string {
	if n, ok := requestNames[species]; ok {
		return n
	}
	return species
}

// RecordFetcher fetches one full record by name.
type RecordFetcher interface {
	Pokemon(ctx context.Context, nameOrID string) (*pokeapi.Pokemon, error)
}

// Walker fetches the chain one record at a time. It cannot be restarted: once
// it has been exhausted or has failed, Next keeps reporting that outcome.
type Walker struct {
	fetch RecordFetcher
	next  *Node
	err   error
}

// NewWalker prepares a walk starting at root.
func NewWalker(root *Node, fetch RecordFetcher) *Walker {
	return &Walker{fetch: fetch, next: root}
}

// Next fetches the record of the next species. ok is false once the path is
// exhausted or after a failure.
func (w *Walker) Next(ctx context.Context) (rec pokeapi.Pokemon, ok bool, err error) {
	if w.err != nil {
		return pokeapi.Pokemon{}, false, w.err
	}
	if w.next == nil {
		return pokeapi.Pokemon{}, false, nil
	}
	n := w.next
	name := RequestName(n.SpeciesName)
	p, err := w.fetch.Pokemon(ctx, name)
	if err != nil {
		w.err = fmt.Errorf("evolution step %s: %w", name, err)
		w.next = nil
		return pokeapi.Pokemon{}, false, w.err
	}
	w.next = first(n)
	return *p, true, nil
}

// Walk fetches every record on the first-child path, in order. Any failed
// fetch fails the whole walk and no partial chain is returned.
func Walk(ctx context.Context, root *Node, fetch RecordFetcher) ([]pokeapi.Pokemon, error) {
	w := NewWalker(root, fetch)
	var chain []pokeapi.Pokemon
	for {
		rec, ok, err := w.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return chain, nil
		}
		chain = append(chain, rec)
	}
}
