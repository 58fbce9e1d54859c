// Package filter resolves the visible subset of the species directory for a
// set of filter criteria.
package filter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sail-dex/pokedex/pkg/roster"
)

// Criteria are ANDed together; an empty field is unset.
type Criteria struct {
	NameQuery  string    `json:"name"`
	TypeName   string    `json:"type"`
	RegionName string    `json:"region"`
	FormGroup  FormGroup `json:"form"`
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.NameQuery) == "" && c.TypeName == "" && c.RegionName == "" && c.FormGroup == FormNone
}

// MembershipSource answers the server-side set-membership questions.
type MembershipSource interface {
	TypeMembers(ctx context.Context, typeName string) ([]string, error)
	GenerationMembers(ctx context.Context, generation string) ([]string, error)
}

var errNoSource = errors.New("no membership source configured")

// Resolve returns the directory entries matching c, in directory order.
// Membership lookups run one after another (type, then region) and any
// failure aborts the whole resolution.
func Resolve(ctx context.Context, dir *roster.Directory, c Criteria, src MembershipSource) ([]roster.SpeciesRef, error) {
	candidates := dir.Names()

	if c.TypeName != "" {
		if src == nil {
			return nil, fmt.Errorf("type filter %q: %w", c.TypeName, errNoSource)
		}
		members, err := src.TypeMembers(ctx, c.TypeName)
		if err != nil {
			return nil, fmt.Errorf("type filter %q: %w", c.TypeName, err)
		}
		candidates = intersect(candidates, members)
	}

	if c.RegionName != "" {
		if src == nil {
			return nil, fmt.Errorf("region filter %q: %w", c.RegionName, errNoSource)
		}
		members, err := src.GenerationMembers(ctx, c.RegionName)
		if err != nil {
			return nil, fmt.Errorf("region filter %q: %w", c.RegionName, err)
		}
		candidates = intersect(candidates, members)
	}

	if c.FormGroup != FormNone {
		if _, known := groupMembers[c.FormGroup]; known {
			kept := candidates[:0:0]
			for _, name := range candidates {
				ref, ok := dir.Lookup(name)
				if ok && InGroup(c.FormGroup, ref.ID) {
					kept = append(kept, name)
				}
			}
			candidates = kept
		}
	}

	if q := strings.ToLower(strings.TrimSpace(c.NameQuery)); q != "" {
		kept := candidates[:0:0]
		for _, name := range candidates {
			if strings.Contains(name, q) {
				kept = append(kept, name)
			}
		}
		candidates = kept
	}

	out := make([]roster.SpeciesRef, 0, len(candidates))
	for _, name := range candidates {
		if ref, ok := dir.Lookup(name); ok {
			out = append(out, ref)
		}
	}
	return out, nil
}

// intersect keeps the candidates present in members, in candidate order.
func intersect(candidates, members []string) []string {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	kept := make([]string, 0, len(candidates))
	for _, name := range candidates {
		if _, ok := set[name]; ok {
			kept = append(kept, name)
		}
	}
	return kept
}
