package filter

import (
	"fmt"
	"sort"
	"strings"
)

// FormGroup is a special-form family a species can belong to.
type FormGroup string

const (
	FormNone     FormGroup = ""
	FormMega     FormGroup = "mega"
	FormAlolan   FormGroup = "alolan"
	FormGalarian FormGroup = "galarian"
	FormHisuian  FormGroup = "hisuian"
)

// FormGroups lists the selectable groups in menu order.
var FormGroups = []FormGroup{FormMega, FormAlolan, FormGalarian, FormHisuian}

// Label is the user-facing name of the group.
func (g FormGroup) Label() string {
	switch g {
	case FormMega:
		return "Mega"
	case FormAlolan:
		return "Alolan"
	case FormGalarian:
		return "Galarian"
	case FormHisuian:
		return "Hisuian"
	}
	return "Any"
}

// ParseFormGroup accepts "", "mega", "alolan", "galarian" or "hisuian",
// case-insensitively.
func ParseFormGroup(s string) (FormGroup, error) {
	g := FormGroup(strings.ToLower(strings.TrimSpace(s)))
	if g == FormNone {
		return FormNone, nil
	}
	if _, ok := groupMembers[g]; !ok {
		return FormNone, fmt.Errorf("unknown form group %q", s)
	}
	return g, nil
}

// Species ids that have at least one form of the group.
var (
	megaSpeciesIDs = []int{
		3, 6, 9, 15, 18, 65, 80, 94, 115, 127, 130, 142,
		150, 181, 208, 212, 214, 229, 248, 254, 257, 260,
		282, 303, 306, 308, 310, 319, 323, 334, 354, 359,
		362, 373, 376, 380, 381, 384, 428, 445, 448, 460,
		475, 531, 719,
	}
	alolanSpeciesIDs = []int{
		19, 20, 26, 27, 28, 37, 38, 50, 51, 52, 53,
		74, 75, 76, 88, 89, 103, 105,
	}
	galarianSpeciesIDs = []int{
		52, 77, 78, 79, 80, 83, 110, 122, 144, 145, 146,
		199, 222, 263, 264, 554, 555, 562, 618,
	}
	hisuianSpeciesIDs = []int{
		58, 59, 100, 101, 157, 211, 215, 503, 549,
		570, 571, 628, 705, 706, 713, 724,
	}
)

var groupMembers = map[FormGroup]map[int]struct{}{
	FormMega:     idSet(megaSpeciesIDs),
	FormAlolan:   idSet(alolanSpeciesIDs),
	FormGalarian: idSet(galarianSpeciesIDs),
	FormHisuian:  idSet(hisuianSpeciesIDs),
}

func idSet(ids []int) map[int]struct{} {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

// InGroup reports whether species id has a form of group g.
func InGroup(g FormGroup, id int) bool {
	_, ok := groupMembers[g][id]
	return ok
}

// GroupIDs returns the member ids of g in ascending order, nil for an
// unknown group.
func GroupIDs(g FormGroup) []int {
	set, ok := groupMembers[g]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
