package pokeapitest

import (
	"context"
	"errors"
	"testing"

	"github.com/sail-dex/pokedex/internal/utils"
	"github.com/sail-dex/pokedex/pkg/pokeapi"
)

func TestKantoMembership(t *testing.T) {
	f := Kanto()
	ctx := context.Background()

	gen, err := f.GenerationMembers(ctx, "generation-iv")
	if err != nil {
		t.Fatalf("GenerationMembers error = %v", err)
	}
	if !utils.AreSlicesEqual(gen, []string{"giratina"}) {
		t.Fatalf("generation-iv = %v", gen)
	}

	// the method serves the table, so edits to the table show up
	f.GenerationMembersOf["generation-iv"] = append(f.GenerationMembersOf["generation-iv"], "dialga")
	gen, _ = f.GenerationMembers(ctx, "generation-iv")
	if !utils.AreSlicesEqual(gen, []string{"giratina", "dialga"}) {
		t.Fatalf("generation-iv after edit = %v", gen)
	}

	fire, err := f.TypeMembers(ctx, "fire")
	if err != nil {
		t.Fatalf("TypeMembers error = %v", err)
	}
	if !utils.AreSlicesEqual(fire, []string{"charmander", "charmeleon", "charizard"}) {
		t.Fatalf("fire = %v", fire)
	}
}

func TestFixtureFailures(t *testing.T) {
	f := Kanto()
	ctx := context.Background()

	if _, err := f.GenerationMembers(ctx, "generation-ix"); !errors.Is(err, pokeapi.ErrNotFound) {
		t.Fatalf("unknown generation error = %v, want ErrNotFound", err)
	}

	f.Fail["generation:generation-i"] = pokeapi.ErrNetwork
	if _, err := f.GenerationMembers(ctx, "generation-i"); !errors.Is(err, pokeapi.ErrNetwork) {
		t.Fatalf("forced failure error = %v, want ErrNetwork", err)
	}

	want := []string{"generation:generation-ix", "generation:generation-i"}
	if got := f.Calls(); !utils.AreSlicesEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}
