package roster

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"github.com/sail-dex/pokedex/pkg/pokeapi/pokeapitest"
)

func TestIDFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{"https://pokeapi.co/api/v2/pokemon/6/", 6, false},
		{"https://pokeapi.co/api/v2/pokemon/10034", 10034, false},
		{"https://pokeapi.co/api/v2/pokemon/charizard/", 0, true},
		{"https://pokeapi.co/api/v2/pokemon/0/", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := IDFromURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Fatalf("IDFromURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, pokeapi.ErrDataShape) {
			t.Fatalf("IDFromURL(%q) error should be a data shape failure: %v", tt.url, err)
		}
		if got != tt.want {
			t.Fatalf("IDFromURL(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestDirectoryLookups(t *testing.T) {
	d := New([]SpeciesRef{
		{Name: "bulbasaur", ID: 1},
		{Name: "ivysaur", ID: 2},
		{Name: "bulbasaur", ID: 99},
		{Name: "venusaur", ID: 3},
	})

	if d.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (duplicate name dropped)", d.Len())
	}
	if got := d.Names(); !reflect.DeepEqual(got, []string{"bulbasaur", "ivysaur", "venusaur"}) {
		t.Fatalf("Names = %v", got)
	}
	if r, ok := d.Lookup("ivysaur"); !ok || r.ID != 2 {
		t.Fatalf("Lookup(ivysaur) = %+v, %v", r, ok)
	}
	if r, ok := d.Lookup("bulbasaur"); !ok || r.ID != 1 {
		t.Fatalf("first occurrence should win, got %+v", r)
	}
	if r, ok := d.ByID(3); !ok || r.Name != "venusaur" {
		t.Fatalf("ByID(3) = %+v, %v", r, ok)
	}
	if _, ok := d.ByID(99); ok {
		t.Fatalf("id of the dropped duplicate must not resolve")
	}
	if _, ok := d.Lookup("mew"); ok {
		t.Fatalf("unexpected hit for mew")
	}

	refs := d.Refs()
	refs[0].Name = "mutated"
	if r, _ := d.ByID(1); r.Name != "bulbasaur" {
		t.Fatalf("Refs must return a copy")
	}
}

func TestLoadFromFixture(t *testing.T) {
	f := pokeapitest.Kanto()
	d, err := Load(context.Background(), f, 4)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	want := []string{"bulbasaur", "ivysaur", "venusaur", "charmander"}
	if got := d.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	if r, _ := d.Lookup("charmander"); r.ID != 4 {
		t.Fatalf("charmander id = %d", r.ID)
	}
}

func TestLoadPropagatesFailure(t *testing.T) {
	f := pokeapitest.Kanto()
	f.Fail["roster:10"] = pokeapi.ErrNetwork
	if _, err := Load(context.Background(), f, 10); !errors.Is(err, pokeapi.ErrNetwork) {
		t.Fatalf("expected a network failure, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	d := New([]SpeciesRef{
		{Name: "bulbasaur", ID: 1},
		{Name: "charizard", ID: 6},
		{Name: "charmander", ID: 4},
		{Name: "pikachu", ID: 25},
	})
	got := d.Suggest("charzard", 2)
	if !reflect.DeepEqual(got, []string{"charizard", "charmander"}) {
		t.Fatalf("Suggest = %v", got)
	}
	if got := d.Suggest("x", 0); got != nil {
		t.Fatalf("Suggest with n=0 = %v", got)
	}
	if got := d.Suggest("pika", 10); len(got) != 4 || got[0] != "pikachu" {
		t.Fatalf("Suggest capped = %v", got)
	}
}

func TestPrintSpecies(t *testing.T) {
	refs := []SpeciesRef{
		{Name: "bulbasaur", ID: 1, URL: "https://pokeapi.co/api/v2/pokemon/1/"},
		{Name: "ivysaur", ID: 2, URL: "https://pokeapi.co/api/v2/pokemon/2/"},
	}

	var buf bytes.Buffer
	if err := PrintSpecies(&buf, refs, "in", ","); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "1,bulbasaur\n2,ivysaur\n" {
		t.Fatalf("output = %q", got)
	}

	buf.Reset()
	if err := PrintSpecies(&buf, refs[:1], "s", " "); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/1.png\n" {
		t.Fatalf("sprite output = %q", got)
	}

	if err := PrintSpecies(&buf, refs, "x", " "); err == nil {
		t.Fatalf("expected an error for an invalid flag")
	}
}
