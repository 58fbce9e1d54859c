package evolution

import (
	"context"
	"errors"
	"testing"

	"github.com/sail-dex/pokedex/pkg/pokeapi"
	"github.com/sail-dex/pokedex/pkg/pokeapi/pokeapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(t *testing.T, f *pokeapitest.Fixture, id int) *Node {
	t.Helper()
	link, err := f.EvolutionChain(context.Background(), pokeapitest.ChainURL(id))
	require.NoError(t, err)
	return FromChain(link)
}

func recordNames(recs []pokeapi.Pokemon) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		root *Node
		want []string
	}{
		{"nil", nil, nil},
		{"single", &Node{SpeciesName: "tauros"}, []string{"tauros"}},
		{
			"linear",
			&Node{SpeciesName: "bulbasaur", Children: []*Node{
				{SpeciesName: "ivysaur", Children: []*Node{{SpeciesName: "venusaur"}}},
			}},
			[]string{"bulbasaur", "ivysaur", "venusaur"},
		},
		{
			"branching takes first child",
			&Node{SpeciesName: "eevee", Children: []*Node{
				{SpeciesName: "vaporeon"}, {SpeciesName: "jolteon"}, {SpeciesName: "flareon"},
			}},
			[]string{"eevee", "vaporeon"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.root))
		})
	}
}

func TestFlattenDeepChain(t *testing.T) {
	root := &Node{SpeciesName: "n0"}
	tail := root
	for i := 0; i < 100000; i++ {
		n := &Node{SpeciesName: "n"}
		tail.Children = []*Node{n}
		tail = n
	}
	assert.Len(t, Flatten(root), 100001)
}

func TestFromChainKeepsAllBranches(t *testing.T) {
	f := pokeapitest.Kanto()
	root := chain(t, f, 67)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "vaporeon", root.Children[0].SpeciesName)
	assert.Equal(t, "jolteon", root.Children[1].SpeciesName)
	assert.Nil(t, FromChain(nil))
}

func TestRequestName(t *testing.T) {
	tests := map[string]string{
		"giratina":   "giratina-altered",
		"deoxys":     "deoxys-normal",
		"keldeo":     "keldeo-ordinary",
		"toxtricity": "toxtricity-amped",
		"pikachu":    "pikachu",
		"":           "",
	}
	for in, want := range tests {
		assert.Equal(t, want, RequestName(in), in)
	}
}

func TestWalk(t *testing.T) {
	f := pokeapitest.Kanto()

	got, err := Walk(context.Background(), chain(t, f, 1), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur"}, recordNames(got))

	got, err = Walk(context.Background(), chain(t, f, 67), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"eevee", "vaporeon"}, recordNames(got))
}

func TestWalkRemapsRequestNames(t *testing.T) {
	f := pokeapitest.Kanto()

	got, err := Walk(context.Background(), chain(t, f, 250), f)
	require.NoError(t, err)
	assert.Equal(t, []string{"giratina-altered"}, recordNames(got))
	assert.Contains(t, f.Calls(), "pokemon:giratina-altered")
	assert.NotContains(t, f.Calls(), "pokemon:giratina")
}

func TestWalkIsAllOrNothing(t *testing.T) {
	f := pokeapitest.Kanto()
	f.Fail["pokemon:ivysaur"] = pokeapi.ErrNetwork

	got, err := Walk(context.Background(), chain(t, f, 1), f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pokeapi.ErrNetwork))
	assert.Nil(t, got)
	assert.NotContains(t, f.Calls(), "pokemon:venusaur", "walk must stop at the first failure")
}

func TestWalkerIsNotRestartable(t *testing.T) {
	f := pokeapitest.Kanto()
	w := NewWalker(chain(t, f, 10), f)
	ctx := context.Background()

	rec, ok, err := w.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "rattata", rec.Name)

	rec, ok, err = w.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "raticate", rec.Name)

	for i := 0; i < 2; i++ {
		_, ok, err = w.Next(ctx)
		assert.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestWalkerStaysFailed(t *testing.T) {
	f := pokeapitest.Kanto()
	f.Fail["pokemon:bulbasaur"] = pokeapi.ErrNetwork
	w := NewWalker(chain(t, f, 1), f)

	_, ok, err := w.Next(context.Background())
	require.Error(t, err)
	assert.False(t, ok)

	delete(f.Fail, "pokemon:bulbasaur")
	_, ok, err2 := w.Next(context.Background())
	assert.False(t, ok)
	assert.Equal(t, err, err2)
	assert.Equal(t, []string{"evolution_chain:" + pokeapitest.ChainURL(1), "pokemon:bulbasaur"}, f.Calls())
}
