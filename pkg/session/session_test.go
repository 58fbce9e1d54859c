package session

import (
	"context"
	"testing"

	"github.com/sail-dex/pokedex/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	var s State

	s = Reduce(s, SearchChanged{Text: "PIKA"})
	assert.Equal(t, "pika", s.Prefs.SearchText)
	assert.Equal(t, "pika", s.Criteria.NameQuery)

	s = Reduce(s, TypeSelected{Name: "electric"}, RegionSelected{Name: "generation-i"}, FormSelected{Group: filter.FormAlolan})
	assert.Equal(t, filter.Criteria{NameQuery: "pika", TypeName: "electric", RegionName: "generation-i", FormGroup: filter.FormAlolan}, s.Criteria)

	s = Reduce(s, TypeSelected{})
	assert.Equal(t, "", s.Criteria.TypeName)
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	before := State{Criteria: filter.Criteria{TypeName: "fire"}}
	after := Reduce(before, TypeSelected{Name: "water"}, ToggleShiny{})
	assert.Equal(t, "fire", before.Criteria.TypeName)
	assert.False(t, before.Prefs.ShowShiny)
	assert.Equal(t, "water", after.Criteria.TypeName)
}

func TestReduceResetKeepsToggles(t *testing.T) {
	s := Reduce(State{}, SearchChanged{Text: "char"}, TypeSelected{Name: "fire"}, ToggleBack{}, ToggleDarkMode{})
	s = Reduce(s, Reset{})

	assert.True(t, s.Criteria.IsZero())
	assert.Equal(t, "", s.Prefs.SearchText)
	assert.True(t, s.Prefs.ShowBack)
	assert.True(t, s.Prefs.DarkMode)
}

func TestToggles(t *testing.T) {
	s := Reduce(State{}, ToggleBack{}, ToggleShiny{}, ToggleShiny{})
	assert.True(t, s.Prefs.ShowBack)
	assert.False(t, s.Prefs.ShowShiny)

	a, ok := ToggleFor("dark")
	require.True(t, ok)
	assert.True(t, Reduce(State{}, a).Prefs.DarkMode)

	_, ok = ToggleFor("sideways")
	assert.False(t, ok)
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	want := Reduce(State{}, SearchChanged{Text: "eev"}, RegionSelected{Name: "generation-i"}, FormSelected{Group: filter.FormGalarian}, ToggleShiny{})
	require.NoError(t, s.Save(ctx, "abc", want))

	got, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	v, ok, err := s.Get(ctx, "abc", KeyShowShiny)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok, err = s.Get(ctx, "abc", KeyShowBack)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0", v)
}

func TestStoreAbsentKeysAreDefaults(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	st, err := s.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, State{}, st)

	_, ok, err := s.Get(ctx, "nobody", KeySearch)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "partial", KeyDarkMode, "1"))
	st, err = s.Load(ctx, "partial")
	require.NoError(t, err)
	assert.Equal(t, State{Prefs: Preferences{DarkMode: true}}, st)
}

func TestStoreSetOverwritesAndIsolatesSessions(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", KeySearch, "bulba"))
	require.NoError(t, s.Set(ctx, "a", KeySearch, "ivy"))
	require.NoError(t, s.Set(ctx, "b", KeySearch, "char"))

	v, _, err := s.Get(ctx, "a", KeySearch)
	require.NoError(t, err)
	assert.Equal(t, "ivy", v)

	v, _, err = s.Get(ctx, "b", KeySearch)
	require.NoError(t, err)
	assert.Equal(t, "char", v)
}

func TestStoreDeleteDropsOnlyThatSession(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", State{Prefs: Preferences{SearchText: "ivy", DarkMode: true}}))
	require.NoError(t, s.Save(ctx, "b", State{Prefs: Preferences{SearchText: "char"}}))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Delete(ctx, "a"))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	st, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, State{}, st)

	st, err = s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "char", st.Prefs.SearchText)
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	require.NoError(t, err)
	b, err := NewSessionID()
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
