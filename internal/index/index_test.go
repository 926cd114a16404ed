// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/uecast/internal/catalog"
)

func testCatalog() []catalog.Command {
	return []catalog.Command{
		{Name: "stat fps", Help: "Displays frame rate", Type: "Cmd"},
		{Name: "stat unit", Help: "Displays frame timing breakdown", Type: "Cmd"},
		{Name: "r.ScreenPercentage", Help: "Render resolution percentage", Type: "Var"},
		{Name: "r.MSAACount", Help: "MSAA sample count", Type: "Var"},
		{Name: "t.MaxFPS", Help: "Caps the frame rate", Type: "Var"},
	}
}

func TestState_EmptyUntilFirstRebuild(t *testing.T) {
	ix := New(Policy{})
	assert.Equal(t, StateEmpty, ix.State())
	assert.Equal(t, 0, ix.Len())

	ix.Rebuild(nil, nil)
	assert.Equal(t, StateLoaded, ix.State())
}

func TestRebuild_FavouritesOnly(t *testing.T) {
	// CatalogUnavailable degrades to a favourites-only index, still Loaded
	ix := New(Policy{})
	ix.Rebuild(nil, []string{"stat fps", "r.MSAACount 4"})

	assert.Equal(t, StateLoaded, ix.State())
	assert.Equal(t, 2, ix.Len())
	assert.Equal(t, 0, ix.CatalogLen())
	assert.Equal(t, 2, ix.FavouriteLen())
}

func TestSearch_EmptyQueryReturnsAllInOrder(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), []string{"r.MSAACount 4"})

	results := ix.Search("")
	require.Len(t, results, 6)
	assert.Equal(t, "stat fps", results[0].Name)
	assert.Equal(t, "t.MaxFPS", results[4].Name)
	assert.Equal(t, "r.MSAACount 4", results[5].Name)
	assert.True(t, results[5].Favourite)

	// Whitespace-only behaves like empty
	assert.Len(t, ix.Search("   "), 6)
}

func TestSearch_RankOrdering(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild([]catalog.Command{
		{Name: "stat", Help: ""},
		{Name: "stat fps", Help: ""},
		{Name: "showstat", Help: ""},
		{Name: "r.Tonemapper", Help: "stat overlay interaction"},
	}, nil)

	results := ix.Search("stat")
	require.Len(t, results, 4)

	// exact > prefix > name-contains > help-contains
	assert.Equal(t, "stat", results[0].Name)
	assert.Equal(t, "stat fps", results[1].Name)
	assert.Equal(t, "showstat", results[2].Name)
	assert.Equal(t, "r.Tonemapper", results[3].Name)
}

func TestSearch_TiesBrokenByCatalogOrder(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild([]catalog.Command{
		{Name: "stat unit"},
		{Name: "stat fps"},
		{Name: "stat gpu"},
	}, nil)

	results := ix.Search("stat ")
	require.Len(t, results, 3)
	assert.Equal(t, "stat unit", results[0].Name)
	assert.Equal(t, "stat fps", results[1].Name)
	assert.Equal(t, "stat gpu", results[2].Name)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), nil)

	assert.Len(t, ix.Search("MSAA"), 1)
	assert.Len(t, ix.Search("msaa"), 1)
	assert.Len(t, ix.Search("r.screenpercentage"), 1)
}

func TestSearch_HelpSubstring(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), nil)

	results := ix.Search("resolution")
	require.Len(t, results, 1)
	assert.Equal(t, "r.ScreenPercentage", results[0].Name)
}

func TestSearch_NoMatches(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), nil)

	assert.Empty(t, ix.Search("nonexistent.cvar"))
}

func TestSearch_FavouritesFirstPolicy(t *testing.T) {
	cat := testCatalog()
	favs := []string{"t.MaxFPS 60"}

	plain := New(Policy{})
	plain.Rebuild(cat, favs)
	results := plain.Search("fps")
	require.NotEmpty(t, results)
	// Without the policy, the prefix/name matches from the catalog win
	assert.False(t, results[0].Favourite)

	first := New(Policy{FavouritesFirst: true})
	first.Rebuild(cat, favs)
	results = first.Search("fps")
	require.NotEmpty(t, results)
	assert.True(t, results[0].Favourite)
	assert.Equal(t, "t.MaxFPS 60", results[0].Name)
}

func TestSearch_MaxResults(t *testing.T) {
	ix := New(Policy{MaxResults: 2})
	ix.Rebuild(testCatalog(), nil)

	assert.Len(t, ix.Search(""), 2)
	assert.Len(t, ix.Search("stat"), 2)
}

func TestFavouriteInheritsHelp(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), []string{"r.MSAACount 4", "custom.thing 1"})

	results := ix.Search("")
	byName := make(map[string]Entry)
	for _, e := range results {
		byName[e.Name] = e
	}

	assert.Equal(t, "MSAA sample count", byName["r.MSAACount 4"].Help)
	assert.Empty(t, byName["custom.thing 1"].Help)
}

func TestRebuild_ReplacesWholesale(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), nil)
	require.Equal(t, 5, ix.Len())

	ix.Rebuild([]catalog.Command{{Name: "only.one"}}, nil)
	assert.Equal(t, 1, ix.Len())
	assert.Empty(t, ix.Search("stat"))
}

func TestSetPolicy(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), nil)

	ix.SetPolicy(Policy{MaxResults: 1})
	assert.Len(t, ix.Search(""), 1)
}

// Run with -race: concurrent searches during rebuilds must only ever see a
// complete snapshot.
func TestConcurrentSearchAndRebuild(t *testing.T) {
	ix := New(Policy{})
	ix.Rebuild(testCatalog(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ix.Rebuild(testCatalog(), []string{"stat fps"})
		}()
		go func() {
			defer wg.Done()
			results := ix.Search("stat")
			// Either snapshot is valid; a half-built one is not
			if len(results) != 2 && len(results) != 3 {
				t.Errorf("unexpected result count %d", len(results))
			}
		}()
	}
	wg.Wait()
}
