// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"sort"
	"strings"
	"sync"

	"github.com/jeranaias/uecast/internal/catalog"
)

// =============================================================================
// STATE
// =============================================================================

// State is the lifecycle state of the index. There is no error state: load
// failures keep the previous snapshot (or an empty one) and the application
// stays interactive.
type State int

const (
	// StateEmpty means Rebuild has never completed.
	StateEmpty State = iota

	// StateLoaded means at least one Rebuild completed, even a catalog-less
	// one built from favourites alone.
	StateLoaded
)

// String returns the state name for status display.
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	default:
		return "empty"
	}
}

// =============================================================================
// ENTRIES
// =============================================================================

// Entry is a single searchable item: either a catalog command or a favourite
// command string (which may carry arguments, e.g. "r.MSAACount 4").
type Entry struct {
	Name      string
	Help      string
	Type      string
	Favourite bool

	// pos is the original position (catalog order, then favourites order)
	// and is the tiebreaker for equal-rank matches.
	pos int
}

// Match ranks, best first. Strict tiers: a prefix match always outranks a
// name substring match, regardless of name length.
const (
	rankExact = iota
	rankPrefix
	rankName
	rankHelp
	rankNone
)

// matchRank classifies how well the entry matches the lowercased query.
func matchRank(e *Entry, q string) int {
	name := strings.ToLower(e.Name)
	switch {
	case name == q:
		return rankExact
	case strings.HasPrefix(name, q):
		return rankPrefix
	case strings.Contains(name, q):
		return rankName
	case strings.Contains(strings.ToLower(e.Help), q):
		return rankHelp
	default:
		return rankNone
	}
}

// =============================================================================
// INDEX
// =============================================================================

// Policy tunes result ordering and size.
type Policy struct {
	// FavouritesFirst sorts favourite entries ahead of catalog entries in
	// ranked search results, regardless of match quality.
	FavouritesFirst bool

	// MaxResults caps Search output. Zero means unlimited.
	MaxResults int
}

// Index is the snapshot-swapped search index. Rebuild replaces the whole
// entry set atomically; concurrent readers see either the old or the new
// snapshot, never a mix.
type Index struct {
	mu           sync.RWMutex
	state        State
	entries      []Entry
	policy       Policy
	catalogLen   int
	favouriteLen int
}

// New creates an empty index with the given policy.
func New(policy Policy) *Index {
	return &Index{policy: policy}
}

// Rebuild constructs a complete new snapshot from the catalog commands and
// the favourites list and swaps it in. Favourite strings whose first token
// names a catalog command inherit that command's help text.
func (ix *Index) Rebuild(commands []catalog.Command, favs []string) {
	entries := make([]Entry, 0, len(commands)+len(favs))
	helpByName := make(map[string]catalog.Command, len(commands))

	for i, cmd := range commands {
		entries = append(entries, Entry{
			Name: cmd.Name,
			Help: cmd.Help,
			Type: cmd.Type,
			pos:  i,
		})
		helpByName[strings.ToLower(cmd.Name)] = cmd
	}

	for i, fav := range favs {
		e := Entry{
			Name:      fav,
			Favourite: true,
			pos:       len(commands) + i,
		}
		// "r.MSAACount 4" inherits the help of "r.MSAACount"
		if base, ok := helpByName[strings.ToLower(firstToken(fav))]; ok {
			e.Help = base.Help
			e.Type = base.Type
		}
		entries = append(entries, e)
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.catalogLen = len(commands)
	ix.favouriteLen = len(favs)
	ix.state = StateLoaded
	ix.mu.Unlock()
}

// Search returns entries matching the query, best match first. Matching is
// case-insensitive. The empty (or whitespace-only) query returns the full
// entry set in original order.
func (ix *Index) Search(query string) []Entry {
	ix.mu.RLock()
	entries := ix.entries
	policy := ix.policy
	ix.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var results []Entry

	if q == "" {
		results = append([]Entry(nil), entries...)
	} else {
		type ranked struct {
			entry Entry
			rank  int
		}
		matches := make([]ranked, 0, 32)
		for i := range entries {
			if r := matchRank(&entries[i], q); r != rankNone {
				matches = append(matches, ranked{entries[i], r})
			}
		}

		sort.SliceStable(matches, func(i, j int) bool {
			a, b := matches[i], matches[j]
			if policy.FavouritesFirst && a.entry.Favourite != b.entry.Favourite {
				return a.entry.Favourite
			}
			if a.rank != b.rank {
				return a.rank < b.rank
			}
			return a.entry.pos < b.entry.pos
		})

		results = make([]Entry, len(matches))
		for i, m := range matches {
			results[i] = m.entry
		}
	}

	if policy.MaxResults > 0 && len(results) > policy.MaxResults {
		results = results[:policy.MaxResults]
	}
	return results
}

// State returns the current lifecycle state.
func (ix *Index) State() State {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.state
}

// Len returns the total number of entries in the current snapshot.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// CatalogLen returns the number of catalog entries in the current snapshot.
func (ix *Index) CatalogLen() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.catalogLen
}

// FavouriteLen returns the number of favourite entries in the current snapshot.
func (ix *Index) FavouriteLen() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.favouriteLen
}

// Policy returns the active result policy.
func (ix *Index) Policy() Policy {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.policy
}

// SetPolicy replaces the result policy. Takes effect on the next Search.
func (ix *Index) SetPolicy(p Policy) {
	ix.mu.Lock()
	ix.policy = p
	ix.mu.Unlock()
}

func firstToken(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
