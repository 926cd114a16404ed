// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package favourites

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "favourites.txt"))
}

func TestLoad_FirstRunSeedsDefaults(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Load())
	assert.Equal(t, DefaultCommands, s.Commands())

	// The seed is persisted
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "stat fps")
}

func TestLoad_IgnoresCommentsAndBlanks(t *testing.T) {
	s := newTestStore(t)
	content := "# header comment\n\nstat fps\n   \n# another comment\nr.MSAACount 4\n  t.MaxFPS 60  \n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0644))

	require.NoError(t, s.Load())
	assert.Equal(t, []string{"stat fps", "r.MSAACount 4", "t.MaxFPS 60"}, s.Commands())
}

func TestLoad_EmptyFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(""), 0644))

	require.NoError(t, s.Load())
	assert.Empty(t, s.Commands())
}

func TestLoad_UnreadableIsUnavailable(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("stat fps\n"), 0000))

	err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Load())

	_, err := s.Add("r.Shadow.MaxResolution 2048")
	require.NoError(t, err)

	reloaded := NewStore(s.Path())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, s.Commands(), reloaded.Commands())
}

func TestSave_WritesHeader(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Load())
	require.NoError(t, s.Save())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "#"))
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(""), 0644))
	require.NoError(t, s.Load())

	added, err := s.Add("stat fps")
	require.NoError(t, err)
	assert.True(t, added)

	// Duplicate is a no-op
	added, err = s.Add("stat fps")
	require.NoError(t, err)
	assert.False(t, added)

	// Empty and whitespace-only are no-ops
	added, err = s.Add("   ")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"stat fps"}, s.Commands())
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("stat fps\nstat unit\n"), 0644))
	require.NoError(t, s.Load())

	removed, err := s.Remove("stat fps")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove("not there")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, []string{"stat unit"}, s.Commands())

	// Removal persisted
	reloaded := NewStore(s.Path())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"stat unit"}, reloaded.Commands())
}

func TestMove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("a\nb\nc\n"), 0644))
	require.NoError(t, s.Load())

	require.NoError(t, s.Move(0, 2))
	assert.Equal(t, []string{"b", "c", "a"}, s.Commands())

	require.NoError(t, s.Move(2, 0))
	assert.Equal(t, []string{"a", "b", "c"}, s.Commands())

	// Same index is a no-op
	require.NoError(t, s.Move(1, 1))
	assert.Equal(t, []string{"a", "b", "c"}, s.Commands())

	// Out of range
	assert.Error(t, s.Move(0, 5))
	assert.Error(t, s.Move(-1, 0))
}

func TestContains(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("stat fps\n"), 0644))
	require.NoError(t, s.Load())

	assert.True(t, s.Contains("stat fps"))
	assert.False(t, s.Contains("stat unit"))
}

func TestOrderPreserved(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("zzz\naaa\nmmm\n"), 0644))
	require.NoError(t, s.Load())

	assert.Equal(t, []string{"zzz", "aaa", "mmm"}, s.Commands())
}
