// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	base := time.Now()
	require.NoError(t, s.Record(Entry{Command: "stat fps", Serial: "emu-1", OK: true, SentAt: base}))
	require.NoError(t, s.Record(Entry{Command: "stat unit", Serial: "emu-1", OK: true, SentAt: base.Add(time.Second)}))

	entries, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "stat unit", entries[0].Command)
	assert.Equal(t, "stat fps", entries[1].Command)
	assert.True(t, entries[0].OK)
	assert.Equal(t, "emu-1", entries[0].Serial)
	assert.NotEmpty(t, entries[0].ID)
}

func TestRecord_DeduplicatesByCommand(t *testing.T) {
	s := newTestStore(t)

	base := time.Now()
	require.NoError(t, s.Record(Entry{Command: "stat fps", SentAt: base}))
	require.NoError(t, s.Record(Entry{Command: "stat unit", SentAt: base.Add(time.Second)}))
	require.NoError(t, s.Record(Entry{Command: "stat fps", OK: true, SentAt: base.Add(2 * time.Second)}))

	entries, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Resend moved it to the top with the latest outcome
	assert.Equal(t, "stat fps", entries[0].Command)
	assert.True(t, entries[0].OK)
	assert.Equal(t, "stat unit", entries[1].Command)
}

func TestRecord_PrunesToMax(t *testing.T) {
	s := newTestStore(t)
	s.SetMaxEntries(3)

	base := time.Now()
	for i, cmd := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Record(Entry{Command: cmd, SentAt: base.Add(time.Duration(i) * time.Second)}))
	}

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	entries, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e", entries[0].Command)
	assert.Equal(t, "c", entries[2].Command)
}

func TestRecent_Limit(t *testing.T) {
	s := newTestStore(t)

	base := time.Now()
	for i, cmd := range []string{"a", "b", "c"} {
		require.NoError(t, s.Record(Entry{Command: cmd, SentAt: base.Add(time.Duration(i) * time.Second)}))
	}

	entries, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Command)
}

func TestRecord_FillsDefaults(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Record(Entry{Command: "stat fps"}))

	entries, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].SentAt.IsZero())
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Record(Entry{Command: "stat fps"}))
	require.NoError(t, s.Clear())

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	entries, err := s.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(Entry{Command: "stat fps"}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	n, err := s2.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
