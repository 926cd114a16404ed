// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFsnotifyWatcher_FiresOnTrackedFileChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "favourites.txt")
	require.NoError(t, os.WriteFile(target, []byte("stat fps\n"), 0644))

	changed := make(chan struct{}, 1)
	fw, err := NewFsnotifyWatcher([]string{target}, 50*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer fw.Close()
	require.NoError(t, fw.Watch())

	// Give the watcher a moment to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(target, []byte("stat fps\nstat unit\n"), 0644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not fire after file change")
	}
}

func TestFsnotifyWatcher_IgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "favourites.txt")
	require.NoError(t, os.WriteFile(target, []byte("stat fps\n"), 0644))

	changed := make(chan struct{}, 1)
	fw, err := NewFsnotifyWatcher([]string{target}, 50*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer fw.Close()
	require.NoError(t, fw.Watch())

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644))

	select {
	case <-changed:
		t.Fatal("watcher fired for an untracked file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestPollingWatcher_FiresOnModTimeChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ConsoleHelp.html")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0644))

	changed := make(chan struct{}, 1)
	pw := NewPollingWatcher([]string{target}, 50*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer pw.Close()
	require.NoError(t, pw.Watch())

	// Force a visible mtime change regardless of filesystem resolution
	require.NoError(t, os.WriteFile(target, []byte("v2"), 0644))
	past := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(target, past, past))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("polling watcher did not fire after file change")
	}
}

func TestPollingWatcher_FiresOnFileAppearing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ConsoleHelp.html")

	changed := make(chan struct{}, 1)
	pw := NewPollingWatcher([]string{target}, 50*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer pw.Close()
	require.NoError(t, pw.Watch())

	require.NoError(t, os.WriteFile(target, []byte("var cvars = [];"), 0644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("polling watcher did not notice the file appearing")
	}
}
