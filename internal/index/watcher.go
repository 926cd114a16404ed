// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// FILE WATCHER INTERFACE
// =============================================================================

// FileWatcher is the interface for file watching implementations
type FileWatcher interface {
	// Watch starts watching for file changes
	Watch() error

	// Close stops watching and releases resources
	Close() error
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FsnotifyWatcher implements FileWatcher using fsnotify. It watches the
// parent directories of the target files rather than the files themselves:
// both the catalog export and the favourites save are atomic renames, which
// would otherwise detach a direct file watch.
type FsnotifyWatcher struct {
	paths    map[string]struct{} // absolute target file paths
	dirs     []string
	onChange func()
	watcher  *fsnotify.Watcher
	debounce time.Duration
	mu       sync.Mutex
	pending  map[string]time.Time // File path -> last change time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewFsnotifyWatcher creates a new fsnotify-based watcher over the given
// files. onChange fires once per debounced batch of changes.
func NewFsnotifyWatcher(files []string, debounce time.Duration, onChange func()) (*FsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	fw := &FsnotifyWatcher{
		paths:    make(map[string]struct{}, len(files)),
		onChange: onChange,
		watcher:  watcher,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}

	seen := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		fw.paths[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			fw.dirs = append(fw.dirs, dir)
		}
	}

	return fw, nil
}

// Watch starts watching for file changes
func (fw *FsnotifyWatcher) Watch() error {
	for _, dir := range fw.dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return err
		}
	}

	// Start event processing goroutine
	go fw.processEvents()

	// Start debounce timer goroutine
	go fw.processPending()

	return nil
}

// processEvents processes file system events
func (fw *FsnotifyWatcher) processEvents() {
	// Add panic recovery to prevent crashes
	defer func() {
		if r := recover(); r != nil {
			_ = r
		}
	}()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// Only events touching a tracked file matter. Create and Rename
			// both show up during an atomic save.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				abs = event.Name
			}
			if _, tracked := fw.paths[abs]; !tracked {
				continue
			}

			fw.mu.Lock()
			fw.pending[abs] = time.Now()
			fw.mu.Unlock()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal
			_ = err
		}
	}
}

// processPending fires onChange after changes settle for the debounce window.
func (fw *FsnotifyWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()
			fire := false

			fw.mu.Lock()
			for path, changeTime := range fw.pending {
				if now.Sub(changeTime) >= fw.debounce {
					delete(fw.pending, path)
					fire = true
				}
			}
			fw.mu.Unlock()

			// One reload covers every settled file
			if fire && fw.onChange != nil {
				fw.onChange()
			}
		}
	}
}

// Close stops watching and releases resources
func (fw *FsnotifyWatcher) Close() error {
	fw.cancel()
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollingWatcher implements FileWatcher using periodic mtime polling.
type PollingWatcher struct {
	files    []string
	onChange func()
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	modTimes map[string]time.Time
}

// NewPollingWatcher creates a new polling-based watcher
func NewPollingWatcher(files []string, interval time.Duration, onChange func()) *PollingWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &PollingWatcher{
		files:    files,
		onChange: onChange,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		modTimes: make(map[string]time.Time),
	}
}

// Watch starts watching for file changes
func (pw *PollingWatcher) Watch() error {
	// Record the baseline so pre-existing files do not fire a change
	pw.scan(false)

	go pw.poll()
	return nil
}

// poll periodically checks for file changes
func (pw *PollingWatcher) poll() {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			if pw.scan(true) && pw.onChange != nil {
				pw.onChange()
			}
		}
	}
}

// scan stats every tracked file and reports whether anything changed since
// the previous scan. Appearing and disappearing files both count as changes.
func (pw *PollingWatcher) scan(compare bool) bool {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	changed := false
	for _, path := range pw.files {
		info, err := os.Stat(path)
		if err != nil {
			if _, existed := pw.modTimes[path]; existed {
				delete(pw.modTimes, path)
				changed = true
			}
			continue
		}

		prev, existed := pw.modTimes[path]
		if !existed || !prev.Equal(info.ModTime()) {
			pw.modTimes[path] = info.ModTime()
			changed = true
		}
	}

	return compare && changed
}

// Close stops watching
func (pw *PollingWatcher) Close() error {
	pw.cancel()
	return nil
}

// =============================================================================
// WATCHER FACTORY
// =============================================================================

// StartWatcher starts a watcher over the given files, preferring fsnotify
// and falling back to polling where inotify is unavailable.
func StartWatcher(files []string, debounce time.Duration, onChange func()) (FileWatcher, error) {
	fw, err := NewFsnotifyWatcher(files, debounce, onChange)
	if err == nil {
		if err := fw.Watch(); err == nil {
			return fw, nil
		}
		fw.Close()
	}

	// Fallback to polling watcher
	pw := NewPollingWatcher(files, 5*time.Second, onChange)
	if err := pw.Watch(); err != nil {
		return nil, err
	}
	return pw, nil
}
