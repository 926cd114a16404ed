// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package favourites

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jeranaias/uecast/internal/util"
)

// ErrUnavailable is returned when the favourites file cannot be read or
// written. The caller surfaces it; favourites are user data and failures
// must never be silent.
var ErrUnavailable = errors.New("favourites store unavailable")

// DefaultCommands seeds a brand-new store on first run.
var DefaultCommands = []string{
	"stat unit",
	"stat fps",
	"r.MSAACount 4",
	"r.ScreenPercentage 100",
	"t.MaxFPS 60",
}

// fileHeader is written at the top of every saved file. Loaders ignore
// comment lines, so the file round-trips cleanly.
const fileHeader = "# uecast favourites\n# One console command per line. Lines starting with '#' are ignored.\n"

// Store holds the ordered favourites list and its backing file.
type Store struct {
	mu       sync.Mutex
	path     string
	commands []string
}

// NewStore creates a store backed by the file at path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the favourites file. A missing file is not an error: the store
// is seeded with DefaultCommands and saved, so the user starts with a useful
// list. Any other read failure is ErrUnavailable.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.commands = append([]string(nil), DefaultCommands...)
			return s.saveLocked()
		}
		return fmt.Errorf("read %s: %w: %w", s.path, ErrUnavailable, err)
	}

	var commands []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		commands = append(commands, line)
	}
	s.commands = commands
	return nil
}

// Save rewrites the whole favourites file atomically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	var b strings.Builder
	b.WriteString(fileHeader)
	for _, cmd := range s.commands {
		b.WriteString(cmd)
		b.WriteByte('\n')
	}

	if err := util.AtomicWriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w: %w", s.path, ErrUnavailable, err)
	}
	return nil
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// Commands returns a copy of the favourites in list order.
func (s *Store) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Len returns the number of favourites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commands)
}

// Contains reports whether cmd is already a favourite.
func (s *Store) Contains(cmd string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(cmd) >= 0
}

// Add appends cmd to the list and saves. Adding an empty string or an
// existing favourite is a no-op; the bool reports whether the list changed.
func (s *Store) Add(cmd string) (bool, error) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(cmd) >= 0 {
		return false, nil
	}
	s.commands = append(s.commands, cmd)
	if err := s.saveLocked(); err != nil {
		// Roll back so memory matches disk
		s.commands = s.commands[:len(s.commands)-1]
		return false, err
	}
	return true, nil
}

// Remove deletes cmd from the list and saves. The bool reports whether the
// command was present.
func (s *Store) Remove(cmd string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(strings.TrimSpace(cmd))
	if i < 0 {
		return false, nil
	}

	removed := s.commands[i]
	s.commands = append(s.commands[:i], s.commands[i+1:]...)
	if err := s.saveLocked(); err != nil {
		// Restore on failure
		s.commands = append(s.commands[:i], append([]string{removed}, s.commands[i:]...)...)
		return false, err
	}
	return true, nil
}

// Move relocates the favourite at index from to index to and saves.
func (s *Store) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.commands) || to < 0 || to >= len(s.commands) {
		return fmt.Errorf("move %d -> %d out of range (len %d)", from, to, len(s.commands))
	}
	if from == to {
		return nil
	}

	cmd := s.commands[from]
	s.commands = append(s.commands[:from], s.commands[from+1:]...)
	s.commands = append(s.commands[:to], append([]string{cmd}, s.commands[to:]...)...)
	return s.saveLocked()
}

func (s *Store) indexOf(cmd string) int {
	for i, c := range s.commands {
		if c == cmd {
			return i
		}
	}
	return -1
}
