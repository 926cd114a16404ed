// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/uecast/internal/index"
	"github.com/jeranaias/uecast/internal/ui/styles"
)

func testEntries(names ...string) []index.Entry {
	entries := make([]index.Entry, len(names))
	for i, n := range names {
		entries[i] = index.Entry{Name: n, Help: "help for " + n}
	}
	return entries
}

func TestFmtNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := fmtNumber(tt.n); got != tt.want {
			t.Errorf("fmtNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCompletionPopup_Navigation(t *testing.T) {
	c := NewCompletionPopup(styles.NewTheme())
	c.SetEntries(testEntries("stat fps", "stat unit", "stat gpu"))

	if !c.HasEntries() {
		t.Fatal("expected entries")
	}
	if c.Selected() != 0 {
		t.Errorf("initial selection = %d", c.Selected())
	}

	c.Next()
	c.Next()
	if c.Selected() != 2 {
		t.Errorf("after two Next, selection = %d", c.Selected())
	}

	// Wraps
	c.Next()
	if c.Selected() != 0 {
		t.Errorf("Next should wrap, selection = %d", c.Selected())
	}
	c.Prev()
	if c.Selected() != 2 {
		t.Errorf("Prev should wrap, selection = %d", c.Selected())
	}

	if got := c.SelectedEntry(); got == nil || got.Name != "stat gpu" {
		t.Errorf("SelectedEntry = %v", got)
	}

	c.Clear()
	if c.HasEntries() || c.SelectedEntry() != nil {
		t.Error("Clear should drop entries")
	}
}

func TestCompletionPopup_SetEntriesResetsSelection(t *testing.T) {
	c := NewCompletionPopup(styles.NewTheme())
	c.SetEntries(testEntries("a", "b", "c"))
	c.Next()
	c.SetEntries(testEntries("x", "y"))
	if c.Selected() != 0 {
		t.Errorf("selection = %d after SetEntries", c.Selected())
	}
}

func TestCompletionPopup_ViewContainsNames(t *testing.T) {
	c := NewCompletionPopup(styles.NewTheme())
	c.SetEntries(testEntries("r.ScreenPercentage"))
	view := c.View()
	if !strings.Contains(view, "r.ScreenPercentage") {
		t.Error("View should contain the entry name")
	}
	if c.Clear(); c.View() != "" {
		t.Error("empty popup should render nothing")
	}
}

func TestCommandList_Navigation(t *testing.T) {
	l := NewCommandList(styles.NewTheme())
	l.SetSize(80, 3)
	l.SetEntries(testEntries("a", "b", "c", "d", "e"))

	if got := l.Selected(); got == nil || got.Name != "a" {
		t.Fatalf("initial Selected = %v", got)
	}

	l.Next()
	l.Next()
	if got := l.Selected(); got.Name != "c" {
		t.Errorf("Selected = %q", got.Name)
	}

	l.End()
	if got := l.Selected(); got.Name != "e" {
		t.Errorf("End Selected = %q", got.Name)
	}
	// Does not run past the end
	l.Next()
	if got := l.Selected(); got.Name != "e" {
		t.Errorf("Next past end Selected = %q", got.Name)
	}

	l.Home()
	if got := l.Selected(); got.Name != "a" {
		t.Errorf("Home Selected = %q", got.Name)
	}
	l.Prev()
	if got := l.Selected(); got.Name != "a" {
		t.Errorf("Prev past start Selected = %q", got.Name)
	}

	l.PageDown()
	if got := l.Selected(); got.Name != "d" {
		t.Errorf("PageDown Selected = %q", got.Name)
	}
	l.PageUp()
	if got := l.Selected(); got.Name != "a" {
		t.Errorf("PageUp Selected = %q", got.Name)
	}
}

func TestCommandList_SetEntriesClampsSelection(t *testing.T) {
	l := NewCommandList(styles.NewTheme())
	l.SetEntries(testEntries("a", "b", "c"))
	l.End()
	l.SetEntries(testEntries("x"))
	if got := l.Selected(); got == nil || got.Name != "x" {
		t.Errorf("Selected after shrink = %v", got)
	}

	l.SetEntries(nil)
	if l.Selected() != nil {
		t.Error("empty list should have no selection")
	}
	if !strings.Contains(l.View(), "no commands") {
		t.Error("empty list view should say so")
	}
}

func TestLogPane_AppendAndCap(t *testing.T) {
	p := NewLogPane(styles.NewTheme(), 3)
	for _, cmd := range []string{"a", "b", "c", "d", "e"} {
		p.Append(LogEntry{Command: cmd, OK: true})
	}
	if p.Len() != 3 {
		t.Errorf("Len = %d, want 3 (capped)", p.Len())
	}

	p.Clear()
	if p.Len() != 0 {
		t.Error("Clear should empty the pane")
	}
}

func TestStatusBar_View(t *testing.T) {
	s := NewStatusBar(styles.NewTheme())
	s.SetWidth(120)
	s.SetDevice("emulator-5554", "Pixel 7")
	s.SetDeviceCount(2)
	s.SetCatalog(4523, 5)
	s.SetIndexState("loaded")
	s.SetStatus(StatusReady)

	view := s.View()
	for _, want := range []string{"emulator-5554", "4,523", "loaded", "Ready"} {
		if !strings.Contains(view, want) {
			t.Errorf("wide view missing %q", want)
		}
	}

	s.SetWidth(40)
	narrow := s.View()
	if !strings.Contains(narrow, "emulator-5554") {
		t.Error("narrow view missing device serial")
	}
}

func TestStatus_Strings(t *testing.T) {
	if StatusReady.String() != "Ready" {
		t.Error("StatusReady string")
	}
	if StatusError.Icon() != styles.StatusIndicators.Error {
		t.Error("StatusError icon")
	}
	if StatusSending.String() != "Sending..." {
		t.Error("StatusSending string")
	}
}
