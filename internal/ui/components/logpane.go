// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/uecast/internal/ui/styles"
)

// =============================================================================
// LOG PANE COMPONENT - Scrollback of send attempts and their output
// =============================================================================

// LogEntry is one rendered line group in the log pane.
type LogEntry struct {
	Time    time.Time
	Command string
	Serial  string
	OK      bool
	Output  string
}

// LogPane shows the outcome of recent sends in a scrollable viewport.
type LogPane struct {
	viewport viewport.Model
	entries  []LogEntry
	maxLines int
	theme    *styles.Theme
}

// NewLogPane creates a log pane capped at maxLines entries.
func NewLogPane(theme *styles.Theme, maxLines int) *LogPane {
	if maxLines < 1 {
		maxLines = 200
	}
	vp := viewport.New(80, 8)
	return &LogPane{
		viewport: vp,
		maxLines: maxLines,
		theme:    theme,
	}
}

// SetSize updates the viewport dimensions.
func (p *LogPane) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
	p.refresh()
}

// Append adds a send outcome and scrolls to the bottom.
func (p *LogPane) Append(e LogEntry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	p.entries = append(p.entries, e)
	if len(p.entries) > p.maxLines {
		p.entries = p.entries[len(p.entries)-p.maxLines:]
	}
	p.refresh()
	p.viewport.GotoBottom()
}

// AppendNote adds an informational line without a command.
func (p *LogPane) AppendNote(note string) {
	p.Append(LogEntry{OK: true, Output: note})
}

// Len returns the number of retained entries.
func (p *LogPane) Len() int {
	return len(p.entries)
}

// Clear empties the pane.
func (p *LogPane) Clear() {
	p.entries = nil
	p.refresh()
}

// ScrollUp scrolls the viewport up a few lines.
func (p *LogPane) ScrollUp() {
	p.viewport.LineUp(3)
}

// ScrollDown scrolls the viewport down a few lines.
func (p *LogPane) ScrollDown() {
	p.viewport.LineDown(3)
}

// View renders the viewport.
func (p *LogPane) View() string {
	return p.viewport.View()
}

// refresh re-renders all entries into the viewport.
func (p *LogPane) refresh() {
	var lines []string
	for _, e := range p.entries {
		lines = append(lines, p.renderEntry(e)...)
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))
}

func (p *LogPane) renderEntry(e LogEntry) []string {
	var lines []string

	ts := p.theme.LogTimestamp.Render(e.Time.Format("15:04:05"))

	if e.Command != "" {
		status := p.theme.LogOK.Render(styles.StatusIndicators.Success)
		if !e.OK {
			status = p.theme.LogError.Render(styles.StatusIndicators.Error)
		}
		head := ts + " " + status + " " + p.theme.LogCommand.Render(e.Command)
		if e.Serial != "" {
			head += " " + p.theme.LogTimestamp.Render("("+e.Serial+")")
		}
		lines = append(lines, head)
	}

	if out := strings.TrimSpace(e.Output); out != "" {
		for _, line := range strings.Split(out, "\n") {
			lines = append(lines, "  "+p.theme.LogOutput.Render(line))
		}
	}
	return lines
}
