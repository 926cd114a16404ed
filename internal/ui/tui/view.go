// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - Layout and rendering for the uecast TUI.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Fixed row counts; the catalog list takes the remaining height.
const (
	headerRows = 1
	logRows    = 6
	inputRows  = 3
	statusRows = 1
	titleRows  = 2 // one title line each for list and log
)

// resize distributes the new terminal size across the panes.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	m.theme.SetSize(width, height)
	m.status.SetWidth(width)
	m.input.Width = width - 6
	m.completion.SetWidth(width - 4)

	listHeight := height - headerRows - logRows - inputRows - statusRows - titleRows
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(width-4, listHeight)
	m.log.SetSize(width-4, logRows)
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "starting uecast..."
	}
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder

	// Header
	title := m.theme.HeaderTitle.Render("uecast")
	subtitle := m.theme.HeaderSubtitle.Render(m.cfg.Catalog.Path)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", subtitle))
	b.WriteString("\n")

	// Catalog list
	b.WriteString(m.theme.PaneTitle.Render("Commands"))
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")

	// Send log
	b.WriteString(m.theme.PaneTitle.Render("Log"))
	b.WriteString("\n")
	b.WriteString(m.log.View())
	b.WriteString("\n")

	// Completion popup sits directly above the input line
	if m.completion.HasEntries() {
		b.WriteString(m.completion.View())
		b.WriteString("\n")
	}

	// Input
	b.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	// Status bar
	b.WriteString(m.status.View())

	return b.String()
}

// helpView renders the full-screen key binding reference.
func (m *Model) helpView() string {
	bindings := []struct{ keys, desc string }{
		{"enter", "send input (or selected command)"},
		{"tab / shift+tab", "cycle completion matches"},
		{"esc", "dismiss completion, clear input"},
		{"up / down", "move catalog selection"},
		{"pgup / pgdn", "page catalog list"},
		{"ctrl+f", "toggle favourite"},
		{"ctrl+p / ctrl+n", "recall send history"},
		{"ctrl+r", "refresh devices"},
		{"ctrl+l", "clear log"},
		{"ctrl+up / ctrl+down", "scroll log"},
		{"f1", "toggle this help"},
		{"ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("uecast keys"))
	b.WriteString("\n\n")
	for _, kb := range bindings {
		b.WriteString("  ")
		b.WriteString(m.theme.ShortcutKey.Render(padTo(kb.keys, 22)))
		b.WriteString(m.theme.ShortcutDesc.Render(kb.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.HeaderSubtitle.Render("press f1 or esc to return"))
	return b.String()
}

func padTo(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
