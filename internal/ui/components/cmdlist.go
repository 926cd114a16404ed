// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/uecast/internal/index"
	"github.com/jeranaias/uecast/internal/ui/styles"
	"github.com/jeranaias/uecast/internal/util"
)

// =============================================================================
// COMMAND LIST COMPONENT - Scrollable catalog browser
// =============================================================================

// CommandList is a scrollable, selectable list of index entries.
type CommandList struct {
	entries  []index.Entry
	selected int
	offset   int // first visible row
	width    int
	height   int // visible rows
	theme    *styles.Theme
}

// NewCommandList creates a new command list.
func NewCommandList(theme *styles.Theme) *CommandList {
	return &CommandList{
		width:  80,
		height: 10,
		theme:  theme,
	}
}

// SetEntries replaces the list contents, clamping the selection.
func (l *CommandList) SetEntries(entries []index.Entry) {
	l.entries = entries
	if l.selected >= len(entries) {
		l.selected = len(entries) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.clampOffset()
}

// SetSize updates the visible dimensions.
func (l *CommandList) SetSize(width, height int) {
	if width > 0 {
		l.width = width
	}
	if height > 0 {
		l.height = height
	}
	l.clampOffset()
}

// Len returns the number of entries.
func (l *CommandList) Len() int {
	return len(l.entries)
}

// Selected returns the selected entry, or nil for an empty list.
func (l *CommandList) Selected() *index.Entry {
	if l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return &l.entries[l.selected]
}

// Next moves the selection down one row.
func (l *CommandList) Next() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
	l.clampOffset()
}

// Prev moves the selection up one row.
func (l *CommandList) Prev() {
	if l.selected > 0 {
		l.selected--
	}
	l.clampOffset()
}

// PageDown moves the selection a page down.
func (l *CommandList) PageDown() {
	l.selected += l.height
	if l.selected >= len(l.entries) {
		l.selected = len(l.entries) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.clampOffset()
}

// PageUp moves the selection a page up.
func (l *CommandList) PageUp() {
	l.selected -= l.height
	if l.selected < 0 {
		l.selected = 0
	}
	l.clampOffset()
}

// Home jumps to the first entry.
func (l *CommandList) Home() {
	l.selected = 0
	l.clampOffset()
}

// End jumps to the last entry.
func (l *CommandList) End() {
	l.selected = len(l.entries) - 1
	if l.selected < 0 {
		l.selected = 0
	}
	l.clampOffset()
}

// clampOffset keeps the selection inside the visible window.
func (l *CommandList) clampOffset() {
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+l.height {
		l.offset = l.selected - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible rows.
func (l *CommandList) View() string {
	if len(l.entries) == 0 {
		return l.theme.CommandHelp.Render("no commands")
	}

	end := l.offset + l.height
	if end > len(l.entries) {
		end = len(l.entries)
	}

	nameWidth := 32
	if l.width < 64 {
		nameWidth = l.width / 2
	}
	helpWidth := l.width - nameWidth - 4

	var rows []string
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderRow(l.entries[i], i == l.selected, nameWidth, helpWidth))
	}
	return strings.Join(rows, "\n")
}

func (l *CommandList) renderRow(e index.Entry, isSelected bool, nameWidth, helpWidth int) string {
	mark := " "
	if e.Favourite {
		mark = "*"
	}

	name := util.PadRight(util.TruncateRunes(e.Name, nameWidth), nameWidth)
	help := ""
	if helpWidth > 4 {
		help = util.TruncateRunes(e.Help, helpWidth)
	}

	if isSelected {
		line := "> " + mark + " " + name + " " + help
		return l.theme.ListItemSelected.Render(util.TruncateRunes(line, l.width))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		"  ",
		l.theme.FavouriteMark.Render(mark),
		" ",
		l.theme.CommandName.Render(name),
		" ",
		l.theme.CommandHelp.Render(help),
	)
}
