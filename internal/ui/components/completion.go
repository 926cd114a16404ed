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
// COMPLETION POPUP COMPONENT
// =============================================================================

// CompletionPopup displays a popup with catalog matches for the input line.
type CompletionPopup struct {
	entries    []index.Entry
	selected   int
	maxVisible int
	width      int
	theme      *styles.Theme
}

// NewCompletionPopup creates a new completion popup.
func NewCompletionPopup(theme *styles.Theme) *CompletionPopup {
	return &CompletionPopup{
		selected:   0,
		maxVisible: 8, // Show up to 8 matches at once
		width:      60,
		theme:      theme,
	}
}

// SetEntries sets the matches to display and resets the selection.
func (c *CompletionPopup) SetEntries(entries []index.Entry) {
	c.entries = entries
	c.selected = 0
}

// Entries returns the current matches.
func (c *CompletionPopup) Entries() []index.Entry {
	return c.entries
}

// Selected returns the selected index.
func (c *CompletionPopup) Selected() int {
	return c.selected
}

// Next selects the next match, wrapping at the end.
func (c *CompletionPopup) Next() {
	if len(c.entries) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.entries)
}

// Prev selects the previous match, wrapping at the start.
func (c *CompletionPopup) Prev() {
	if len(c.entries) == 0 {
		return
	}
	c.selected--
	if c.selected < 0 {
		c.selected = len(c.entries) - 1
	}
}

// SelectedEntry returns the currently selected match, or nil.
func (c *CompletionPopup) SelectedEntry() *index.Entry {
	if c.selected < 0 || c.selected >= len(c.entries) {
		return nil
	}
	return &c.entries[c.selected]
}

// HasEntries returns true if there are matches to show.
func (c *CompletionPopup) HasEntries() bool {
	return len(c.entries) > 0
}

// Clear discards all matches.
func (c *CompletionPopup) Clear() {
	c.entries = nil
	c.selected = 0
}

// SetWidth sets the popup width.
func (c *CompletionPopup) SetWidth(width int) {
	if width < 30 {
		width = 30
	}
	c.width = width
}

// SetMaxVisible sets the maximum number of visible matches.
func (c *CompletionPopup) SetMaxVisible(max int) {
	if max >= 1 {
		c.maxVisible = max
	}
}

// View renders the completion popup.
func (c *CompletionPopup) View() string {
	if len(c.entries) == 0 {
		return ""
	}

	// Scrolling window centred on the selection
	start := 0
	end := len(c.entries)
	if len(c.entries) > c.maxVisible {
		start = c.selected - c.maxVisible/2
		if start < 0 {
			start = 0
		}
		end = start + c.maxVisible
		if end > len(c.entries) {
			end = len(c.entries)
			start = end - c.maxVisible
			if start < 0 {
				start = 0
			}
		}
	}

	var items []string
	for i := start; i < end; i++ {
		items = append(items, c.renderItem(c.entries[i], i == c.selected))
	}

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Cyan).
		Padding(0, 1).
		Width(c.width).
		MaxWidth(c.width)

	return boxStyle.Render(strings.Join(items, "\n"))
}

// renderItem renders a single match line: marker, name, help text.
func (c *CompletionPopup) renderItem(e index.Entry, isSelected bool) string {
	nameWidth := 28
	helpWidth := c.width - nameWidth - 8
	if helpWidth < 8 {
		helpWidth = 8
	}

	nameStyle := lipgloss.NewStyle().
		Width(nameWidth).
		Foreground(styles.TextPrimary)
	helpStyle := lipgloss.NewStyle().
		Width(helpWidth).
		Foreground(styles.TextSecondary)
	if isSelected {
		nameStyle = nameStyle.
			Background(styles.Cyan).
			Foreground(styles.Surface).
			Bold(true)
		helpStyle = helpStyle.
			Foreground(styles.TextPrimary)
	}

	indicator := " "
	if isSelected {
		indicator = ">"
	}
	indicatorStyle := lipgloss.NewStyle().
		Width(2).
		Foreground(styles.Cyan)

	mark := " "
	if e.Favourite {
		mark = "*"
	}
	markStyle := lipgloss.NewStyle().
		Width(2).
		Foreground(styles.Amber)

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		indicatorStyle.Render(indicator),
		markStyle.Render(mark),
		nameStyle.Render(util.TruncateRunes(e.Name, nameWidth)),
		helpStyle.Render(util.TruncateRunes(e.Help, helpWidth)),
	)
}

// ViewCompact renders a compact single-line match indicator.
func (c *CompletionPopup) ViewCompact() string {
	if len(c.entries) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	if len(c.entries) == 1 {
		return style.Render("Tab: complete \"" + c.entries[0].Name + "\"")
	}
	return style.Render("Tab: " + fmtNumber(len(c.entries)) + " matches")
}
