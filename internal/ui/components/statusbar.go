// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/uecast/internal/ui/styles"
	"github.com/jeranaias/uecast/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusSending
	StatusLoading
	StatusError
	StatusIdle
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusSending:
		return "Sending..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusSending, StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	DeviceSerial  string // Target device, "" when none
	DeviceModel   string // Device model string when known
	DeviceCount   int    // Usable devices connected
	CatalogCount  int    // Commands in the catalog
	FavCount      int    // Favourites loaded
	IndexState    string // "empty" or "loaded"
	Status        Status // Current status
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusLoading,
		Width:         80,
		ShowShortcuts: true,
		IndexState:    "empty",
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetDevice updates the target device display.
func (s *StatusBar) SetDevice(serial, model string) {
	s.DeviceSerial = serial
	s.DeviceModel = model
}

// SetDeviceCount updates the connected device count.
func (s *StatusBar) SetDeviceCount(n int) {
	s.DeviceCount = n
}

// SetCatalog updates the catalog and favourite counts.
func (s *StatusBar) SetCatalog(commands, favourites int) {
	s.CatalogCount = commands
	s.FavCount = favourites
}

// SetIndexState updates the index state label.
func (s *StatusBar) SetIndexState(state string) {
	s.IndexState = state
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [serial|-] cmds Status
func (s *StatusBar) viewNarrow() string {
	device := "-"
	deviceStyle := s.theme.DeviceOffline
	if s.DeviceSerial != "" {
		device = util.TruncateRunes(s.DeviceSerial, 14)
		deviceStyle = s.theme.DeviceOnline
	}

	parts := []string{
		"[" + deviceStyle.Render(device) + "]",
		s.theme.IndexState.Render(fmtNumber(s.CatalogCount) + " cmds"),
		s.getStatusStyle().Render(s.Status.Icon()),
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(strings.Join(parts, " "))
}

// viewWide renders the full status bar
// Format: [OK] serial (model) | 2 devices | 1,234 cmds | 5 favs | loaded | Ready   ^F favs ^L log
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	var parts []string

	// Device section
	if s.DeviceSerial != "" {
		device := s.theme.DeviceOnline.Render(styles.StatusIndicators.Active + " " + s.DeviceSerial)
		if s.DeviceModel != "" {
			device += " " + s.theme.IndexState.Render("("+util.TruncateRunes(s.DeviceModel, 16)+")")
		}
		parts = append(parts, device)
	} else {
		parts = append(parts, s.theme.DeviceOffline.Render(styles.StatusIndicators.Error+" no device"))
	}

	if s.DeviceCount > 1 {
		parts = append(parts, s.theme.IndexState.Render(fmtNumber(s.DeviceCount)+" devices"))
	}

	// Catalog section
	parts = append(parts, s.theme.IndexState.Render(fmtNumber(s.CatalogCount)+" cmds"))
	if s.FavCount > 0 {
		parts = append(parts, s.theme.FavouriteMark.Render("*")+
			s.theme.IndexState.Render(" "+fmtNumber(s.FavCount)))
	}
	parts = append(parts, s.theme.IndexState.Render(s.IndexState))

	// Status
	parts = append(parts, s.getStatusStyle().Render(s.Status.String()))

	left := strings.Join(parts, separator)

	// Right section: shortcuts
	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacing := s.Width - leftWidth - rightWidth - 2
	if spacing < 1 {
		spacing = 1
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(left + strings.Repeat(" ", spacing) + right)
}

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	keyStyle := s.theme.ShortcutKey
	descStyle := s.theme.ShortcutDesc

	shortcuts := []string{
		keyStyle.Render("Tab") + descStyle.Render("complete"),
		keyStyle.Render("^F") + descStyle.Render("fav"),
		keyStyle.Render("^R") + descStyle.Render("devices"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}
	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return s.theme.SuccessStyle
	case StatusSending, StatusLoading:
		return s.theme.WarningStyle
	case StatusError:
		return s.theme.ErrorStyle
	default:
		return s.theme.IndexState
	}
}
