// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the uecast TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// PANE STYLES
	// ==========================================================================

	PaneActive   lipgloss.Style
	PaneInactive lipgloss.Style
	PaneTitle    lipgloss.Style

	// ==========================================================================
	// COMMAND LIST STYLES
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	CommandName      lipgloss.Style
	CommandType      lipgloss.Style
	CommandHelp      lipgloss.Style
	FavouriteMark    lipgloss.Style

	// ==========================================================================
	// COMPLETION POPUP STYLES
	// ==========================================================================

	CompletionPopup    lipgloss.Style
	CompletionItem     lipgloss.Style
	CompletionSelected lipgloss.Style
	CompletionMatch    lipgloss.Style

	// ==========================================================================
	// LOG PANE STYLES
	// ==========================================================================

	LogTimestamp lipgloss.Style
	LogCommand   lipgloss.Style
	LogOutput    lipgloss.Style
	LogOK        lipgloss.Style
	LogError     lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	DeviceOnline  lipgloss.Style
	DeviceOffline lipgloss.Style
	IndexState    lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// SPINNER AND STATUS STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	return newTheme(colorProfile, termenv.HasDarkBackground())
}

// NewThemeWithMode creates a theme with a forced background mode.
// mode is "dark", "light", or anything else for auto detection.
func NewThemeWithMode(mode string) *Theme {
	switch mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return newTheme(termenv.ColorProfile(), true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return newTheme(termenv.ColorProfile(), false)
	default:
		return NewTheme()
	}
}

func newTheme(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Panes
	t.PaneActive = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(FocusRing).
		Padding(0, 1)

	t.PaneInactive = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PaneTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	// Command list
	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.CommandName = lipgloss.NewStyle().
		Foreground(Cyan)

	t.CommandType = lipgloss.NewStyle().
		Foreground(TextMuted).
		Width(8)

	t.CommandHelp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FavouriteMark = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	// Completion popup
	t.CompletionPopup = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CompletionItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.CompletionSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true)

	t.CompletionMatch = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Log pane
	t.LogTimestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.LogCommand = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.LogOutput = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.LogOK = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.LogError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.DeviceOnline = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.DeviceOffline = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.IndexState = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and status
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
