// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// keys.go - Key bindings for the uecast TUI.
package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all key bindings for the interface.
type keyMap struct {
	Quit           key.Binding
	Send           key.Binding
	Complete       key.Binding
	CompletePrev   key.Binding
	Cancel         key.Binding
	Up             key.Binding
	Down           key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	ToggleFav      key.Binding
	RefreshDevices key.Binding
	ClearLog       key.Binding
	LogUp          key.Binding
	LogDown        key.Binding
	RecallPrev     key.Binding
	RecallNext     key.Binding
	Help           key.Binding
}

// defaultKeyMap returns the standard bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete"),
		),
		CompletePrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous match"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous command"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next command"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		ToggleFav: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "toggle favourite"),
		),
		RefreshDevices: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh devices"),
		),
		ClearLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear log"),
		),
		LogUp: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+up", "scroll log up"),
		),
		LogDown: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+down", "scroll log down"),
		),
		RecallPrev: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "recall older command"),
		),
		RecallNext: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "recall newer command"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "ctrl+g"),
			key.WithHelp("f1", "toggle help"),
		),
	}
}
