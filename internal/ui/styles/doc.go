// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the uecast TUI.
//
// The palette lives in colors.go as lipgloss.AdaptiveColor values so
// every style works on both light and dark terminals. Theme bundles the
// configured lipgloss styles for each part of the interface: header,
// command list, completion popup, log pane and status bar.
//
// Status indicators are ASCII shapes ([OK], [X], [!]) alongside high
// contrast colors so state is readable without color vision.
package styles
