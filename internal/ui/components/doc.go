// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the uecast TUI.
//
// Components are plain structs with a View() string method; the
// bubbletea model owns them and forwards size and state updates. None
// of them talk to adb or the filesystem directly.
package components
