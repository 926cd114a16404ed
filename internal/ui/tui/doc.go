// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tui implements the interactive uecast terminal interface.
//
// The Model is a bubbletea model wiring together the catalog index,
// the favourites store, the adb client and the visual components: a
// command input with completion popup, a scrollable catalog list, a
// send log and a status bar.
//
// Blocking work (catalog parsing, adb calls) runs in tea.Cmd functions
// and reports back through the message types in messages.go, so the
// update loop never blocks. Catalog file changes arrive as
// CatalogChangedMsg, posted by the file watcher started in main.
package tui
