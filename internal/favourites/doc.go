// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package favourites persists the user's favourite console commands.
//
// The store is a flat UTF-8 text file, one command per line. Blank lines and
// lines starting with '#' are ignored on load, so the file stays hand-editable.
// Saves rewrite the whole file atomically; a crash leaves either the old or
// the new file, never a torn one. List order is meaningful and preserved.
package favourites
