// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records sent console commands in a local SQLite database.
//
// The list is most-recent-first and deduplicated by command string: resending
// a command moves it to the top rather than creating a second row. The store
// prunes itself to a configurable maximum (default 50). History is a
// convenience, not user data; callers treat failures as non-fatal.
package history
