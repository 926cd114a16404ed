// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index provides the in-memory search index over the command catalog
// and the favourites list.
//
// The index is a snapshot: Rebuild constructs a complete new entry set and
// swaps it in under a write lock, so readers never observe a half-built
// index. There is no error state; a failed reload keeps the previous
// snapshot and the index reports StateEmpty only before the first Rebuild.
//
// Search ranks matches by quality (exact name, name prefix, name substring,
// help substring) with ties broken by catalog order. The empty query returns
// the full entry set in original order.
package index
