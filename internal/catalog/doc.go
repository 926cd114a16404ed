// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog loads the Unreal Engine console command catalog from the
// engine's generated ConsoleHelp.html export.
//
// The engine's `Help` console command writes an HTML page whose payload is a
// JavaScript array literal:
//
//	var cvars = [
//	  {name: "r.ScreenPercentage", help: "...", type: "Var"},
//	  ...
//	];
//
// This package locates that array, decodes each entry, and produces an
// ordered, deduplicated list of commands. A missing or unparsable document
// yields ErrUnavailable and an empty catalog; the application keeps running
// on favourites alone. Individual malformed entries inside the array are
// skipped and counted, never fatal.
package catalog
