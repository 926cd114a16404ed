// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the uecast command-line interface.
//
// Parsing follows a simple verb model: the first non-flag argument
// selects the command, global flags may appear anywhere, and each verb
// has a small hand-rolled parser for its own options.
//
// # Commands
//
//   - send: deliver a console command to an Android device over adb
//   - devices: list connected devices
//   - commands: search the console command catalog
//   - favourites: manage the favourites file
//   - history: inspect and clear the sent-command history
//   - config: show and edit configuration
//
// Handlers return errors rather than exiting; main maps them onto exit
// codes with GetExitCode.
package cli
