// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package adb drives the Android Debug Bridge binary to list devices and to
// deliver Unreal console commands to a running game.
//
// Delivery uses the engine's broadcast intent receiver:
//
//	adb -s SERIAL shell am broadcast -a android.intent.action.RUN -e cmd 'stat fps'
//
// The extra value is shell-quoted for the device-side sh, so commands with
// spaces and quotes survive the trip. Every invocation runs under a timeout;
// a missing adb binary yields ErrADBNotFound and the UI degrades to
// browse-only mode.
package adb
