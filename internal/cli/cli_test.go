// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/jeranaias/uecast/internal/adb"
	"github.com/jeranaias/uecast/internal/catalog"
)

// TestParse_Commands tests command word recognition.
func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Command
	}{
		{"no args defaults to TUI", []string{}, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"send", []string{"send", "stat fps"}, CmdSend},
		{"cast alias", []string{"cast", "stat fps"}, CmdSend},
		{"devices", []string{"devices"}, CmdDevices},
		{"device alias", []string{"device"}, CmdDevices},
		{"commands", []string{"commands"}, CmdCommands},
		{"search alias", []string{"search", "r.Shadow"}, CmdCommands},
		{"favourites", []string{"favourites"}, CmdFavourites},
		{"favorites alias", []string{"favorites", "list"}, CmdFavourites},
		{"history", []string{"history"}, CmdHistory},
		{"config", []string{"config", "show"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"-h"}, CmdHelp},
		{"bare words become send", []string{"stat", "fps"}, CmdSend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := Parse(tt.args)
			if cmd != tt.want {
				t.Errorf("Parse(%v) = %v, want %v", tt.args, cmd, tt.want)
			}
		})
	}
}

// TestParse_GlobalFlags tests that global flags are extracted anywhere
// in the argument list.
func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"--serial", "emulator-5554", "send", "stat fps", "-v"})
	if cmd != CmdSend {
		t.Fatalf("cmd = %v, want CmdSend", cmd)
	}
	if args.Serial != "emulator-5554" {
		t.Errorf("Serial = %q", args.Serial)
	}
	if !args.Verbose {
		t.Error("Verbose not set")
	}
	if args.Query != "stat fps" {
		t.Errorf("Query = %q, want 'stat fps'", args.Query)
	}
}

// TestParse_GlobalFlagsEqualsForm tests --flag=value syntax.
func TestParse_GlobalFlagsEqualsForm(t *testing.T) {
	_, args := Parse([]string{
		"--serial=abc123",
		"--catalog=/tmp/ConsoleHelp.html",
		"--adb=/usr/local/bin/adb",
		"devices",
	})
	if args.Serial != "abc123" {
		t.Errorf("Serial = %q", args.Serial)
	}
	if args.CatalogPath != "/tmp/ConsoleHelp.html" {
		t.Errorf("CatalogPath = %q", args.CatalogPath)
	}
	if args.ADBPath != "/usr/local/bin/adb" {
		t.Errorf("ADBPath = %q", args.ADBPath)
	}
}

// TestParse_SendJoinsWords tests that unquoted command words are joined.
func TestParse_SendJoinsWords(t *testing.T) {
	_, args := Parse([]string{"send", "r.ScreenPercentage", "50"})
	if args.Query != "r.ScreenPercentage 50" {
		t.Errorf("Query = %q", args.Query)
	}

	// Bare words without the verb behave the same
	_, args = Parse([]string{"r.ScreenPercentage", "50"})
	if args.Query != "r.ScreenPercentage 50" {
		t.Errorf("bare Query = %q", args.Query)
	}
}

// TestParse_CommandsOptions tests commands-specific options.
func TestParse_CommandsOptions(t *testing.T) {
	_, args := Parse([]string{"commands", "r.Shadow", "--limit", "10", "--favourites"})
	if args.Query != "r.Shadow" {
		t.Errorf("Query = %q", args.Query)
	}
	if args.Options["limit"] != "10" {
		t.Errorf("limit = %q", args.Options["limit"])
	}
	if args.Options["favourites"] != "true" {
		t.Error("favourites option not set")
	}

	_, args = Parse([]string{"commands", "--limit=5"})
	if args.Options["limit"] != "5" {
		t.Errorf("limit = %q", args.Options["limit"])
	}
	if args.Query != "" {
		t.Errorf("Query = %q, want empty", args.Query)
	}
}

// TestParse_FavouritesSubcommands tests favourites parsing.
func TestParse_FavouritesSubcommands(t *testing.T) {
	_, args := Parse([]string{"favourites"})
	if args.Subcommand != "list" {
		t.Errorf("default Subcommand = %q, want 'list'", args.Subcommand)
	}

	_, args = Parse([]string{"favourites", "add", "stat", "gpu"})
	if args.Subcommand != "add" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if args.Query != "stat gpu" {
		t.Errorf("Query = %q, want 'stat gpu'", args.Query)
	}

	_, args = Parse([]string{"favourites", "move", "3", "1"})
	if args.Subcommand != "move" {
		t.Errorf("Subcommand = %q, want 'move'", args.Subcommand)
	}
	if args.Query != "3 1" {
		t.Errorf("Query = %q, want '3 1'", args.Query)
	}
}

// TestParseMovePositions tests the "favourites move" position pair parser.
func TestParseMovePositions(t *testing.T) {
	from, to, err := parseMovePositions("3 1")
	if err != nil {
		t.Fatalf("parseMovePositions: %v", err)
	}
	if from != 3 || to != 1 {
		t.Errorf("positions = %d, %d, want 3, 1", from, to)
	}

	for _, bad := range []string{"", "3", "3 1 2", "a b", "3 x"} {
		if _, _, err := parseMovePositions(bad); err == nil {
			t.Errorf("parseMovePositions(%q) should fail", bad)
		}
	}
}

// TestParse_HistoryArgs tests history parsing.
func TestParse_HistoryArgs(t *testing.T) {
	_, args := Parse([]string{"history"})
	if args.Subcommand != "list" {
		t.Errorf("default Subcommand = %q", args.Subcommand)
	}

	_, args = Parse([]string{"history", "clear", "--confirm"})
	if args.Subcommand != "clear" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if args.Options["confirm"] != "true" {
		t.Error("confirm option not set")
	}

	_, args = Parse([]string{"history", "--limit", "5"})
	if args.Options["limit"] != "5" {
		t.Errorf("limit = %q", args.Options["limit"])
	}
}

// TestParse_ConfigArgs tests config parsing including multi-word values.
func TestParse_ConfigArgs(t *testing.T) {
	_, args := Parse([]string{"config", "set", "adb.serial", "emulator-5554"})
	if args.Subcommand != "set" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if args.ConfigKey != "adb.serial" {
		t.Errorf("ConfigKey = %q", args.ConfigKey)
	}
	if args.ConfigVal != "emulator-5554" {
		t.Errorf("ConfigVal = %q", args.ConfigVal)
	}

	_, args = Parse([]string{"config", "get", "ui.theme"})
	if args.Subcommand != "get" || args.ConfigKey != "ui.theme" {
		t.Errorf("get parse: %q %q", args.Subcommand, args.ConfigKey)
	}
}

// TestGetExitCode tests the error-to-exit-code mapping.
func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"validation", NewValidationError("command", "", "required"), ExitUsageError},
		{"not found", NewNotFoundError("favourite", "stat gpu"), ExitNotFoundError},
		{"adb missing", WrapError(adb.ErrADBNotFound, "list devices"), ExitADBError},
		{"no devices", WrapError(adb.ErrNoDevices, "resolve target device"), ExitADBError},
		{"catalog unavailable", WrapError(catalog.ErrUnavailable, "search"), ExitCatalogError},
		{"config", errors.New("load configuration: bad toml"), ExitConfigError},
		{"timeout", errors.New("adb timed out after 10s"), ExitTimeoutError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// TestCommandError_Unwrap tests the wrapped error chain.
func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewCommandError("favourites", "add", "could not save", inner)
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatal("errors.As failed")
	}
	if cmdErr.Command != "favourites" || cmdErr.Action != "add" {
		t.Errorf("fields = %q %q", cmdErr.Command, cmdErr.Action)
	}
}

// TestFormatDuration tests duration formatting helpers.
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{48 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}

	if got := formatDurationShort(250 * time.Millisecond); got != "250ms" {
		t.Errorf("formatDurationShort = %q", got)
	}
	if got := formatDurationShort(90 * time.Second); got != "1m30s" {
		t.Errorf("formatDurationShort = %q", got)
	}
}

// TestOptionInt tests option parsing with fallback.
func TestOptionInt(t *testing.T) {
	args := Args{Options: map[string]string{"limit": "10", "bad": "x"}}
	if got := optionInt(args, "limit", 3); got != 10 {
		t.Errorf("optionInt limit = %d", got)
	}
	if got := optionInt(args, "bad", 3); got != 3 {
		t.Errorf("optionInt bad = %d", got)
	}
	if got := optionInt(args, "missing", 7); got != 7 {
		t.Errorf("optionInt missing = %d", got)
	}
}

// TestPluralize tests the count formatter.
func TestPluralize(t *testing.T) {
	if got := pluralize(1, "device"); got != "1 device" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(3, "device"); got != "3 devices" {
		t.Errorf("pluralize(3) = %q", got)
	}
}
