// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for uecast.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdSend
	CmdDevices
	CmdCommands
	CmdFavourites
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet       bool
	Verbose     bool
	Serial      string // --serial: target device, overrides config
	CatalogPath string // --catalog: ConsoleHelp.html export, overrides config
	ADBPath     string // --adb: adb binary, overrides config

	// Command-specific
	Query      string // send: command text; commands: search query
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --limit)
	Options map[string]string
}

const usageText = `uecast - Unreal Engine console command caster for Android

Uecast browses the console command catalog exported by Unreal Engine
(ConsoleHelp.html) and sends commands to a connected Android device
over adb.

Usage:
  uecast                        Start TUI (default)
  uecast send "command"         Send a console command to the device
  uecast devices                List connected Android devices
  uecast commands [query]       Search the command catalog
  uecast favourites [subcommand] Favourite command management
  uecast history [subcommand]   Sent-command history
  uecast config [show|set|get]  Configuration
  uecast version                Show version information
  uecast help                   Show this help

Send:
  uecast send "stat fps"            Send to the default device
  uecast send "r.ScreenPercentage 50" --serial emulator-5554

Commands:
  uecast commands                   List the full catalog
  uecast commands r.Shadow          Search (exact > prefix > name > help text)
    --limit N                       Cap the number of results
    --favourites                    Rank favourites first

Favourites:
  uecast favourites                 List favourites (alias: list)
  uecast favourites add "stat gpu"  Add a favourite
  uecast favourites remove "stat gpu"
                                    Remove a favourite
  uecast favourites move 3 1        Reorder (1-based list positions)

History:
  uecast history                    Show recently sent commands (alias: list)
    --limit N                       Cap the number of entries
  uecast history clear              Clear the history
    --confirm                       Skip the confirmation prompt

Config:
  uecast config show                Show the active configuration
  uecast config get <key>           Read one value (e.g. adb.serial)
  uecast config set <key> <value>   Write one value and save
  uecast config path                Show the config file location

Global flags:
  --catalog PATH                    ConsoleHelp.html location
  --adb PATH                        adb binary location
  --serial SERIAL                   Target device serial
  -q, --quiet                       Suppress non-essential output
  -v, --verbose                     Verbose output

Environment:
  UECAST_CATALOG, UECAST_ADB_PATH, UECAST_SERIAL override the config
  file. NO_COLOR disables coloured output.

Files:
  ~/.uecast/config.toml             Configuration
  ~/.uecast/favourites.txt          Favourites (one command per line)
  ~/.uecast/history.db              Sent-command history
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("uecast %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := remaining[0]
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "send", "cast":
		parseSendArgs(&parsedArgs, remaining)
		return CmdSend, parsedArgs

	case "devices", "device", "d":
		return CmdDevices, parsedArgs

	case "commands", "cmds", "search":
		parseCommandsArgs(&parsedArgs, remaining)
		return CmdCommands, parsedArgs

	case "favourites", "favorites", "fav":
		parseFavouritesArgs(&parsedArgs, remaining)
		return CmdFavourites, parsedArgs

	case "history", "hist":
		parseHistoryArgs(&parsedArgs, remaining)
		return CmdHistory, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-V", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown word - treat it as a command to send, so
		// "uecast stat fps" works without the verb.
		parseSendArgs(&parsedArgs, append([]string{cmd}, remaining...))
		return CmdSend, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--serial", "-s":
			if i+1 < len(args) {
				i++
				parsedArgs.Serial = args[i]
			}
		case "--catalog":
			if i+1 < len(args) {
				i++
				parsedArgs.CatalogPath = args[i]
			}
		case "--adb":
			if i+1 < len(args) {
				i++
				parsedArgs.ADBPath = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--serial="):
				parsedArgs.Serial = strings.TrimPrefix(arg, "--serial=")
			case strings.HasPrefix(arg, "--catalog="):
				parsedArgs.CatalogPath = strings.TrimPrefix(arg, "--catalog=")
			case strings.HasPrefix(arg, "--adb="):
				parsedArgs.ADBPath = strings.TrimPrefix(arg, "--adb=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseSendArgs joins the positional args into the command to send.
func parseSendArgs(args *Args, remaining []string) {
	var words []string
	for _, arg := range remaining {
		if !strings.HasPrefix(arg, "-") {
			words = append(words, arg)
		}
	}
	args.Query = strings.Join(words, " ")
}

// parseCommandsArgs parses commands command specific arguments.
func parseCommandsArgs(args *Args, remaining []string) {
	var words []string
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--limit" && i+1 < len(remaining):
			args.Options["limit"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--limit="):
			args.Options["limit"] = strings.TrimPrefix(arg, "--limit=")
		case arg == "--favourites" || arg == "--favorites":
			args.Options["favourites"] = "true"
		case !strings.HasPrefix(arg, "-"):
			words = append(words, arg)
		}
	}
	args.Query = strings.Join(words, " ")
}

// parseFavouritesArgs parses favourites command specific arguments.
func parseFavouritesArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "list"
		return
	}
	args.Subcommand = remaining[0]
	if len(remaining) > 1 {
		args.Query = strings.Join(remaining[1:], " ")
	}
}

// parseHistoryArgs parses history command specific arguments.
func parseHistoryArgs(args *Args, remaining []string) {
	args.Subcommand = "list"
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--limit" && i+1 < len(remaining):
			args.Options["limit"] = remaining[i+1]
			i++
		case strings.HasPrefix(arg, "--limit="):
			args.Options["limit"] = strings.TrimPrefix(arg, "--limit=")
		case arg == "--confirm":
			args.Options["confirm"] = "true"
		case !strings.HasPrefix(arg, "-"):
			args.Subcommand = arg
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = strings.Join(remaining[2:], " ")
		}
	}
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
