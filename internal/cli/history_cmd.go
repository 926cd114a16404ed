// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - "uecast history" inspects the sent-command history.
package cli

import (
	"fmt"

	"github.com/jeranaias/uecast/internal/history"
)

// HandleHistory handles the "history" command.
func HandleHistory(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	if !cfg.History.Enabled {
		if !args.Quiet {
			fmt.Println("History is disabled.")
			fmt.Println(RenderConditional(DimStyle, "Enable it with: uecast config set history.enabled true"))
		}
		return nil
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return WrapError(err, "open history")
	}
	defer store.Close()
	store.SetMaxEntries(cfg.History.MaxEntries)

	switch args.Subcommand {
	case "list", "":
		entries, err := store.Recent(optionInt(args, "limit", 0))
		if err != nil {
			return WrapError(err, "read history")
		}
		if len(entries) == 0 {
			if !args.Quiet {
				fmt.Println("No commands sent yet.")
			}
			return nil
		}
		if !args.Quiet {
			fmt.Println(RenderConditional(TitleStyle, "Recent commands"))
		}
		for _, e := range entries {
			status := "ok"
			if !e.OK {
				status = "error"
			}
			line := fmt.Sprintf("%s %-40s %s", RenderStatus(status), e.Command,
				RenderConditional(DimStyle, formatAgo(e.SentAt)))
			if args.Verbose && e.Serial != "" {
				line += "  " + RenderConditional(DimStyle, e.Serial)
			}
			fmt.Println(line)
		}
		return nil

	case "clear":
		if args.Options["confirm"] != "true" &&
			!ConfirmAction("Clear the entire command history?") {
			fmt.Println("Aborted.")
			return nil
		}
		if err := store.Clear(); err != nil {
			return NewCommandError("history", "clear", "could not clear", err)
		}
		if !args.Quiet {
			fmt.Printf("%s history cleared\n", RenderConditional(SuccessStyle, "[OK]"))
		}
		return nil

	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"unknown history subcommand", "uecast history [list|clear]")
	}
}
