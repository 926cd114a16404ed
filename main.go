// uecast - browse, favourite, and send Unreal Engine console commands
// to an Android device over adb.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uecast/internal/cli"
	"github.com/jeranaias/uecast/internal/config"
	"github.com/jeranaias/uecast/internal/index"
	"github.com/jeranaias/uecast/internal/ui/tui"
)

func main() {
	command, args := cli.Parse(os.Args[1:])

	switch command {
	case cli.CmdVersion:
		cli.HandleVersion()

	case cli.CmdHelp:
		cli.HandleHelp()

	case cli.CmdSend:
		exitOnError(cli.HandleSend(args))

	case cli.CmdDevices:
		exitOnError(cli.HandleDevices(args))

	case cli.CmdCommands:
		exitOnError(cli.HandleCommands(args))

	case cli.CmdFavourites:
		exitOnError(cli.HandleFavourites(args))

	case cli.CmdHistory:
		exitOnError(cli.HandleHistory(args))

	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))

	case cli.CmdTUI:
		exitOnError(runTUI(args))

	default:
		cli.PrintUsage()
		os.Exit(cli.ExitUsageError)
	}
}

func exitOnError(err error) {
	if err != nil {
		cli.HandleErrorAndExit(err)
	}
}

// runTUI starts the interactive interface. File watching runs outside the
// bubbletea program and feeds changes in through p.Send, so the update loop
// never blocks on the filesystem.
func runTUI(args cli.Args) error {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)

	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("prepare config directory: %w", err)
	}

	m := tui.New(cfg)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())

	if cfg.Catalog.WatchEnabled {
		watched := []string{cfg.Catalog.Path, cfg.Favourites.Path}
		w, err := index.StartWatcher(watched, cfg.WatchDebounce(), func() {
			p.Send(tui.CatalogChangedMsg{})
		})
		if err != nil {
			// A dead watcher is not fatal: the TUI still works, it just
			// won't pick up external edits until restart.
			fmt.Fprintf(os.Stderr, "file watching disabled: %v\n", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
