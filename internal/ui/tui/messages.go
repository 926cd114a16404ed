// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// messages.go - bubbletea messages and the commands that produce them.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uecast/internal/adb"
	"github.com/jeranaias/uecast/internal/catalog"
	"github.com/jeranaias/uecast/internal/favourites"
	"github.com/jeranaias/uecast/internal/history"
)

// catalogLoadedMsg carries a parsed catalog, or the load error.
type catalogLoadedMsg struct {
	result *catalog.LoadResult
	err    error
}

// favouritesLoadedMsg carries the favourites list, or the load error.
type favouritesLoadedMsg struct {
	commands []string
	err      error
}

// devicesMsg carries the connected device list.
type devicesMsg struct {
	devices []adb.Device
	err     error
}

// sendResultMsg carries the outcome of one send attempt.
type sendResultMsg struct {
	result *adb.SendResult
	err    error
}

// CatalogChangedMsg signals that a watched file changed on disk and
// the catalog and favourites should be reloaded. Posted from outside
// the program by the file watcher.
type CatalogChangedMsg struct{}

// deviceTickMsg drives the periodic device refresh.
type deviceTickMsg time.Time

// pingMsg carries the startup adb availability probe result.
type pingMsg struct {
	usable int
	err    error
}

// historyLoadedMsg carries recent send history for input recall.
type historyLoadedMsg struct {
	commands []string
}

// loadCatalogCmd parses the catalog file off the update loop.
func loadCatalogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := catalog.LoadFile(path)
		return catalogLoadedMsg{result: result, err: err}
	}
}

// loadFavouritesCmd loads the favourites file off the update loop.
func loadFavouritesCmd(store *favourites.Store) tea.Cmd {
	return func() tea.Msg {
		if err := store.Load(); err != nil {
			return favouritesLoadedMsg{err: err}
		}
		return favouritesLoadedMsg{commands: store.Commands()}
	}
}

// refreshDevicesCmd lists connected devices off the update loop.
func refreshDevicesCmd(client *adb.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		devices, err := client.Devices(ctx)
		return devicesMsg{devices: devices, err: err}
	}
}

// sendCmd delivers one console command off the update loop.
func sendCmd(sender adb.Sender, serial, command string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := sender.Send(ctx, serial, command)
		return sendResultMsg{result: result, err: err}
	}
}

// pingCmd probes adb once at startup for the log banner.
func pingCmd(client *adb.Client, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		n, err := client.Ping(ctx)
		return pingMsg{usable: n, err: err}
	}
}

// loadHistoryCmd loads recent send history for ctrl+p/ctrl+n recall.
// A nil store (history disabled) produces an empty recall list.
func loadHistoryCmd(store *history.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return historyLoadedMsg{}
		}
		entries, err := store.Recent(limit)
		if err != nil {
			return historyLoadedMsg{}
		}
		commands := make([]string, 0, len(entries))
		for _, e := range entries {
			commands = append(commands, e.Command)
		}
		return historyLoadedMsg{commands: commands}
	}
}

// deviceTickCmd schedules the next periodic device refresh.
func deviceTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return deviceTickMsg(t)
	})
}
