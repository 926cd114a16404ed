// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update.go - Message handling for the uecast TUI.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uecast/internal/history"
	"github.com/jeranaias/uecast/internal/ui/components"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case catalogLoadedMsg:
		if msg.err != nil {
			m.log.AppendNote("catalog: " + msg.err.Error())
			m.status.SetStatus(components.StatusError)
			// Favourites alone still make a usable index
			m.catalogCommands = nil
			m.rebuildIndex()
			return m, nil
		}
		m.catalogCommands = msg.result.Commands
		if msg.result.Skipped > 0 || msg.result.Duplicates > 0 {
			m.log.AppendNote("catalog: " + fmtCounts(msg.result.Skipped, msg.result.Duplicates))
		}
		m.rebuildIndex()
		if !m.sending {
			m.status.SetStatus(components.StatusReady)
		}
		return m, nil

	case favouritesLoadedMsg:
		if msg.err != nil {
			m.log.AppendNote("favourites: " + msg.err.Error())
			return m, nil
		}
		m.favCommands = msg.commands
		m.rebuildIndex()
		return m, nil

	case devicesMsg:
		m.devices = msg.devices
		if msg.err != nil {
			m.log.AppendNote("adb: " + msg.err.Error())
		}
		m.pickTarget()
		return m, nil

	case deviceTickMsg:
		cmds := []tea.Cmd{refreshDevicesCmd(m.client, m.cfg.ADBTimeout())}
		if m.cfg.RefreshInterval() > 0 {
			cmds = append(cmds, deviceTickCmd(m.cfg.RefreshInterval()))
		}
		return m, tea.Batch(cmds...)

	case CatalogChangedMsg:
		// Reload both files; the index swaps atomically when they land.
		return m, tea.Batch(
			loadCatalogCmd(m.cfg.Catalog.Path),
			loadFavouritesCmd(m.favStore),
		)

	case pingMsg:
		if msg.err != nil {
			m.log.AppendNote("adb: " + msg.err.Error())
		} else {
			m.log.AppendNote("adb: " + strconv.Itoa(msg.usable) + " usable device(s)")
		}
		return m, nil

	case historyLoadedMsg:
		m.recall = msg.commands
		m.recallPos = -1
		return m, nil

	case sendResultMsg:
		return m.handleSendResult(msg)
	}

	// Everything else (blink ticks) goes to the input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes key presses.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the help overlay is up, only dismissal and quit work.
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.RecallPrev):
		m.recallPrev()
		return m, nil

	case key.Matches(msg, m.keys.RecallNext):
		m.recallNext()
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if m.completion.HasEntries() {
			m.completion.Next()
		}
		return m, nil

	case key.Matches(msg, m.keys.CompletePrev):
		if m.completion.HasEntries() {
			m.completion.Prev()
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.completion.HasEntries() {
			m.completion.Clear()
			return m, nil
		}
		m.input.SetValue("")
		m.refreshSearch(true)
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.handleEnter()

	case key.Matches(msg, m.keys.Up):
		m.list.Prev()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.list.Next()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.ToggleFav):
		m.toggleFavourite()
		return m, nil

	case key.Matches(msg, m.keys.RefreshDevices):
		return m, refreshDevicesCmd(m.client, m.cfg.ADBTimeout())

	case key.Matches(msg, m.keys.ClearLog):
		m.log.Clear()
		return m, nil

	case key.Matches(msg, m.keys.LogUp):
		m.log.ScrollUp()
		return m, nil

	case key.Matches(msg, m.keys.LogDown):
		m.log.ScrollDown()
		return m, nil
	}

	// Normal typing ends any history recall in progress
	m.recallPos = -1
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshSearch(false)
	return m, cmd
}

// handleEnter accepts the highlighted completion, or sends the input.
func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.completion.HasEntries() {
		if sel := m.completion.SelectedEntry(); sel != nil && sel.Name != m.input.Value() {
			m.input.SetValue(sel.Name)
			m.input.CursorEnd()
			m.refreshSearch(true)
			m.completion.Clear()
			return m, nil
		}
		m.completion.Clear()
	}

	command := strings.TrimSpace(m.input.Value())
	if command == "" {
		// Empty input sends the selected catalog entry
		if sel := m.list.Selected(); sel != nil {
			command = sel.Name
		}
	}
	if command == "" {
		return m, nil
	}
	if m.sending {
		return m, nil
	}
	if !m.hasTarget {
		m.log.AppendNote("no usable device connected")
		m.status.SetStatus(components.StatusError)
		return m, nil
	}

	m.sending = true
	m.status.SetStatus(components.StatusSending)
	return m, sendCmd(m.client, m.target.Serial, command, m.cfg.ADBTimeout())
}

// handleSendResult logs the outcome and records history.
func (m *Model) handleSendResult(msg sendResultMsg) (tea.Model, tea.Cmd) {
	m.sending = false

	if msg.result == nil {
		if msg.err != nil {
			m.log.AppendNote("send: " + msg.err.Error())
		}
		m.status.SetStatus(components.StatusError)
		return m, nil
	}

	r := msg.result
	m.log.Append(components.LogEntry{
		Time:    r.SentAt,
		Command: r.Command,
		Serial:  r.Serial,
		OK:      r.OK,
		Output:  r.Output,
	})

	if m.history != nil {
		_ = m.history.Record(history.Entry{
			ID:      r.ID,
			Command: r.Command,
			Serial:  r.Serial,
			OK:      r.OK,
			Output:  r.Output,
			SentAt:  r.SentAt,
		})
	}

	if r.OK {
		m.rememberSent(r.Command)
		m.input.SetValue("")
		m.refreshSearch(true)
		m.status.SetStatus(components.StatusReady)
	} else {
		m.status.SetStatus(components.StatusError)
	}
	return m, nil
}

// fmtCounts summarizes parse anomalies for the log pane.
func fmtCounts(skipped, duplicates int) string {
	var parts []string
	if skipped > 0 {
		parts = append(parts, "skipped "+strconv.Itoa(skipped)+" malformed")
	}
	if duplicates > 0 {
		parts = append(parts, "ignored "+strconv.Itoa(duplicates)+" duplicates")
	}
	return strings.Join(parts, ", ")
}
