// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - The bubbletea model for the uecast TUI.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/uecast/internal/adb"
	"github.com/jeranaias/uecast/internal/catalog"
	"github.com/jeranaias/uecast/internal/config"
	"github.com/jeranaias/uecast/internal/favourites"
	"github.com/jeranaias/uecast/internal/history"
	"github.com/jeranaias/uecast/internal/index"
	"github.com/jeranaias/uecast/internal/ui/components"
	"github.com/jeranaias/uecast/internal/ui/styles"
)

// completionLimit caps the popup size; the full result set still
// drives the catalog list.
const completionLimit = 8

// Model is the top-level bubbletea model.
type Model struct {
	cfg   *config.Config
	theme *styles.Theme
	keys  keyMap

	input      textinput.Model
	completion *components.CompletionPopup
	list       *components.CommandList
	log        *components.LogPane
	status     *components.StatusBar

	idx      *index.Index
	favStore *favourites.Store
	history  *history.Store // nil when disabled or unavailable
	client   *adb.Client

	catalogCommands []catalog.Command
	favCommands     []string
	devices         []adb.Device
	target          adb.Device
	hasTarget       bool

	// recall holds recent send history, newest first; recallPos is the
	// current position while cycling with ctrl+p/ctrl+n (-1 = not cycling).
	recall    []string
	recallPos int

	sending   bool
	showHelp  bool
	lastQuery string
	width     int
	height    int
	ready     bool
}

// New builds the TUI model from a resolved configuration.
func New(cfg *config.Config) *Model {
	theme := styles.NewThemeWithMode(cfg.UI.Theme)

	input := textinput.New()
	input.Placeholder = "type a console command, Tab to complete"
	input.Prompt = "> "
	input.Focus()

	client := adb.NewClient(cfg.ADB.Path, cfg.ADBTimeout())
	if cfg.ADB.BroadcastAction != "" {
		client.Action = cfg.ADB.BroadcastAction
	}
	if cfg.ADB.ExtraKey != "" {
		client.ExtraKey = cfg.ADB.ExtraKey
	}

	m := &Model{
		cfg:        cfg,
		theme:      theme,
		keys:       defaultKeyMap(),
		input:      input,
		completion: components.NewCompletionPopup(theme),
		list:       components.NewCommandList(theme),
		log:        components.NewLogPane(theme, cfg.UI.LogLines),
		status:     components.NewStatusBar(theme),
		idx: index.New(index.Policy{
			FavouritesFirst: cfg.Search.FavouritesFirst,
			MaxResults:      cfg.Search.MaxResults,
		}),
		favStore:  favourites.NewStore(cfg.Favourites.Path),
		client:    client,
		recallPos: -1,
	}

	if cfg.History.Enabled {
		if store, err := history.Open(cfg.History.Path); err == nil {
			store.SetMaxEntries(cfg.History.MaxEntries)
			m.history = store
		}
	}

	return m
}

// Close releases resources held by the model. Call after the program exits.
func (m *Model) Close() {
	if m.history != nil {
		m.history.Close()
	}
}

// Init starts the initial loads and the device refresh ticker.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		loadCatalogCmd(m.cfg.Catalog.Path),
		loadFavouritesCmd(m.favStore),
		refreshDevicesCmd(m.client, m.cfg.ADBTimeout()),
		pingCmd(m.client, m.cfg.ADBTimeout()),
		loadHistoryCmd(m.history, m.cfg.History.MaxEntries),
	}
	if m.cfg.RefreshInterval() > 0 {
		cmds = append(cmds, deviceTickCmd(m.cfg.RefreshInterval()))
	}
	return tea.Batch(cmds...)
}

// rebuildIndex swaps in a fresh snapshot and refreshes dependent views.
func (m *Model) rebuildIndex() {
	m.idx.Rebuild(m.catalogCommands, m.favCommands)
	m.status.SetCatalog(m.idx.CatalogLen(), m.idx.FavouriteLen())
	m.status.SetIndexState(m.idx.State().String())
	m.refreshSearch(true)
}

// refreshSearch re-runs the current query against the index. force
// refreshes even when the query text has not changed.
func (m *Model) refreshSearch(force bool) {
	query := m.input.Value()
	if !force && query == m.lastQuery {
		return
	}
	m.lastQuery = query

	entries := m.idx.Search(query)
	m.list.SetEntries(entries)

	if strings.TrimSpace(query) == "" {
		m.completion.Clear()
		return
	}
	if len(entries) > completionLimit {
		entries = entries[:completionLimit]
	}
	m.completion.SetEntries(entries)
}

// recallPrev replaces the input with the next-older history command.
func (m *Model) recallPrev() {
	if len(m.recall) == 0 || m.recallPos+1 >= len(m.recall) {
		return
	}
	m.recallPos++
	m.input.SetValue(m.recall[m.recallPos])
	m.input.CursorEnd()
	m.refreshSearch(true)
}

// recallNext moves back toward the newest history command; stepping past
// it clears the input.
func (m *Model) recallNext() {
	if m.recallPos < 0 {
		return
	}
	m.recallPos--
	if m.recallPos < 0 {
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.recall[m.recallPos])
		m.input.CursorEnd()
	}
	m.refreshSearch(true)
}

// rememberSent puts a just-sent command at the front of the recall list.
func (m *Model) rememberSent(command string) {
	recall := make([]string, 0, len(m.recall)+1)
	recall = append(recall, command)
	for _, c := range m.recall {
		if c != command {
			recall = append(recall, c)
		}
	}
	m.recall = recall
	m.recallPos = -1
}

// pickTarget chooses the device to send to: the configured serial when
// it is connected and usable, otherwise the first usable device.
func (m *Model) pickTarget() {
	m.hasTarget = false
	m.target = adb.Device{}

	for _, d := range m.devices {
		if !d.Usable() {
			continue
		}
		if m.cfg.ADB.Serial == "" || d.Serial == m.cfg.ADB.Serial {
			m.target = d
			m.hasTarget = true
			break
		}
	}
	// Configured serial not connected: fall back to any usable device
	if !m.hasTarget && m.cfg.ADB.Serial != "" {
		for _, d := range m.devices {
			if d.Usable() {
				m.target = d
				m.hasTarget = true
				break
			}
		}
	}

	if m.hasTarget {
		m.status.SetDevice(m.target.Serial, m.target.Model)
	} else {
		m.status.SetDevice("", "")
	}

	usable := 0
	for _, d := range m.devices {
		if d.Usable() {
			usable++
		}
	}
	m.status.SetDeviceCount(usable)
}

// toggleFavourite flips favourite status for the best current target:
// the selected list entry, or the first word of the input line.
func (m *Model) toggleFavourite() {
	command := ""
	if sel := m.list.Selected(); sel != nil {
		command = sel.Name
	} else if v := strings.TrimSpace(m.input.Value()); v != "" {
		command = v
	}
	if command == "" {
		return
	}

	var (
		changed bool
		err     error
	)
	if m.favStore.Contains(command) {
		changed, err = m.favStore.Remove(command)
	} else {
		changed, err = m.favStore.Add(command)
	}
	if err != nil {
		m.log.AppendNote("favourites: " + err.Error())
		return
	}
	if !changed {
		return
	}

	m.favCommands = m.favStore.Commands()
	m.rebuildIndex()
}
