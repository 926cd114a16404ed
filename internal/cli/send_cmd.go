// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// send_cmd.go - "uecast send" delivers a console command to a device.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/uecast/internal/history"
)

// HandleSend handles the "send" command.
func HandleSend(args Args) error {
	command := strings.TrimSpace(args.Query)
	if command == "" {
		return ErrMissingArgument("command", `uecast send "stat fps"`)
	}

	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	client := newADBClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ADBTimeout())
	defer cancel()

	serial := cfg.ADB.Serial
	if serial == "" {
		device, err := client.DefaultDevice(ctx)
		if err != nil {
			return WrapError(err, "resolve target device")
		}
		serial = device.Serial
	}

	result, sendErr := client.Send(ctx, serial, command)

	// The attempt is recorded even when delivery failed, so the TUI
	// history pane shows what was tried.
	if result != nil && cfg.History.Enabled {
		if store, err := history.Open(cfg.History.Path); err == nil {
			store.SetMaxEntries(cfg.History.MaxEntries)
			_ = store.Record(history.Entry{
				ID:      result.ID,
				Command: result.Command,
				Serial:  result.Serial,
				OK:      result.OK,
				Output:  result.Output,
				SentAt:  result.SentAt,
			})
			store.Close()
		}
	}

	if sendErr != nil {
		return WrapError(sendErr, fmt.Sprintf("send %q to %s", command, serial))
	}

	if !args.Quiet {
		fmt.Printf("%s sent %q to %s (%s)\n",
			RenderConditional(SuccessStyle, "[OK]"),
			command, serial, formatDurationShort(result.Duration))
	}
	if args.Verbose && result.Output != "" {
		fmt.Println(RenderConditional(DimStyle, strings.TrimSpace(result.Output)))
	}
	return nil
}
