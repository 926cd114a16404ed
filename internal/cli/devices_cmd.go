// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// devices_cmd.go - "uecast devices" lists connected Android devices.
package cli

import (
	"context"
	"fmt"
)

// HandleDevices handles the "devices" command.
func HandleDevices(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	client := newADBClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ADBTimeout())
	defer cancel()

	devices, err := client.Devices(ctx)
	if err != nil {
		return WrapError(err, "list devices")
	}

	if len(devices) == 0 {
		if !args.Quiet {
			fmt.Println("No devices connected.")
			fmt.Println(RenderConditional(DimStyle, "Connect a device and check 'adb devices'."))
		}
		return nil
	}

	if !args.Quiet {
		fmt.Println(RenderConditional(TitleStyle, "Connected devices"))
	}
	for _, d := range devices {
		marker := " "
		if cfg.ADB.Serial != "" && d.Serial == cfg.ADB.Serial {
			marker = RenderConditional(HighlightStyle, "*")
		}
		line := fmt.Sprintf("%s %-24s %s", marker, d.Serial, RenderStatus(d.State))
		if d.Model != "" {
			line += "  " + RenderConditional(DimStyle, d.Model)
		}
		fmt.Println(line)
	}
	if !args.Quiet {
		fmt.Printf("\n%s connected\n", pluralize(len(devices), "device"))
	}
	return nil
}
