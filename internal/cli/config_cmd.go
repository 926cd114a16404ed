// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - "uecast config" shows and edits configuration.
package cli

import (
	"fmt"

	"github.com/jeranaias/uecast/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "show", "":
		return configShow(args)

	case "get":
		if args.ConfigKey == "" {
			return ErrMissingArgument("key", "uecast config get adb.serial")
		}
		cfg, err := LoadConfig(args)
		if err != nil {
			return err
		}
		val, err := cfg.Get(args.ConfigKey)
		if err != nil {
			return NewValidationErrorWithExample("key", args.ConfigKey,
				"unknown configuration key", "uecast config show")
		}
		fmt.Println(val)
		return nil

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return ErrMissingArgument("key/value", "uecast config set adb.serial emulator-5554")
		}
		// Set on the file contents, not the flag-overridden view, so a
		// --serial on the same invocation is not accidentally persisted.
		cfg, err := config.Load()
		if err != nil {
			return WrapError(err, "load configuration")
		}
		if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			return NewValidationError("key", args.ConfigKey, err.Error())
		}
		if err := cfg.Validate(); err != nil {
			return WrapError(err, "validate configuration")
		}
		if err := config.Save(cfg); err != nil {
			return WrapError(err, "save configuration")
		}
		if !args.Quiet {
			fmt.Printf("%s %s = %s\n", RenderConditional(SuccessStyle, "[OK]"),
				args.ConfigKey, args.ConfigVal)
		}
		return nil

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return WrapError(err, "resolve config path")
		}
		fmt.Println(path)
		return nil

	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand,
			"unknown config subcommand", "uecast config [show|get|set|path]")
	}
}

func configShow(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Println(RenderConditional(TitleStyle, "Configuration"))
	}
	for _, key := range config.GetAllKeys() {
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s %v\n", RenderLabel(key, 28), val)
	}
	return nil
}
