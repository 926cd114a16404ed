// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// context.go - Shared setup for CLI command handlers: configuration
// loading with flag overrides and adb client construction.
package cli

import (
	"github.com/jeranaias/uecast/internal/adb"
	"github.com/jeranaias/uecast/internal/config"
)

// LoadConfig loads the configuration and applies global flag overrides.
// Flags beat environment variables which beat the config file.
func LoadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapError(err, "load configuration")
	}
	if args.CatalogPath != "" {
		cfg.Catalog.Path = args.CatalogPath
	}
	if args.ADBPath != "" {
		cfg.ADB.Path = args.ADBPath
	}
	if args.Serial != "" {
		cfg.ADB.Serial = args.Serial
	}
	return cfg, nil
}

// newADBClient builds an adb client from the resolved configuration.
func newADBClient(cfg *config.Config) *adb.Client {
	c := adb.NewClient(cfg.ADB.Path, cfg.ADBTimeout())
	if cfg.ADB.BroadcastAction != "" {
		c.Action = cfg.ADB.BroadcastAction
	}
	if cfg.ADB.ExtraKey != "" {
		c.ExtraKey = cfg.ADB.ExtraKey
	}
	return c
}
