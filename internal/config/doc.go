// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for uecast.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - CatalogConfig: Location and watching of the ConsoleHelp.html export
//   - ADBConfig: Device targeting and broadcast delivery settings
//   - SearchConfig: Index ranking policy
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (UECAST_*)
//   - ~/.uecast/config.toml
//   - ~/.uecast/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	serial := cfg.ADB.Serial
//	timeout := cfg.ADBTimeout()
package config
