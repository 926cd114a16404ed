// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/uecast/internal/adb"
	"github.com/jeranaias/uecast/internal/history"
	"github.com/jeranaias/uecast/internal/util"
)

// CurrentVersion is the config schema version written by this build.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTS
// =============================================================================

// Config is the root configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Catalog    CatalogConfig    `toml:"catalog" json:"catalog"`
	Favourites FavouritesConfig `toml:"favourites" json:"favourites"`
	History    HistoryConfig    `toml:"history" json:"history"`
	ADB        ADBConfig        `toml:"adb" json:"adb"`
	Search     SearchConfig     `toml:"search" json:"search"`
	UI         UIConfig         `toml:"ui" json:"ui"`
}

// CatalogConfig locates the engine's ConsoleHelp.html export.
type CatalogConfig struct {
	// Path to ConsoleHelp.html. Empty means no catalog; the app runs on
	// favourites alone.
	Path string `toml:"path" json:"path"`

	// WatchEnabled reloads the catalog (and favourites) when the files
	// change on disk.
	WatchEnabled bool `toml:"watch_enabled" json:"watch_enabled"`

	// WatchDebounceMs is the settle window before a reload fires.
	WatchDebounceMs int `toml:"watch_debounce_ms" json:"watch_debounce_ms"`
}

// FavouritesConfig locates the favourites file.
type FavouritesConfig struct {
	Path string `toml:"path" json:"path"`
}

// HistoryConfig controls the sent-command history.
type HistoryConfig struct {
	Enabled    bool   `toml:"enabled" json:"enabled"`
	Path       string `toml:"path" json:"path"`
	MaxEntries int    `toml:"max_entries" json:"max_entries"`
}

// ADBConfig controls how commands reach the device.
type ADBConfig struct {
	// Path to the adb binary. Defaults to "adb" on PATH.
	Path string `toml:"path" json:"path"`

	// Serial pins a device. Empty auto-selects the first usable device.
	Serial string `toml:"serial" json:"serial"`

	// BroadcastAction and ExtraKey match the engine's intent receiver.
	BroadcastAction string `toml:"broadcast_action" json:"broadcast_action"`
	ExtraKey        string `toml:"extra_key" json:"extra_key"`

	// TimeoutSecs bounds each adb invocation.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// RefreshSecs is the device list auto-refresh period. 0 disables it.
	RefreshSecs int `toml:"refresh_secs" json:"refresh_secs"`
}

// SearchConfig tunes index search behaviour.
type SearchConfig struct {
	// FavouritesFirst sorts favourites ahead of catalog matches.
	FavouritesFirst bool `toml:"favourites_first" json:"favourites_first"`

	// MaxResults caps search output. 0 means unlimited.
	MaxResults int `toml:"max_results" json:"max_results"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme        string `toml:"theme" json:"theme"` // auto / dark / light
	CompactMode  bool   `toml:"compact_mode" json:"compact_mode"`
	ShowHelpText bool   `toml:"show_help_text" json:"show_help_text"`
	LogLines     int    `toml:"log_lines" json:"log_lines"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Catalog: CatalogConfig{
			Path:            "",
			WatchEnabled:    true,
			WatchDebounceMs: 500,
		},
		Favourites: FavouritesConfig{
			Path: defaultDataPath("favourites.txt"),
		},
		History: HistoryConfig{
			Enabled:    true,
			Path:       defaultDataPath("history.db"),
			MaxEntries: history.DefaultMaxEntries,
		},
		ADB: ADBConfig{
			Path:            "adb",
			Serial:          "",
			BroadcastAction: adb.DefaultBroadcastAction,
			ExtraKey:        adb.DefaultExtraKey,
			TimeoutSecs:     10,
			RefreshSecs:     15,
		},
		Search: SearchConfig{
			FavouritesFirst: false,
			MaxResults:      0,
		},
		UI: UIConfig{
			Theme:        "auto",
			CompactMode:  false,
			ShowHelpText: true,
			LogLines:     200,
		},
	}
}

// defaultDataPath resolves a file under the config directory, falling back
// to a relative path if the home directory is unknown.
func defaultDataPath(name string) string {
	dir, err := ConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, name)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the uecast configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".uecast"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Defaults only
	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finishLoad applies env overrides, migration, defaults, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Catalog
	if cfg.Catalog.WatchDebounceMs == 0 {
		cfg.Catalog.WatchDebounceMs = defaults.Catalog.WatchDebounceMs
	}

	// Favourites
	if cfg.Favourites.Path == "" {
		cfg.Favourites.Path = defaults.Favourites.Path
	}

	// History
	if cfg.History.Path == "" {
		cfg.History.Path = defaults.History.Path
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = defaults.History.MaxEntries
	}

	// ADB
	if cfg.ADB.Path == "" {
		cfg.ADB.Path = defaults.ADB.Path
	}
	if cfg.ADB.BroadcastAction == "" {
		cfg.ADB.BroadcastAction = defaults.ADB.BroadcastAction
	}
	if cfg.ADB.ExtraKey == "" {
		cfg.ADB.ExtraKey = defaults.ADB.ExtraKey
	}
	if cfg.ADB.TimeoutSecs == 0 {
		cfg.ADB.TimeoutSecs = defaults.ADB.TimeoutSecs
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.LogLines == 0 {
		cfg.UI.LogLines = defaults.UI.LogLines
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# uecast configuration file\n")
	b.WriteString("# Generated by uecast - edit with care\n")
	b.WriteString("\n")

	encoder := toml.NewEncoder(&b)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors aggregates all validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Catalog.WatchDebounceMs < 0 {
		errs = append(errs, ValidationError{"catalog.watch_debounce_ms", "must not be negative"})
	}

	if c.History.MaxEntries < 1 || c.History.MaxEntries > 1000 {
		errs = append(errs, ValidationError{"history.max_entries", "must be between 1 and 1000"})
	}

	if c.ADB.TimeoutSecs < 1 {
		errs = append(errs, ValidationError{"adb.timeout_secs", "must be at least 1"})
	}
	if c.ADB.RefreshSecs < 0 {
		errs = append(errs, ValidationError{"adb.refresh_secs", "must not be negative"})
	}
	if c.ADB.BroadcastAction == "" {
		errs = append(errs, ValidationError{"adb.broadcast_action", "must not be empty"})
	}
	if c.ADB.ExtraKey == "" {
		errs = append(errs, ValidationError{"adb.extra_key", "must not be empty"})
	}

	if c.Search.MaxResults < 0 {
		errs = append(errs, ValidationError{"search.max_results", "must not be negative"})
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{"ui.theme", "must be one of: auto, dark, light"})
	}
	if c.UI.LogLines < 1 {
		errs = append(errs, ValidationError{"ui.log_lines", "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults normalizes zero values after loading and env overrides.
func (c *Config) SetDefaults() {
	_ = fillDefaults(c)
}

// Migrate upgrades older config versions in place.
func (c *Config) Migrate() error {
	switch c.Version {
	case "", CurrentVersion:
		c.Version = CurrentVersion
		return nil
	default:
		return fmt.Errorf("unknown config version %q", c.Version)
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies UECAST_* environment variables over the loaded
// values. Environment wins over the file, loses to explicit CLI flags.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("UECAST_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("UECAST_FAVOURITES"); v != "" {
		c.Favourites.Path = v
	}
	if v := os.Getenv("UECAST_HISTORY"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("UECAST_ADB_PATH"); v != "" {
		c.ADB.Path = v
	}
	if v := os.Getenv("UECAST_SERIAL"); v != "" {
		c.ADB.Serial = v
	}
	if v := os.Getenv("UECAST_FAVOURITES_FIRST"); v != "" {
		c.Search.FavouritesFirst = isTruthy(v)
	}
	if v := os.Getenv("UECAST_THEME"); v != "" {
		c.UI.Theme = v
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// ADBTimeout returns the per-invocation adb timeout as a Duration.
func (c *Config) ADBTimeout() time.Duration {
	return time.Duration(c.ADB.TimeoutSecs) * time.Second
}

// RefreshInterval returns the device auto-refresh period. Zero disables it.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.ADB.RefreshSecs) * time.Second
}

// WatchDebounce returns the file watch settle window.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Catalog.WatchDebounceMs) * time.Millisecond
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "adb.serial").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, return the value
		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "adb.serial").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	// Handle string input with type conversion
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(isTruthy(strVal))
			return nil
		}
	}

	// Direct assignment for matching types
	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	// Type conversion for compatible types
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"catalog.path",
		"catalog.watch_enabled",
		"catalog.watch_debounce_ms",
		"favourites.path",
		"history.enabled",
		"history.path",
		"history.max_entries",
		"adb.path",
		"adb.serial",
		"adb.broadcast_action",
		"adb.extra_key",
		"adb.timeout_secs",
		"adb.refresh_secs",
		"search.favourites_first",
		"search.max_results",
		"ui.theme",
		"ui.compact_mode",
		"ui.show_help_text",
		"ui.log_lines",
	}
}

// =============================================================================
// COPY / DISPLAY
// =============================================================================

// Clone returns an independent copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String renders the config as TOML for `uecast config show`.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return b.String()
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalMu   sync.RWMutex
	globalCfg  *Config
	globalOnce sync.Once
)

// Global returns the process-wide config, loading it on first access.
// Load failures fall back to defaults; the UI surfaces the warning.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil || cfg == nil {
			cfg = Default()
		}
		globalMu.Lock()
		globalCfg = cfg
		globalMu.Unlock()
	})

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalCfg
}

// ReloadGlobal reloads the global config from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalMu.Lock()
	globalCfg = cfg
	globalMu.Unlock()
	return nil
}

// SetGlobal replaces the global config.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})
	globalMu.Lock()
	globalCfg = cfg
	globalMu.Unlock()
}

// ResetGlobalForTesting resets the global config state. Tests only.
func ResetGlobalForTesting() {
	globalMu.Lock()
	globalCfg = nil
	globalMu.Unlock()
	globalOnce = sync.Once{}
}
