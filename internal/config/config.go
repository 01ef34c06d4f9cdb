// Package config loads git-workty settings from TOML files.
//
// Settings are layered: defaults, then the user file
// (~/.config/workty/config.toml), then the repository file
// (<common-dir>/workty.toml), then environment overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultWorktreeFormat places new worktrees next to the main checkout.
const DefaultWorktreeFormat = "../{repo}-{branch}"

// EnvBase overrides the base branch.
const EnvBase = "WORKTY_BASE"

// LogConfig configures the rotated debug log file.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ASCII bool   `toml:"ascii"` // plain ASCII icons instead of unicode
	Color string `toml:"color"` // "auto", "always" or "never"
}

// PreserveConfig selects git-ignored files copied into new worktrees.
type PreserveConfig struct {
	// Patterns are matched against file basenames, e.g. ".env" or ".env.*".
	Patterns []string `toml:"patterns"`
	// Exclude skips files with any path segment in this list, e.g. "node_modules".
	Exclude []string `toml:"exclude"`
}

// Hook is a shell command run after a worktree is created or removed.
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"`      // "new", "rm", "clean" or "all"
	Enabled     *bool    `toml:"enabled"` // false in a repo file disables a user hook
}

// IsEnabled reports whether the hook is enabled (default true).
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// Config holds the git-workty configuration
type Config struct {
	// Base is the integration branch. Empty means detect main/master.
	Base           string          `toml:"base"`
	WorktreeFormat string          `toml:"worktree_format"`
	OpenCmd        string          `toml:"open_cmd"` // run with the new worktree path by `new --open`
	Log            LogConfig       `toml:"log"`
	UI             UIConfig        `toml:"ui"`
	Preserve       PreserveConfig  `toml:"preserve"`
	Hooks          map[string]Hook `toml:"hooks"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		WorktreeFormat: DefaultWorktreeFormat,
		UI:             UIConfig{Color: "auto"},
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// UserConfigPath returns the path of the per-user config file.
func UserConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "workty", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "workty", "config.toml"), nil
}

// Load reads the user config file.
// Returns Default() if the file doesn't exist (no error).
// On a parse or validation error Default() is returned along with the error,
// so callers can warn and continue.
func Load() (Config, error) {
	path, err := UserConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. See Load.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.WorktreeFormat == "" {
		cfg.WorktreeFormat = DefaultWorktreeFormat
	}
	if cfg.UI.Color == "" {
		cfg.UI.Color = "auto"
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Log.File != "" {
		expanded, err := expandPath(cfg.Log.File)
		if err != nil {
			return Default(), fmt.Errorf("expand log.file: %w", err)
		}
		cfg.Log.File = expanded
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides to cfg.
func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBase); v != "" {
		cfg.Base = v
	}
}

// BaseOr returns the configured base branch, or fallback when unset.
func (c *Config) BaseOr(fallback string) string {
	if c.Base != "" {
		return c.Base
	}
	return fallback
}

type ctxKey struct{}

// WithConfig attaches cfg to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config attached to ctx, or defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	d := Default()
	return &d
}
