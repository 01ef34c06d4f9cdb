package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repository config file, stored in the
// repository's common git directory so it is shared by every worktree.
const LocalConfigFileName = "workty.toml"

// LocalConfig holds per-repo overrides. Zero values and nil pointers
// mean "not set" (inherit from the user config).
type LocalConfig struct {
	Base           string `toml:"base"`
	WorktreeFormat string `toml:"worktree_format"`
	OpenCmd        string `toml:"open_cmd"`
	ASCII          *bool  `toml:"ascii"`
	// Preserve is appended to the user's preserve settings.
	Preserve PreserveConfig `toml:"preserve"`
	// Hooks are merged by name into the user's hooks.
	Hooks map[string]Hook `toml:"hooks"`
}

// LoadLocal reads <commonDir>/workty.toml.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(commonDir string) (*LocalConfig, error) {
	configFile := filepath.Join(commonDir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}
	if local.WorktreeFormat != "" {
		if err := validateWorktreeFormat(local.WorktreeFormat); err != nil {
			return nil, fmt.Errorf("%s: %w", configFile, err)
		}
	}
	if err := validateHooks(local.Hooks, true); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}
	return &local, nil
}
