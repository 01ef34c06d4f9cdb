package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidColorModes   = []string{"auto", "always", "never"}
	ValidHookTriggers = []string{"new", "rm", "clean", "all"}

	// worktree_format placeholders
	validPlaceholders = []string{"{repo}", "{branch}"}
)

var placeholderRe = regexp.MustCompile(`\{[^{}]*\}`)

// Validate checks cfg for invalid values.
func (c *Config) Validate() error {
	if err := validateWorktreeFormat(c.WorktreeFormat); err != nil {
		return err
	}
	if err := validateEnum(c.UI.Color, "ui.color", ValidColorModes); err != nil {
		return err
	}
	for field, v := range map[string]int{
		"log.max_size_mb":  c.Log.MaxSizeMB,
		"log.max_backups":  c.Log.MaxBackups,
		"log.max_age_days": c.Log.MaxAgeDays,
	} {
		if v < 0 {
			return fmt.Errorf("invalid %s %d: must not be negative", field, v)
		}
	}
	return validateHooks(c.Hooks, false)
}

// validateHooks checks hook triggers. Repo files may disable a user hook
// by name without repeating its command.
func validateHooks(hooks map[string]Hook, allowDisableOnly bool) error {
	for name, h := range hooks {
		if h.Command == "" && !(allowDisableOnly && !h.IsEnabled()) {
			return fmt.Errorf("invalid hook %q: command must not be empty", name)
		}
		for _, on := range h.On {
			if !slices.Contains(ValidHookTriggers, on) {
				return fmt.Errorf("invalid hook %q: unknown trigger %q, must be %s", name, on, formatOptions(ValidHookTriggers))
			}
		}
	}
	return nil
}

// validateWorktreeFormat requires {branch} and rejects unknown placeholders.
func validateWorktreeFormat(format string) error {
	if !strings.Contains(format, "{branch}") {
		return fmt.Errorf("invalid worktree_format %q: must contain {branch}", format)
	}
	for _, p := range placeholderRe.FindAllString(format, -1) {
		if !slices.Contains(validPlaceholders, p) {
			return fmt.Errorf("invalid worktree_format %q: unknown placeholder %s, must be %s", format, p, formatOptions(validPlaceholders))
		}
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
