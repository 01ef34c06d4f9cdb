package config

import "maps"

// MergeLocal merges a per-repo config into the user config,
// returning a new Config without mutating global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global
	if local.Base != "" {
		merged.Base = local.Base
	}
	if local.WorktreeFormat != "" {
		merged.WorktreeFormat = local.WorktreeFormat
	}
	if local.OpenCmd != "" {
		merged.OpenCmd = local.OpenCmd
	}
	if local.ASCII != nil {
		merged.UI.ASCII = *local.ASCII
	}
	if len(local.Preserve.Patterns) > 0 {
		merged.Preserve.Patterns = appendUnique(global.Preserve.Patterns, local.Preserve.Patterns)
	}
	if len(local.Preserve.Exclude) > 0 {
		merged.Preserve.Exclude = appendUnique(global.Preserve.Exclude, local.Preserve.Exclude)
	}
	if len(local.Hooks) > 0 {
		merged.Hooks = mergeHooks(global.Hooks, local.Hooks)
	}
	return &merged
}

// mergeHooks overlays local hooks on global ones by name. A local hook
// with enabled = false removes the global hook of the same name.
func mergeHooks(global, local map[string]Hook) map[string]Hook {
	merged := make(map[string]Hook, len(global)+len(local))
	maps.Copy(merged, global)
	for name, hook := range local {
		if !hook.IsEnabled() {
			delete(merged, name)
			continue
		}
		merged[name] = hook
	}
	return merged
}

// appendUnique returns base followed by the values of extra not in base.
// base is not modified.
func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	result := make([]string, 0, len(base)+len(extra))
	for _, v := range append(base[:len(base):len(base)], extra...) {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
