package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLocal_NoFile(t *testing.T) {
	t.Parallel()

	local, err := LoadLocal(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local != nil {
		t.Fatalf("expected nil, got %+v", local)
	}
}

func TestLoadLocal_AllFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
base = "develop"
worktree_format = "../wt/{branch}"
open_cmd = "zed"
ascii = true

[hooks.notify]
enabled = false
`
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	local, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local.Base != "develop" {
		t.Errorf("Base = %q, want develop", local.Base)
	}
	if local.WorktreeFormat != "../wt/{branch}" {
		t.Errorf("WorktreeFormat = %q", local.WorktreeFormat)
	}
	if local.OpenCmd != "zed" {
		t.Errorf("OpenCmd = %q", local.OpenCmd)
	}
	if local.ASCII == nil || !*local.ASCII {
		t.Errorf("ASCII = %v, want true", local.ASCII)
	}
	if h, ok := local.Hooks["notify"]; !ok || h.IsEnabled() {
		t.Errorf("Hooks = %+v, want notify disabled", local.Hooks)
	}
}

func TestLoadLocal_InvalidFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(`worktree_format = "../x"`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error for worktree_format without {branch}")
	}
}

func TestLoadLocal_InvalidTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte("[[[ nope"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
