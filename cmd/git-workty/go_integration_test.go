//go:build integration

package main

import (
	"strings"
	"testing"

	"github.com/W1Real/workty/internal/gittest"
)

// TestGo_BranchName tests resolving a worktree by branch name.
//
// Scenario: User runs `git workty go feature` from the main worktree
// Expected: Prints the worktree path to stdout
func TestGo_BranchName(t *testing.T) {
	t.Parallel()

	repo := gittest.NewRepo(t)
	wtPath := gittest.AddWorktree(t, repo, "feature")

	ctx, out := testContext(t, repo)
	if err := execute(ctx, newGoCmd(), "feature"); err != nil {
		t.Fatalf("go failed: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != wtPath {
		t.Errorf("expected path %q, got %q", wtPath, got)
	}
}

// TestGo_NotFound tests the suggestion hint for a mistyped name.
//
// Scenario: User runs `git workty go featur`
// Expected: Error whose hint suggests "feature"
func TestGo_NotFound(t *testing.T) {
	t.Parallel()

	repo := gittest.NewRepo(t)
	gittest.AddWorktree(t, repo, "feature")

	ctx, out := testContext(t, repo)
	err := execute(ctx, newGoCmd(), "featur")

	var hinted *HintError
	if !errorsAs(err, &hinted) {
		t.Fatalf("expected HintError, got %v", err)
	}
	if !strings.Contains(hinted.Hint, "feature") {
		t.Errorf("hint = %q, want a suggestion for feature", hinted.Hint)
	}
	if out.Len() != 0 {
		t.Errorf("expected no stdout, got %q", out.String())
	}
}
