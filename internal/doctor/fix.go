package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/W1Real/workty/internal/git"
)

// Fix applies the fix of every fixable issue from repoRoot. All stale
// registrations are dropped by a single `git worktree prune`.
func Fix(ctx context.Context, w io.Writer, repoRoot string, issues []Issue) (fixed, failed int) {
	var prunable []Issue
	for _, issue := range issues {
		switch issue.FixAction {
		case FixRepair:
			if err := git.RepairWorktree(ctx, repoRoot, issue.Key); err != nil {
				fmt.Fprintf(w, "  ✗ Failed to repair %s: %v\n", issue.Key, err)
				failed++
				continue
			}
			fmt.Fprintf(w, "  ✓ Repaired git links for %s\n", issue.Key)
			fixed++
		case FixPrune:
			prunable = append(prunable, issue)
		}
	}

	if len(prunable) == 0 {
		return fixed, failed
	}
	if err := git.PruneWorktrees(ctx, repoRoot); err != nil {
		for _, issue := range prunable {
			fmt.Fprintf(w, "  ✗ Failed to prune %s: %v\n", issue.Key, err)
		}
		return fixed, failed + len(prunable)
	}
	for _, issue := range prunable {
		fmt.Fprintf(w, "  ✓ Pruned stale registration %s\n", issue.Key)
	}
	return fixed + len(prunable), failed
}
