package maintenance

import (
	"context"

	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/worktree"
)

// GitRemover removes worktrees with `git worktree remove`.
type GitRemover struct {
	// RepoRoot is the directory git runs in.
	RepoRoot string
	Force    bool
}

// Remove implements Remover.
func (g GitRemover) Remove(ctx context.Context, wt worktree.Worktree) error {
	return git.RemoveWorktree(ctx, g.RepoRoot, wt.Path, g.Force)
}

// GitRebaser rebases with the git binary inside the worktree.
type GitRebaser struct{}

// Rebase implements Rebaser.
func (GitRebaser) Rebase(ctx context.Context, wt worktree.Worktree) error {
	return git.Rebase(ctx, wt.Path)
}

// AbortRebase implements Rebaser.
func (GitRebaser) AbortRebase(ctx context.Context, wt worktree.Worktree) error {
	return git.AbortRebase(ctx, wt.Path)
}
