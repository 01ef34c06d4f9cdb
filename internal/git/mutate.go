package git

import "context"

// RemoveWorktree runs `git worktree remove` from repoRoot.
func RemoveWorktree(ctx context.Context, repoRoot, path string, force bool) error {
	if err := checkPath(path); err != nil {
		return err
	}
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	return runGit(ctx, repoRoot, append(args, path)...)
}

// AddWorktree checks out an existing branch into a new worktree at path.
func AddWorktree(ctx context.Context, repoRoot, path, branch string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	return runGit(ctx, repoRoot, "worktree", "add", path, branch)
}

// AddWorktreeNewBranch creates branch from base and checks it out at path.
func AddWorktreeNewBranch(ctx context.Context, repoRoot, path, branch, base string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	return runGit(ctx, repoRoot, "worktree", "add", "-b", branch, path, base)
}

// Rebase rebases the branch checked out at worktreePath onto its upstream.
func Rebase(ctx context.Context, worktreePath string) error {
	if err := checkPath(worktreePath); err != nil {
		return err
	}
	return runGit(ctx, worktreePath, "rebase")
}

// AbortRebase restores the worktree to its state before a failed rebase.
func AbortRebase(ctx context.Context, worktreePath string) error {
	if err := checkPath(worktreePath); err != nil {
		return err
	}
	return runGit(ctx, worktreePath, "rebase", "--abort")
}

// Fetch fetches remote, pruning deleted remote branches when prune is set.
func Fetch(ctx context.Context, dir, remote string, prune bool) error {
	args := []string{"fetch"}
	if prune {
		args = append(args, "--prune")
	}
	return runGit(ctx, dir, append(args, remote)...)
}

// FetchRef fetches a single ref from remote.
func FetchRef(ctx context.Context, dir, remote, ref string) error {
	return runGit(ctx, dir, "fetch", remote, ref)
}

// PushUpstream pushes branch to remote and records it as upstream.
func PushUpstream(ctx context.Context, dir, remote, branch string) error {
	return runGit(ctx, dir, "push", "-u", remote, branch)
}

// DeleteBranch deletes a local branch. Without force git refuses to delete
// a branch that is not merged.
func DeleteBranch(ctx context.Context, repoRoot, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	return runGit(ctx, repoRoot, "branch", flag, branch)
}

// PruneWorktrees drops registrations whose checkout directory is gone.
func PruneWorktrees(ctx context.Context, repoRoot string) error {
	return runGit(ctx, repoRoot, "worktree", "prune")
}

// RepairWorktree rewrites the links between the repository and the
// worktree at path, e.g. after the main checkout was moved.
func RepairWorktree(ctx context.Context, repoRoot, path string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	return runGit(ctx, repoRoot, "worktree", "repair", path)
}
