// Package cmd provides helpers for executing external commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and return it as part of
// an [*ExitError], making command failures informative for users.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoRoot, "git", "worktree", "remove", path); err != nil {
//	    // err.Error() is git's stderr when it wrote any
//	    return fmt.Errorf("remove worktree: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, "", "git", "-C", path, "status", "--porcelain")
//
// # Design Notes
//
// Mutations (worktree add/remove, rebase, fetch, push) shell out to the git
// binary so user configuration applies: credential helpers, SSH keys, hooks.
// Read-only queries go through go-git in package git.
package cmd
