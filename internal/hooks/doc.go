// Package hooks runs user-defined shell commands after git-workty creates
// or removes a worktree.
//
// Hooks are declared in the user or repository config:
//
//	[hooks.deps]
//	command = "npm install"
//	description = "install dependencies"
//	on = ["new"]
//
//	[hooks.notify]
//	command = "echo removed {branch}"
//	on = ["rm", "clean"]
//
// A hook runs for each trigger named in "on"; "all" matches every trigger.
// Hooks without "on" never run. A repository file can disable a user hook
// with enabled = false.
//
// # Placeholders
//
// Placeholders are replaced with shell-quoted values before the command is
// handed to sh -c:
//
//   - {path}: absolute worktree path
//   - {branch}: branch name, empty for detached worktrees
//   - {repo}: repository name
//   - {main-repo}: main worktree path
//   - {trigger}: "new", "rm" or "clean"
//
// Hooks for "new" run inside the new worktree. Hooks for "rm" and "clean"
// run in the main worktree, since the removed directory is gone. Hook
// output goes to stderr so stdout stays machine-readable.
package hooks
