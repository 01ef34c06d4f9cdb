// Package format turns worktree data into strings for paths and terminals.
//
// # Branch slugs
//
// [Slug] converts a branch name into a directory name: every character other
// than letters, digits, '-' and '_' becomes '-', and leading or
// trailing '-' are trimmed. "feature/login" becomes "feature-login".
//
// # Ages
//
// [Age] renders a duration in seconds as a compact relative age ("now",
// "5m", "3h", "2d", "1w", "4mo") for table columns.
//
// # Paths
//
// [ShortenPath] replaces the home directory prefix with "~".
package format
