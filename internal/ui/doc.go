// Package ui holds terminal plumbing shared by the commands: user-facing
// messages, color handling and terminal detection.
//
// Styles are always rendered in full color and written through a
// colorprofile writer, which downsamples or strips the escape sequences to
// what the destination supports (NO_COLOR, pipes, dumb terminals).
//
// Subpackages:
//   - styles: colors, styles and icon sets
//   - static: the worktree table and its JSON form
//   - prompt: yes/no confirmation
//   - picker: the fuzzy worktree picker
package ui
