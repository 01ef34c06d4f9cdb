package git

import (
	"bytes"
	"context"
)

// DirtyCount returns the number of status entries in the worktree at path:
// staged, unstaged and untracked changes. An untracked directory counts once
// and submodules are ignored. The index is neither locked nor refreshed, so
// the call is safe while other git processes run.
//
// When the git binary fails the count falls back to go-git.
func DirtyCount(ctx context.Context, path string) (int, error) {
	if err := checkPath(path); err != nil {
		return 0, err
	}
	out, err := outputGit(ctx, path,
		"--no-optional-locks", "status", "--porcelain",
		"--untracked-files=normal", "--ignore-submodules=all")
	if err == nil {
		return countLines(out), nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	h, openErr := Open(path)
	if openErr != nil {
		return 0, err
	}
	n, statusErr := h.statusCount()
	if statusErr != nil {
		return 0, err
	}
	return n, nil
}

// countLines counts non-empty lines.
func countLines(out []byte) int {
	n := 0
	for _, line := range bytes.Split(out, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
