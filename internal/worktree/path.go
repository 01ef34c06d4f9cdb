package worktree

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/W1Real/workty/internal/format"
)

// ResolvePath computes the path of a new worktree from a format string.
// The branch is slugged before substitution. Supports:
//   - "{branch}" or "./{branch}" = nested inside the main worktree
//   - "../{repo}-{branch}" = sibling of the main worktree
//   - "~/worktrees/{repo}/{branch}" = under the home directory
//   - "/absolute/{repo}-{branch}" = absolute path
func ResolvePath(mainPath, repoName, branch, pathFormat string) string {
	path := strings.ReplaceAll(pathFormat, "{repo}", repoName)
	path = strings.ReplaceAll(path, "{branch}", format.Slug(branch))

	switch {
	case strings.HasPrefix(path, "../"):
		return filepath.Join(filepath.Dir(mainPath), path[3:])

	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			// keep the ~ so the error message shows what was configured
			return path
		}
		return filepath.Join(home, path[2:])

	case filepath.IsAbs(path):
		return filepath.Clean(path)

	default:
		return filepath.Join(mainPath, strings.TrimPrefix(path, "./"))
	}
}
