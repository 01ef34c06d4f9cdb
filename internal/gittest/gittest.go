// Package gittest builds throwaway git repositories for tests.
//
// Repositories are created with the git binary inside t.TempDir() and are
// configured with a fixed identity and GPG signing disabled.
package gittest

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ResolveTempDir creates a temp directory and resolves symlinks (macOS /var -> /private/var).
func ResolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// Git runs git in dir and returns trimmed stdout. It fails the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(dir, nil, args...)
	if err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// GitErr runs git in dir and returns its error instead of failing the test.
func GitErr(dir string, args ...string) error {
	_, err := run(dir, nil, args...)
	return err
}

func run(dir string, env []string, args ...string) (string, error) {
	c := exec.Command("git", args...)
	c.Dir = dir
	c.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Configure sets git user config and disables GPG signing.
func Configure(t *testing.T, repoPath string) {
	t.Helper()
	Git(t, repoPath, "config", "user.email", "test@test.com")
	Git(t, repoPath, "config", "user.name", "Test User")
	Git(t, repoPath, "config", "commit.gpgsign", "false")
}

// NewRepo creates a repo with a main branch and an initial commit.
// Returns the resolved repo path.
func NewRepo(t *testing.T) string {
	t.Helper()
	repoPath := filepath.Join(ResolveTempDir(t), "repo")
	Git(t, "", "init", "-b", "main", repoPath)
	Configure(t, repoPath)
	Commit(t, repoPath, "README.md", "# test\n", "Initial commit")
	return repoPath
}

// NewRepoWithOrigin creates a clone of a bare origin with main pushed and
// tracked. Returns (repoPath, originPath).
func NewRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := ResolveTempDir(t)
	originPath := filepath.Join(tmpDir, "origin.git")
	repoPath := filepath.Join(tmpDir, "repo")

	// -b main keeps the default branch stable across git versions
	Git(t, "", "init", "--bare", "-b", "main", originPath)
	Git(t, "", "clone", "-q", originPath, repoPath)
	Configure(t, repoPath)
	Git(t, repoPath, "symbolic-ref", "HEAD", "refs/heads/main")
	Commit(t, repoPath, "README.md", "# test\n", "Initial commit")
	Git(t, repoPath, "push", "-q", "-u", "origin", "main")
	return repoPath, originPath
}

// Commit writes content to file in dir and commits it. Returns the commit id.
func Commit(t *testing.T, dir, file, content, msg string) string {
	t.Helper()
	WriteFile(t, dir, file, content)
	Git(t, dir, "add", file)
	Git(t, dir, "commit", "-q", "-m", msg)
	return Git(t, dir, "rev-parse", "HEAD")
}

// CommitAt is Commit with both author and committer dates set to when.
func CommitAt(t *testing.T, dir, file, content, msg string, when time.Time) string {
	t.Helper()
	WriteFile(t, dir, file, content)
	Git(t, dir, "add", file)
	date := when.Format(time.RFC3339)
	env := []string{"GIT_AUTHOR_DATE=" + date, "GIT_COMMITTER_DATE=" + date}
	if _, err := run(dir, env, "commit", "-q", "-m", msg); err != nil {
		t.Fatalf("git commit: %v", err)
	}
	return Git(t, dir, "rev-parse", "HEAD")
}

// WriteFile writes content to dir/file, creating parent directories.
func WriteFile(t *testing.T, dir, file, content string) {
	t.Helper()
	path := filepath.Join(dir, file)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AddWorktree creates a linked worktree for a new branch next to repoPath.
// Returns the worktree path.
func AddWorktree(t *testing.T, repoPath, branch string) string {
	t.Helper()
	wtPath := filepath.Join(filepath.Dir(repoPath), "wt-"+strings.ReplaceAll(branch, "/", "-"))
	Git(t, repoPath, "worktree", "add", "-q", "-b", branch, wtPath)
	return wtPath
}

// AddWorktreeFrom is AddWorktree with an explicit start point.
func AddWorktreeFrom(t *testing.T, repoPath, branch, start string) string {
	t.Helper()
	wtPath := filepath.Join(filepath.Dir(repoPath), "wt-"+strings.ReplaceAll(branch, "/", "-"))
	Git(t, repoPath, "worktree", "add", "-q", "-b", branch, wtPath, start)
	return wtPath
}
