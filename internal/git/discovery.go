package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
)

var (
	// ErrRepositoryNotFound is returned when no repository encloses the start path.
	ErrRepositoryNotFound = errors.New("not a git repository")

	// ErrBareRepository is returned for repositories without a working tree.
	ErrBareRepository = errors.New("bare repositories are not supported")
)

// Repo is a discovered repository: the checkout the user is in plus the
// shared common directory that all of its worktrees point at.
type Repo struct {
	// Root is the top-level directory of the discovered checkout.
	Root string
	// GitDir is the git directory of that checkout. For a linked worktree
	// it is <CommonDir>/worktrees/<name>.
	GitDir string
	// CommonDir holds refs, objects and config shared by every worktree.
	CommonDir string

	mu   sync.Mutex
	repo *gogit.Repository
}

// Discover finds the repository enclosing start, walking up as git does.
// All returned paths are canonical (absolute, symlinks resolved).
func Discover(start string) (*Repo, error) {
	start, err := Canonicalize(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryNotFound, err)
	}

	r, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w (or any of the parent directories): %s", ErrRepositoryNotFound, start)
		}
		return nil, fmt.Errorf("%w: %v", ErrRepositoryNotFound, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return nil, ErrBareRepository
		}
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	root, err := Canonicalize(wt.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryNotFound, err)
	}
	gitDir, err := resolveGitDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryNotFound, err)
	}
	commonDir, err := resolveCommonDir(gitDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryNotFound, err)
	}

	return &Repo{Root: root, GitDir: gitDir, CommonDir: commonDir, repo: r}, nil
}

// MainWorktreePath is the checkout that owns the common directory.
func (r *Repo) MainWorktreePath() string {
	return filepath.Dir(r.CommonDir)
}

// Name is the directory name of the main worktree, used for {repo} in path templates.
func (r *Repo) Name() string {
	return filepath.Base(r.MainWorktreePath())
}

// Canonicalize returns the absolute, symlink-free form of path.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolveGitDir returns the git directory of the checkout at root:
// root/.git itself, or the target of a "gitdir:" pointer file.
func resolveGitDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return dotGit, nil
	}
	target, err := ReadGitdirPointer(dotGit)
	if err != nil {
		return "", err
	}
	return Canonicalize(target)
}

// resolveCommonDir follows <gitDir>/commondir when present. Without it, the
// gitdir of a linked worktree (<common>/worktrees/<name>) resolves two levels
// up; any other gitdir is its own common dir.
func resolveCommonDir(gitDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if errors.Is(err, os.ErrNotExist) {
		if parent := filepath.Dir(gitDir); filepath.Base(parent) == "worktrees" {
			return filepath.Dir(parent), nil
		}
		return gitDir, nil
	}
	if err != nil {
		return "", err
	}
	common := strings.TrimSpace(string(data))
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return Canonicalize(common)
}

// ReadGitdirPointer parses a ".git" file of the form "gitdir: <path>".
// Relative targets are resolved against the file's directory.
func ReadGitdirPointer(dotGitFile string) (string, error) {
	data, err := os.ReadFile(dotGitFile)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%s: missing %q prefix", dotGitFile, prefix)
	}
	target := strings.TrimSpace(line[len(prefix):])
	if target == "" {
		return "", fmt.Errorf("%s: empty gitdir", dotGitFile)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(dotGitFile), target)
	}
	return filepath.Clean(target), nil
}
