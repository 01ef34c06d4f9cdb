package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Base branch candidates on origin, in preference order.
var baseCandidates = []plumbing.ReferenceName{
	plumbing.NewRemoteReferenceName("origin", "main"),
	plumbing.NewRemoteReferenceName("origin", "master"),
}

// AdminEntry is one registration under <common-dir>/worktrees/.
type AdminEntry struct {
	// Name is the directory name under worktrees/.
	Name string
	// Dir is the full path of the admin directory.
	Dir string
	// Path is the worktree checkout, derived from the gitdir file.
	// Empty when the metadata could not be read.
	Path   string
	Locked bool
	// Err is set when the gitdir file is missing or malformed.
	Err error
}

// AdminEntries lists linked worktree registrations in directory-name order.
// A repository without linked worktrees yields an empty list.
func (r *Repo) AdminEntries() ([]AdminEntry, error) {
	dir := filepath.Join(r.CommonDir, "worktrees")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var result []AdminEntry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		adminDir := filepath.Join(dir, e.Name())
		entry := AdminEntry{Name: e.Name(), Dir: adminDir}

		if _, err := os.Stat(filepath.Join(adminDir, "locked")); err == nil {
			entry.Locked = true
		}

		data, err := os.ReadFile(filepath.Join(adminDir, "gitdir"))
		switch {
		case err != nil:
			entry.Err = err
		case strings.TrimSpace(string(data)) == "":
			entry.Err = fmt.Errorf("%s: empty gitdir", adminDir)
		default:
			// gitdir points at <checkout>/.git
			gitFile := strings.TrimSpace(string(data))
			if !filepath.IsAbs(gitFile) {
				gitFile = filepath.Join(adminDir, gitFile)
			}
			entry.Path = filepath.Dir(filepath.Clean(gitFile))
		}
		result = append(result, entry)
	}
	return result, nil
}

// RemoveRegistration deletes the admin directory of one linked worktree.
// It is `git worktree prune` limited to a single entry and leaves every
// other registration alone.
func (r *Repo) RemoveRegistration(name string) error {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return fmt.Errorf("invalid worktree registration %q", name)
	}
	dir := filepath.Join(r.CommonDir, "worktrees", name)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("worktree registration %q: %w", name, err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	return nil
}

// ResolveBase returns the tip of origin/main, falling back to origin/master.
func (r *Repo) ResolveBase() (plumbing.Hash, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range baseCandidates {
		if ref, err := r.repo.Reference(name, true); err == nil {
			return ref.Hash(), true
		}
	}
	return plumbing.ZeroHash, false
}

// IsMerged reports whether branch has been merged into base: its tip is a
// strict ancestor of the local base branch or, failing that, of origin/<base>.
// A branch whose tip equals the base tip is not merged. Unknown refs yield false.
func (r *Repo) IsMerged(branch, base string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	branchRef, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return false, nil
	}
	branchCommit, err := r.repo.CommitObject(branchRef.Hash())
	if err != nil {
		return false, fmt.Errorf("read %s: %w", branch, err)
	}

	for _, name := range []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(base),
		plumbing.NewRemoteReferenceName("origin", base),
	} {
		baseRef, err := r.repo.Reference(name, true)
		if err != nil || baseRef.Hash() == branchCommit.Hash {
			continue
		}
		baseCommit, err := r.repo.CommitObject(baseRef.Hash())
		if err != nil {
			continue
		}
		if ok, err := branchCommit.IsAncestor(baseCommit); err == nil && ok {
			return true, nil
		}
	}
	return false, nil
}

// BranchExists reports whether refs/heads/<name> exists.
func (r *Repo) BranchExists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), false)
	return err == nil
}

// DefaultBranch returns "main" or "master", whichever exists locally first.
// Returns empty string if neither exists.
func (r *Repo) DefaultBranch() string {
	for _, b := range []string{"main", "master"} {
		if r.BranchExists(b) {
			return b
		}
	}
	return ""
}

// Upstream returns the upstream of a local branch, e.g. "origin/main".
func (r *Repo) Upstream(branch string) (Upstream, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return upstreamOf(r.repo, branch)
}

// OriginURL returns the first URL of the origin remote, or "".
func (r *Repo) OriginURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	remote, err := r.repo.Remote("origin")
	if err != nil || len(remote.Config().URLs) == 0 {
		return ""
	}
	return remote.Config().URLs[0]
}

// Remotes returns the configured remote names, sorted.
func (r *Repo) Remotes() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, err := r.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	names := make([]string, 0, len(cfg.Remotes))
	for name := range cfg.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Upstream is the remote-tracking branch configured for a local branch.
type Upstream struct {
	// Name is the short form shown to users, e.g. "origin/feature".
	Name string
	// Ref is the local ref holding the upstream tip.
	Ref plumbing.ReferenceName
}

// upstreamOf reads branch.<name>.remote and branch.<name>.merge.
func upstreamOf(repo *gogit.Repository, branch string) (Upstream, bool) {
	cfg, err := repo.Config()
	if err != nil {
		return Upstream{}, false
	}
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return Upstream{}, false
	}
	if b.Remote == "." {
		return Upstream{Name: b.Merge.Short(), Ref: b.Merge}, true
	}
	short := strings.TrimPrefix(b.Merge.String(), "refs/heads/")
	return Upstream{
		Name: b.Remote + "/" + short,
		Ref:  plumbing.NewRemoteReferenceName(b.Remote, short),
	}, true
}
