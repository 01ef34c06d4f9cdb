package git

import (
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Handle is a read-only go-git handle on one worktree. A Handle must not be
// shared between goroutines; open one per worker instead.
type Handle struct {
	Path string
	repo *gogit.Repository
}

// HeadInfo describes what a worktree has checked out.
type HeadInfo struct {
	// Hash is the commit HEAD points at. Zero for an unborn branch.
	Hash plumbing.Hash
	// Branch is the full ref name, e.g. refs/heads/main. Empty when detached.
	Branch   plumbing.ReferenceName
	Detached bool
}

// Unborn reports a branch without commits.
func (h HeadInfo) Unborn() bool {
	return !h.Detached && h.Hash.IsZero()
}

// Open opens the worktree checkout at exactly path. Parent directories are
// not searched, so a checkout whose .git went missing fails instead of
// resolving to an enclosing repository.
func Open(path string) (*Handle, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Handle{Path: path, repo: r}, nil
}

// Head reads HEAD without requiring it to resolve, so unborn branches
// still report their branch name.
func (h *Handle) Head() (HeadInfo, error) {
	ref, err := h.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return HeadInfo{}, fmt.Errorf("read HEAD: %w", err)
	}
	if ref.Type() == plumbing.HashReference {
		return HeadInfo{Hash: ref.Hash(), Detached: true}, nil
	}

	info := HeadInfo{Branch: ref.Target()}
	resolved, err := h.repo.Reference(ref.Target(), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("resolve %s: %w", ref.Target(), err)
	}
	info.Hash = resolved.Hash()
	return info, nil
}

// Upstream returns the configured upstream of a local branch (short name).
func (h *Handle) Upstream(branch string) (Upstream, bool) {
	return upstreamOf(h.repo, branch)
}

// Resolve returns the commit a reference points at.
func (h *Handle) Resolve(name plumbing.ReferenceName) (plumbing.Hash, error) {
	ref, err := h.repo.Reference(name, true)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}

// CommitTime returns the committer timestamp of a commit.
func (h *Handle) CommitTime(hash plumbing.Hash) (time.Time, error) {
	c, err := h.repo.CommitObject(hash)
	if err != nil {
		return time.Time{}, err
	}
	return c.Committer.When, nil
}

// AheadBehind counts commits reachable from a but not b (ahead) and from b
// but not a (behind), like `git rev-list --left-right --count a...b`.
func (h *Handle) AheadBehind(a, b plumbing.Hash) (ahead, behind int, err error) {
	return aheadBehind(h.repo, a, b)
}

// statusCount counts changed entries in go-git's view of the working tree.
func (h *Handle) statusCount() (int, error) {
	wt, err := h.repo.Worktree()
	if err != nil {
		return 0, err
	}
	st, err := wt.Status()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, fs := range st {
		if fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified {
			n++
		}
	}
	return n, nil
}
