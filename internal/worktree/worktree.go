// Package worktree enumerates and classifies the worktrees of a repository.
package worktree

import (
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Worktree is one checkout registered with the repository. It is built fresh
// by every enumeration and never modified afterwards.
type Worktree struct {
	// Path is canonical: absolute with symlinks resolved.
	Path   string
	Main   bool
	Locked bool
	// Admin names the registration under <common-dir>/worktrees/. Empty
	// for the main worktree.
	Admin string
	// Checkout is nil when the worktree is prunable: its directory is gone
	// or its metadata cannot be read.
	Checkout *Checkout
}

// Checkout is what an active worktree has checked out.
type Checkout struct {
	// Head is the commit id, empty on an unborn branch.
	Head string
	// Branch is the full ref name (refs/heads/...), empty when detached.
	Branch      string
	BranchShort string
	Detached    bool
}

// Prunable reports a worktree whose checkout no longer exists or is unreadable.
func (w Worktree) Prunable() bool {
	return w.Checkout == nil
}

// Detached reports a checkout without a branch.
func (w Worktree) Detached() bool {
	return w.Checkout != nil && w.Checkout.Detached
}

// Head returns the checked out commit id.
func (w Worktree) Head() string {
	if w.Checkout == nil {
		return ""
	}
	return w.Checkout.Head
}

// Branch returns the full branch ref name.
func (w Worktree) Branch() string {
	if w.Checkout == nil {
		return ""
	}
	return w.Checkout.Branch
}

// BranchShort returns the branch name without refs/heads/.
func (w Worktree) BranchShort() string {
	if w.Checkout == nil {
		return ""
	}
	return w.Checkout.BranchShort
}

// Name is the short branch name, or the final path segment when there is none.
func (w Worktree) Name() string {
	if b := w.BranchShort(); b != "" {
		return b
	}
	if base := filepath.Base(w.Path); base != "." && base != string(filepath.Separator) {
		return base
	}
	return "unknown"
}

// FindByName returns the worktree whose short branch name or directory name
// equals name. Branch names win over directory names.
func FindByName(list []Worktree, name string) (Worktree, bool) {
	for _, wt := range list {
		if wt.BranchShort() == name {
			return wt, true
		}
	}
	for _, wt := range list {
		if filepath.Base(wt.Path) == name {
			return wt, true
		}
	}
	return Worktree{}, false
}

// FindByPath returns the worktree at the canonical path.
func FindByPath(list []Worktree, path string) (Worktree, bool) {
	for _, wt := range list {
		if wt.Path == path {
			return wt, true
		}
	}
	return Worktree{}, false
}

// Contains reports whether path is dir or lies below it.
func Contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Current returns the worktree containing dir. With nested worktrees the
// innermost one wins.
func Current(list []Worktree, dir string) (Worktree, bool) {
	var best Worktree
	found := false
	for _, wt := range list {
		if wt.Prunable() || !Contains(wt.Path, dir) {
			continue
		}
		if !found || len(wt.Path) > len(best.Path) {
			best, found = wt, true
		}
	}
	return best, found
}

// Suggest returns up to three worktree names that fuzzily match name,
// best match first.
func Suggest(list []Worktree, name string) []string {
	names := make([]string, len(list))
	for i, wt := range list {
		names[i] = wt.Name()
	}
	var out []string
	for _, m := range fuzzy.Find(strings.ToLower(name), lower(names)) {
		out = append(out, names[m.Index])
		if len(out) == 3 {
			break
		}
	}
	return out
}

func lower(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}
