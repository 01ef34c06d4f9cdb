package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/log"
)

// Registry lists the worktrees of one repository.
type Registry struct {
	repo *git.Repo
}

// NewRegistry returns a Registry for repo.
func NewRegistry(repo *git.Repo) *Registry {
	return &Registry{repo: repo}
}

// Enumerate returns every worktree of the repository: the main worktree
// first, then linked worktrees in registration-name order. Exactly one entry
// is marked Main. Linked worktrees that cannot be read are returned as
// prunable entries; they never fail the enumeration.
func (r *Registry) Enumerate(ctx context.Context) ([]Worktree, error) {
	l := log.FromContext(ctx)

	entries, err := r.repo.AdminEntries()
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}

	mainPath := r.repo.MainWorktreePath()
	linked := make([]Worktree, 0, len(entries))
	mainIdx := -1

	for _, e := range entries {
		wt := readLinked(e)
		if wt.Prunable() {
			l.Debug("worktree prunable", "name", e.Name, "path", wt.Path, "error", e.Err)
		}
		if wt.Path == mainPath && !wt.Prunable() {
			mainIdx = len(linked)
		}
		linked = append(linked, wt)
	}

	var main Worktree
	if mainIdx >= 0 {
		main = linked[mainIdx]
		linked = append(linked[:mainIdx], linked[mainIdx+1:]...)
	} else {
		main = readMain(ctx, mainPath)
	}
	main.Main = true
	main.Locked = false

	return append([]Worktree{main}, linked...), nil
}

// readLinked classifies one admin entry. Any failure produces a prunable stub.
func readLinked(e git.AdminEntry) Worktree {
	if e.Err != nil || e.Path == "" {
		return Worktree{Path: e.Dir, Locked: e.Locked, Admin: e.Name}
	}

	path := filepath.Clean(e.Path)
	if _, err := os.Stat(path); err != nil {
		return Worktree{Path: path, Locked: e.Locked, Admin: e.Name}
	}
	if canonical, err := git.Canonicalize(path); err == nil {
		path = canonical
	}

	co, err := readCheckout(path)
	if err != nil {
		return Worktree{Path: path, Locked: e.Locked, Admin: e.Name}
	}
	return Worktree{Path: path, Locked: e.Locked, Admin: e.Name, Checkout: co}
}

// readMain builds the main worktree entry. The main worktree is never
// prunable; when its HEAD cannot be read the checkout fields stay empty.
func readMain(ctx context.Context, path string) Worktree {
	co, err := readCheckout(path)
	if err != nil {
		log.FromContext(ctx).Debug("main worktree unreadable", "path", path, "error", err)
		co = &Checkout{}
	}
	return Worktree{Path: path, Checkout: co}
}

func readCheckout(path string) (*Checkout, error) {
	h, err := git.Open(path)
	if err != nil {
		return nil, err
	}
	head, err := h.Head()
	if err != nil {
		return nil, err
	}
	co := &Checkout{Detached: head.Detached}
	if !head.Hash.IsZero() {
		co.Head = head.Hash.String()
	}
	if !head.Detached {
		co.Branch = head.Branch.String()
		co.BranchShort = head.Branch.Short()
	}
	return co, nil
}
