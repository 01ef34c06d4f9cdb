// Package status computes the per-worktree status snapshot shown by list and
// consumed by clean and sync.
package status

import "github.com/W1Real/workty/internal/worktree"

// Status is the computed state of one worktree. Pointer fields are nil when
// the value is absent: not applicable or not computable.
type Status struct {
	// DirtyCount is the number of changed or untracked entries. Always 0 in
	// Minimal mode.
	DirtyCount int
	// Upstream is the short upstream name, e.g. "origin/feature".
	Upstream *string
	Ahead    *int
	Behind   *int
	// LastCommitAge is the age of the HEAD commit in seconds.
	LastCommitAge *int64
	// BehindBase counts commits on the shared base not reachable from HEAD.
	BehindBase *int
	// UntrackedCommits counts commits ahead of the base on a branch without
	// upstream.
	UntrackedCommits *int
	// UpstreamGone is set when an upstream is configured but its ref is
	// missing or unusable.
	UpstreamGone bool
}

// Dirty reports uncommitted changes.
func (s Status) Dirty() bool {
	return s.DirtyCount > 0
}

// HasUpstream reports a configured upstream.
func (s Status) HasUpstream() bool {
	return s.Upstream != nil
}

// NeedsRebase reports a HEAD that is behind the shared base.
func (s Status) NeedsRebase() bool {
	return s.BehindBase != nil && *s.BehindBase > 0
}

// HasUnpushed reports commits ahead of the upstream, or commits ahead of the
// base when no upstream is configured.
func (s Status) HasUnpushed() bool {
	if s.Ahead != nil && *s.Ahead > 0 {
		return true
	}
	return s.Upstream == nil && s.UntrackedCommits != nil && *s.UntrackedCommits > 0
}

// UnpushedCount returns the ahead count when positive, else the untracked
// commit count, else 0.
func (s Status) UnpushedCount() int {
	if s.Ahead != nil && *s.Ahead > 0 {
		return *s.Ahead
	}
	if s.UntrackedCommits != nil {
		return *s.UntrackedCommits
	}
	return 0
}

// Entry pairs a worktree with its status.
type Entry struct {
	Worktree worktree.Worktree
	Status   Status
}
