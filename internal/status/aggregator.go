package status

import (
	"context"
	"runtime"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/sync/errgroup"

	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/worktree"
)

// Mode selects how much status to compute.
type Mode int

const (
	// Full computes every field.
	Full Mode = iota
	// Minimal skips the working-tree scan; DirtyCount is always 0.
	Minimal
)

// BaseResolver resolves the shared base commit.
type BaseResolver interface {
	ResolveBase() (plumbing.Hash, bool)
}

// Aggregator computes statuses for a set of worktrees.
type Aggregator struct {
	Repo BaseResolver
	// Dirty counts changed entries in a checkout. Defaults to git.DirtyCount.
	Dirty func(ctx context.Context, path string) (int, error)
	// Now defaults to time.Now.
	Now func() time.Time
	// Limit bounds concurrent workers. Defaults to runtime.NumCPU().
	Limit int
}

// NewAggregator returns an Aggregator for repo with default collaborators.
func NewAggregator(repo *git.Repo) *Aggregator {
	return &Aggregator{Repo: repo}
}

// Aggregate computes one Entry per input worktree, in input order. Failures
// never abort the call: an unreadable worktree yields a zero Status and a
// failed field stays absent.
func (a *Aggregator) Aggregate(ctx context.Context, worktrees []worktree.Worktree, mode Mode) []Entry {
	base, hasBase := a.Repo.ResolveBase()
	now := a.now()

	results := make([]Entry, len(worktrees))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit())

	for i, wt := range worktrees {
		g.Go(func() error {
			results[i] = Entry{Worktree: wt, Status: a.compute(ctx, wt, mode, base, hasBase, now)}
			return nil
		})
	}

	_ = g.Wait() // never fails; per-field errors are absorbed

	return results
}

// IsDirty freshly checks one worktree for uncommitted changes.
func (a *Aggregator) IsDirty(ctx context.Context, wt worktree.Worktree) (bool, error) {
	if wt.Prunable() {
		return false, nil
	}
	n, err := a.dirty()(ctx, wt.Path)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (a *Aggregator) compute(ctx context.Context, wt worktree.Worktree, mode Mode, base plumbing.Hash, hasBase bool, now time.Time) Status {
	var st Status
	if wt.Prunable() {
		return st
	}

	l := log.FromContext(ctx)
	h, err := git.Open(wt.Path)
	if err != nil {
		l.Debug("status: open failed", "path", wt.Path, "error", err)
		return st
	}

	if mode == Full {
		if n, err := a.dirty()(ctx, wt.Path); err != nil {
			l.Debug("status: dirty count failed", "path", wt.Path, "error", err)
		} else {
			st.DirtyCount = n
		}
	}

	if wt.Head() == "" {
		return st
	}
	head := plumbing.NewHash(wt.Head())

	if !wt.Detached() && wt.BranchShort() != "" {
		if up, ok := h.Upstream(wt.BranchShort()); ok {
			name := up.Name
			st.Upstream = &name
			upHash, err := h.Resolve(up.Ref)
			if err != nil {
				st.UpstreamGone = true
			} else if ahead, behind, err := h.AheadBehind(head, upHash); err != nil {
				l.Debug("status: upstream distance failed", "path", wt.Path, "error", err)
				st.UpstreamGone = true
			} else {
				st.Ahead, st.Behind = &ahead, &behind
			}
		}
	}

	if t, err := h.CommitTime(head); err == nil {
		age := int64(now.Sub(t) / time.Second)
		st.LastCommitAge = &age
	} else {
		l.Debug("status: commit time failed", "path", wt.Path, "error", err)
	}

	if hasBase {
		if ahead, behind, err := h.AheadBehind(head, base); err == nil {
			st.BehindBase = &behind
			if st.Upstream == nil && !wt.Detached() {
				st.UntrackedCommits = &ahead
			}
		} else {
			l.Debug("status: base distance failed", "path", wt.Path, "error", err)
		}
	}

	return st
}

func (a *Aggregator) dirty() func(context.Context, string) (int, error) {
	if a.Dirty != nil {
		return a.Dirty
	}
	return git.DirtyCount
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Aggregator) limit() int {
	if a.Limit > 0 {
		return a.Limit
	}
	return runtime.NumCPU()
}
