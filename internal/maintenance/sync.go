package maintenance

import (
	"context"
	"errors"
	"fmt"

	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/worktree"
)

// Outcome classifies what sync did with one worktree.
type Outcome int

const (
	// OutcomeIgnored covers main, detached and prunable worktrees.
	OutcomeIgnored Outcome = iota
	OutcomeNoUpstream
	OutcomeUpToDate
	OutcomeDirty
	// OutcomeWouldSync is a dry-run rebase.
	OutcomeWouldSync
	OutcomeSynced
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeNoUpstream:
		return "no upstream"
	case OutcomeUpToDate:
		return "up to date"
	case OutcomeDirty:
		return "dirty"
	case OutcomeWouldSync:
		return "would sync"
	case OutcomeSynced:
		return "synced"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Rebaser rebases a worktree onto its upstream.
type Rebaser interface {
	Rebase(ctx context.Context, wt worktree.Worktree) error
	AbortRebase(ctx context.Context, wt worktree.Worktree) error
}

// SyncDeps are the collaborators of Sync.
type SyncDeps struct {
	Dirty   DirtyChecker
	Rebaser Rebaser
	DryRun  bool
	// Progress, when non-nil, is called after every decision.
	Progress func(SyncItem)
	// Starting, when non-nil, is called right before a rebase runs.
	Starting func(worktree.Worktree)
}

// SyncItem is the decision for one worktree.
type SyncItem struct {
	Worktree worktree.Worktree
	Outcome  Outcome
	// Behind is the upstream distance the decision was based on.
	Behind int
	Err    error
}

// SyncReport lists one item per input entry, in input order.
type SyncReport struct {
	Items  []SyncItem
	DryRun bool
}

// SyncCounts are the summary counters of a sync run. A dry run counts
// would-be rebases as Synced.
type SyncCounts struct {
	Synced            int
	SkippedDirty      int
	SkippedNoUpstream int
	Failed            int
}

// Counts derives the summary counters.
func (r SyncReport) Counts() SyncCounts {
	var c SyncCounts
	for _, it := range r.Items {
		switch it.Outcome {
		case OutcomeSynced, OutcomeWouldSync:
			c.Synced++
		case OutcomeDirty:
			c.SkippedDirty++
		case OutcomeNoUpstream:
			c.SkippedNoUpstream++
		case OutcomeFailed:
			c.Failed++
		}
	}
	return c
}

// Sync rebases every linked worktree that is behind its upstream and has no
// uncommitted changes. Worktrees are handled sequentially in input order. A
// failed rebase is always followed by an abort so the checkout is left as
// it was. In dry-run mode no rebase is attempted and the classification is
// otherwise identical.
func Sync(ctx context.Context, entries []status.Entry, deps SyncDeps) SyncReport {
	report := SyncReport{Items: make([]SyncItem, 0, len(entries)), DryRun: deps.DryRun}
	for _, e := range entries {
		it := syncOne(ctx, e, deps)
		report.Items = append(report.Items, it)
		if deps.Progress != nil {
			deps.Progress(it)
		}
	}
	return report
}

func syncOne(ctx context.Context, e status.Entry, deps SyncDeps) SyncItem {
	wt, st := e.Worktree, e.Status
	it := SyncItem{Worktree: wt}

	switch {
	case wt.Main, wt.Detached(), wt.Prunable():
		it.Outcome = OutcomeIgnored
		return it
	case !st.HasUpstream():
		it.Outcome = OutcomeNoUpstream
		return it
	case st.Behind == nil || *st.Behind == 0:
		it.Outcome = OutcomeUpToDate
		return it
	}
	it.Behind = *st.Behind

	dirty, err := deps.Dirty.IsDirty(ctx, wt)
	if err != nil || dirty {
		it.Outcome = OutcomeDirty
		it.Err = err
		return it
	}

	if deps.DryRun {
		it.Outcome = OutcomeWouldSync
		return it
	}
	if err := ctx.Err(); err != nil {
		it.Outcome = OutcomeFailed
		it.Err = err
		return it
	}

	if deps.Starting != nil {
		deps.Starting(wt)
	}
	if err := deps.Rebaser.Rebase(ctx, wt); err != nil {
		// abort even when ctx was cancelled mid-rebase
		if abortErr := deps.Rebaser.AbortRebase(context.WithoutCancel(ctx), wt); abortErr != nil {
			err = errors.Join(err, fmt.Errorf("abort rebase: %w", abortErr))
		}
		it.Outcome = OutcomeFailed
		it.Err = err
		return it
	}
	it.Outcome = OutcomeSynced
	return it
}
