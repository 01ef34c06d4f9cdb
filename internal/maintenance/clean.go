// Package maintenance decides which worktrees to clean up and which to
// rebase onto their upstream, and carries out those decisions.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/worktree"
)

const secondsPerDay = 24 * 60 * 60

// maxStaleDays is the largest day count whose threshold fits in int64.
const maxStaleDays = math.MaxInt64 / secondsPerDay

var (
	// ErrConfirmationRequired is returned when a destructive action needs
	// confirmation but there is no terminal to ask on.
	ErrConfirmationRequired = errors.New("non-interactive mode requires --yes for destructive operations")
	// ErrAborted is returned when the user declines the confirmation prompt.
	ErrAborted = errors.New("aborted")
)

// Reason names why a worktree was selected for removal.
type Reason string

const (
	ReasonMerged Reason = "merged"
	ReasonGone   Reason = "upstream gone"
	ReasonStale  Reason = "stale"
)

// Filters selects which worktrees clean considers removable.
type Filters struct {
	Merged bool
	Gone   bool
	// StaleDays selects worktrees whose last commit is strictly older than
	// this many days. Nil disables the filter.
	StaleDays *int
}

// Empty reports that no filter is enabled.
func (f Filters) Empty() bool {
	return !f.Merged && !f.Gone && f.StaleDays == nil
}

// NeedsStatus reports whether the filters read status fields.
func (f Filters) NeedsStatus() bool {
	return f.Gone || f.StaleDays != nil
}

// MergeChecker answers whether a branch has been merged into base.
type MergeChecker interface {
	IsMerged(branch, base string) (bool, error)
}

// DirtyChecker freshly checks a worktree for uncommitted changes.
type DirtyChecker interface {
	IsDirty(ctx context.Context, wt worktree.Worktree) (bool, error)
}

// Remover removes one worktree checkout.
type Remover interface {
	Remove(ctx context.Context, wt worktree.Worktree) error
}

// Candidate is a worktree selected for removal.
type Candidate struct {
	Worktree worktree.Worktree
	Reasons  []Reason
	// Dirty is evaluated once by EvaluateDirty and reused afterwards.
	Dirty bool
}

// CleanInput is everything SelectCandidates needs.
type CleanInput struct {
	Entries []status.Entry
	// Base is the configured base branch; worktrees on it are never removed.
	Base    string
	Filters Filters
	// CurrentDir is the canonical working directory of the caller. The
	// worktree containing it is never removed.
	CurrentDir string
	Merges     MergeChecker
}

// SelectCandidates returns the worktrees matching at least one filter, in
// input order. The main worktree, the worktree containing CurrentDir,
// prunable and detached worktrees, and worktrees on the base branch are
// never selected. Empty filters select nothing.
func SelectCandidates(ctx context.Context, in CleanInput) []Candidate {
	if in.Filters.Empty() {
		return nil
	}
	l := log.FromContext(ctx)

	var out []Candidate
	for _, e := range in.Entries {
		wt := e.Worktree
		if !eligible(wt, in) {
			continue
		}

		var reasons []Reason
		if in.Filters.Merged && in.Merges != nil {
			merged, err := in.Merges.IsMerged(wt.BranchShort(), in.Base)
			if err != nil {
				l.Debug("merge check failed", "branch", wt.BranchShort(), "error", err)
			}
			if merged {
				reasons = append(reasons, ReasonMerged)
			}
		}
		if in.Filters.Gone && e.Status.UpstreamGone {
			reasons = append(reasons, ReasonGone)
		}
		if days := in.Filters.StaleDays; days != nil && e.Status.LastCommitAge != nil {
			if isStale(*e.Status.LastCommitAge, *days) {
				reasons = append(reasons, ReasonStale)
			}
		}

		if len(reasons) > 0 {
			out = append(out, Candidate{Worktree: wt, Reasons: reasons})
		}
	}
	return out
}

// isStale reports a commit age strictly older than days. A threshold beyond
// the representable range is never reached.
func isStale(age int64, days int) bool {
	if days < 0 || int64(days) > maxStaleDays {
		return false
	}
	return age > int64(days)*secondsPerDay
}

func eligible(wt worktree.Worktree, in CleanInput) bool {
	switch {
	case wt.Main, wt.Prunable(), wt.Detached():
		return false
	case wt.BranchShort() == "" || wt.BranchShort() == in.Base:
		return false
	case in.CurrentDir != "" && worktree.Contains(wt.Path, in.CurrentDir):
		return false
	}
	return true
}

// EvaluateDirty checks each candidate once and records the result. A
// candidate whose state cannot be determined is treated as dirty.
func EvaluateDirty(ctx context.Context, checker DirtyChecker, candidates []Candidate) {
	l := log.FromContext(ctx)
	for i := range candidates {
		dirty, err := checker.IsDirty(ctx, candidates[i].Worktree)
		if err != nil {
			l.Debug("dirty check failed", "path", candidates[i].Worktree.Path, "error", err)
			dirty = true
		}
		candidates[i].Dirty = dirty
	}
}

// Clean returns the candidates without uncommitted changes.
func Clean(candidates []Candidate) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if !c.Dirty {
			out = append(out, c)
		}
	}
	return out
}

// DirtyCount returns how many candidates have uncommitted changes.
func DirtyCount(candidates []Candidate) int {
	return len(candidates) - len(Clean(candidates))
}

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) (bool, error)

// Authorize decides whether n removals may proceed. yes bypasses the
// question; otherwise an interactive session is asked and a non-interactive
// one is refused with ErrConfirmationRequired.
func Authorize(yes, interactive bool, confirm Confirmer, n int) error {
	if yes {
		return nil
	}
	if !interactive || confirm == nil {
		return ErrConfirmationRequired
	}
	ok, err := confirm(fmt.Sprintf("Remove %d worktree(s)?", n))
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

// Failure is a removal that did not succeed.
type Failure struct {
	Candidate Candidate
	Err       error
}

// RemovalReport lists what RemoveCandidates did.
type RemovalReport struct {
	Removed []Candidate
	Failed  []Failure
}

// RemoveCandidates removes every clean candidate, one at a time and in
// order. Dirty candidates are never touched. A failed removal does not stop
// the rest. onRemoved, when non-nil, is called after each attempt.
func RemoveCandidates(ctx context.Context, r Remover, candidates []Candidate, onRemoved func(Candidate, error)) RemovalReport {
	var report RemovalReport
	for _, c := range Clean(candidates) {
		if ctx.Err() != nil {
			report.Failed = append(report.Failed, Failure{Candidate: c, Err: ctx.Err()})
			continue
		}
		err := r.Remove(ctx, c.Worktree)
		if err != nil {
			report.Failed = append(report.Failed, Failure{Candidate: c, Err: err})
		} else {
			report.Removed = append(report.Removed, c)
		}
		if onRemoved != nil {
			onRemoved(c, err)
		}
	}
	return report
}
