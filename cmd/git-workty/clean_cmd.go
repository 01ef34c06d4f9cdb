package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/hooks"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/maintenance"
	"github.com/W1Real/workty/internal/output"
	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/ui"
	"github.com/W1Real/workty/internal/ui/prompt"
)

type cleanOptions struct {
	filters maintenance.Filters
	dryRun  bool
	yes     bool
	noHook  bool
}

func newCleanCmd() *cobra.Command {
	var (
		opts  cleanOptions
		stale int
	)

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Remove merged, abandoned or stale worktrees",
		GroupID: GroupMaintenance,
		Args:    cobra.NoArgs,
		Long: `Remove worktrees matching at least one filter:

  --merged    the branch is merged into the base branch
  --gone      the upstream branch was deleted on the remote
  --stale N   the last commit is more than N days old

The main worktree, the worktree you are in, detached worktrees and the
worktree of the base branch are never removed. Worktrees with uncommitted
changes are listed but skipped.

Removal asks for confirmation on a terminal. Without a terminal --yes is
required. Hooks configured with on = ["clean"] run once per removed
worktree.`,
		Example: `  git workty clean --merged --dry-run
  git workty fetch && git workty clean --gone
  git workty clean --stale 30 --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("stale") {
				if stale < 0 {
					return usageError(cmd, "--stale must not be negative, got %d", stale)
				}
				opts.filters.StaleDays = &stale
			}
			return runClean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.filters.Merged, "merged", false, "Select worktrees whose branch is merged into the base branch")
	cmd.Flags().BoolVar(&opts.filters.Gone, "gone", false, "Select worktrees whose upstream branch was deleted")
	cmd.Flags().IntVar(&stale, "stale", 0, "Select worktrees with no commit in more than `N` days")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show what would be removed")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&opts.noHook, "no-hook", false, "Do not run hooks")

	return cmd
}

func runClean(ctx context.Context, opts cleanOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if opts.filters.Empty() {
		info(ctx, "No filter specified. Use one of:")
		out.Println("  --merged      Remove worktrees whose branches are merged into base")
		out.Println("  --gone        Remove worktrees whose upstream branch was deleted")
		out.Println("  --stale N     Remove worktrees not touched in N days")
		out.Println()
		out.Println("Add --dry-run to preview what would be removed.")
		return nil
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	list, err := s.worktrees(ctx)
	if err != nil {
		return err
	}

	agg := status.NewAggregator(s.repo)

	// merged needs no status; gone and stale read the snapshot
	var entries []status.Entry
	if opts.filters.NeedsStatus() {
		entries = agg.Aggregate(ctx, list, status.Minimal)
	} else {
		entries = make([]status.Entry, len(list))
		for i, wt := range list {
			entries[i] = status.Entry{Worktree: wt}
		}
	}

	candidates := maintenance.SelectCandidates(ctx, maintenance.CleanInput{
		Entries:    entries,
		Base:       s.base,
		Filters:    opts.filters,
		CurrentDir: s.cwd,
		Merges:     s.repo,
	})
	if len(candidates) == 0 {
		info(ctx, "No worktrees to clean up.")
		return nil
	}

	maintenance.EvaluateDirty(ctx, agg, candidates)
	l.Debug("clean candidates", "count", len(candidates), "dirty", maintenance.DirtyCount(candidates))

	out.Println("Worktrees to remove:")
	for _, c := range candidates {
		line := fmt.Sprintf("  - %s (%s)", c.Worktree.Name(), reasons(c.Reasons))
		if c.Dirty {
			line += " (dirty)"
		}
		out.Println(line)
	}

	if opts.dryRun {
		info(ctx, "Dry run - no worktrees removed.")
		return nil
	}

	if n := maintenance.DirtyCount(candidates); n > 0 {
		warn(ctx, fmt.Sprintf("%d worktree(s) have uncommitted changes and will be skipped.", n))
	}

	removable := maintenance.Clean(candidates)
	if len(removable) == 0 {
		info(ctx, "All candidate worktrees have uncommitted changes. Nothing to remove.")
		return nil
	}

	err = maintenance.Authorize(opts.yes, ui.IsInteractive(), prompt.YesNo, len(removable))
	switch {
	case errors.Is(err, maintenance.ErrAborted):
		info(ctx, "Aborted.")
		return nil
	case errors.Is(err, maintenance.ErrConfirmationRequired):
		return &HintError{Err: err, Hint: "pass --yes to remove without asking"}
	case err != nil:
		return err
	}

	remover := maintenance.GitRemover{RepoRoot: s.repo.Root}
	report := maintenance.RemoveCandidates(ctx, remover, candidates, func(c maintenance.Candidate, err error) {
		if err != nil {
			warn(ctx, fmt.Sprintf("failed to remove '%s': %v", c.Worktree.Name(), err))
			return
		}
		success(ctx, fmt.Sprintf("Removed worktree '%s'", c.Worktree.Name()))
		if !opts.noHook {
			s.runHooks(ctx, hooks.TriggerClean, c.Worktree.Path, c.Worktree.BranchShort())
		}
	})

	info(ctx, fmt.Sprintf("Cleaned up %d worktree(s).", len(report.Removed)))
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d worktree(s) could not be removed", len(report.Failed))
	}
	return nil
}

func reasons(rs []maintenance.Reason) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
