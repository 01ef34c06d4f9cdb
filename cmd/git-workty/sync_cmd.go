package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/maintenance"
	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/worktree"
)

type syncOptions struct {
	dryRun bool
	fetch  bool
}

func newSyncCmd() *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Rebase worktrees that are behind their upstream",
		GroupID: GroupMaintenance,
		Args:    cobra.NoArgs,
		Long: `Rebase every linked worktree that is behind its upstream branch.

Skipped: the main worktree, detached worktrees, worktrees without an
upstream, worktrees with uncommitted changes and worktrees that are up to
date. A rebase that fails is aborted, leaving the branch where it was.

Worktrees are rebased one at a time.`,
		Example: `  git workty sync --fetch
  git workty sync --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show what would be rebased")
	cmd.Flags().BoolVar(&opts.fetch, "fetch", false, "Fetch origin first")

	return cmd
}

func runSync(ctx context.Context, opts syncOptions) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	if opts.fetch {
		info(ctx, "Fetching from origin...")
		if err := git.Fetch(ctx, s.repo.Root, "origin", true); err != nil {
			warn(ctx, fmt.Sprintf("failed to fetch from origin: %v", err))
		}
	}

	list, err := s.worktrees(ctx)
	if err != nil {
		return err
	}
	agg := status.NewAggregator(s.repo)
	entries := agg.Aggregate(ctx, list, status.Minimal)

	report := maintenance.Sync(ctx, entries, maintenance.SyncDeps{
		Dirty:   agg,
		Rebaser: maintenance.GitRebaser{},
		DryRun:  opts.dryRun,
		Starting: func(wt worktree.Worktree) {
			info(ctx, fmt.Sprintf("%s: rebasing...", wt.Name()))
		},
		Progress: func(it maintenance.SyncItem) {
			reportSyncItem(ctx, it, opts.dryRun)
		},
	})

	c := report.Counts()
	info(ctx, "")
	if opts.dryRun {
		info(ctx, fmt.Sprintf("Would sync %d worktree(s)", c.Synced))
		return nil
	}
	info(ctx, fmt.Sprintf("Synced: %d, Skipped (dirty): %d, Skipped (no upstream): %d, Failed: %d",
		c.Synced, c.SkippedDirty, c.SkippedNoUpstream, c.Failed))
	return nil
}

func reportSyncItem(ctx context.Context, it maintenance.SyncItem, dryRun bool) {
	name := it.Worktree.Name()
	switch it.Outcome {
	case maintenance.OutcomeDirty:
		if !dryRun {
			warn(ctx, fmt.Sprintf("%s: skipped (dirty)", name))
		}
	case maintenance.OutcomeWouldSync:
		info(ctx, fmt.Sprintf("%s: would rebase (%d commits behind)", name, it.Behind))
	case maintenance.OutcomeSynced:
		success(ctx, fmt.Sprintf("%s: rebased", name))
	case maintenance.OutcomeFailed:
		warn(ctx, fmt.Sprintf("%s: rebase failed, aborted: %v", name, it.Err))
	}
}
