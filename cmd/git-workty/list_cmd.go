package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/output"
	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/ui/static"
	"github.com/W1Real/workty/internal/worktree"
)

type listOptions struct {
	json bool
	fast bool
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Show every worktree with its status",
		Aliases: []string{"ls"},
		GroupID: GroupStatus,
		Args:    cobra.NoArgs,
		Long: `Show every worktree of the current repository with its status.

Columns:
  BRANCH  branch name, or the directory name for detached worktrees
  DIRTY   number of modified, added, removed and untracked paths
  SYNC    commits ahead/behind the upstream, "gone" when the upstream
          branch was deleted, or commits not yet pushed anywhere
  AGE     time since the last commit
  REBASE  commits the base branch is ahead by
  PATH    worktree location

The current worktree is marked. This is the default command.`,
		Example: `  git workty                # Same as git workty list
  git workty list --fast    # Skip the dirty scan on large repositories
  git workty list --json    # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&opts.fast, "fast", false, "Skip the working tree scan (dirty counts show as 0)")

	return cmd
}

func runList(ctx context.Context, opts listOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	list, err := s.worktrees(ctx)
	if err != nil {
		return err
	}

	mode := status.Full
	if opts.fast {
		mode = status.Minimal
	}
	entries := status.NewAggregator(s.repo).Aggregate(ctx, list, mode)
	l.Debug("aggregated", "worktrees", len(entries), "fast", opts.fast)

	current := ""
	if wt, ok := worktree.Current(list, s.cwd); ok {
		current = wt.Path
	}

	if opts.json {
		return out.JSON(static.NewListJSON(s.repo.Root, s.repo.CommonDir, current, entries))
	}

	out.Print(static.RenderTable(static.ListHeaders, static.ListRows(entries, current, s.icons())))
	return nil
}
