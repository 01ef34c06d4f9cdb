package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/hooks"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/ui"
	"github.com/W1Real/workty/internal/ui/prompt"
	"github.com/W1Real/workty/internal/worktree"
)

type rmOptions struct {
	force        bool
	deleteBranch bool
	yes          bool
	noHook       bool
}

func newRmCmd() *cobra.Command {
	var opts rmOptions

	cmd := &cobra.Command{
		Use:     "rm <name>",
		Short:   "Remove a worktree",
		Aliases: []string{"remove"},
		GroupID: GroupManage,
		Args:    cobra.ExactArgs(1),
		Long: `Remove the worktree with the given branch or directory name.

The main worktree and the worktree you are in cannot be removed. A worktree
with uncommitted changes is only removed with --force. On a terminal you
are asked to confirm unless --yes is given. Hooks configured with
on = ["rm"] run in the main worktree afterwards.`,
		Example: `  git workty rm feature-x
  git workty rm feature-x --delete-branch
  git workty rm spike --force --yes`,
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Remove even with uncommitted changes")
	cmd.Flags().BoolVarP(&opts.deleteBranch, "delete-branch", "d", false, "Also delete the branch (git branch -d)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&opts.noHook, "no-hook", false, "Do not run hooks")

	return cmd
}

func runRm(ctx context.Context, name string, opts rmOptions) error {
	l := log.FromContext(ctx)

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	list, err := s.worktrees(ctx)
	if err != nil {
		return err
	}

	wt, ok := worktree.FindByName(list, name)
	if !ok {
		return notFound(list, name)
	}

	if wt.Main {
		return errors.New("cannot remove the main worktree (original repository clone)")
	}
	if worktree.Contains(wt.Path, s.cwd) {
		return &HintError{
			Err:  errors.New("cannot remove the current worktree"),
			Hint: "change to a different worktree first",
		}
	}

	if wt.Locked && wt.Prunable() {
		return &HintError{
			Err:  fmt.Errorf("worktree '%s' is locked", name),
			Hint: fmt.Sprintf("run `git worktree unlock %s` first", wt.Path),
		}
	}

	dirty, err := status.NewAggregator(s.repo).IsDirty(ctx, wt)
	if err != nil {
		l.Debug("dirty check failed", "path", wt.Path, "error", err)
		dirty = true
	}
	if dirty && !opts.force {
		return &HintError{
			Err:  fmt.Errorf("worktree '%s' has uncommitted changes", name),
			Hint: "use --force to remove anyway",
		}
	}
	if dirty {
		warn(ctx, fmt.Sprintf("worktree '%s' has uncommitted changes (--force specified)", name))
	}

	if !opts.yes && ui.IsInteractive() {
		question := fmt.Sprintf("Remove worktree '%s'?", name)
		if opts.deleteBranch && wt.BranchShort() != "" {
			question = fmt.Sprintf("Remove worktree '%s' and its branch?", name)
		}
		ok, err := prompt.YesNo(question)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("aborted")
		}
	}

	if wt.Prunable() {
		// the directory is already gone; drop only this registration
		if err := s.repo.RemoveRegistration(wt.Admin); err != nil {
			return fmt.Errorf("failed to remove registration: %w", err)
		}
	} else if err := git.RemoveWorktree(ctx, s.repo.Root, wt.Path, opts.force); err != nil {
		return fmt.Errorf("failed to remove worktree: %w", err)
	}
	success(ctx, fmt.Sprintf("Removed worktree '%s'", name))
	if !opts.noHook {
		s.runHooks(ctx, hooks.TriggerRm, wt.Path, wt.BranchShort())
	}

	if branch := wt.BranchShort(); opts.deleteBranch && branch != "" {
		if err := git.DeleteBranch(ctx, s.repo.Root, branch, false); err != nil {
			warn(ctx, fmt.Sprintf("could not delete branch '%s': %v", branch, err))
			info(ctx, fmt.Sprintf("hint: use `git branch -D %s` to force delete", branch))
		} else {
			success(ctx, fmt.Sprintf("Deleted branch '%s'", branch))
		}
	}
	return nil
}
