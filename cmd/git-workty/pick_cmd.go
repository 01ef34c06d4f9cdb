package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/output"
	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/ui"
	"github.com/W1Real/workty/internal/ui/picker"
	"github.com/W1Real/workty/internal/ui/static"
	"github.com/W1Real/workty/internal/ui/styles"
)

func newPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pick",
		Short:   "Choose a worktree interactively and print its path",
		GroupID: GroupNavigate,
		Args:    cobra.NoArgs,
		Long: `Open a fuzzy finder over all worktrees and print the selected path.

Type to filter by branch name; the list shows dirty count, last commit age
and how far the base branch is ahead. Esc or Ctrl+C cancels with exit
code 130.`,
		Example: `  cd "$(git workty pick)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if !ui.IsInteractive() {
				return &HintError{
					Err:  errors.New("cannot run interactive picker without a terminal"),
					Hint: "use `git workty go <name>` instead",
				}
			}

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			list, err := s.worktrees(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return errors.New("no worktrees found")
			}

			entries := status.NewAggregator(s.repo).Aggregate(ctx, list, status.Full)
			icons := s.icons()

			items := make([]picker.Item, len(entries))
			for i, e := range entries {
				items[i] = picker.Item{Label: e.Worktree.Name(), Detail: pickDetail(e, icons)}
			}

			res, err := picker.Run("Select worktree", items)
			if err != nil {
				return fmt.Errorf("picker: %w", err)
			}
			if res.Cancelled {
				return errCancelled
			}

			out.Println(entries[res.Index].Worktree.Path)
			return nil
		},
	}

	return cmd
}

// pickDetail summarizes an entry for the picker: dirty count, age, rebase.
func pickDetail(e status.Entry, icons styles.Icons) string {
	parts := []string{static.AgeCell(e.Status)}
	if e.Status.Dirty() {
		parts = append([]string{fmt.Sprintf("%s%d", icons.Dirty, e.Status.DirtyCount)}, parts...)
	}
	if e.Status.NeedsRebase() {
		parts = append(parts, fmt.Sprintf("%s%d", icons.Rebase, *e.Status.BehindBase))
	}
	return strings.Join(parts, "  ")
}
