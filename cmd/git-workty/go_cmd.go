package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/output"
	"github.com/W1Real/workty/internal/worktree"
)

func newGoCmd() *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:     "go <name>",
		Short:   "Print the path of a worktree",
		GroupID: GroupNavigate,
		Args:    cobra.ExactArgs(1),
		Long: `Print the path of the worktree with the given branch or directory name.

A shell cannot be changed from a subprocess, so combine it with cd:

  cd "$(git workty go feature-x)"`,
		Example: `  cd "$(git workty go feature-x)"
  git workty go main --copy    # Also copy the path to the clipboard`,
		ValidArgsFunction: completeWorktreeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			list, err := s.worktrees(ctx)
			if err != nil {
				return err
			}

			wt, ok := worktree.FindByName(list, args[0])
			if !ok {
				return notFound(list, args[0])
			}

			out.Println(wt.Path)

			if copyPath {
				if err := clipboard.WriteAll(wt.Path); err != nil {
					warn(ctx, fmt.Sprintf("could not copy to clipboard: %v", err))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the path to the clipboard")

	return cmd
}
