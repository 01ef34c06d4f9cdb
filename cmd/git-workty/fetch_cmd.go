package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/git"
)

func newFetchCmd() *cobra.Command {
	var (
		all   bool
		prune bool
	)

	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "Fetch from origin or all remotes",
		GroupID: GroupMaintenance,
		Args:    cobra.NoArgs,
		Long: `Fetch origin, or every configured remote with --all.

Remote-tracking branches deleted on the remote are pruned, which is what
lets list and clean --gone notice branches whose upstream is gone. A failed
remote is reported and the others are still fetched.`,
		Example: `  git workty fetch
  git workty fetch --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}

			remotes := []string{"origin"}
			if all {
				if remotes, err = s.repo.Remotes(); err != nil {
					return fmt.Errorf("failed to list remotes: %w", err)
				}
			}

			info(ctx, "Fetching from remotes...")
			for _, remote := range remotes {
				info(ctx, fmt.Sprintf("  Fetching %s...", remote))
				if err := git.Fetch(ctx, s.repo.Root, remote, prune); err != nil {
					warn(ctx, fmt.Sprintf("failed to fetch %s: %v", remote, err))
				}
			}

			suffix := "s"
			if len(remotes) == 1 {
				suffix = ""
			}
			success(ctx, fmt.Sprintf("Fetched %d remote%s", len(remotes), suffix))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Fetch every configured remote")
	cmd.Flags().BoolVar(&prune, "prune", true, "Prune remote-tracking branches that no longer exist")

	return cmd
}
