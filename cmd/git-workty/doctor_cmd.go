package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/config"
	"github.com/W1Real/workty/internal/doctor"
	"github.com/W1Real/workty/internal/output"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair worktree registrations",
		GroupID: GroupMaintenance,
		Args:    cobra.NoArgs,
		Long: `Check the worktree registrations of the repository and the config files.

Reported problems:
  - stale registrations whose directory was deleted without git
  - broken links after the main checkout was moved
  - config files that fail to load

With --fix, stale registrations are pruned and broken links repaired.
Locked worktrees and config problems must be fixed by hand.`,
		Example: `  git workty doctor
  git workty doctor --fix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair the issues found")

	return cmd
}

func runDoctor(ctx context.Context, fix bool) error {
	out := output.FromContext(ctx)

	repo, _, err := discoverRepo(ctx)
	if err != nil {
		return err
	}

	configErrs := map[string]error{}
	if _, err := config.Load(); err != nil {
		configErrs["user config"] = err
	}
	if _, err := config.LoadLocal(repo.CommonDir); err != nil {
		configErrs["repository config"] = err
	}

	res, err := doctor.Run(ctx, out.Writer(), repo, doctor.Options{Fix: fix, ConfigErrs: configErrs})
	if err != nil {
		return fmt.Errorf("doctor: %w", err)
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d issue(s) could not be fixed", res.Failed)
	}
	return nil
}
