package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/cmd"
	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/hooks"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/output"
	"github.com/W1Real/workty/internal/preserve"
	"github.com/W1Real/workty/internal/worktree"
)

type newOptions struct {
	from       string
	path       string
	printPath  bool
	open       bool
	noFetch    bool
	noPush     bool
	noPreserve bool
	noHook     bool
}

func newNewCmd() *cobra.Command {
	var opts newOptions

	c := &cobra.Command{
		Use:     "new <branch>",
		Short:   "Create a worktree for a branch",
		GroupID: GroupManage,
		Args:    cobra.ExactArgs(1),
		Long: `Create a worktree for a branch.

An existing local branch is checked out as is. Otherwise a new branch is
created from the base branch (or --from). When the base tracks a remote
branch, that remote branch is fetched first and the new branch starts from
its latest commit. The new branch is then pushed with --set-upstream.

The location comes from worktree_format in the config (default
"../{repo}-{branch}"); --path overrides it.

Git-ignored files matching [preserve] patterns in the config (for example
.env) are copied from the main worktree into the new one. Hooks configured
with on = ["new"] then run inside the new worktree.`,
		Example: `  git workty new feature-x
  git workty new fix/login --from develop
  cd "$(git workty new spike --print-path --no-push)"`,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runNew(cobraCmd.Context(), args[0], opts)
		},
	}

	c.Flags().StringVar(&opts.from, "from", "", "Start a new branch from this ref instead of the base branch")
	c.Flags().StringVar(&opts.path, "path", "", "Create the worktree at this path")
	c.Flags().BoolVar(&opts.printPath, "print-path", false, "Print only the new path to stdout")
	c.Flags().BoolVar(&opts.open, "open", false, "Run open_cmd with the new path")
	c.Flags().BoolVar(&opts.noFetch, "no-fetch", false, "Do not fetch the base branch first")
	c.Flags().BoolVar(&opts.noPush, "no-push", false, "Do not push the new branch")
	c.Flags().BoolVar(&opts.noPreserve, "no-preserve", false, "Do not copy preserved files into the new worktree")
	c.Flags().BoolVar(&opts.noHook, "no-hook", false, "Do not run hooks")

	return c
}

func runNew(ctx context.Context, branch string, opts newOptions) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	path := opts.path
	if path == "" {
		path = worktree.ResolvePath(s.repo.MainWorktreePath(), s.repo.Name(), branch, s.cfg.WorktreeFormat)
	}
	if path, err = filepath.Abs(path); err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return &HintError{
			Err:  fmt.Errorf("directory already exists: %s", path),
			Hint: "use --path to choose a different location",
		}
	}

	list, err := s.worktrees(ctx)
	if err != nil {
		return err
	}
	for _, wt := range list {
		if wt.BranchShort() == branch {
			return &HintError{
				Err:  fmt.Errorf("branch %q is already checked out at %s", branch, wt.Path),
				Hint: fmt.Sprintf("use `git workty go %s` to switch to it", branch),
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	if s.repo.BranchExists(branch) {
		info(ctx, fmt.Sprintf("Using existing branch '%s'", branch))
		if err := git.AddWorktree(ctx, s.repo.Root, path, branch); err != nil {
			return fmt.Errorf("failed to create worktree: %w", err)
		}
	} else {
		base := opts.from
		if base == "" {
			base = s.base
		}

		if !opts.noFetch {
			if up, ok := s.repo.Upstream(base); ok {
				if remote, ref, found := strings.Cut(up.Name, "/"); found {
					info(ctx, fmt.Sprintf("Fetching %s to ensure fresh start...", up.Name))
					if err := git.FetchRef(ctx, s.repo.Root, remote, ref); err != nil {
						l.Debug("fetch base failed", "upstream", up.Name, "error", err)
					}
					base = up.Name
				}
			}
		}

		info(ctx, fmt.Sprintf("Creating new branch '%s' from '%s'", branch, base))
		if err := git.AddWorktreeNewBranch(ctx, s.repo.Root, path, branch, base); err != nil {
			return fmt.Errorf("failed to create worktree: %w", err)
		}

		if !opts.noPush {
			info(ctx, "Setting upstream...")
			if err := git.PushUpstream(ctx, s.repo.Root, "origin", branch); err != nil {
				info(ctx, fmt.Sprintf("Note: could not set upstream: %v", err))
			} else {
				success(ctx, "Upstream set")
			}
		}
	}

	if !opts.noPreserve {
		copied, err := preserve.Copy(ctx, s.cfg.Preserve, s.repo.MainWorktreePath(), path)
		if err != nil {
			warn(ctx, fmt.Sprintf("could not copy preserved files: %v", err))
		} else if len(copied) > 0 {
			info(ctx, fmt.Sprintf("Preserved %d file(s): %s", len(copied), strings.Join(copied, ", ")))
		}
	}

	if !opts.noHook {
		s.runHooks(ctx, hooks.TriggerNew, path, branch)
	}

	if opts.printPath {
		out.Println(path)
	} else {
		success(ctx, fmt.Sprintf("Created worktree at %s", path))
	}

	if opts.open {
		openWorktree(ctx, s.cfg.OpenCmd, path)
	}
	return nil
}

// openWorktree runs the configured open command with path appended.
func openWorktree(ctx context.Context, openCmd, path string) {
	fields := strings.Fields(openCmd)
	if len(fields) == 0 {
		warn(ctx, "--open given but open_cmd is not configured")
		return
	}
	args := append(fields[1:], path)
	if err := cmd.RunContext(ctx, path, fields[0], args...); err != nil {
		warn(ctx, fmt.Sprintf("open_cmd failed: %v", err))
	}
}
