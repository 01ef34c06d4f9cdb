package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/config"
	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/hooks"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/ui"
	"github.com/W1Real/workty/internal/ui/styles"
	"github.com/W1Real/workty/internal/worktree"
)

// errCancelled ends the process with exit code 130 and no message.
var errCancelled = errors.New("cancelled")

// HintError is an error with a follow-up suggestion for the user.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string { return e.Err.Error() }
func (e *HintError) Unwrap() error { return e.Err }

type workDirKey struct{}

// withWorkDir overrides the directory commands treat as the working directory.
func withWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

func workDir(ctx context.Context) (string, error) {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// discoverRepo finds the repository around the working directory and
// returns it with the canonical working directory.
func discoverRepo(ctx context.Context) (*git.Repo, string, error) {
	wd, err := workDir(ctx)
	if err != nil {
		return nil, "", err
	}
	cwd, err := git.Canonicalize(wd)
	if err != nil {
		cwd = wd
	}

	repo, err := git.Discover(cwd)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotFound) {
			return nil, "", &HintError{Err: err, Hint: "run git workty inside a git repository"}
		}
		return nil, "", err
	}
	return repo, cwd, nil
}

// session is the repository and effective configuration a command runs against.
type session struct {
	repo *git.Repo
	cfg  *config.Config
	// cwd is the canonical working directory.
	cwd string
	// base is the effective base branch.
	base string
}

// openSession discovers the repository around the working directory and
// layers its workty.toml and the environment over the user config.
func openSession(ctx context.Context) (*session, error) {
	l := log.FromContext(ctx)

	repo, cwd, err := discoverRepo(ctx)
	if err != nil {
		return nil, err
	}

	local, err := config.LoadLocal(repo.CommonDir)
	if err != nil {
		warn(ctx, err.Error())
	}
	merged := *config.MergeLocal(config.FromContext(ctx), local)
	c := &merged
	config.ApplyEnvOverrides(c)
	if err := c.Validate(); err != nil {
		warn(ctx, fmt.Sprintf("%v; using defaults", err))
		d := config.Default()
		d.Base = c.Base
		c = &d
	}

	fallback := repo.DefaultBranch()
	if fallback == "" {
		fallback = "main"
	}
	s := &session{repo: repo, cfg: c, cwd: cwd, base: c.BaseOr(fallback)}
	l.Debug("session", "root", repo.Root, "common_dir", repo.CommonDir, "base", s.base)
	return s, nil
}

// worktrees enumerates the worktrees of the session's repository.
func (s *session) worktrees(ctx context.Context) ([]worktree.Worktree, error) {
	return worktree.NewRegistry(s.repo).Enumerate(ctx)
}

// icons returns the icon set selected by --ascii or ui.ascii.
func (s *session) icons() styles.Icons {
	return styles.IconSet(ascii || s.cfg.UI.ASCII)
}

// runHooks runs the hooks configured for trigger against the worktree at
// path. Hook failures are reported as warnings.
func (s *session) runHooks(ctx context.Context, trigger hooks.Trigger, path, branch string) {
	matches := hooks.Select(s.cfg.Hooks, trigger)
	if len(matches) == 0 {
		return
	}
	mainPath := s.repo.MainWorktreePath()
	dir := mainPath
	if trigger == hooks.TriggerNew {
		dir = path
	}
	hc := hooks.Context{
		Path:     path,
		Branch:   branch,
		Repo:     s.repo.Name(),
		MainRepo: mainPath,
		Trigger:  trigger,
	}
	if err := hooks.Run(ctx, log.FromContext(ctx).Writer(), matches, hc, dir); err != nil {
		if ctx.Err() != nil {
			return
		}
		warn(ctx, err.Error())
	}
}

// notFound reports an unknown worktree name with close matches as a hint.
func notFound(list []worktree.Worktree, name string) error {
	hint := "use `git workty list` to see available worktrees"
	if suggestions := worktree.Suggest(list, name); len(suggestions) > 0 {
		hint = fmt.Sprintf("did you mean %s?", strings.Join(suggestions, ", "))
	}
	return &HintError{Err: fmt.Errorf("worktree %q not found", name), Hint: hint}
}

// info prints a plain progress message unless --quiet is set.
func info(ctx context.Context, msg string) {
	if quiet {
		return
	}
	ui.Info(log.FromContext(ctx).Writer(), msg)
}

// success prints a success message unless --quiet is set.
func success(ctx context.Context, msg string) {
	if quiet {
		return
	}
	ui.Success(log.FromContext(ctx).Writer(), msg)
}

// warn prints a warning. Warnings are shown even with --quiet.
func warn(ctx context.Context, msg string) {
	ui.Warning(log.FromContext(ctx).Writer(), msg)
}

// completeWorktreeNames completes worktree names of the current repository.
func completeWorktreeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	repo, err := git.Discover(".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	list, err := worktree.NewRegistry(repo).Enumerate(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, wt := range list {
		if name := wt.Name(); strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
