package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/log"
)

// Options configures Run.
type Options struct {
	Fix bool
	// ConfigErrs maps a config source ("user config", "repository config")
	// to the error loading it.
	ConfigErrs map[string]error
}

// Run diagnoses repo, prints a report to w and, with opts.Fix, repairs
// what it can.
func Run(ctx context.Context, w io.Writer, repo *git.Repo, opts Options) (Result, error) {
	fmt.Fprintln(w, "Checking worktree registrations...")
	issues, stats, err := Diagnose(repo)
	if err != nil {
		return Result{}, err
	}
	issues = append(issues, ConfigIssues(opts.ConfigErrs)...)
	log.FromContext(ctx).Debug("doctor", "healthy", stats.Healthy, "issues", len(issues))

	res := Result{Issues: issues, Stats: stats}
	printSummary(w, stats)

	if len(issues) == 0 {
		fmt.Fprintln(w, "\n✓ No issues found")
		return res, nil
	}

	fmt.Fprintf(w, "\nFound %d issue(s):\n", len(issues))
	printIssues(w, issues)

	if !opts.Fix {
		if fixable(issues) > 0 {
			fmt.Fprintln(w, "\nRun 'git workty doctor --fix' to repair.")
		}
		return res, nil
	}

	fmt.Fprintln(w)
	res.Fixed, res.Failed = Fix(ctx, w, repo.Root, issues)
	if res.Failed > 0 {
		fmt.Fprintf(w, "\nFixed %d issue(s), %d failed.\n", res.Fixed, res.Failed)
	} else {
		fmt.Fprintf(w, "\nFixed %d issue(s).\n", res.Fixed)
	}
	return res, nil
}

func fixable(issues []Issue) int {
	n := 0
	for _, issue := range issues {
		if issue.FixAction != FixNone {
			n++
		}
	}
	return n
}

func printSummary(w io.Writer, stats Stats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  ✓ %d linked worktree(s) healthy\n", stats.Healthy)
	if stats.Prunable > 0 {
		fmt.Fprintf(w, "  ⚠ %d stale registration(s) (prunable)\n", stats.Prunable)
	}
	if stats.Repairable > 0 {
		fmt.Fprintf(w, "  ⚠ %d broken link(s) (repairable)\n", stats.Repairable)
	}
	if stats.Stuck > 0 {
		fmt.Fprintf(w, "  ✗ %d locked stale registration(s)\n", stats.Stuck)
	}
}

// printIssues prints issues grouped by category.
func printIssues(w io.Writer, issues []Issue) {
	names := map[Category]string{
		CategoryWorktree: "Worktree issues",
		CategoryConfig:   "Config issues",
	}
	for _, cat := range []Category{CategoryWorktree, CategoryConfig} {
		header := false
		for _, issue := range issues {
			if issue.Category != cat {
				continue
			}
			if !header {
				fmt.Fprintf(w, "\n%s:\n", names[cat])
				header = true
			}
			fmt.Fprintf(w, "  • %s: %s\n", issue.Key, issue.Description)
		}
	}
}
