package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/W1Real/workty/internal/git"
)

// Diagnose checks every linked worktree registration of repo.
func Diagnose(repo *git.Repo) ([]Issue, Stats, error) {
	entries, err := repo.AdminEntries()
	if err != nil {
		return nil, Stats{}, err
	}

	var (
		issues []Issue
		stats  Stats
	)
	for _, e := range entries {
		issue, found := checkEntry(e)
		if !found {
			stats.Healthy++
			continue
		}
		switch issue.FixAction {
		case FixPrune:
			stats.Prunable++
		case FixRepair:
			stats.Repairable++
		default:
			stats.Stuck++
		}
		issues = append(issues, issue)
	}
	return issues, stats, nil
}

// ConfigIssues turns configuration load errors into issues.
func ConfigIssues(errs map[string]error) []Issue {
	var issues []Issue
	for _, source := range []string{"user config", "repository config"} {
		if err := errs[source]; err != nil {
			issues = append(issues, Issue{
				Key:         source,
				Description: err.Error(),
				Category:    CategoryConfig,
			})
		}
	}
	return issues
}

// checkEntry returns the issue of one registration, if any.
func checkEntry(e git.AdminEntry) (Issue, bool) {
	key := e.Path
	if key == "" {
		key = e.Dir
	}

	if e.Err != nil || e.Path == "" {
		return staleIssue(e, key, "registration metadata is unreadable"), true
	}
	if _, err := os.Stat(e.Path); err != nil {
		return staleIssue(e, key, "checkout directory no longer exists"), true
	}

	target, err := git.ReadGitdirPointer(filepath.Join(e.Path, ".git"))
	if err != nil {
		return Issue{
			Key:         key,
			Description: fmt.Sprintf("cannot read .git file: %v", err),
			FixAction:   FixRepair,
			Category:    CategoryWorktree,
		}, true
	}
	if !samePath(target, e.Dir) {
		return Issue{
			Key:         key,
			Description: fmt.Sprintf(".git points to %s instead of %s", target, e.Dir),
			FixAction:   FixRepair,
			Category:    CategoryWorktree,
		}, true
	}
	return Issue{}, false
}

func staleIssue(e git.AdminEntry, key, desc string) Issue {
	if e.Locked {
		return Issue{
			Key:         key,
			Description: desc + " (locked, run `git worktree unlock` first)",
			Category:    CategoryWorktree,
		}
	}
	return Issue{Key: key, Description: desc, FixAction: FixPrune, Category: CategoryWorktree}
}

// samePath compares two paths after resolving symlinks where possible.
func samePath(a, b string) bool {
	ca, errA := git.Canonicalize(a)
	cb, errB := git.Canonicalize(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return ca == cb
}
