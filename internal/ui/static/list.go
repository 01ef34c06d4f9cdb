package static

import (
	"fmt"

	"github.com/W1Real/workty/internal/format"
	"github.com/W1Real/workty/internal/status"
	"github.com/W1Real/workty/internal/ui/styles"
)

// ListHeaders are the columns of the worktree table. The first column holds
// the current-worktree marker.
var ListHeaders = []string{"", "BRANCH", "DIRTY", "SYNC", "AGE", "REBASE", "PATH"}

// ListRows builds one table row per entry. current is the canonical path of
// the worktree the user is in, or empty.
func ListRows(entries []status.Entry, current string, icons styles.Icons) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ListRow(e, e.Worktree.Path == current, icons))
	}
	return rows
}

// ListRow formats a single entry.
func ListRow(e status.Entry, isCurrent bool, icons styles.Icons) []string {
	marker := " "
	if isCurrent {
		marker = styles.CurrentStyle.Render(icons.Current)
	}
	return []string{
		marker,
		nameCell(e, isCurrent),
		DirtyCell(e.Status, icons),
		SyncCell(e.Status, icons),
		styles.MutedStyle.Render(AgeCell(e.Status)),
		RebaseCell(e.Status, icons),
		styles.MutedStyle.Render(format.ShortenPath(e.Worktree.Path)),
	}
}

func nameCell(e status.Entry, isCurrent bool) string {
	wt := e.Worktree
	name := wt.Name()
	switch {
	case wt.Prunable():
		return styles.MutedStyle.Render(name + " (prunable)")
	case wt.Detached():
		name += " (detached)"
	case wt.Locked:
		name += " (locked)"
	}
	switch {
	case isCurrent:
		return styles.CurrentStyle.Render(name)
	case e.Status.Dirty():
		return styles.WarningStyle.Render(name)
	}
	return name
}

// DirtyCell shows the number of changed entries, or a clean mark.
func DirtyCell(st status.Status, icons styles.Icons) string {
	if st.Dirty() {
		return styles.WarningStyle.Render(fmt.Sprintf("%s %d", icons.Dirty, st.DirtyCount))
	}
	return styles.SuccessStyle.Render(icons.Clean)
}

// SyncCell shows ahead/behind counts against the upstream.
func SyncCell(st status.Status, icons styles.Icons) string {
	switch {
	case st.UpstreamGone:
		return styles.ErrorStyle.Render("gone")
	case st.Ahead != nil && st.Behind != nil:
		return fmt.Sprintf("%s%d %s%d", icons.ArrowUp, *st.Ahead, icons.ArrowDown, *st.Behind)
	case st.UntrackedCommits != nil && *st.UntrackedCommits > 0:
		return styles.MutedStyle.Render(fmt.Sprintf("%s%d local", icons.ArrowUp, *st.UntrackedCommits))
	}
	return "-"
}

// AgeCell shows the age of the last commit.
func AgeCell(st status.Status) string {
	if st.LastCommitAge == nil {
		return "-"
	}
	return format.Age(*st.LastCommitAge)
}

// RebaseCell shows how far the worktree is behind the base branch.
func RebaseCell(st status.Status, icons styles.Icons) string {
	if !st.NeedsRebase() {
		return "-"
	}
	return styles.ErrorStyle.Render(fmt.Sprintf("%s %d", icons.Rebase, *st.BehindBase))
}
