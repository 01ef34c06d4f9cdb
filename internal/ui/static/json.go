package static

import (
	"github.com/W1Real/workty/internal/status"
)

// ListJSON is the machine-readable form of the worktree list.
// Absent values encode as null.
type ListJSON struct {
	Repo      RepoJSON       `json:"repo"`
	Current   string         `json:"current"`
	Worktrees []WorktreeJSON `json:"worktrees"`
}

// RepoJSON identifies the repository.
type RepoJSON struct {
	Root      string `json:"root"`
	CommonDir string `json:"common_dir"`
}

// WorktreeJSON is one worktree with its status.
type WorktreeJSON struct {
	Path              string  `json:"path"`
	Branch            *string `json:"branch"`
	BranchShort       *string `json:"branch_short"`
	Head              string  `json:"head"`
	Detached          bool    `json:"detached"`
	Locked            bool    `json:"locked"`
	Prunable          bool    `json:"prunable"`
	Main              bool    `json:"main"`
	DirtyCount        int     `json:"dirty_count"`
	Upstream          *string `json:"upstream"`
	Ahead             *int    `json:"ahead"`
	Behind            *int    `json:"behind"`
	UpstreamGone      bool    `json:"upstream_gone"`
	LastCommitSeconds *int64  `json:"last_commit_seconds"`
	BehindBase        *int    `json:"behind_base"`
	UntrackedCommits  *int    `json:"untracked_commits"`
}

// NewListJSON builds the JSON document for entries.
func NewListJSON(root, commonDir, current string, entries []status.Entry) ListJSON {
	out := ListJSON{
		Repo:      RepoJSON{Root: root, CommonDir: commonDir},
		Current:   current,
		Worktrees: make([]WorktreeJSON, 0, len(entries)),
	}
	for _, e := range entries {
		wt, st := e.Worktree, e.Status
		out.Worktrees = append(out.Worktrees, WorktreeJSON{
			Path:              wt.Path,
			Branch:            optional(wt.Branch()),
			BranchShort:       optional(wt.BranchShort()),
			Head:              wt.Head(),
			Detached:          wt.Detached(),
			Locked:            wt.Locked,
			Prunable:          wt.Prunable(),
			Main:              wt.Main,
			DirtyCount:        st.DirtyCount,
			Upstream:          st.Upstream,
			Ahead:             st.Ahead,
			Behind:            st.Behind,
			UpstreamGone:      st.UpstreamGone,
			LastCommitSeconds: st.LastCommitAge,
			BehindBase:        st.BehindBase,
			UntrackedCommits:  st.UntrackedCommits,
		})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
