// Package git is the repository accessor for git-workty.
//
// Reads (HEAD, refs, branch config, commit graph, commit times) go through
// go-git so they run in-process and can fan out across goroutines: every
// goroutine opens its own [Handle]. The discovered [Repo] keeps a single
// go-git handle on the main repository behind a mutex for the few shared
// queries (base resolution, merge checks, branch lookups).
//
// Mutations shell out to the git binary so user configuration applies
// (hooks, credential helpers, rebase settings):
//
//   - [RemoveWorktree], [AddWorktree], [AddWorktreeNewBranch]
//   - [Rebase], [AbortRebase]
//   - [Fetch], [FetchRef], [PushUpstream], [DeleteBranch]
//   - [PruneWorktrees], [RepairWorktree]
//
// The working-tree dirty count also uses the binary ([DirtyCount]) because
// git's status honours .gitignore chains, core.excludesFile and the untracked
// cache exactly; go-git's status is the fallback.
//
// # Worktree metadata
//
// Linked worktrees are registered under <common-dir>/worktrees/<name>/.
// [Repo.AdminEntries] reads that directory directly; the main worktree is
// the parent of the common directory.
package git
