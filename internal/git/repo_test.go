package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/W1Real/workty/internal/gittest"
)

func TestDiscover(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	wtPath := gittest.AddWorktree(t, repoPath, "feature")
	if err := os.MkdirAll(filepath.Join(wtPath, "sub", "dir"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		start    string
		wantRoot string
	}{
		{"main root", repoPath, repoPath},
		{"linked root", wtPath, wtPath},
		{"linked subdirectory", filepath.Join(wtPath, "sub", "dir"), wtPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := Discover(tt.start)
			if err != nil {
				t.Fatalf("Discover(%s) = %v", tt.start, err)
			}
			if r.Root != tt.wantRoot {
				t.Errorf("Root = %s, want %s", r.Root, tt.wantRoot)
			}
			if want := filepath.Join(repoPath, ".git"); r.CommonDir != want {
				t.Errorf("CommonDir = %s, want %s", r.CommonDir, want)
			}
			if r.MainWorktreePath() != repoPath {
				t.Errorf("MainWorktreePath = %s, want %s", r.MainWorktreePath(), repoPath)
			}
		})
	}
}

func TestDiscover_LinkedGitDir(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	wtPath := gittest.AddWorktree(t, repoPath, "feature")

	r, err := Discover(wtPath)
	if err != nil {
		t.Fatalf("Discover = %v", err)
	}
	if want := filepath.Join(repoPath, ".git", "worktrees", filepath.Base(wtPath)); r.GitDir != want {
		t.Errorf("GitDir = %s, want %s", r.GitDir, want)
	}
}

func TestDiscover_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := Discover(gittest.ResolveTempDir(t))
	if !errors.Is(err, ErrRepositoryNotFound) {
		t.Errorf("Discover(empty dir) = %v, want ErrRepositoryNotFound", err)
	}
}

func TestDiscover_Bare(t *testing.T) {
	t.Parallel()

	bare := filepath.Join(gittest.ResolveTempDir(t), "bare.git")
	gittest.Git(t, "", "init", "--bare", bare)

	_, err := Discover(bare)
	if !errors.Is(err, ErrBareRepository) {
		t.Errorf("Discover(bare) = %v, want ErrBareRepository", err)
	}
}

func TestAdminEntries(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	wtA := gittest.AddWorktree(t, repoPath, "a")
	wtB := gittest.AddWorktree(t, repoPath, "b")
	gittest.Git(t, repoPath, "worktree", "lock", wtB)

	r, err := Discover(repoPath)
	if err != nil {
		t.Fatalf("Discover = %v", err)
	}
	entries, err := r.AdminEntries()
	if err != nil {
		t.Fatalf("AdminEntries = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Path != wtA || entries[0].Locked {
		t.Errorf("entries[0] = %+v, want unlocked %s", entries[0], wtA)
	}
	if entries[1].Path != wtB || !entries[1].Locked {
		t.Errorf("entries[1] = %+v, want locked %s", entries[1], wtB)
	}
}

func TestAdminEntries_None(t *testing.T) {
	t.Parallel()

	r, err := Discover(gittest.NewRepo(t))
	if err != nil {
		t.Fatalf("Discover = %v", err)
	}
	entries, err := r.AdminEntries()
	if err != nil || len(entries) != 0 {
		t.Errorf("AdminEntries = %v, %v; want empty, nil", entries, err)
	}
}

func TestResolveBase(t *testing.T) {
	t.Parallel()

	t.Run("origin/main", func(t *testing.T) {
		t.Parallel()
		repoPath, _ := gittest.NewRepoWithOrigin(t)
		r, err := Discover(repoPath)
		if err != nil {
			t.Fatal(err)
		}
		hash, ok := r.ResolveBase()
		if !ok {
			t.Fatal("ResolveBase() not found")
		}
		if want := gittest.Git(t, repoPath, "rev-parse", "origin/main"); hash.String() != want {
			t.Errorf("ResolveBase = %s, want %s", hash, want)
		}
	})

	t.Run("no remote", func(t *testing.T) {
		t.Parallel()
		r, err := Discover(gittest.NewRepo(t))
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := r.ResolveBase(); ok {
			t.Error("ResolveBase() found a base without any remote")
		}
	})
}

func TestIsMerged(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	// merged: branch behind main
	gittest.Git(t, repoPath, "branch", "merged")
	gittest.Commit(t, repoPath, "a.txt", "a", "advance main")
	// same tip as main: not merged
	gittest.Git(t, repoPath, "branch", "same")
	// diverged: has its own commit
	gittest.Git(t, repoPath, "checkout", "-q", "-b", "diverged")
	gittest.Commit(t, repoPath, "b.txt", "b", "own work")
	gittest.Git(t, repoPath, "checkout", "-q", "main")

	r, err := Discover(repoPath)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		branch string
		want   bool
	}{
		{"merged", true},
		{"same", false},
		{"diverged", false},
		{"missing", false},
	}
	for _, tt := range tests {
		got, err := r.IsMerged(tt.branch, "main")
		if err != nil {
			t.Errorf("IsMerged(%s) error = %v", tt.branch, err)
		}
		if got != tt.want {
			t.Errorf("IsMerged(%s) = %v, want %v", tt.branch, got, tt.want)
		}
	}
}

func TestIsMerged_RemoteBase(t *testing.T) {
	t.Parallel()

	repoPath, _ := gittest.NewRepoWithOrigin(t)
	gittest.Git(t, repoPath, "branch", "old")
	gittest.Commit(t, repoPath, "a.txt", "a", "advance")
	gittest.Git(t, repoPath, "push", "-q", "origin", "main")
	// local main rewound: only origin/main contains "old"
	gittest.Git(t, repoPath, "checkout", "-q", "-b", "other")
	gittest.Git(t, repoPath, "branch", "-f", "main", "old")

	r, err := Discover(repoPath)
	if err != nil {
		t.Fatal(err)
	}
	// local main equals old, so only origin/main can prove the merge
	got, err := r.IsMerged("old", "main")
	if err != nil {
		t.Fatalf("IsMerged = %v", err)
	}
	if !got {
		t.Error("IsMerged(old) = false, want true via origin/main")
	}
}

func TestDefaultBranchAndExists(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	r, err := Discover(repoPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.DefaultBranch(); got != "main" {
		t.Errorf("DefaultBranch = %q, want main", got)
	}
	if !r.BranchExists("main") {
		t.Error("BranchExists(main) = false")
	}
	if r.BranchExists("nope") {
		t.Error("BranchExists(nope) = true")
	}
}

func TestUpstreamAndRemotes(t *testing.T) {
	t.Parallel()

	repoPath, originPath := gittest.NewRepoWithOrigin(t)
	r, err := Discover(repoPath)
	if err != nil {
		t.Fatal(err)
	}

	up, ok := r.Upstream("main")
	if !ok {
		t.Fatal("Upstream(main) not found")
	}
	if up.Name != "origin/main" || up.Ref != plumbing.NewRemoteReferenceName("origin", "main") {
		t.Errorf("Upstream(main) = %+v", up)
	}
	if _, ok := r.Upstream("nope"); ok {
		t.Error("Upstream(nope) found")
	}

	remotes, err := r.Remotes()
	if err != nil || len(remotes) != 1 || remotes[0] != "origin" {
		t.Errorf("Remotes = %v, %v; want [origin]", remotes, err)
	}
	if got := r.OriginURL(); got != originPath {
		t.Errorf("OriginURL = %q, want %q", got, originPath)
	}
}

func TestHandle_Head(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	wtPath := gittest.AddWorktree(t, repoPath, "feature/x")
	detached := filepath.Join(filepath.Dir(repoPath), "detached")
	gittest.Git(t, repoPath, "worktree", "add", "-q", "--detach", detached)

	t.Run("branch", func(t *testing.T) {
		h, err := Open(wtPath)
		if err != nil {
			t.Fatal(err)
		}
		head, err := h.Head()
		if err != nil {
			t.Fatal(err)
		}
		if head.Detached || head.Branch != "refs/heads/feature/x" || head.Branch.Short() != "feature/x" {
			t.Errorf("Head = %+v", head)
		}
		if want := gittest.Git(t, wtPath, "rev-parse", "HEAD"); head.Hash.String() != want {
			t.Errorf("Hash = %s, want %s", head.Hash, want)
		}
	})

	t.Run("detached", func(t *testing.T) {
		h, err := Open(detached)
		if err != nil {
			t.Fatal(err)
		}
		head, err := h.Head()
		if err != nil {
			t.Fatal(err)
		}
		if !head.Detached || head.Branch != "" || head.Hash.IsZero() {
			t.Errorf("Head = %+v, want detached with hash", head)
		}
	})

	t.Run("unborn", func(t *testing.T) {
		dir := filepath.Join(gittest.ResolveTempDir(t), "empty")
		gittest.Git(t, "", "init", "-q", "-b", "trunk", dir)
		h, err := Open(dir)
		if err != nil {
			t.Fatal(err)
		}
		head, err := h.Head()
		if err != nil {
			t.Fatal(err)
		}
		if !head.Unborn() || head.Branch.Short() != "trunk" {
			t.Errorf("Head = %+v, want unborn trunk", head)
		}
	})
}

func TestHandle_AheadBehind(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	base := gittest.Git(t, repoPath, "rev-parse", "HEAD")
	gittest.Git(t, repoPath, "checkout", "-q", "-b", "side")
	gittest.Commit(t, repoPath, "s1", "1", "s1")
	gittest.Commit(t, repoPath, "s2", "2", "s2")
	side := gittest.Git(t, repoPath, "rev-parse", "HEAD")
	gittest.Git(t, repoPath, "checkout", "-q", "main")
	gittest.Commit(t, repoPath, "m1", "1", "m1")
	gittest.Commit(t, repoPath, "m2", "2", "m2")
	gittest.Commit(t, repoPath, "m3", "3", "m3")
	main := gittest.Git(t, repoPath, "rev-parse", "HEAD")

	h, err := Open(repoPath)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		a, b       string
		ahead, beh int
	}{
		{"diverged", side, main, 2, 3},
		{"reverse", main, side, 3, 2},
		{"equal", main, main, 0, 0},
		{"ancestor", base, main, 0, 3},
	}
	for _, tt := range tests {
		ahead, behind, err := h.AheadBehind(plumbing.NewHash(tt.a), plumbing.NewHash(tt.b))
		if err != nil {
			t.Fatalf("%s: AheadBehind = %v", tt.name, err)
		}
		if ahead != tt.ahead || behind != tt.beh {
			t.Errorf("%s: AheadBehind = (%d, %d), want (%d, %d)", tt.name, ahead, behind, tt.ahead, tt.beh)
		}
	}

	// side merged main back in: everything on main is reachable from it
	gittest.Git(t, repoPath, "checkout", "-q", "-b", "merged", side)
	gittest.Git(t, repoPath, "merge", "-q", "--no-edit", "main")
	merged := gittest.Git(t, repoPath, "rev-parse", "HEAD")
	for _, tt := range []struct {
		name       string
		b          string
		ahead, beh int
	}{
		{"merged vs main", main, 3, 0},
		{"merged vs side", side, 4, 0},
	} {
		ahead, behind, err := h.AheadBehind(plumbing.NewHash(merged), plumbing.NewHash(tt.b))
		if err != nil {
			t.Fatalf("%s: AheadBehind = %v", tt.name, err)
		}
		if ahead != tt.ahead || behind != tt.beh {
			t.Errorf("%s: AheadBehind = (%d, %d), want (%d, %d)", tt.name, ahead, behind, tt.ahead, tt.beh)
		}
	}

	if _, _, err := h.AheadBehind(plumbing.NewHash("1111111111111111111111111111111111111111"), plumbing.NewHash(main)); err == nil {
		t.Error("AheadBehind with unknown commit = nil error, want error")
	}
}

func TestDirtyCount(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	ctx := context.Background()

	n, err := DirtyCount(ctx, repoPath)
	if err != nil || n != 0 {
		t.Fatalf("DirtyCount(clean) = %d, %v; want 0", n, err)
	}

	gittest.WriteFile(t, repoPath, "README.md", "changed\n")
	gittest.WriteFile(t, repoPath, "untracked/a.txt", "a")
	gittest.WriteFile(t, repoPath, "untracked/b.txt", "b")
	gittest.WriteFile(t, repoPath, "staged.txt", "s")
	gittest.Git(t, repoPath, "add", "staged.txt")

	n, err = DirtyCount(ctx, repoPath)
	if err != nil {
		t.Fatal(err)
	}
	// modified README, staged file, untracked directory counted once
	if n != 3 {
		t.Errorf("DirtyCount = %d, want 3", n)
	}
}

func TestDirtyCount_InvalidEncoding(t *testing.T) {
	t.Parallel()
	_, err := DirtyCount(context.Background(), "/tmp/\xff")
	if !errors.Is(err, ErrInvalidPathEncoding) {
		t.Errorf("DirtyCount = %v, want ErrInvalidPathEncoding", err)
	}
}

func TestRebaseAndAbort(t *testing.T) {
	t.Parallel()

	repoPath, _ := gittest.NewRepoWithOrigin(t)
	ctx := context.Background()

	// conflicting change upstream vs local
	gittest.Commit(t, repoPath, "README.md", "local\n", "local change")
	before := gittest.Git(t, repoPath, "rev-parse", "HEAD")
	gittest.Git(t, repoPath, "checkout", "-q", "-b", "tmp", "origin/main")
	gittest.Commit(t, repoPath, "README.md", "remote\n", "remote change")
	gittest.Git(t, repoPath, "push", "-q", "origin", "tmp:main")
	gittest.Git(t, repoPath, "checkout", "-q", "main")
	gittest.Git(t, repoPath, "fetch", "-q", "origin")

	if err := Rebase(ctx, repoPath); err == nil {
		t.Fatal("Rebase = nil, want conflict error")
	}
	if err := AbortRebase(ctx, repoPath); err != nil {
		t.Fatalf("AbortRebase = %v", err)
	}
	if after := gittest.Git(t, repoPath, "rev-parse", "HEAD"); after != before {
		t.Errorf("HEAD after abort = %s, want %s", after, before)
	}
}

func TestRemoveWorktree(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	wtPath := gittest.AddWorktree(t, repoPath, "gone")
	if err := RemoveWorktree(context.Background(), repoPath, wtPath, false); err != nil {
		t.Fatalf("RemoveWorktree = %v", err)
	}
	if _, err := os.Stat(wtPath); !os.IsNotExist(err) {
		t.Errorf("worktree dir still exists: %v", err)
	}
}

func TestReadGitdirPointer(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"absolute", "gitdir: /repo/.git/worktrees/x\n", "/repo/.git/worktrees/x", false},
		{"relative", "gitdir: ../repo/.git/worktrees/x", filepath.Join(filepath.Dir(dir), "repo/.git/worktrees/x"), false},
		{"no prefix", "/repo/.git", "", true},
		{"empty", "gitdir:   ", "", true},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadGitdirPointer(path)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolveCommonDir(t *testing.T) {
	t.Parallel()

	root := gittest.ResolveTempDir(t)
	common := filepath.Join(root, "repo", ".git")
	linked := filepath.Join(common, "worktrees", "feature")
	withFile := filepath.Join(common, "worktrees", "pointed")
	for _, dir := range []string{linked, withFile} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(withFile, "commondir"), []byte("../..\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		gitDir string
		want   string
	}{
		{"main gitdir", common, common},
		{"linked without commondir", linked, common},
		{"linked with commondir", withFile, common},
	}
	for _, tt := range tests {
		got, err := resolveCommonDir(tt.gitDir)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: resolveCommonDir = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRemoveRegistration(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	pathA := gittest.AddWorktree(t, repoPath, "a")
	gittest.AddWorktree(t, repoPath, "b")
	if err := os.RemoveAll(pathA); err != nil {
		t.Fatal(err)
	}

	repo, err := Discover(repoPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"", ".", "..", "../worktrees", "missing"} {
		if err := repo.RemoveRegistration(bad); err == nil {
			t.Errorf("RemoveRegistration(%q) = nil, want error", bad)
		}
	}

	if err := repo.RemoveRegistration("wt-a"); err != nil {
		t.Fatalf("RemoveRegistration = %v", err)
	}
	entries, err := repo.AdminEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "wt-b" {
		t.Errorf("entries after removal = %+v, want only wt-b", entries)
	}
}
