package worktree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/W1Real/workty/internal/git"
	"github.com/W1Real/workty/internal/gittest"
)

func enumerate(t *testing.T, start string) []Worktree {
	t.Helper()
	repo, err := git.Discover(start)
	if err != nil {
		t.Fatalf("Discover(%s) = %v", start, err)
	}
	list, err := NewRegistry(repo).Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate = %v", err)
	}
	return list
}

func countMain(list []Worktree) int {
	n := 0
	for _, wt := range list {
		if wt.Main {
			n++
		}
	}
	return n
}

func TestEnumerate_MainOnly(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	list := enumerate(t, repoPath)

	if len(list) != 1 {
		t.Fatalf("got %d worktrees, want 1", len(list))
	}
	wt := list[0]
	if !wt.Main || wt.Path != repoPath || wt.BranchShort() != "main" || wt.Branch() != "refs/heads/main" {
		t.Errorf("main = %+v (checkout %+v)", wt, wt.Checkout)
	}
	if wt.Prunable() || wt.Locked || wt.Detached() {
		t.Errorf("main must be active, unlocked, attached: %+v", wt)
	}
	if wt.Head() != gittest.Git(t, repoPath, "rev-parse", "HEAD") {
		t.Errorf("Head = %q", wt.Head())
	}
}

func TestEnumerate_Classification(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	feature := gittest.AddWorktree(t, repoPath, "feature")
	locked := gittest.AddWorktree(t, repoPath, "locked")
	gittest.Git(t, repoPath, "worktree", "lock", locked)
	detached := filepath.Join(filepath.Dir(repoPath), "wt-detached")
	gittest.Git(t, repoPath, "worktree", "add", "-q", "--detach", detached)
	removed := gittest.AddWorktree(t, repoPath, "removed")
	if err := os.RemoveAll(removed); err != nil {
		t.Fatal(err)
	}

	// enumerate from inside a linked worktree: main is still first
	list := enumerate(t, feature)

	if got := countMain(list); got != 1 {
		t.Fatalf("main count = %d, want 1", got)
	}
	if len(list) != 5 {
		t.Fatalf("got %d worktrees, want 5: %+v", len(list), list)
	}
	if !list[0].Main || list[0].Path != repoPath {
		t.Errorf("list[0] = %+v, want main at %s", list[0], repoPath)
	}

	byName := map[string]Worktree{}
	for _, wt := range list[1:] {
		byName[filepath.Base(wt.Path)] = wt
	}

	if wt := byName["wt-feature"]; wt.Prunable() || wt.BranchShort() != "feature" || wt.Path != feature {
		t.Errorf("feature = %+v", wt)
	}
	if wt := byName["wt-locked"]; !wt.Locked || wt.Prunable() {
		t.Errorf("locked = %+v, want locked and active", wt)
	}
	if wt := byName["wt-detached"]; !wt.Detached() || wt.Branch() != "" || wt.BranchShort() != "" || wt.Head() == "" {
		t.Errorf("detached = %+v (checkout %+v)", wt, wt.Checkout)
	}
	wt := byName["wt-removed"]
	if !wt.Prunable() {
		t.Fatalf("removed = %+v, want prunable", wt)
	}
	if wt.Branch() != "" || wt.BranchShort() != "" || wt.Head() != "" || wt.Detached() {
		t.Errorf("prunable entry exposes checkout data: %+v", wt)
	}
	if wt.Name() != "wt-removed" {
		t.Errorf("prunable Name() = %q, want wt-removed", wt.Name())
	}
	if wt.Admin != "wt-removed" || list[0].Admin != "" {
		t.Errorf("Admin = %q (main %q), want wt-removed and empty", wt.Admin, list[0].Admin)
	}
}

func TestEnumerate_Order(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	for _, b := range []string{"c", "a", "b"} {
		gittest.AddWorktree(t, repoPath, b)
	}

	list := enumerate(t, repoPath)
	var names []string
	for _, wt := range list {
		names = append(names, wt.Name())
	}
	want := []string{"main", "a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names = %v, want %v", names, want)
			break
		}
	}
}

func TestEnumerate_CorruptMetadata(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	gittest.AddWorktree(t, repoPath, "broken")
	gitdirFile := filepath.Join(repoPath, ".git", "worktrees", "wt-broken", "gitdir")
	if err := os.Remove(gitdirFile); err != nil {
		t.Fatal(err)
	}

	list := enumerate(t, repoPath)
	if len(list) != 2 {
		t.Fatalf("got %d worktrees, want 2", len(list))
	}
	if !list[1].Prunable() {
		t.Errorf("worktree with missing gitdir = %+v, want prunable", list[1])
	}
}

func TestEnumerate_Symlinked(t *testing.T) {
	t.Parallel()

	repoPath := gittest.NewRepo(t)
	link := filepath.Join(filepath.Dir(repoPath), "link")
	if err := os.Symlink(repoPath, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	list := enumerate(t, link)
	if list[0].Path != repoPath {
		t.Errorf("main path = %s, want canonical %s", list[0].Path, repoPath)
	}
}

func TestFindByName(t *testing.T) {
	t.Parallel()

	list := []Worktree{
		{Path: "/src/repo", Main: true, Checkout: &Checkout{BranchShort: "main"}},
		{Path: "/src/repo-feature-x", Checkout: &Checkout{BranchShort: "feature/x"}},
		{Path: "/src/detached", Checkout: &Checkout{Detached: true}},
		{Path: "/src/feature/x"},
	}

	tests := []struct {
		name     string
		wantPath string
		found    bool
	}{
		{"main", "/src/repo", true},
		{"feature/x", "/src/repo-feature-x", true},
		{"repo-feature-x", "/src/repo-feature-x", true},
		{"detached", "/src/detached", true},
		{"x", "/src/feature/x", true},
		{"nope", "", false},
	}

	for _, tt := range tests {
		wt, ok := FindByName(list, tt.name)
		if ok != tt.found || wt.Path != tt.wantPath {
			t.Errorf("FindByName(%q) = %q, %v; want %q, %v", tt.name, wt.Path, ok, tt.wantPath, tt.found)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	list := []Worktree{
		{Path: "/r", Checkout: &Checkout{BranchShort: "main"}},
		{Path: "/r-login", Checkout: &Checkout{BranchShort: "feature/login"}},
		{Path: "/r-logout", Checkout: &Checkout{BranchShort: "feature/logout"}},
	}

	got := Suggest(list, "login")
	if len(got) == 0 || got[0] != "feature/login" {
		t.Errorf("Suggest(login) = %v, want feature/login first", got)
	}
	if got := Suggest(list, "zzz"); len(got) != 0 {
		t.Errorf("Suggest(zzz) = %v, want none", got)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir, path string
		want      bool
	}{
		{"/r-a", "/r-a", true},
		{"/r-a", "/r-a/src", true},
		{"/r-a", "/r-ab", false},
		{"/r-a", "/r", false},
		{"/r-a", "/r-a/..x", true},
	}
	for _, tt := range tests {
		if got := Contains(tt.dir, tt.path); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	list := []Worktree{
		{Path: "/src/repo", Main: true, Checkout: &Checkout{BranchShort: "main"}},
		{Path: "/src/repo/.worktrees/feature", Checkout: &Checkout{BranchShort: "feature"}},
		{Path: "/src/gone"},
	}

	tests := []struct {
		dir  string
		want string
	}{
		{"/src/repo/internal", "/src/repo"},
		{"/src/repo/.worktrees/feature/cmd", "/src/repo/.worktrees/feature"},
		{"/src/gone", ""},
		{"/elsewhere", ""},
	}
	for _, tt := range tests {
		wt, ok := Current(list, tt.dir)
		if wt.Path != tt.want || ok != (tt.want != "") {
			t.Errorf("Current(%q) = %q, %v; want %q", tt.dir, wt.Path, ok, tt.want)
		}
	}
}
