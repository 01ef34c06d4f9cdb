package doctor

// Category groups issues by what they concern.
type Category string

const (
	// CategoryWorktree covers worktree registrations and links.
	CategoryWorktree Category = "worktree"
	// CategoryConfig covers configuration files.
	CategoryConfig Category = "config"
)

// FixAction is what --fix does about an issue.
type FixAction string

const (
	FixNone   FixAction = ""
	FixPrune  FixAction = "prune"
	FixRepair FixAction = "repair"
)

// Issue is a problem found by doctor.
type Issue struct {
	Key         string // worktree path or config source
	Description string
	FixAction   FixAction
	Category    Category
}

// Stats counts linked worktrees by health.
type Stats struct {
	Healthy    int
	Prunable   int
	Repairable int
	Stuck      int // locked stale registrations that prune leaves alone
}

// Result is the outcome of Run.
type Result struct {
	Issues []Issue
	Stats  Stats
	Fixed  int
	Failed int
}
