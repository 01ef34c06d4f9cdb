package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/W1Real/workty/internal/cmd"
	"github.com/W1Real/workty/internal/config"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/ui"
)

// Trigger identifies the command that fires a hook.
type Trigger string

const (
	TriggerNew   Trigger = "new"
	TriggerRm    Trigger = "rm"
	TriggerClean Trigger = "clean"
)

// Context holds the values for placeholder substitution.
type Context struct {
	Path     string // absolute worktree path
	Branch   string
	Repo     string
	MainRepo string // main worktree path
	Trigger  Trigger
}

// Match is a configured hook selected for a trigger.
type Match struct {
	Name string
	Hook config.Hook
}

// Select returns the enabled hooks whose "on" list contains trigger or
// "all", ordered by name.
func Select(hooks map[string]config.Hook, trigger Trigger) []Match {
	var matches []Match
	for name, hook := range hooks {
		if !hook.IsEnabled() {
			continue
		}
		if slices.Contains(hook.On, "all") || slices.Contains(hook.On, string(trigger)) {
			matches = append(matches, Match{Name: name, Hook: hook})
		}
	}
	slices.SortFunc(matches, func(a, b Match) int { return strings.Compare(a.Name, b.Name) })
	return matches
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
// e.g. "it's" becomes 'it'\''s'
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values.
// Unknown placeholders are left untouched.
func SubstitutePlaceholders(command string, hc Context) string {
	r := strings.NewReplacer(
		"{path}", shellQuote(hc.Path),
		"{branch}", shellQuote(hc.Branch),
		"{repo}", shellQuote(hc.Repo),
		"{main-repo}", shellQuote(hc.MainRepo),
		"{trigger}", shellQuote(string(hc.Trigger)),
	)
	return r.Replace(command)
}

// Run executes every match in workDir with output written to w. A failing
// hook does not stop the rest; all failures are returned joined.
func Run(ctx context.Context, w io.Writer, matches []Match, hc Context, workDir string) error {
	l := log.FromContext(ctx)
	var errs []error
	for _, m := range matches {
		command := SubstitutePlaceholders(m.Hook.Command, hc)
		l.Debug("running hook", "name", m.Name, "trigger", hc.Trigger, "dir", workDir)
		ui.Info(w, fmt.Sprintf("Running hook '%s'...", m.Name))

		if err := cmd.StreamContext(ctx, workDir, w, "sh", "-c", command); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, fmt.Errorf("hook %q failed: %w", m.Name, err))
			continue
		}
		if m.Hook.Description != "" {
			ui.Success(w, m.Hook.Description)
		}
	}
	return errors.Join(errs...)
}
