package git

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/W1Real/workty/internal/cmd"
)

// ErrInvalidPathEncoding is returned when a path handed to git is not valid UTF-8.
var ErrInvalidPathEncoding = errors.New("path is not valid UTF-8")

// checkPath rejects paths that cannot be passed to git verbatim.
func checkPath(path string) error {
	if !utf8.ValidString(path) {
		return fmt.Errorf("%w: %q", ErrInvalidPathEncoding, path)
	}
	return nil
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// RunGit executes git in dir. Exported for commands that need a one-off call.
func RunGit(ctx context.Context, dir string, args ...string) error {
	if err := checkPath(dir); err != nil {
		return err
	}
	return runGit(ctx, dir, args...)
}
