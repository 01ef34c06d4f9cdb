package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/W1Real/workty/internal/log"
)

// ErrSubprocessFailed is matched by every *ExitError.
var ErrSubprocessFailed = errors.New("subprocess failed")

// ExitError describes an external command that ran but did not succeed.
// Stderr holds the trimmed diagnostic output of the command.
type ExitError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s %s: exit status %d", e.Name, strings.Join(e.Args, " "), e.ExitCode)
}

// Is reports ErrSubprocessFailed as a match.
func (e *ExitError) Is(target error) bool {
	return target == ErrSubprocessFailed
}

// RunContext executes name with args in dir. Stdout is discarded.
// A non-zero exit is returned as *ExitError carrying stderr.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes name with args in dir and returns stdout.
// The command is echoed through the context logger in verbose mode.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	l := log.FromContext(ctx)
	done := l.Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		c.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			e := &ExitError{
				Name:     name,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
			l.Debug("command failed", "cmd", name, "args", args, "exit", e.ExitCode, "stderr", e.Stderr)
			return nil, e
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// StreamContext executes name with args in dir, copying both stdout and
// stderr to w. A non-zero exit is returned as *ExitError without stderr.
func StreamContext(ctx context.Context, dir string, w io.Writer, name string, args ...string) error {
	l := log.FromContext(ctx)
	done := l.Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		c.Dir = dir
	}
	c.Stdout = w
	c.Stderr = w

	err := c.Run()
	done(time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Name: name, Args: args, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
